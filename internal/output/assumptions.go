package output

// DefaultAssumptions lists the modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Slab tables: AY 2024-25 rates held constant",
	"Health & education cess: 4% of basic tax",
	"Section 87A rebate: old regime up to ₹5,00,000 (max ₹12,500), new regime up to ₹7,00,000 (max ₹25,000)",
	"Old regime deductions are taken as entered, without section limits",
	"New regime allows no deductions and no standard deduction",
	"Capital gains are reported but not taxed",
	"No surcharge on high incomes",
}
