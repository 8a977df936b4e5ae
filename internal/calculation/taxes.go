package calculation

import (
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slab tables are the fixed AY 2024-25 style tables below; no inflation indexing.
// 2. Old regime slabs depend on the age bracket; new regime slabs do not.
// 3. Health & education cess is a flat 4% of basic tax. No surcharge tiers.
// 4. Capital gains are not taxed here.

var hundred = decimal.NewFromInt(100)

// unbounded builds the open-ended top slab of a table
func unbounded(ratePercent int64) domain.TaxSlab {
	return domain.TaxSlab{Unbounded: true, RatePercent: decimal.NewFromInt(ratePercent)}
}

func slab(upper, ratePercent int64) domain.TaxSlab {
	return domain.TaxSlab{UpperBound: decimal.NewFromInt(upper), RatePercent: decimal.NewFromInt(ratePercent)}
}

// OldRegimeGeneral is the old regime table for taxpayers below 60
func OldRegimeGeneral() domain.SlabTable {
	return domain.SlabTable{
		Name: "Old Regime - General (below 60)",
		Slabs: []domain.TaxSlab{
			slab(250000, 0),
			slab(500000, 5),
			slab(1000000, 20),
			unbounded(30),
		},
	}
}

// OldRegimeSenior is the old regime table for taxpayers aged 60 to 80
func OldRegimeSenior() domain.SlabTable {
	return domain.SlabTable{
		Name: "Old Regime - Senior (60-80)",
		Slabs: []domain.TaxSlab{
			slab(300000, 0),
			slab(500000, 5),
			slab(1000000, 20),
			unbounded(30),
		},
	}
}

// OldRegimeSuperSenior is the old regime table for taxpayers above 80
func OldRegimeSuperSenior() domain.SlabTable {
	return domain.SlabTable{
		Name: "Old Regime - Super Senior (above 80)",
		Slabs: []domain.TaxSlab{
			slab(500000, 0),
			slab(1000000, 20),
			unbounded(30),
		},
	}
}

// NewRegime is the simplified regime table, shared by every age bracket
func NewRegime() domain.SlabTable {
	return domain.SlabTable{
		Name: "New Regime (all ages)",
		Slabs: []domain.TaxSlab{
			slab(300000, 0),
			slab(600000, 5),
			slab(900000, 10),
			slab(1200000, 15),
			slab(1500000, 20),
			unbounded(30),
		},
	}
}

// OldRegimeTable selects the old regime table for an age bracket
func OldRegimeTable(age domain.AgeBracket) domain.SlabTable {
	switch age {
	case domain.AgeSenior:
		return OldRegimeSenior()
	case domain.AgeSuperSenior:
		return OldRegimeSuperSenior()
	default:
		return OldRegimeGeneral()
	}
}

// AllTables returns every table in display order
func AllTables() []domain.SlabTable {
	return []domain.SlabTable{
		OldRegimeGeneral(),
		OldRegimeSenior(),
		OldRegimeSuperSenior(),
		NewRegime(),
	}
}

// SlabPortion is the slice of income one slab taxed
type SlabPortion struct {
	Lower       decimal.Decimal
	Upper       decimal.Decimal // zero when Unbounded
	Unbounded   bool
	RatePercent decimal.Decimal
	Amount      decimal.Decimal
	Tax         decimal.Decimal
}

// ApplySlabs computes progressive tax on taxableIncome. Each slab taxes only
// the portion of income that falls inside it. Negative income is taxed as zero.
func ApplySlabs(taxableIncome decimal.Decimal, table domain.SlabTable) decimal.Decimal {
	return applySlabs(taxableIncome, table, NopLogger{})
}

// BreakdownSlabs returns the portions ApplySlabs sums, one per slab the income
// reaches. Slabs above the income are omitted.
func BreakdownSlabs(taxableIncome decimal.Decimal, table domain.SlabTable) []SlabPortion {
	return breakdownSlabs(taxableIncome, table, NopLogger{})
}

func applySlabs(taxableIncome decimal.Decimal, table domain.SlabTable, logger Logger) decimal.Decimal {
	tax := decimal.Zero
	for _, p := range breakdownSlabs(taxableIncome, table, logger) {
		tax = tax.Add(p.Tax)
	}
	return tax
}

func breakdownSlabs(taxableIncome decimal.Decimal, table domain.SlabTable, logger Logger) []SlabPortion {
	remaining := domain.NonNegative(taxableIncome)
	previousUpper := decimal.Zero
	var portions []SlabPortion

	for i, s := range table.Slabs {
		if !remaining.IsPositive() {
			break
		}

		amount := remaining
		if !s.Unbounded {
			amount = decimal.Min(remaining, s.UpperBound.Sub(previousUpper))
		}
		if !amount.IsPositive() {
			break
		}

		slabTax := amount.Mul(s.RatePercent).Div(hundred)
		logger.Debugf("%s slab %d: %s @ %s%% = %s", table.Name, i, amount, s.RatePercent, slabTax)

		portions = append(portions, SlabPortion{
			Lower:       previousUpper,
			Upper:       s.UpperBound,
			Unbounded:   s.Unbounded,
			RatePercent: s.RatePercent,
			Amount:      amount,
			Tax:         slabTax,
		})
		remaining = remaining.Sub(amount)
		previousUpper = s.UpperBound
	}

	return portions
}
