package calculation

import (
	"testing"

	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlabTablesAreValid(t *testing.T) {
	for _, table := range AllTables() {
		t.Run(table.Name, func(t *testing.T) {
			require.NoError(t, table.Validate())
		})
	}
}

func TestSlabTableBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		table  domain.SlabTable
		bounds []int64
		rates  []int64
	}{
		{"old general", OldRegimeGeneral(), []int64{250000, 500000, 1000000}, []int64{0, 5, 20, 30}},
		{"old senior", OldRegimeSenior(), []int64{300000, 500000, 1000000}, []int64{0, 5, 20, 30}},
		{"old super senior", OldRegimeSuperSenior(), []int64{500000, 1000000}, []int64{0, 20, 30}},
		{"new", NewRegime(), []int64{300000, 600000, 900000, 1200000, 1500000}, []int64{0, 5, 10, 15, 20, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.table.Slabs, len(tt.rates))
			for i, s := range tt.table.Slabs {
				assert.True(t, s.RatePercent.Equal(decimal.NewFromInt(tt.rates[i])), "slab %d rate %s", i, s.RatePercent)
				if i < len(tt.bounds) {
					assert.False(t, s.Unbounded)
					assert.True(t, s.UpperBound.Equal(decimal.NewFromInt(tt.bounds[i])), "slab %d bound %s", i, s.UpperBound)
				} else {
					assert.True(t, s.Unbounded, "last slab must be unbounded")
				}
			}
		})
	}
}

func TestOldRegimeTableSelection(t *testing.T) {
	assert.Equal(t, OldRegimeGeneral().Name, OldRegimeTable(domain.AgeGeneral).Name)
	assert.Equal(t, OldRegimeSenior().Name, OldRegimeTable(domain.AgeSenior).Name)
	assert.Equal(t, OldRegimeSuperSenior().Name, OldRegimeTable(domain.AgeSuperSenior).Name)
}

func TestApplySlabs(t *testing.T) {
	tests := []struct {
		name     string
		income   decimal.Decimal
		table    domain.SlabTable
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, OldRegimeGeneral(), decimal.Zero},
		{"inside nil slab", decimal.NewFromInt(250000), OldRegimeGeneral(), decimal.Zero},
		{"old general 6L", decimal.NewFromInt(600000), OldRegimeGeneral(), decimal.NewFromInt(32500)},
		{"old general 20L", decimal.NewFromInt(2000000), OldRegimeGeneral(), decimal.NewFromInt(412500)},
		{"old senior 4L", decimal.NewFromInt(400000), OldRegimeSenior(), decimal.NewFromInt(5000)},
		{"old super senior 6L", decimal.NewFromInt(600000), OldRegimeSuperSenior(), decimal.NewFromInt(20000)},
		{"new 6L", decimal.NewFromInt(600000), NewRegime(), decimal.NewFromInt(15000)},
		{"new 20L", decimal.NewFromInt(2000000), NewRegime(), decimal.NewFromInt(300000)},
		{"fractional income", decimal.RequireFromString("250000.50"), OldRegimeGeneral(), decimal.RequireFromString("0.025")},
		{"negative income taxed as zero", decimal.NewFromInt(-500000), NewRegime(), decimal.Zero},
		{"empty table", decimal.NewFromInt(100000), domain.SlabTable{}, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySlabs(tt.income, tt.table)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestApplySlabs_UnboundedSlabConsumesResidual(t *testing.T) {
	income := decimal.NewFromInt(100000000) // 10 crore
	got := ApplySlabs(income, NewRegime())
	// 150000 below 15L plus 30% of everything above
	expected := decimal.NewFromInt(150000).Add(income.Sub(decimal.NewFromInt(1500000)).Mul(decimal.New(3, -1)))
	assert.True(t, got.Equal(expected), "expected %s, got %s", expected, got)
}

func TestApplySlabs_ContinuousAtBoundaries(t *testing.T) {
	one := decimal.NewFromInt(1)
	for _, table := range AllTables() {
		t.Run(table.Name, func(t *testing.T) {
			for i, s := range table.Slabs {
				if s.Unbounded {
					continue
				}
				below := ApplySlabs(s.UpperBound.Sub(one), table)
				at := ApplySlabs(s.UpperBound, table)
				marginal := s.RatePercent.Div(decimal.NewFromInt(100))
				assert.True(t, below.Add(marginal).Equal(at),
					"slab %d: tax(%s-1)=%s + %s != tax(%s)=%s", i, s.UpperBound, below, marginal, s.UpperBound, at)
			}
		})
	}
}

func TestApplySlabs_Monotonic(t *testing.T) {
	step := decimal.NewFromInt(25000)
	for _, table := range AllTables() {
		t.Run(table.Name, func(t *testing.T) {
			prev := decimal.Zero
			for income := decimal.Zero; income.LessThanOrEqual(decimal.NewFromInt(3000000)); income = income.Add(step) {
				tax := ApplySlabs(income, table)
				assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at %s: %s < %s", income, tax, prev)
				prev = tax
			}
		})
	}
}

func TestSlabTableValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		table domain.SlabTable
	}{
		{"empty", domain.SlabTable{Name: "empty"}},
		{"bounded last slab", domain.SlabTable{Name: "x", Slabs: []domain.TaxSlab{slab(100, 0), slab(200, 10)}}},
		{"unbounded in middle", domain.SlabTable{Name: "x", Slabs: []domain.TaxSlab{unbounded(0), unbounded(10)}}},
		{"non increasing", domain.SlabTable{Name: "x", Slabs: []domain.TaxSlab{slab(200, 0), slab(200, 5), unbounded(10)}}},
		{"rate above 100", domain.SlabTable{Name: "x", Slabs: []domain.TaxSlab{slab(100, 0), unbounded(101)}}},
		{"negative rate", domain.SlabTable{Name: "x", Slabs: []domain.TaxSlab{slab(100, -1), unbounded(10)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.table.Validate())
		})
	}
}

type recordingLogger struct {
	NopLogger
	debug int
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.debug++ }

func TestApplySlabs_LogsEachSlabUsed(t *testing.T) {
	rl := &recordingLogger{}
	applySlabs(decimal.NewFromInt(600000), OldRegimeGeneral(), rl)
	assert.Equal(t, 3, rl.debug)
}

func TestBreakdownSlabs(t *testing.T) {
	portions := BreakdownSlabs(decimal.NewFromInt(750000), NewRegime())
	require.Len(t, portions, 3)

	assert.True(t, portions[0].Lower.IsZero())
	assert.True(t, portions[0].Amount.Equal(decimal.NewFromInt(300000)))
	assert.True(t, portions[0].Tax.IsZero())

	assert.True(t, portions[1].Lower.Equal(decimal.NewFromInt(300000)))
	assert.True(t, portions[1].Tax.Equal(decimal.NewFromInt(15000)))

	assert.True(t, portions[2].Upper.Equal(decimal.NewFromInt(900000)))
	assert.True(t, portions[2].Amount.Equal(decimal.NewFromInt(150000)))
	assert.True(t, portions[2].Tax.Equal(decimal.NewFromInt(15000)))
}

func TestBreakdownSlabs_SumsToApplySlabs(t *testing.T) {
	for _, table := range AllTables() {
		for _, income := range []int64{0, 249999, 500000, 1234567, 5000000} {
			in := decimal.NewFromInt(income)
			sum := decimal.Zero
			for _, p := range BreakdownSlabs(in, table) {
				sum = sum.Add(p.Tax)
			}
			assert.True(t, sum.Equal(ApplySlabs(in, table)), "%s at %d", table.Name, income)
		}
	}
}

func TestBreakdownSlabs_TopSlabIsUnbounded(t *testing.T) {
	portions := BreakdownSlabs(decimal.NewFromInt(2000000), OldRegimeGeneral())
	require.Len(t, portions, 4)
	top := portions[3]
	assert.True(t, top.Unbounded)
	assert.True(t, top.Lower.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, top.Amount.Equal(decimal.NewFromInt(1000000)))
}
