package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TaxSlab is one marginal-rate band. The band runs from the previous slab's
// upper bound to UpperBound; the last slab of a table is Unbounded.
type TaxSlab struct {
	UpperBound  decimal.Decimal `yaml:"upper_bound" json:"upperBound"`
	Unbounded   bool            `yaml:"unbounded" json:"unbounded"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
}

// Rate returns the slab rate as a fraction
func (s TaxSlab) Rate() decimal.Decimal {
	return s.RatePercent.Div(hundred)
}

// SlabTable is an ordered sequence of slabs
type SlabTable struct {
	Name  string    `yaml:"name" json:"name"`
	Slabs []TaxSlab `yaml:"slabs" json:"slabs"`
}

// Validate checks that upper bounds strictly increase, that only the final
// slab is unbounded, and that every rate lies in [0,100].
func (t SlabTable) Validate() error {
	if len(t.Slabs) == 0 {
		return fmt.Errorf("slab table %q has no slabs", t.Name)
	}
	prev := decimal.Zero
	for i, s := range t.Slabs {
		if s.RatePercent.IsNegative() || s.RatePercent.GreaterThan(hundred) {
			return fmt.Errorf("slab table %q: slab %d rate %s%% outside [0,100]", t.Name, i, s.RatePercent)
		}
		last := i == len(t.Slabs)-1
		if s.Unbounded {
			if !last {
				return fmt.Errorf("slab table %q: slab %d is unbounded but not last", t.Name, i)
			}
			continue
		}
		if last {
			return fmt.Errorf("slab table %q: final slab must be unbounded", t.Name)
		}
		if !s.UpperBound.GreaterThan(prev) {
			return fmt.Errorf("slab table %q: slab %d upper bound %s does not exceed %s", t.Name, i, s.UpperBound, prev)
		}
		prev = s.UpperBound
	}
	return nil
}

// LowerBound returns the lower edge of slab i
func (t SlabTable) LowerBound(i int) decimal.Decimal {
	if i <= 0 || i > len(t.Slabs) {
		return decimal.Zero
	}
	return t.Slabs[i-1].UpperBound
}
