package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/transform"
	"github.com/shopspring/decimal"
)

// WhatIfResult compares an input against a transformed copy of itself
type WhatIfResult struct {
	Changes  []string       `json:"changes"`
	Base     *ComparisonSet `json:"base"`
	Modified *ComparisonSet `json:"modified"`

	OldDelta  decimal.Decimal `json:"oldDelta"`  // modified minus base, old regime
	NewDelta  decimal.Decimal `json:"newDelta"`  // modified minus base, new regime
	BestDelta decimal.Decimal `json:"bestDelta"` // change in the cheaper regime's tax
}

// WhatIf compares base with the result of applying transforms to it
func (ce *CompareEngine) WhatIf(ctx context.Context, base domain.TaxInput, transforms []transform.InputTransform) (*WhatIfResult, error) {
	if len(transforms) == 0 {
		return nil, fmt.Errorf("what-if needs at least one transform")
	}

	modifiedInput, err := transform.ApplyTransforms(base, transforms)
	if err != nil {
		return nil, err
	}

	baseSet, err := ce.Compare(ctx, base, "")
	if err != nil {
		return nil, err
	}
	modSet, err := ce.Compare(ctx, modifiedInput, "")
	if err != nil {
		return nil, err
	}

	return &WhatIfResult{
		Changes:   transform.Describe(transforms),
		Base:      baseSet,
		Modified:  modSet,
		OldDelta:  modSet.Old.TotalTax.Sub(baseSet.Old.TotalTax),
		NewDelta:  modSet.New.TotalTax.Sub(baseSet.New.TotalTax),
		BestDelta: bestTax(modSet).Sub(bestTax(baseSet)),
	}, nil
}

func bestTax(cs *ComparisonSet) decimal.Decimal {
	return decimal.Min(cs.Old.TotalTax, cs.New.TotalTax)
}

// FormatWhatIf renders a what-if result as a console table
func (tf *TableFormatter) FormatWhatIf(r *WhatIfResult) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	for _, c := range r.Changes {
		sb.WriteString(fmt.Sprintf("• %s\n", c))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-20s %16s %16s %16s\n", "", "Current", "What-If", "Change"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(deltaRow("Old Regime Tax", r.Base.Old.TotalTax, r.Modified.Old.TotalTax, r.OldDelta))
	sb.WriteString(deltaRow("New Regime Tax", r.Base.New.TotalTax, r.Modified.New.TotalTax, r.NewDelta))
	sb.WriteString(deltaRow("Lowest Tax", bestTax(r.Base), bestTax(r.Modified), r.BestDelta))
	sb.WriteString(fmt.Sprintf("%-20s %16s %16s\n", "Better Regime", r.Base.Better, r.Modified.Better))
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	switch {
	case r.BestDelta.IsNegative():
		sb.WriteString(fmt.Sprintf("\nThis change lowers your tax by %s.\n", output.FormatINR(r.BestDelta.Neg())))
	case r.BestDelta.IsPositive():
		sb.WriteString(fmt.Sprintf("\nThis change raises your tax by %s.\n", output.FormatINR(r.BestDelta)))
	default:
		sb.WriteString("\nThis change does not affect your lowest tax.\n")
	}
	if r.Base.Better != r.Modified.Better {
		sb.WriteString(fmt.Sprintf("The better regime changes from %s to %s.\n", r.Base.Better, r.Modified.Better))
	}

	return sb.String()
}

func deltaRow(label string, before, after, delta decimal.Decimal) string {
	change := output.FormatINR(delta)
	if delta.IsPositive() {
		change = "+" + change
	}
	return fmt.Sprintf("%-20s %16s %16s %16s\n", label, output.FormatINR(before), output.FormatINR(after), change)
}

// FormatWhatIf encodes a what-if result as JSON
func (jf *JSONFormatter) FormatWhatIf(r *WhatIfResult) (string, error) {
	return jf.encode(r)
}
