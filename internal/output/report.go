package output

import (
	"fmt"
	"io"

	"github.com/expenso/itr/internal/domain"
)

// GenerateReport renders est in the named format and writes it to w
func GenerateReport(w io.Writer, est *domain.Estimate, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %v)", format, AvailableFormatterNames())
	}
	data, err := f.Format(est)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateSlabReport writes every slab table in the console layout
func GenerateSlabReport(w io.Writer, tables []domain.SlabTable) error {
	for ti, table := range tables {
		if ti > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, table.Name); err != nil {
			return err
		}
		for i, s := range table.Slabs {
			if _, err := fmt.Fprintf(w, "  %-28s %s\n", SlabRange(table, i), FormatPercent(s.RatePercent)); err != nil {
				return err
			}
		}
	}
	return nil
}
