package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestEstimate is a ₹6,00,000 salary with no deductions, both regimes
func buildTestEstimate(t *testing.T, pref domain.RegimePreference) *domain.Estimate {
	t.Helper()
	est := calculation.EstimateTax(domain.TaxInput{
		Income:           domain.Income{Salary: decimal.NewFromInt(600000)},
		RegimePreference: pref,
	})
	return &est
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":     "console",
		"":            "console",
		"TEXT":        "console",
		"verbose":     "console-verbose",
		" json ":      "json",
		"json-pretty": "json",
		"csv-summary": "csv",
		"html-report": "html",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name(), in)
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "html", "json"}, AvailableFormatterNames())
	assert.NotContains(t, AvailableFormatAliases(), "")
	assert.Contains(t, AvailableFormatAliases(), "json-pretty")
}

func TestConsoleFormatter_BothRegimes(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestEstimate(t, domain.PreferBoth))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "OLD TAX REGIME")
	assert.Contains(t, content, "NEW TAX REGIME  (recommended)")
	assert.Contains(t, content, "₹33,800")
	assert.Contains(t, content, "-₹15,000")
	assert.Contains(t, content, "New Regime is Better for You")
	assert.Contains(t, content, "You save ₹33,200 by choosing the New Tax Regime.")
	assert.Contains(t, content, "You can save up to ₹1,50,000 more under Section 80C investments.")
	assert.Contains(t, content, "You can save up to ₹25,000 more under Section 80D health insurance.")
	assert.Contains(t, content, Disclaimer)
	assert.Less(t, strings.Index(content, "OLD TAX REGIME"), strings.Index(content, "NEW TAX REGIME"))
}

func TestConsoleFormatter_SingleRegime(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestEstimate(t, domain.PreferNew))
	require.NoError(t, err)
	content := string(out)

	assert.NotContains(t, content, "OLD TAX REGIME")
	assert.NotContains(t, content, "REGIME COMPARISON")
	assert.NotContains(t, content, "(recommended)")
	assert.Contains(t, content, "New Regime Features:")
}

func TestConsoleFormatter_CapitalGainsNoted(t *testing.T) {
	est := calculation.EstimateTax(domain.TaxInput{
		Income:       domain.Income{Salary: decimal.NewFromInt(600000)},
		CapitalGains: decimal.NewFromInt(200000),
	})
	out, err := ConsoleFormatter{}.Format(&est)
	require.NoError(t, err)
	assert.Contains(t, string(out), "₹2,00,000 (not included in taxable income)")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestEstimate(t, domain.PreferBoth))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "SLAB BREAKDOWN: Old Regime - General (below 60)")
	assert.Contains(t, content, "SLAB BREAKDOWN: New Regime (all ages)")
	assert.Contains(t, content, "₹2,50,000 - ₹5,00,000")
	assert.Contains(t, content, "₹5,00,000 - ₹10,00,000")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestEstimate(t, domain.PreferBoth))
	require.NoError(t, err)

	var doc struct {
		Input struct {
			AgeBracket       string `json:"age"`
			RegimePreference string `json:"regimePreference"`
		} `json:"input"`
		Old struct {
			TotalTax string `json:"totalTax"`
		} `json:"old"`
		New struct {
			TotalTax string `json:"totalTax"`
			Rebate   string `json:"rebate"`
		} `json:"new"`
		Comparison struct {
			Better   string `json:"better"`
			Savings  string `json:"savings"`
			Headline string `json:"headline"`
		} `json:"comparison"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "33800", doc.Old.TotalTax)
	assert.Equal(t, "600", doc.New.TotalTax)
	assert.Equal(t, "15000", doc.New.Rebate)
	assert.Equal(t, "new", doc.Comparison.Better)
	assert.Equal(t, "33200", doc.Comparison.Savings)
	assert.Equal(t, "New Regime is Better for You", doc.Comparison.Headline)
	assert.Len(t, doc.Suggestions, 2)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestEstimate(t, domain.PreferBoth))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Regime,TotalIncome,"))
	assert.Equal(t, "old,600000.00,0.00,600000.00,32500.00,1300.00,0.00,33800.00,150000.00,25000.00,false", lines[1])
	assert.Equal(t, "new,600000.00,0.00,600000.00,15000.00,600.00,15000.00,600.00,,,true", lines[2])
}

func TestCSVFormatter_SingleRegime(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestEstimate(t, domain.PreferOld))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "old,"))
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestEstimate(t, domain.PreferBoth))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "Old Tax Regime")
	assert.Contains(t, content, `<span class="badge">Recommended</span>`)
	assert.Contains(t, content, "₹33,800")
	assert.Contains(t, content, "New Regime is Better for You")
	assert.Contains(t, content, "Key Differences")
	assert.Contains(t, content, "Section 80C investments")
}

func TestHTMLFormatter_NoComparisonForSingleRegime(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestEstimate(t, domain.PreferOld))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Key Differences")
	assert.NotContains(t, string(out), "badge\">Recommended")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimate.json")
	got, err := WriteFormatted(JSONFormatter{}, buildTestEstimate(t, domain.PreferBoth), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "stub", Ext: "txt", F: func(e *domain.Estimate) ([]byte, error) {
		return []byte(e.TotalIncome.String()), nil
	}}
	out, err := f.Format(buildTestEstimate(t, domain.PreferBoth))
	require.NoError(t, err)
	assert.Equal(t, "600000", string(out))
	assert.Equal(t, "stub", f.Name())
	assert.Equal(t, "txt", f.Extension())
}

func TestGenerateReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, buildTestEstimate(t, domain.PreferBoth), "csv"))
	assert.Contains(t, buf.String(), "Regime,")

	err := GenerateReport(&buf, buildTestEstimate(t, domain.PreferBoth), "xml")
	assert.ErrorContains(t, err, "unsupported format: xml")
}

func TestGenerateSlabReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateSlabReport(&buf, calculation.AllTables()))
	content := buf.String()
	assert.Contains(t, content, "Old Regime - Super Senior (above 80)")
	assert.Contains(t, content, "Above ₹15,00,000")
	assert.Contains(t, content, "₹0 - ₹3,00,000")
}
