package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/expenso/itr/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(est *domain.Estimate) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is saved.
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID  string
	Ext string
	F   func(*domain.Estimate) ([]byte, error)
}

func (ff FormatterFunc) Format(e *domain.Estimate) ([]byte, error) { return ff.F(e) }
func (ff FormatterFunc) Name() string                              { return ff.ID }
func (ff FormatterFunc) Extension() string                         { return ff.Ext }

// WriteFormatted runs a formatter and writes the output to path. An empty path
// means a timestamped tax_estimate_*.<ext> file in the working directory.
func WriteFormatted(f Formatter, est *domain.Estimate, path string) (string, error) {
	data, err := f.Format(est)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = fmt.Sprintf("tax_estimate_%s.%s", time.Now().Format("20060102_150405"), f.Extension())
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"":            "console",
	"text":        "console",
	"table":       "console",
	"verbose":     "console-verbose",
	"detailed":    "console-verbose",
	"csv-summary": "csv",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
