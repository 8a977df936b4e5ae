package output

import (
	"encoding/json"

	"github.com/expenso/itr/internal/domain"
)

// JSONFormatter serializes the estimate report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(est *domain.Estimate) ([]byte, error) {
	return json.MarshalIndent(BuildReport(est), "", "  ")
}
