// Package tuimsg holds the messages scenes send to the root model. It sits
// apart from the tui package so scenes can emit them without an import cycle.
package tuimsg

import (
	"github.com/expenso/itr/internal/compare"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/store"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputLoadedMsg carries a tax input read from a file
type InputLoadedMsg struct {
	Path     string
	Input    *domain.TaxInput
	Warnings []string
}

// CalculateRequestedMsg asks the root model to estimate the form's input
type CalculateRequestedMsg struct {
	Input    domain.TaxInput
	Warnings []string
}

// CalculationCompleteMsg carries a finished estimate. Comparison is nil
// unless both regimes were computed.
type CalculationCompleteMsg struct {
	Estimate   *domain.Estimate
	Comparison *compare.ComparisonSet
	Warnings   []string
	Err        error
}

// SaveRequestedMsg asks for the current estimate to be saved
type SaveRequestedMsg struct {
	Label string
}

// SaveCompleteMsg reports the outcome of a save
type SaveCompleteMsg struct {
	Saved store.SavedEstimate
	Err   error
}

// HistoryLoadedMsg carries the saved estimate list
type HistoryLoadedMsg struct {
	Summaries []store.Summary
	Err       error
}

// HistorySelectedMsg asks for a saved estimate to be opened
type HistorySelectedMsg struct {
	ID string
}

// HistoryDeleteRequestedMsg asks for a saved estimate to be removed
type HistoryDeleteRequestedMsg struct {
	ID string
}

// SavedEstimateLoadedMsg carries an estimate read back from the store
type SavedEstimateLoadedMsg struct {
	Saved store.SavedEstimate
	Err   error
}
