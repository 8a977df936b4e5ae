// Package store persists saved estimates.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no saved estimate matches an ID
	ErrNotFound = errors.New("saved estimate not found")
	// ErrAmbiguousID is returned when an ID prefix matches more than one estimate
	ErrAmbiguousID = errors.New("id prefix matches more than one saved estimate")
)

// SavedEstimate is an estimate as stored
type SavedEstimate struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	CreatedAt time.Time       `json:"createdAt"`
	Estimate  domain.Estimate `json:"estimate"`
}

// Summary is a list row; it is read without decoding the stored estimate
type Summary struct {
	ID          string
	Label       string
	CreatedAt   time.Time
	AgeBracket  domain.AgeBracket
	Preference  domain.RegimePreference
	TotalIncome decimal.Decimal
	OldTotalTax decimal.NullDecimal
	NewTotalTax decimal.NullDecimal
	Better      domain.BetterRegime // empty unless both regimes were computed
	Savings     decimal.NullDecimal
}

// Repository stores and retrieves estimates
type Repository interface {
	Save(ctx context.Context, label string, est domain.Estimate) (SavedEstimate, error)
	// Get accepts a full ID or a unique prefix of one
	Get(ctx context.Context, id string) (SavedEstimate, error)
	// List returns the newest estimates first; limit <= 0 means no limit
	List(ctx context.Context, limit int) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
