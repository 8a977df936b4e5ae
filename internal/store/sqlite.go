package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// fixed width so created_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository is a Repository backed by a single SQLite file
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations. A nil logger uses the default configuration.
func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		logger: logger.WithComponent("store"),
		now:    time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save stores est under a new random ID. A blank label becomes the save time.
func (r *SQLiteRepository) Save(ctx context.Context, label string, est domain.Estimate) (SavedEstimate, error) {
	created := r.now().UTC()
	label = strings.TrimSpace(label)
	if label == "" {
		label = created.Local().Format("2006-01-02 15:04")
	}

	payload, err := json.Marshal(est)
	if err != nil {
		return SavedEstimate{}, fmt.Errorf("encode estimate: %w", err)
	}

	saved := SavedEstimate{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: created,
		Estimate:  est,
	}

	var oldTax, newTax, savings decimal.NullDecimal
	var better sql.NullString
	if est.Old != nil {
		oldTax = decimal.NewNullDecimal(est.Old.TotalTax)
	}
	if est.New != nil {
		newTax = decimal.NewNullDecimal(est.New.TotalTax)
	}
	if est.Comparison != nil {
		better = sql.NullString{String: string(est.Comparison.Better), Valid: true}
		savings = decimal.NewNullDecimal(est.Comparison.Savings)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO estimates (
			id, label, created_at, age_bracket, regime_preference,
			total_income, total_deductions, old_total_tax, new_total_tax,
			better, savings, estimate_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.Label, created.Format(timeLayout),
		est.Input.AgeBracket.String(), est.Input.RegimePreference.String(),
		est.TotalIncome.String(), est.TotalDeductions.String(),
		oldTax, newTax, better, savings, string(payload),
	)
	if err != nil {
		return SavedEstimate{}, fmt.Errorf("insert estimate: %w", err)
	}

	r.logger.InfoContext(ctx, "estimate saved",
		"id", saved.ID,
		"label", saved.Label,
		"total_income", est.TotalIncome.String())

	return saved, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (SavedEstimate, error) {
	fullID, err := r.resolveID(ctx, id)
	if err != nil {
		return SavedEstimate{}, err
	}

	var (
		saved   SavedEstimate
		created string
		payload string
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT id, label, created_at, estimate_json FROM estimates WHERE id = ?`, fullID,
	).Scan(&saved.ID, &saved.Label, &created, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedEstimate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return SavedEstimate{}, fmt.Errorf("get estimate %s: %w", id, err)
	}

	if saved.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return SavedEstimate{}, fmt.Errorf("parse created_at of %s: %w", saved.ID, err)
	}
	if err := json.Unmarshal([]byte(payload), &saved.Estimate); err != nil {
		return SavedEstimate{}, fmt.Errorf("decode estimate %s: %w", saved.ID, err)
	}
	return saved, nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]Summary, error) {
	query := `
		SELECT id, label, created_at, age_bracket, regime_preference, total_income,
		       old_total_tax, new_total_tax, better, savings
		FROM estimates
		ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s                 Summary
			created, age, pre string
			better            sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Label, &created, &age, &pre, &s.TotalIncome,
			&s.OldTotalTax, &s.NewTotalTax, &better, &s.Savings); err != nil {
			return nil, fmt.Errorf("scan estimate row: %w", err)
		}
		if s.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", s.ID, err)
		}
		if s.AgeBracket, err = domain.ParseAgeBracket(age); err != nil {
			return nil, fmt.Errorf("estimate %s: %w", s.ID, err)
		}
		if s.Preference, err = domain.ParseRegimePreference(pre); err != nil {
			return nil, fmt.Errorf("estimate %s: %w", s.ID, err)
		}
		s.Better = domain.BetterRegime(better.String)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	fullID, err := r.resolveID(ctx, id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, fullID)
	if err != nil {
		return fmt.Errorf("delete estimate %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete estimate %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "estimate deleted", "id", fullID)
	return nil
}

// resolveID expands a unique ID prefix to the full ID
func (r *SQLiteRepository) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if _, err := uuid.Parse(id); err == nil {
		return id, nil
	}

	// escape LIKE wildcards so only a literal prefix matches
	pattern := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(id) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM estimates WHERE id LIKE ? ESCAPE '\' LIMIT 2`, pattern)
	if err != nil {
		return "", fmt.Errorf("resolve id %s: %w", id, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return "", fmt.Errorf("resolve id %s: %w", id, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve id %s: %w", id, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}
