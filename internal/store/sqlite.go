package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite stores the scenario blob and run history in a local database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite path is empty")
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)`, key, value, now)
	return err
}

// RecordRun appends r to plan_runs. A zero CreatedAt is stamped with now.
func (s *SQLite) RecordRun(ctx context.Context, r Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO plan_runs
		(created_at, strategy, contribution, loans, months, total_paid, interest)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Strategy, r.Contribution.String(),
		r.Loans, r.Months, r.TotalPaid.String(), r.Interest.String(),
	)
	return err
}

// Runs returns up to limit runs, newest first. limit <= 0 returns all.
func (s *SQLite) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		created_at, strategy, contribution, loans, months, total_paid, interest
		FROM plan_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var created, contribution, totalPaid, interest string
		if err := rows.Scan(&created, &r.Strategy, &contribution, &r.Loans, &r.Months, &totalPaid, &interest); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		if r.Contribution, err = decimal.NewFromString(contribution); err != nil {
			return nil, fmt.Errorf("parsing contribution: %w", err)
		}
		if r.TotalPaid, err = decimal.NewFromString(totalPaid); err != nil {
			return nil, fmt.Errorf("parsing total paid: %w", err)
		}
		if r.Interest, err = decimal.NewFromString(interest); err != nil {
			return nil, fmt.Errorf("parsing interest: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
