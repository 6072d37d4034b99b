package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/GlassCut/internal/model"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrQuoteNotFound is returned when no saved quote has the requested ID.
var ErrQuoteNotFound = errors.New("quote not found")

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
    id             TEXT PRIMARY KEY,
    client_name    TEXT NOT NULL DEFAULT '',
    glass_type     TEXT NOT NULL,
    selected_stock TEXT NOT NULL,
    total          REAL NOT NULL DEFAULT 0,
    total_sheets   INTEGER NOT NULL DEFAULT 0,
    failed         INTEGER NOT NULL DEFAULT 0,
    estimate       TEXT NOT NULL,
    created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes (created_at);
`

// SavedQuote is a persisted estimate.
type SavedQuote struct {
	ID            string         `json:"id"`
	ClientName    string         `json:"client_name"`
	GlassType     string         `json:"glass_type"`
	SelectedStock string         `json:"selected_stock"`
	Total         float64        `json:"total"`
	TotalSheets   int            `json:"total_sheets"`
	Failed        bool           `json:"failed"`
	Estimate      model.Estimate `json:"estimate"`
	CreatedAt     time.Time      `json:"created_at"`
}

// QuoteSummary is a SavedQuote without its estimate body, for listings.
type QuoteSummary struct {
	ID            string    `json:"id"`
	ClientName    string    `json:"client_name"`
	GlassType     string    `json:"glass_type"`
	SelectedStock string    `json:"selected_stock"`
	Total         float64   `json:"total"`
	TotalSheets   int       `json:"total_sheets"`
	Failed        bool      `json:"failed"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store keeps saved quotes in SQLite.
type Store struct {
	db *sql.DB
}

// DefaultStorePath returns ~/.glasscut/quotes.db.
func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "quotes.db")
}

// OpenStore opens (creating if needed) the quote database at dbPath and
// applies the schema.
func OpenStore(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migration: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveQuote stores an estimate and returns the saved record with its new ID.
func (s *Store) SaveQuote(ctx context.Context, clientName, selectedStock string, est model.Estimate) (SavedQuote, error) {
	body, err := json.Marshal(est)
	if err != nil {
		return SavedQuote{}, fmt.Errorf("marshal estimate: %w", err)
	}

	q := SavedQuote{
		ID:            uuid.NewString(),
		ClientName:    clientName,
		GlassType:     est.Summary.GlassType,
		SelectedStock: selectedStock,
		Total:         est.Summary.Total,
		TotalSheets:   est.Summary.TotalSheets,
		Failed:        est.Summary.Failed(),
		Estimate:      est,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO quotes (id, client_name, glass_type, selected_stock, total, total_sheets, failed, estimate, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, q.ID, q.ClientName, q.GlassType, q.SelectedStock, q.Total, q.TotalSheets, q.Failed, string(body), q.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return SavedQuote{}, fmt.Errorf("insert quote: %w", err)
	}
	return q, nil
}

// GetQuote loads one saved quote.
func (s *Store) GetQuote(ctx context.Context, id string) (SavedQuote, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, client_name, glass_type, selected_stock, total, total_sheets, failed, estimate, created_at
        FROM quotes
        WHERE id = ?
    `, id)

	var (
		q         SavedQuote
		body      string
		createdAt string
	)
	if err := row.Scan(&q.ID, &q.ClientName, &q.GlassType, &q.SelectedStock, &q.Total, &q.TotalSheets, &q.Failed, &body, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedQuote{}, ErrQuoteNotFound
		}
		return SavedQuote{}, err
	}
	if err := json.Unmarshal([]byte(body), &q.Estimate); err != nil {
		return SavedQuote{}, fmt.Errorf("quote %s: parse estimate: %w", id, err)
	}
	var err error
	if q.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return SavedQuote{}, fmt.Errorf("quote %s: parse created_at: %w", id, err)
	}
	return q, nil
}

// ListQuotes returns quote summaries, newest first. limit <= 0 means no limit.
func (s *Store) ListQuotes(ctx context.Context, limit int) ([]QuoteSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, client_name, glass_type, selected_stock, total, total_sheets, failed, created_at
        FROM quotes
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []QuoteSummary{}
	for rows.Next() {
		var (
			q         QuoteSummary
			createdAt string
		)
		if err := rows.Scan(&q.ID, &q.ClientName, &q.GlassType, &q.SelectedStock, &q.Total, &q.TotalSheets, &q.Failed, &createdAt); err != nil {
			return nil, err
		}
		if q.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("quote %s: parse created_at: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// DeleteQuote removes a saved quote.
func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQuoteNotFound
	}
	return nil
}
