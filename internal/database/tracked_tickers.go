package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// CreateTrackedTicker adds a symbol to the analysis universe
func (db *DB) CreateTrackedTicker(t *models.TrackedTicker) error {
	query := `
		INSERT INTO tracked_tickers (symbol, enabled, priority, notes, added_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (symbol) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			priority = EXCLUDED.priority,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if t.Priority == 0 {
		t.Priority = 1
	}

	_, err := db.conn.Exec(query, t.Symbol, t.Enabled, t.Priority, t.Notes, now, now)
	if err != nil {
		return fmt.Errorf("failed to create tracked ticker: %w", err)
	}
	t.AddedAt = now
	t.UpdatedAt = now
	return nil
}

// GetTrackedTickerBySymbol retrieves a tracked ticker by symbol
func (db *DB) GetTrackedTickerBySymbol(symbol string) (*models.TrackedTicker, error) {
	query := `
		SELECT symbol, enabled, priority, notes, added_at, updated_at
		FROM tracked_tickers
		WHERE symbol = $1
	`
	var t models.TrackedTicker
	var notes sql.NullString

	err := db.conn.QueryRow(query, symbol).Scan(
		&t.Symbol, &t.Enabled, &t.Priority, &notes, &t.AddedAt, &t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tracked ticker not found: %s", symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked ticker: %w", err)
	}

	if notes.Valid {
		t.Notes = notes.String
	}
	return &t, nil
}

// GetAllTrackedTickers retrieves the whole universe
func (db *DB) GetAllTrackedTickers() ([]*models.TrackedTicker, error) {
	query := `
		SELECT symbol, enabled, priority, notes, added_at, updated_at
		FROM tracked_tickers
		ORDER BY priority ASC, symbol ASC
	`
	return db.scanTrackedTickers(db.conn.Query(query))
}

// GetEnabledSymbols returns just the symbols of enabled tracked tickers
func (db *DB) GetEnabledSymbols() ([]string, error) {
	query := `
		SELECT symbol
		FROM tracked_tickers
		WHERE enabled = true
		ORDER BY priority ASC, symbol ASC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get enabled symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	return symbols, nil
}

func (db *DB) scanTrackedTickers(rows *sql.Rows, err error) ([]*models.TrackedTicker, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked tickers: %w", err)
	}
	defer rows.Close()

	var tickers []*models.TrackedTicker
	for rows.Next() {
		var t models.TrackedTicker
		var notes sql.NullString

		err := rows.Scan(&t.Symbol, &t.Enabled, &t.Priority, &notes, &t.AddedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracked ticker: %w", err)
		}

		if notes.Valid {
			t.Notes = notes.String
		}
		tickers = append(tickers, &t)
	}

	return tickers, nil
}

// DisableTrackedTicker disables a ticker without removing it
func (db *DB) DisableTrackedTicker(symbol string) error {
	query := `UPDATE tracked_tickers SET enabled = false, updated_at = $2 WHERE symbol = $1`
	result, err := db.conn.Exec(query, symbol, time.Now())
	if err != nil {
		return fmt.Errorf("failed to disable tracked ticker: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("tracked ticker not found: %s", symbol)
	}
	return nil
}

// DeleteTrackedTicker removes a symbol from the universe
func (db *DB) DeleteTrackedTicker(symbol string) error {
	query := `DELETE FROM tracked_tickers WHERE symbol = $1`
	result, err := db.conn.Exec(query, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete tracked ticker: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("tracked ticker not found: %s", symbol)
	}
	return nil
}
