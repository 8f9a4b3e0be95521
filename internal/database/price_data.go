package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// CreatePriceBar inserts a daily price bar, updating on (symbol, date) conflict
func (db *DB) CreatePriceBar(p *models.PriceBarDaily) error {
	query := `
		INSERT INTO price_data_daily (symbol, date, adj_close, close, volume, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (symbol, date) DO UPDATE SET
			adj_close = EXCLUDED.adj_close,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
		RETURNING id
	`
	err := db.conn.QueryRow(query,
		p.Symbol, p.Date, p.AdjClose, p.Close, p.Volume, time.Now(),
	).Scan(&p.ID)

	if err != nil {
		return fmt.Errorf("failed to create price bar: %w", err)
	}
	return nil
}

// CreatePriceBarBatch inserts multiple price bars efficiently
func (db *DB) CreatePriceBarBatch(bars []*models.PriceBarDaily) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price_data_daily (symbol, date, adj_close, close, volume, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (symbol, date) DO UPDATE SET
			adj_close = EXCLUDED.adj_close,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range bars {
		_, err := stmt.Exec(p.Symbol, p.Date, p.AdjClose, p.Close, p.Volume, now)
		if err != nil {
			return fmt.Errorf("failed to insert price bar for %s: %w", p.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPriceBarBySymbolAndDate retrieves a price bar for a specific symbol and date
func (db *DB) GetPriceBarBySymbolAndDate(symbol string, date time.Time) (*models.PriceBarDaily, error) {
	query := `
		SELECT id, symbol, date, adj_close, close, volume, created_at
		FROM price_data_daily
		WHERE symbol = $1 AND date = $2
	`
	var p models.PriceBarDaily
	err := db.conn.QueryRow(query, symbol, date).Scan(
		&p.ID, &p.Symbol, &p.Date, &p.AdjClose, &p.Close, &p.Volume, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("price bar not found for %s on %s", symbol, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price bar: %w", err)
	}
	return &p, nil
}

// GetPriceBarRange retrieves price bars for a symbol within a date range,
// ordered by date ascending
func (db *DB) GetPriceBarRange(symbol string, startDate, endDate time.Time) ([]*models.PriceBarDaily, error) {
	query := `
		SELECT id, symbol, date, adj_close, close, volume, created_at
		FROM price_data_daily
		WHERE symbol = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	rows, err := db.conn.Query(query, symbol, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get price bar range: %w", err)
	}
	defer rows.Close()

	var bars []*models.PriceBarDaily
	for rows.Next() {
		var p models.PriceBarDaily
		err := rows.Scan(&p.ID, &p.Symbol, &p.Date, &p.AdjClose, &p.Close, &p.Volume, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price bar: %w", err)
		}
		bars = append(bars, &p)
	}

	return bars, nil
}

// GetLatestPriceBar retrieves the most recent price bar for a symbol
func (db *DB) GetLatestPriceBar(symbol string) (*models.PriceBarDaily, error) {
	query := `
		SELECT id, symbol, date, adj_close, close, volume, created_at
		FROM price_data_daily
		WHERE symbol = $1
		ORDER BY date DESC
		LIMIT 1
	`
	var p models.PriceBarDaily
	err := db.conn.QueryRow(query, symbol).Scan(
		&p.ID, &p.Symbol, &p.Date, &p.AdjClose, &p.Close, &p.Volume, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no price data found for %s", symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest price bar: %w", err)
	}
	return &p, nil
}

// PriceBarExists checks whether a bar exists for the symbol and date
func (db *DB) PriceBarExists(symbol string, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM price_data_daily WHERE symbol = $1 AND date = $2)`
	var exists bool
	if err := db.conn.QueryRow(query, symbol, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check price bar existence: %w", err)
	}
	return exists, nil
}

// DeletePriceBarsBySymbol removes all price data for a symbol
func (db *DB) DeletePriceBarsBySymbol(symbol string) error {
	query := `DELETE FROM price_data_daily WHERE symbol = $1`
	_, err := db.conn.Exec(query, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete price bars for %s: %w", symbol, err)
	}
	return nil
}

// DeletePriceBarsOlderThan removes price bars older than a specified date
func (db *DB) DeletePriceBarsOlderThan(date time.Time) (int64, error) {
	query := `DELETE FROM price_data_daily WHERE date < $1`
	result, err := db.conn.Exec(query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old price bars: %w", err)
	}
	return result.RowsAffected()
}
