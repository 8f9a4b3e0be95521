package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// CreateCARResult inserts a CAR observation, updating on conflict so reruns
// of the analysis overwrite rather than duplicate
func (db *DB) CreateCARResult(r *models.CARResult) error {
	query := `
		INSERT INTO car_results (
			ticker, event_date, car_window, car, surprise, eps_estimate, reported_eps, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ticker, event_date, car_window) DO UPDATE SET
			car = EXCLUDED.car,
			surprise = EXCLUDED.surprise,
			eps_estimate = EXCLUDED.eps_estimate,
			reported_eps = EXCLUDED.reported_eps
		RETURNING id
	`
	err := db.conn.QueryRow(query,
		r.Ticker, r.EventDate, r.Window, r.CAR, r.Surprise, r.EPSEstimate, r.ReportedEPS, time.Now(),
	).Scan(&r.ID)

	if err != nil {
		return fmt.Errorf("failed to create CAR result: %w", err)
	}
	return nil
}

// CreateCARResultBatch inserts multiple CAR results in one transaction
func (db *DB) CreateCARResultBatch(results []*models.CARResult) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO car_results (
			ticker, event_date, car_window, car, surprise, eps_estimate, reported_eps, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ticker, event_date, car_window) DO UPDATE SET
			car = EXCLUDED.car,
			surprise = EXCLUDED.surprise,
			eps_estimate = EXCLUDED.eps_estimate,
			reported_eps = EXCLUDED.reported_eps
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, r := range results {
		_, err := stmt.Exec(r.Ticker, r.EventDate, r.Window, r.CAR, r.Surprise, r.EPSEstimate, r.ReportedEPS, now)
		if err != nil {
			return fmt.Errorf("failed to insert CAR result for %s: %w", r.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCARResultsByTicker retrieves all CAR results for a ticker, most recent
// event first
func (db *DB) GetCARResultsByTicker(ticker string) ([]*models.CARResult, error) {
	query := `
		SELECT id, ticker, event_date, car_window, car, surprise, eps_estimate, reported_eps, created_at
		FROM car_results
		WHERE ticker = $1
		ORDER BY event_date DESC, car_window ASC
	`
	return db.scanCARResults(db.conn.Query(query, ticker))
}

// GetCARResultsByWindow retrieves all CAR results for one horizon across
// tickers, for cross-sectional analysis
func (db *DB) GetCARResultsByWindow(window int) ([]*models.CARResult, error) {
	query := `
		SELECT id, ticker, event_date, car_window, car, surprise, eps_estimate, reported_eps, created_at
		FROM car_results
		WHERE car_window = $1
		ORDER BY ticker ASC, event_date DESC
	`
	return db.scanCARResults(db.conn.Query(query, window))
}

// GetAllCARResults retrieves every stored CAR result
func (db *DB) GetAllCARResults() ([]*models.CARResult, error) {
	query := `
		SELECT id, ticker, event_date, car_window, car, surprise, eps_estimate, reported_eps, created_at
		FROM car_results
		ORDER BY ticker ASC, event_date DESC, car_window ASC
	`
	return db.scanCARResults(db.conn.Query(query))
}

func (db *DB) scanCARResults(rows *sql.Rows, err error) ([]*models.CARResult, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query CAR results: %w", err)
	}
	defer rows.Close()

	var results []*models.CARResult
	for rows.Next() {
		var r models.CARResult
		var epsEstimate, reportedEPS sql.NullFloat64

		err := rows.Scan(
			&r.ID, &r.Ticker, &r.EventDate, &r.Window, &r.CAR,
			&r.Surprise, &epsEstimate, &reportedEPS, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan CAR result: %w", err)
		}

		if epsEstimate.Valid {
			r.EPSEstimate = &epsEstimate.Float64
		}
		if reportedEPS.Valid {
			r.ReportedEPS = &reportedEPS.Float64
		}
		results = append(results, &r)
	}

	return results, nil
}

// DeleteCARResultsByTicker removes all stored results for a ticker
func (db *DB) DeleteCARResultsByTicker(ticker string) error {
	query := `DELETE FROM car_results WHERE ticker = $1`
	_, err := db.conn.Exec(query, ticker)
	if err != nil {
		return fmt.Errorf("failed to delete CAR results for %s: %w", ticker, err)
	}
	return nil
}
