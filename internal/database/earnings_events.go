package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// CreateEarningsRecord inserts a raw earnings record for a symbol. The record
// keeps the provider's surprise fields as delivered; normalization happens in
// the analysis layer.
func (db *DB) CreateEarningsRecord(symbol string, r *models.RawEarnings) error {
	query := `
		INSERT INTO earnings_events (
			symbol, event_date, surprise, surprise_pct, eps_estimate, reported_eps, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, event_date) DO UPDATE SET
			surprise = EXCLUDED.surprise,
			surprise_pct = EXCLUDED.surprise_pct,
			eps_estimate = EXCLUDED.eps_estimate,
			reported_eps = EXCLUDED.reported_eps
	`
	_, err := db.conn.Exec(query,
		symbol, r.Date, r.Surprise, r.SurprisePct, r.EPSEstimate, r.ReportedEPS, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create earnings record: %w", err)
	}
	return nil
}

// EarningsRecordExists checks if an earnings record already exists for the
// symbol and event date
func (db *DB) EarningsRecordExists(symbol, eventDate string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM earnings_events WHERE symbol = $1 AND event_date = $2)`
	var exists bool
	if err := db.conn.QueryRow(query, symbol, eventDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for earnings record: %w", err)
	}
	return exists, nil
}

// GetEarningsBySymbol retrieves past earnings records for a symbol, most
// recent first. Future-dated events are excluded so the analysis only ever
// sees announcements that have happened.
func (db *DB) GetEarningsBySymbol(symbol string) ([]*models.RawEarnings, error) {
	query := `
		SELECT event_date, surprise, surprise_pct, eps_estimate, reported_eps
		FROM earnings_events
		WHERE symbol = $1 AND event_date <= NOW()
		ORDER BY event_date DESC
	`
	rows, err := db.conn.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get earnings records: %w", err)
	}
	defer rows.Close()

	var records []*models.RawEarnings
	for rows.Next() {
		var r models.RawEarnings
		var eventDate time.Time
		var surprise, surprisePct, epsEstimate, reportedEPS sql.NullFloat64

		err := rows.Scan(&eventDate, &surprise, &surprisePct, &epsEstimate, &reportedEPS)
		if err != nil {
			return nil, fmt.Errorf("failed to scan earnings record: %w", err)
		}

		r.Date = eventDate.UTC().Format("2006-01-02T15:04:05")
		if surprise.Valid {
			r.Surprise = &surprise.Float64
		}
		if surprisePct.Valid {
			r.SurprisePct = &surprisePct.Float64
		}
		if epsEstimate.Valid {
			r.EPSEstimate = &epsEstimate.Float64
		}
		if reportedEPS.Valid {
			r.ReportedEPS = &reportedEPS.Float64
		}
		records = append(records, &r)
	}

	return records, nil
}

// DeleteEarningsBySymbol removes all earnings records for a symbol
func (db *DB) DeleteEarningsBySymbol(symbol string) error {
	query := `DELETE FROM earnings_events WHERE symbol = $1`
	_, err := db.conn.Exec(query, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete earnings records for %s: %w", symbol, err)
	}
	return nil
}
