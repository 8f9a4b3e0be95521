package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// WindowRegression summarizes the cross-sectional OLS of CAR against
// earnings surprise for one horizon
type WindowRegression struct {
	Window    int
	Slope     float64
	Intercept float64
	RSquared  float64
	N         int
}

// WriteResultsCSV writes every CAR result to a tabular file, one row per
// (ticker, event, horizon)
func WriteResultsCSV(path string, results []*models.CARResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Ticker", "EventDate", "CAR_Window", "CAR", "Surprise", "EPS_Estimate", "Reported_EPS"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Ticker,
			r.EventDate.Format("2006-01-02"),
			strconv.Itoa(r.Window),
			strconv.FormatFloat(r.CAR, 'f', -1, 64),
			strconv.FormatFloat(r.Surprise, 'f', -1, 64),
			formatOptional(r.EPSEstimate),
			formatOptional(r.ReportedEPS),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteSummaryCSV writes the per-window regression summary
func WriteSummaryCSV(path string, regressions []WindowRegression) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Window", "Coefficient", "Intercept", "R-squared", "N"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, reg := range regressions {
		row := []string{
			strconv.Itoa(reg.Window),
			strconv.FormatFloat(reg.Slope, 'f', -1, 64),
			strconv.FormatFloat(reg.Intercept, 'f', -1, 64),
			strconv.FormatFloat(reg.RSquared, 'f', -1, 64),
			strconv.Itoa(reg.N),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Summarize regresses CAR on surprise for each horizon. Observations outside
// the 5th-95th CAR percentiles are dropped before fitting so a handful of
// extreme events cannot dominate the slope. Horizons with fewer than minObs
// trimmed observations are omitted from the summary.
func Summarize(results []*models.CARResult, windows []int, minObs int) []WindowRegression {
	var summary []WindowRegression
	for _, window := range windows {
		var cars, surprises []float64
		for _, r := range results {
			if r.Window == window {
				cars = append(cars, r.CAR)
				surprises = append(surprises, r.Surprise)
			}
		}
		if len(cars) < minObs {
			continue
		}

		lo, hi := quantile(cars, 0.05), quantile(cars, 0.95)
		var x, y []float64
		for i, car := range cars {
			if car < lo || car > hi {
				continue
			}
			x = append(x, surprises[i])
			y = append(y, car)
		}
		if len(y) < minObs {
			continue
		}

		reg, ok := fitOLS(x, y)
		if !ok {
			continue
		}
		reg.Window = window
		summary = append(summary, reg)
	}
	return summary
}

// quantile returns the q-th quantile of values using linear interpolation
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// fitOLS fits y = intercept + slope*x and reports R². A constant regressor
// makes the fit undefined and is reported as a failure.
func fitOLS(x, y []float64) (WindowRegression, bool) {
	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 {
		return WindowRegression{}, false
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	rsq := 0.0
	if syy > 0 {
		rsq = (sxy * sxy) / (sxx * syy)
	}

	return WindowRegression{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rsq,
		N:         len(x),
	}, true
}
