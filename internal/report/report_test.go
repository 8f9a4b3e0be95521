package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// linearResults builds n results for one window with CAR an exact linear
// function of surprise
func linearResults(n, window int, slope, intercept float64) []*models.CARResult {
	results := make([]*models.CARResult, n)
	for i := 0; i < n; i++ {
		surprise := float64(i) * 0.01
		results[i] = &models.CARResult{
			Ticker:    "AAPL",
			EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Window:    window,
			Surprise:  surprise,
			CAR:       intercept + slope*surprise,
		}
	}
	return results
}

func TestSummarize(t *testing.T) {
	t.Run("recovers the slope and intercept of linear data", func(t *testing.T) {
		results := linearResults(30, 5, 0.5, 0.01)

		summary := Summarize(results, []int{5}, 10)
		require.Len(t, summary, 1)

		reg := summary[0]
		assert.Equal(t, 5, reg.Window)
		assert.InDelta(t, 0.5, reg.Slope, 1e-9)
		assert.InDelta(t, 0.01, reg.Intercept, 1e-9)
		assert.InDelta(t, 1.0, reg.RSquared, 1e-9)
	})

	t.Run("extreme CARs are trimmed before fitting", func(t *testing.T) {
		results := linearResults(20, 5, 0.5, 0.01)
		results = append(results, &models.CARResult{
			Ticker:    "AAPL",
			EventDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Window:    5,
			Surprise:  0.5,
			CAR:       10.0, // far outside the 95th percentile
		})

		summary := Summarize(results, []int{5}, 10)
		require.Len(t, summary, 1)

		reg := summary[0]
		assert.Less(t, reg.N, 21)
		assert.InDelta(t, 0.5, reg.Slope, 1e-9)
	})

	t.Run("windows with too few observations are omitted", func(t *testing.T) {
		results := linearResults(9, 5, 0.5, 0.01)
		summary := Summarize(results, []int{5}, 10)
		assert.Empty(t, summary)
	})

	t.Run("constant surprise yields no regression", func(t *testing.T) {
		results := linearResults(30, 5, 0.5, 0.01)
		for _, r := range results {
			r.Surprise = 0.02
		}
		summary := Summarize(results, []int{5}, 10)
		assert.Empty(t, summary)
	})

	t.Run("each window is summarized independently", func(t *testing.T) {
		results := append(linearResults(30, 1, 0.3, 0.0), linearResults(30, 5, 0.5, 0.01)...)

		summary := Summarize(results, []int{1, 5, 30}, 10)
		require.Len(t, summary, 2)
		assert.Equal(t, 1, summary[0].Window)
		assert.InDelta(t, 0.3, summary[0].Slope, 1e-9)
		assert.Equal(t, 5, summary[1].Window)
		assert.InDelta(t, 0.5, summary[1].Slope, 1e-9)
	})
}

func TestWriteResultsCSV(t *testing.T) {
	eps := 1.52
	results := []*models.CARResult{
		{
			Ticker:      "AAPL",
			EventDate:   time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
			Window:      5,
			CAR:         0.0234,
			Surprise:    0.015,
			EPSEstimate: &eps,
		},
	}

	path := filepath.Join(t.TempDir(), "car_results.csv")
	require.NoError(t, WriteResultsCSV(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Ticker", "EventDate", "CAR_Window", "CAR", "Surprise", "EPS_Estimate", "Reported_EPS"}, rows[0])
	assert.Equal(t, "AAPL", rows[1][0])
	assert.Equal(t, "2024-01-25", rows[1][1])
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "1.52", rows[1][5])
	assert.Equal(t, "", rows[1][6]) // missing reported EPS stays blank
}

func TestWriteSummaryCSV(t *testing.T) {
	summary := []WindowRegression{
		{Window: 5, Slope: 0.5, Intercept: 0.01, RSquared: 0.82, N: 42},
	}

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, WriteSummaryCSV(path, summary))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Window", "Coefficient", "Intercept", "R-squared", "N"}, rows[0])
	assert.Equal(t, []string{"5", "0.5", "0.01", "0.82", "42"}, rows[1])
}
