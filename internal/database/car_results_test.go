package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

func TestCARResultRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	eventDate := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)

	t.Run("CreateCARResult creates new record", func(t *testing.T) {
		testDB.TruncateAll(t)

		result := &models.CARResult{
			Ticker:      "AAPL",
			EventDate:   eventDate,
			Window:      5,
			CAR:         0.0231,
			Surprise:    0.0234,
			EPSEstimate: fptr(2.10),
		}
		err := testDB.CreateCARResult(result)
		require.NoError(t, err)
		assert.NotZero(t, result.ID)
	})

	t.Run("CreateCARResult upserts on rerun", func(t *testing.T) {
		testDB.TruncateAll(t)

		first := &models.CARResult{Ticker: "AAPL", EventDate: eventDate, Window: 5, CAR: 0.01, Surprise: 0.02}
		require.NoError(t, testDB.CreateCARResult(first))

		second := &models.CARResult{Ticker: "AAPL", EventDate: eventDate, Window: 5, CAR: 0.03, Surprise: 0.02}
		require.NoError(t, testDB.CreateCARResult(second))

		results, err := testDB.GetCARResultsByTicker("AAPL")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.03, results[0].CAR, 1e-12)
	})

	t.Run("CreateCARResultBatch stores one row per horizon", func(t *testing.T) {
		testDB.TruncateAll(t)

		var batch []*models.CARResult
		for _, w := range []int{1, 2, 5, 10, 30} {
			batch = append(batch, &models.CARResult{
				Ticker:    "NVDA",
				EventDate: eventDate,
				Window:    w,
				CAR:       0.001 * float64(w),
				Surprise:  0.05,
			})
		}
		require.NoError(t, testDB.CreateCARResultBatch(batch))

		results, err := testDB.GetCARResultsByTicker("NVDA")
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})

	t.Run("GetCARResultsByWindow filters across tickers", func(t *testing.T) {
		testDB.TruncateAll(t)

		for _, ticker := range []string{"AAPL", "NVDA", "GOOGL"} {
			for _, w := range []int{5, 10} {
				r := &models.CARResult{Ticker: ticker, EventDate: eventDate, Window: w, CAR: 0.01, Surprise: 0.02}
				require.NoError(t, testDB.CreateCARResult(r))
			}
		}

		results, err := testDB.GetCARResultsByWindow(5)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.Equal(t, 5, r.Window)
		}
	})

	t.Run("optional EPS fields round-trip as nil", func(t *testing.T) {
		testDB.TruncateAll(t)

		r := &models.CARResult{Ticker: "PLTR", EventDate: eventDate, Window: 1, CAR: -0.004, Surprise: -0.012}
		require.NoError(t, testDB.CreateCARResult(r))

		results, err := testDB.GetCARResultsByTicker("PLTR")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Nil(t, results[0].EPSEstimate)
		assert.Nil(t, results[0].ReportedEPS)
	})

	t.Run("DeleteCARResultsByTicker removes only that ticker", func(t *testing.T) {
		testDB.TruncateAll(t)

		for _, ticker := range []string{"AAPL", "NVDA"} {
			r := &models.CARResult{Ticker: ticker, EventDate: eventDate, Window: 5, CAR: 0.01, Surprise: 0.02}
			require.NoError(t, testDB.CreateCARResult(r))
		}

		require.NoError(t, testDB.DeleteCARResultsByTicker("AAPL"))

		aapl, err := testDB.GetCARResultsByTicker("AAPL")
		require.NoError(t, err)
		assert.Empty(t, aapl)

		nvda, err := testDB.GetCARResultsByTicker("NVDA")
		require.NoError(t, err)
		assert.Len(t, nvda, 1)
	})
}
