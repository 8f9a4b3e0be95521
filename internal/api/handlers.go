package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/analysis"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/database"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/kafka"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	db       *database.DB
	producer *kafka.Producer
	pipeline *analysis.Pipeline
}

// NewHandler creates a new Handler
func NewHandler(db *database.DB, producer *kafka.Producer, pipeline *analysis.Pipeline) *Handler {
	return &Handler{
		db:       db,
		producer: producer,
		pipeline: pipeline,
	}
}

// GetAllTickers handles GET /tickers
func (h *Handler) GetAllTickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.db.GetAllTrackedTickers()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, tickers)
}

// GetTicker handles GET /tickers/{symbol}
func (h *Handler) GetTicker(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	ticker, err := h.db.GetTrackedTickerBySymbol(symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, ticker)
}

// AddTicker handles POST /tickers
func (h *Handler) AddTicker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol   string `json:"symbol"`
		Priority int    `json:"priority"`
		Notes    string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	ticker := &models.TrackedTicker{
		Symbol:   req.Symbol,
		Enabled:  true,
		Priority: req.Priority,
		Notes:    req.Notes,
	}
	if err := h.db.CreateTrackedTicker(ticker); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	created, err := h.db.GetTrackedTickerBySymbol(req.Symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// RemoveTicker handles DELETE /tickers/{symbol}
func (h *Handler) RemoveTicker(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	if err := h.db.DeleteTrackedTicker(symbol); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetResults handles GET /results with optional ticker and window filters
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	windowParam := r.URL.Query().Get("window")

	var (
		results []*models.CARResult
		err     error
	)
	switch {
	case ticker != "":
		results, err = h.db.GetCARResultsByTicker(ticker)
	case windowParam != "":
		var window int
		window, err = strconv.Atoi(windowParam)
		if err != nil {
			http.Error(w, "window must be an integer", http.StatusBadRequest)
			return
		}
		results, err = h.db.GetCARResultsByWindow(window)
	default:
		results, err = h.db.GetAllCARResults()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

type analyzeResponse struct {
	Ticker  string              `json:"ticker"`
	Results []models.CARResult  `json:"results"`
	Skipped []skippedDiagnostic `json:"skipped,omitempty"`
}

type skippedDiagnostic struct {
	EventDate string `json:"event_date"`
	Window    int    `json:"window,omitempty"`
	Reason    string `json:"reason"`
}

// AnalyzeTicker handles POST /analyze/{symbol}. It recomputes CARs for every
// stored earnings event of the symbol and persists the results.
func (h *Handler) AnalyzeTicker(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	records, err := h.db.GetEarningsBySymbol(symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.Error(w, "no earnings events for symbol", http.StatusNotFound)
		return
	}

	rawEvents := make([]models.RawEarnings, 0, len(records))
	for _, rec := range records {
		rawEvents = append(rawEvents, *rec)
	}

	results, diagnostics := h.pipeline.AnalyzeTicker(r.Context(), symbol, rawEvents)

	if len(results) > 0 {
		stored := make([]*models.CARResult, len(results))
		for i := range results {
			stored[i] = &results[i]
		}
		if err := h.db.CreateCARResultBatch(stored); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if h.producer != nil {
			for _, res := range stored {
				if err := h.producer.PublishCARComputed(r.Context(), res); err != nil {
					log.Printf("Failed to publish CAR event for %s: %v", res.Ticker, err)
				}
			}
		}
	}

	resp := analyzeResponse{Ticker: symbol, Results: results}
	for _, d := range diagnostics {
		resp.Skipped = append(resp.Skipped, skippedDiagnostic{
			EventDate: d.EventDate,
			Window:    d.Window,
			Reason:    d.Err.Error(),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
