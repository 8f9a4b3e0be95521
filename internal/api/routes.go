package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Ticker universe and analysis routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/tickers", handler.GetAllTickers).Methods("GET")
	api.HandleFunc("/tickers", handler.AddTicker).Methods("POST")
	api.HandleFunc("/tickers/{symbol}", handler.GetTicker).Methods("GET")
	api.HandleFunc("/tickers/{symbol}", handler.RemoveTicker).Methods("DELETE")
	api.HandleFunc("/results", handler.GetResults).Methods("GET")
	api.HandleFunc("/analyze/{symbol}", handler.AnalyzeTicker).Methods("POST")

	return r
}
