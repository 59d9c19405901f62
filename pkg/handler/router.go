package handler

import (
	"net/http"

	"github.com/yumyai/protprofile/pkg/middle"
	"go.uber.org/zap"
)

func NewRouter(dbctx *DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Pages
	mux.HandleFunc("GET /{$}", dbctx.IndexPage)
	mux.HandleFunc("GET /runs/{run_id}", dbctx.RunPage)
	mux.HandleFunc("GET /runs/{run_id}/csv", dbctx.RunCSV)

	// API routes
	mux.HandleFunc("GET /api/v1/health", HealthCheck)
	mux.HandleFunc("GET /api/v1/runs", dbctx.ListRunsAPI)

	return mux
}

// NewServer wraps the router with request ids and request logging.
func NewServer(dbctx *DBContext, log *zap.Logger) http.Handler {
	return middle.Chain(NewRouter(dbctx),
		middle.RequestIDMiddleware(log),
		middle.LoggingMiddleware(log),
	)
}
