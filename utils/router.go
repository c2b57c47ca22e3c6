package utils

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"streamdash/internal/metrics"
)

// NewRouter constructs the base mux router with CORS, request logging, and
// metrics middleware plus the common routes.
func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(requestLogMiddleware)
	r.Use(mux.MiddlewareFunc(metrics.Middleware))

	r.MethodNotAllowedHandler = methodNotAllowedHandler()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

// requestLogMiddleware tags each request with a short id so concurrent
// request logs can be correlated.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()[:8]
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[http] %s %s %s took=%s", reqID, r.Method, r.URL.Path, time.Since(start))
	})
}
