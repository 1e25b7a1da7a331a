// Package middleware holds the net/http middleware the api stacks,
// chi's stock handlers are re-exported here so callers never import chi
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http middleware shape
type Middleware = func(http.Handler) http.Handler

var (
	// RequestID takes X-Request-Id or mints one
	RequestID Middleware = chimw.RequestID
	// RealIP trusts X-Forwarded-For and X-Real-IP
	RealIP       Middleware = chimw.RealIP
	NoCache      Middleware = chimw.NoCache
	StripSlashes Middleware = chimw.StripSlashes
)

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips or deflates responses at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// CORS allows origins, an empty list allows none
func CORS(origins []string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
