/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. zerolog:    Structured request logging
  4. CORS:       Cross-origin requests for the rendering frontend

SECURITY NOTE:
  No authentication middleware. All endpoints are public; put this
  behind a gateway in production.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Entity routes
		r.Route("/entities", func(r chi.Router) {
			r.Get("/", h.ListEntities)
			r.Post("/", h.CreateEntity)
			r.Get("/{id}", h.GetEntity)
			r.Get("/{id}/documents", h.ListDocuments)
			r.Get("/{id}/summary", h.GetSummary)
			r.Get("/{id}/statement", h.GetStatement)
		})

		// Document routes
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", h.CreateDocument)
			r.Get("/{id}", h.GetDocument)
			r.Delete("/{id}", h.VoidDocument)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetRecords)
		})
	})

	// Landing page for anyone poking the server directly
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Billing Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Billing Engine API</h1>
<ul>
<li><a href="/api/entities">/api/entities</a> - List customers and vendors</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}

// requestLogger logs every request through the handler's zerolog logger.
func requestLogger(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			h.Log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
