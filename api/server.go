/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Wires URLs to handlers with chi and sets up the middleware stack:
  request IDs, panic recovery, zerolog request logging and CORS for the
  frontend.

ROUTE GROUPS:
  /api/invoices/*     Journal mutations and reads
  /api/customers      Derived customer view
  /api/debts/*        Derived debt view + manual settlement
  /api/inventory      Derived stock view
  /api/wood-types/*   Reference catalog
  /api/export/*       CSV export
  /api/dashboard      Aggregates

SECURITY NOTE:
  No authentication middleware; the server is meant to sit on a trusted
  local network next to its frontend.
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates the router with all routes configured.
func NewRouter(h *Handler, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.ListInvoices)
			r.Post("/", h.UpsertInvoice)
			r.Get("/{id}", h.GetInvoice)
			r.Put("/{id}", h.UpsertInvoice)
			r.Delete("/{id}", h.DeleteInvoice)
		})

		r.Get("/customers", h.ListCustomers)

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", h.ListDebts)
			r.Post("/{id}/settle", h.SettleDebt)
		})

		r.Get("/inventory", h.ListInventory)

		r.Route("/wood-types", func(r chi.Router) {
			r.Get("/", h.ListWoodTypes)
			r.Post("/", h.CreateWoodType)
			r.Delete("/{id}", h.DeleteWoodType)
		})

		r.Get("/export/invoices", h.ExportInvoices)
		r.Get("/dashboard", h.Dashboard)
	})

	return r
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
