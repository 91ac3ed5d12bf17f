/*
handlers.go - HTTP handlers for the timber trade engine

PURPOSE:
  Thin HTTP layer over the engine: decode, delegate, encode. The engine owns
  validation, derivation and the mutate-then-project sequence; handlers only
  translate its errors to status codes.

ERROR MAPPING:
  validation failure -> 400
  unknown id         -> 404
  anything else      -> 500
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/alamer/timber-engine/engine"
	"github.com/alamer/timber-engine/export"
	"github.com/alamer/timber-engine/journal"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Engine *engine.Engine
	Log    zerolog.Logger
}

// NewHandler creates a handler around the engine.
func NewHandler(eng *engine.Engine, log zerolog.Logger) *Handler {
	return &Handler{Engine: eng, Log: log}
}

// =============================================================================
// INVOICES
// =============================================================================

// ListInvoices returns the full journal in stored order.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Invoices())
}

// GetInvoice returns one invoice by id.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Engine.Invoice(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// UpsertInvoice inserts or replaces an invoice and triggers the rebuild.
// POST /api/invoices creates; PUT /api/invoices/{id} replaces in place.
func (h *Handler) UpsertInvoice(w http.ResponseWriter, r *http.Request) {
	var inv journal.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid invoice payload"})
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		inv.ID = id
	}

	stored, err := h.Engine.UpsertInvoice(r.Context(), inv)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// DeleteInvoice removes an invoice and triggers the rebuild.
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// ListCustomers returns the committed customer view.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.Engine.Views().Customers))
}

// ListDebts returns the committed debt view.
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.Engine.Views().Debts))
}

// ListInventory returns the committed inventory view.
func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.Engine.Views().Inventory))
}

// SettleDebt records a manual payment against a debt. The engine applies it
// to the underlying invoice in the same step.
func (h *Handler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	var req SettleDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid settlement payload"})
		return
	}

	record, err := h.Engine.SettleDebt(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// =============================================================================
// WOOD TYPE CATALOG
// =============================================================================

func (h *Handler) ListWoodTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.WoodTypes())
}

func (h *Handler) CreateWoodType(w http.ResponseWriter, r *http.Request) {
	var req CreateWoodTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid wood type payload"})
		return
	}

	wt, err := h.Engine.AddWoodType(r.Context(), journal.WoodType{Name: req.Name, Description: req.Description})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wt)
}

func (h *Handler) DeleteWoodType(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteWoodType(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EXPORT + DASHBOARD
// =============================================================================

// ExportInvoices streams the journal as CSV. Optional ?direction=incoming or
// ?direction=outgoing filters the export.
func (h *Handler) ExportInvoices(w http.ResponseWriter, r *http.Request) {
	direction := journal.Direction(r.URL.Query().Get("direction"))
	if direction != "" && !direction.Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "direction must be incoming or outgoing"})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(direction, time.Now()))
	if err := export.Invoices(w, h.Engine.Invoices(), direction); err != nil {
		h.Log.Error().Err(err).Msg("csv export failed")
	}
}

// Dashboard returns the aggregate rollup.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Summarize())
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case journal.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, journal.ErrInvoiceNotFound),
		errors.Is(err, engine.ErrDebtNotFound),
		errors.Is(err, engine.ErrWoodTypeNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		h.Log.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// orEmpty keeps empty views rendering as [] instead of null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
