/*
dto.go - Request/response types for the REST surface

PURPOSE:
  The journal and projection types already carry stable JSON tags, so reads
  serve them directly. This file only holds the request bodies that differ
  from the domain shape and the error envelope.
*/
package api

import "github.com/shopspring/decimal"

// SettleDebtRequest records a manual payment against an outstanding debt.
type SettleDebtRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateWoodTypeRequest adds a catalog entry.
type CreateWoodTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
