/*
Package journal defines the invoice domain model for the timber trade engine.

PURPOSE:
  The Invoice is the unit of truth for the whole system. Customers, debts and
  inventory are never edited directly; they are derived views recomputed from
  the full invoice list (see the projection package).

KEY CONCEPTS IN THIS FILE (types.go):
  - InvoiceDetail: one cut/batch line with dimensions and a unit price
  - InvoiceItem:   one catalog line (wood type + description) owning details
  - Invoice:       a purchase (incoming) or sale (outgoing) document
  - WoodType:      static reference catalog entry for selection pickers

DESIGN PRINCIPLES:
  1. Precision: all quantities and money use decimal.Decimal, never float64
  2. Derived fields are computed by this package, stored alongside the inputs,
     and recomputed on every change (derive.go, pricing.go)
  3. Details are immutable once added; corrections remove and re-add lines

SEE ALSO:
  - pricing.go:  per-detail geometry and price arithmetic
  - derive.go:   item/invoice totals and the payment status machine
  - validate.go: pre-submit validation rules
  - number.go:   invoice number generation
*/
package journal

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// DIRECTION - Purchase vs sale
// =============================================================================

// Direction classifies an invoice as a purchase from a supplier or a sale to
// a customer. It drives the sign of inventory movements and which side of the
// customer balance the grand total lands on.
type Direction string

const (
	// DirectionIncoming is a purchase: goods enter stock.
	DirectionIncoming Direction = "incoming"
	// DirectionOutgoing is a sale: goods leave stock.
	DirectionOutgoing Direction = "outgoing"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

// =============================================================================
// PAYMENT STATUS - Pure function of (grand total, amount paid)
// =============================================================================

type PaymentStatus string

const (
	StatusPaid          PaymentStatus = "paid"
	StatusUnpaid        PaymentStatus = "unpaid"
	StatusPartiallyPaid PaymentStatus = "partially-paid"
)

// =============================================================================
// ADJUSTED PRICE OVERLAY
// =============================================================================

// OverlayMode selects how a manually entered alternate price is interpreted
// on a detail line.
type OverlayMode string

const (
	// OverlayFlatDeduction replaces the formula total with a negotiated flat
	// amount; an adjusted per-unit price is derived from it.
	OverlayFlatDeduction OverlayMode = "flat-deduction"
	// OverlayOwedBalance records a pre-existing owed amount against the line;
	// only the difference against the formula total is derived.
	OverlayOwedBalance OverlayMode = "owed-balance"
)

// =============================================================================
// INVOICE DETAIL - One cut/batch line
// =============================================================================

// InvoiceDetail is a single cut line: linear dimensions, a count multiplier
// and a unit price, plus the derived cubic volume and total amount.
//
// Details are owned exclusively by their parent InvoiceItem and are immutable
// once added: the UI removes and re-adds a line instead of editing in place.
type InvoiceDetail struct {
	ID        string          `json:"id"`
	Width     decimal.Decimal `json:"width"`
	Thickness decimal.Decimal `json:"thickness"`
	Length    decimal.Decimal `json:"length"`
	Count     int64           `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Derived by pricing.Recompute.
	Cubic decimal.Decimal `json:"cubic"`
	Total decimal.Decimal `json:"total"`

	// Optional adjusted-price overlay.
	OverlayMode       OverlayMode      `json:"overlay_mode,omitempty"`
	OverlayAmount     *decimal.Decimal `json:"overlay_amount,omitempty"`
	AdjustedUnitPrice *decimal.Decimal `json:"adjusted_unit_price,omitempty"`
	Difference        *decimal.Decimal `json:"difference,omitempty"`
}

// =============================================================================
// INVOICE ITEM - One catalog line within an invoice
// =============================================================================

// InvoiceItem groups the detail lines for one (wood type, description) pair.
// Detail order is insertion order; it matters for display only.
type InvoiceItem struct {
	ID          string          `json:"id"`
	WoodType    string          `json:"wood_type"`
	Description string          `json:"description"`
	TotalCount  int             `json:"total_count"`
	Details     []InvoiceDetail `json:"details"`
	ItemTotal   decimal.Decimal `json:"item_total"`
}

// =============================================================================
// INVOICE - The unit of truth
// =============================================================================

// Invoice is one trading document. The journal owns it; the engine computes
// its derived fields (expense total, grand total, remaining, payment status)
// before storage and otherwise only reads it.
type Invoice struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Date      string `json:"date"` // ISO date, e.g. 2025-03-10
	TimeOfDay string `json:"time"` // wall clock, e.g. 14:05

	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone,omitempty"`
	Direction    Direction `json:"direction"`

	Items []InvoiceItem `json:"items"`

	TransportExpense decimal.Decimal `json:"transport_expense"`
	UnloadingExpense decimal.Decimal `json:"unloading_expense"`

	// Derived fields, recomputed on every change to items, expenses or paid.
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`

	Notes string `json:"notes,omitempty"`
}

// =============================================================================
// WOOD TYPE - Static reference catalog
// =============================================================================

// WoodType is a catalog entry used to populate selection pickers. It plays no
// part in the derivation logic.
type WoodType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultWoodTypes returns the seeded catalog used on first start.
func DefaultWoodTypes() []WoodType {
	return []WoodType{
		{ID: "1", Name: "Beech", Description: "Natural beech wood"},
		{ID: "2", Name: "Pine", Description: "Imported pine wood"},
		{ID: "3", Name: "Musky", Description: "Russian musky whitewood"},
		{ID: "4", Name: "Oak", Description: "European oak wood"},
		{ID: "5", Name: "Swedish", Description: "Imported Swedish redwood"},
	}
}
