/*
Package projection derives the three read views from the invoice journal.

PURPOSE:
  Customers, debts and inventory are never mutated in place; each is a pure
  fold over the full invoice list. Every journal mutation triggers a full
  rebuild of all three, and the engine publishes the result as one atomic
  snapshot (see the engine package).

KEY CONCEPTS IN THIS FILE (types.go):
  - Customer:      per-customer cumulative purchases/sales and signed balance
  - DebtRecord:    one entry per invoice that is not fully paid
  - InventoryItem: stock level per (wood type, description) key
  - Views:         the committed bundle of all three

DESIGN PRINCIPLES:
  1. Pure folds: a projector takes []Invoice and returns a fresh slice; it
     never reads a previous view or another projector's output
  2. Idempotence: folding the same journal twice yields identical views
  3. Full replacement: a record with no surviving source invoice disappears
     on the next rebuild

SEE ALSO:
  - customers.go, debts.go, inventory.go: the three folds
  - rebuild.go: runs all three over one journal snapshot
*/
package projection

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CUSTOMER - Derived, keyed by customer name
// =============================================================================

// Customer aggregates every invoice naming one customer. The name is the
// natural key; there is no separate customer-creation flow.
type Customer struct {
	Name string `json:"name"`
	// Phone is taken from the first invoice that names the customer and is
	// never updated afterward.
	Phone string `json:"phone,omitempty"`

	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	// Balance = sales - purchases. Negative means the business owes more to
	// this party than it has sold to them.
	Balance decimal.Decimal `json:"balance"`

	LastTransaction string `json:"last_transaction"`
}

// =============================================================================
// DEBT RECORD - Derived, one per incompletely paid invoice
// =============================================================================

// SettlementStatus mirrors the invoice payment status on the debt side.
type SettlementStatus string

const (
	SettlementUnsettled        SettlementStatus = "unsettled"
	SettlementPartiallySettled SettlementStatus = "partially-settled"
	SettlementSettled          SettlementStatus = "settled"
)

// DebtCategory is the inverse of the invoice direction: an outgoing sale the
// customer has not paid is owed BY the customer; an incoming purchase the
// business has not paid is owed TO the supplier.
type DebtCategory string

const (
	DebtOwedByCustomer DebtCategory = "owed-by-customer"
	DebtOwedToSupplier DebtCategory = "owed-to-supplier"
)

// DebtRecord is derived from one invoice whose payment status is not paid.
// Settlement fields are overwritten from the invoice on every rebuild; a
// manual settlement must also update the invoice to survive (engine.SettleDebt
// does both in one step).
type DebtRecord struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	InvoiceNumber string `json:"invoice_number"`

	OriginalAmount decimal.Decimal `json:"original_amount"`
	DueDate        string          `json:"due_date"`

	Status          SettlementStatus `json:"status"`
	AmountSettled   decimal.Decimal  `json:"amount_settled"`
	AmountRemaining decimal.Decimal  `json:"amount_remaining"`

	Category DebtCategory `json:"category"`
}

// =============================================================================
// INVENTORY ITEM - Derived, keyed by (wood type, description)
// =============================================================================

// InventoryItem tracks the stock level for one catalog key. Quantity can go
// negative: oversold stock is a meaningful signal, not an error.
type InventoryItem struct {
	WoodType    string `json:"wood_type"`
	Description string `json:"description"`

	// Quantity in cubic volume units: sum of incoming detail volumes minus
	// sum of outgoing detail volumes across the whole journal.
	Quantity decimal.Decimal `json:"quantity"`

	// Reference prices are overwritten by the mean detail unit price of the
	// last-processed invoice of the matching direction, not averaged across
	// the journal.
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`

	LastUpdated string `json:"last_updated"`
}

// =============================================================================
// VIEWS - The committed bundle
// =============================================================================

// Views is the output of one rebuild pass. The engine publishes a Views value
// atomically; readers never observe one view from a newer pass next to
// another from an older one.
type Views struct {
	Customers []Customer      `json:"customers"`
	Debts     []DebtRecord    `json:"debts"`
	Inventory []InventoryItem `json:"inventory"`
}
