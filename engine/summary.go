/*
summary.go - Dashboard aggregates over the committed state

PURPOSE:
  Read-only rollups for the dashboard surface: traded totals per direction,
  outstanding debt split by category, and stock coverage. Computed on demand
  from the journal copy and the committed views; nothing here feeds back into
  the engine.
*/
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/alamer/timber-engine/journal"
	"github.com/alamer/timber-engine/projection"
)

// Summary is the dashboard rollup.
type Summary struct {
	InvoiceCount  int `json:"invoice_count"`
	CustomerCount int `json:"customer_count"`

	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalSales     decimal.Decimal `json:"total_sales"`

	DebtOwedByCustomers decimal.Decimal `json:"debt_owed_by_customers"`
	DebtOwedToSuppliers decimal.Decimal `json:"debt_owed_to_suppliers"`

	InventoryItemCount int `json:"inventory_item_count"`
	OversoldItemCount  int `json:"oversold_item_count"`
}

// Summarize computes the dashboard rollup from the current committed state.
func (e *Engine) Summarize() Summary {
	views := e.Views()
	invoices := e.Invoices()

	s := Summary{
		InvoiceCount:       len(invoices),
		CustomerCount:      len(views.Customers),
		InventoryItemCount: len(views.Inventory),
		TotalPurchases:     decimal.Zero,
		TotalSales:         decimal.Zero,
	}

	for _, inv := range invoices {
		if inv.Direction == journal.DirectionIncoming {
			s.TotalPurchases = s.TotalPurchases.Add(inv.GrandTotal)
		} else {
			s.TotalSales = s.TotalSales.Add(inv.GrandTotal)
		}
	}

	s.DebtOwedByCustomers = decimal.Zero
	s.DebtOwedToSuppliers = decimal.Zero
	for _, d := range views.Debts {
		if d.Category == projection.DebtOwedByCustomer {
			s.DebtOwedByCustomers = s.DebtOwedByCustomers.Add(d.AmountRemaining)
		} else {
			s.DebtOwedToSuppliers = s.DebtOwedToSuppliers.Add(d.AmountRemaining)
		}
	}

	for _, item := range views.Inventory {
		if item.Quantity.IsNegative() {
			s.OversoldItemCount++
		}
	}
	return s
}
