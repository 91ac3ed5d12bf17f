/*
debts.go - Debt projector

PURPOSE:
  Emits exactly one DebtRecord per invoice whose payment status is not paid,
  carrying the invoice's current paid/remaining amounts. A debt whose invoice
  has reached paid status, or been deleted, simply disappears from the next
  rebuild.

CATEGORY INVERSION:
  outgoing invoice -> owed-by-customer (they owe us for the sale)
  incoming invoice -> owed-to-supplier (we owe them for the purchase)
*/
package projection

import "github.com/alamer/timber-engine/journal"

// DebtID returns the derived debt identifier for an invoice. It is stable
// across rebuilds so manual settlement can address a record by id.
func DebtID(invoiceID string) string {
	return "debt_" + invoiceID
}

// Debts folds the full invoice list into the outstanding-debt view.
func Debts(invoices []journal.Invoice) []DebtRecord {
	var debts []DebtRecord
	for _, inv := range invoices {
		if inv.PaymentStatus == journal.StatusPaid {
			continue
		}

		status := SettlementUnsettled
		if inv.PaymentStatus == journal.StatusPartiallyPaid {
			status = SettlementPartiallySettled
		}

		category := DebtOwedToSupplier
		if inv.Direction == journal.DirectionOutgoing {
			category = DebtOwedByCustomer
		}

		debts = append(debts, DebtRecord{
			ID:              DebtID(inv.ID),
			CustomerName:    inv.CustomerName,
			InvoiceNumber:   inv.Number,
			OriginalAmount:  inv.GrandTotal,
			DueDate:         inv.Date,
			Status:          status,
			AmountSettled:   inv.AmountPaid,
			AmountRemaining: inv.AmountRemaining,
			Category:        category,
		})
	}
	return debts
}
