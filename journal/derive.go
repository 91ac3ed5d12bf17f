/*
derive.go - Item/invoice totals and the payment status machine

PURPOSE:
  Rolls detail arithmetic up to items and invoices. The engine runs Derive on
  every invoice before it reaches the journal, so stored derived fields always
  agree with their inputs regardless of what the calling layer sent.

PAYMENT STATUS MACHINE:
  remaining <= 0                -> paid
  remaining > 0 and paid > 0    -> partially-paid
  otherwise                     -> unpaid

  Status is a pure function of (grand total, amount paid). Overpayment counts
  as paid; there is no separate overpaid state.
*/
package journal

import "github.com/shopspring/decimal"

// PaymentStatusFor computes the payment status from a grand total and the
// amount paid so far.
func PaymentStatusFor(grandTotal, amountPaid decimal.Decimal) PaymentStatus {
	remaining := grandTotal.Sub(amountPaid)
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return StatusPaid
	case amountPaid.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

// DeriveItem recomputes every detail of an item and then the item rollups:
// item total = sum of detail totals, total count = number of details.
func DeriveItem(item InvoiceItem) InvoiceItem {
	total := decimal.Zero
	details := make([]InvoiceDetail, len(item.Details))
	for i, d := range item.Details {
		details[i] = Recompute(d)
		total = total.Add(details[i].Total)
	}
	item.Details = details
	item.ItemTotal = total
	item.TotalCount = len(details)
	return item
}

// Derive recomputes all derived fields of an invoice bottom-up: details,
// item totals, expense total, grand total, remaining and payment status.
func Derive(inv Invoice) Invoice {
	itemsTotal := decimal.Zero
	items := make([]InvoiceItem, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = DeriveItem(item)
		itemsTotal = itemsTotal.Add(items[i].ItemTotal)
	}
	inv.Items = items

	inv.TotalExpenses = inv.TransportExpense.Add(inv.UnloadingExpense)
	inv.GrandTotal = itemsTotal.Add(inv.TotalExpenses)
	inv.AmountRemaining = inv.GrandTotal.Sub(inv.AmountPaid)
	inv.PaymentStatus = PaymentStatusFor(inv.GrandTotal, inv.AmountPaid)
	return inv
}
