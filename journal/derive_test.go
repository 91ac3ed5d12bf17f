package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamer/timber-engine/journal"
)

func testInvoice() journal.Invoice {
	return journal.Invoice{
		ID:           "inv-1",
		Number:       "IN-2025-0001",
		Date:         "2025-03-10",
		CustomerName: "Acme",
		Direction:    journal.DirectionIncoming,
		Items: []journal.InvoiceItem{
			{
				ID:          "item-1",
				WoodType:    "Beech",
				Description: "Natural beech wood",
				Details: []journal.InvoiceDetail{
					detail(2, 3, 4, 1, 10), // total 240
					detail(1, 1, 10, 1, 6), // total 60
				},
			},
		},
		TransportExpense: dec(30),
		UnloadingExpense: dec(20),
	}
}

// =============================================================================
// PAYMENT STATUS MACHINE
// =============================================================================

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		name       string
		grandTotal float64
		paid       float64
		want       journal.PaymentStatus
	}{
		{"nothing paid", 200, 0, journal.StatusUnpaid},
		{"partially paid", 200, 50, journal.StatusPartiallyPaid},
		{"fully paid", 200, 200, journal.StatusPaid},
		{"overpaid counts as paid", 200, 250, journal.StatusPaid},
		{"zero total is paid", 0, 0, journal.StatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := journal.PaymentStatusFor(dec(tc.grandTotal), dec(tc.paid))
			assert.Equal(t, tc.want, got)
		})
	}
}

// =============================================================================
// DERIVATION ROLLUPS
// =============================================================================

func TestDerive_ItemAndInvoiceTotals(t *testing.T) {
	inv := journal.Derive(testInvoice())

	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.Equal(t, "300", item.ItemTotal.String())
	assert.Equal(t, 2, item.TotalCount)

	assert.Equal(t, "50", inv.TotalExpenses.String())
	assert.Equal(t, "350", inv.GrandTotal.String())
	assert.Equal(t, "350", inv.AmountRemaining.String())
	assert.Equal(t, journal.StatusUnpaid, inv.PaymentStatus)
}

func TestDerive_RecomputesAfterPaidChange(t *testing.T) {
	inv := journal.Derive(testInvoice())
	inv.AmountPaid = dec(100)

	inv = journal.Derive(inv)
	assert.Equal(t, "250", inv.AmountRemaining.String())
	assert.Equal(t, journal.StatusPartiallyPaid, inv.PaymentStatus)

	inv.AmountPaid = dec(350)
	inv = journal.Derive(inv)
	assert.Equal(t, journal.StatusPaid, inv.PaymentStatus)
	assert.True(t, inv.AmountRemaining.IsZero())
}

func TestDerive_DetailDerivedFieldsCannotDrift(t *testing.T) {
	// Whatever derived values the caller sent are overwritten from inputs.
	inv := testInvoice()
	inv.Items[0].Details[0].Total = dec(9999)
	inv.Items[0].Details[0].Cubic = dec(9999)

	inv = journal.Derive(inv)
	assert.Equal(t, "240", inv.Items[0].Details[0].Total.String())
	assert.Equal(t, "24", inv.Items[0].Details[0].Cubic.String())
}
