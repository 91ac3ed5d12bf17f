package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alamer/timber-engine/journal"
)

func TestNextNumber_FormatAndSequence(t *testing.T) {
	var invoices []journal.Invoice

	assert.Equal(t, "IN-2025-0001", journal.NextNumber(invoices, journal.DirectionIncoming, 2025))
	assert.Equal(t, "OUT-2025-0001", journal.NextNumber(invoices, journal.DirectionOutgoing, 2025))

	invoices = append(invoices,
		journal.Invoice{Number: "IN-2025-0001", Direction: journal.DirectionIncoming},
		journal.Invoice{Number: "IN-2025-0002", Direction: journal.DirectionIncoming},
		journal.Invoice{Number: "OUT-2025-0001", Direction: journal.DirectionOutgoing},
	)

	// Sequence counts same-direction invoices only.
	assert.Equal(t, "IN-2025-0003", journal.NextNumber(invoices, journal.DirectionIncoming, 2025))
	assert.Equal(t, "OUT-2025-0002", journal.NextNumber(invoices, journal.DirectionOutgoing, 2025))
}

func TestNextNumber_ZeroPadding(t *testing.T) {
	invoices := make([]journal.Invoice, 0, 99)
	for i := 0; i < 99; i++ {
		invoices = append(invoices, journal.Invoice{Direction: journal.DirectionOutgoing})
	}
	assert.Equal(t, "OUT-2026-0100", journal.NextNumber(invoices, journal.DirectionOutgoing, 2026))
}
