/*
number.go - Invoice number generation

PURPOSE:
  Numbers follow {IN|OUT}-{year}-{seq:04d}, where seq is the count of
  already-journaled invoices of the same direction plus one. A number is
  assigned once, at creation time; edits never regenerate it.

  This scheme is deliberately kept as-is from the reference behavior: it is
  not collision-proof under delete-then-create (deleting an old invoice frees
  its sequence slot for reuse). The engine serializes creation, so concurrent
  creation cannot collide.
*/
package journal

import "fmt"

// NextNumber generates the number for a new invoice of the given direction,
// counting existing same-direction invoices in the journal.
func NextNumber(invoices []Invoice, direction Direction, year int) string {
	count := 0
	for _, inv := range invoices {
		if inv.Direction == direction {
			count++
		}
	}

	prefix := "OUT"
	if direction == DirectionIncoming {
		prefix = "IN"
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, count+1)
}
