/*
rebuild.go - Recomputation over one journal snapshot

PURPOSE:
  Runs the three projectors, in order, over the same invoice list and returns
  the bundle. The projectors are independent of each other; the order is kept
  stable anyway so rebuilds are reproducible. Committing the bundle atomically
  is the engine's job, not this package's.

FOLD ORDER:
  By default invoices are folded in stored list order, which makes the
  customer last-transaction date and the inventory reference prices reflect
  list position rather than calendar time. Options.FoldByDate sorts a copy of
  the journal by (date, time) first, as the alternative business rule. The
  quantity and balance sums are order-independent either way.
*/
package projection

import (
	"sort"

	"github.com/alamer/timber-engine/journal"
)

// Options controls how a rebuild folds the journal.
type Options struct {
	// FoldByDate stable-sorts invoices by (date, time of day) before folding.
	// Off by default to replicate the reference list-order behavior.
	FoldByDate bool
}

// Rebuild folds one journal snapshot into all three views.
func Rebuild(invoices []journal.Invoice, opts Options) Views {
	if opts.FoldByDate {
		sorted := make([]journal.Invoice, len(invoices))
		copy(sorted, invoices)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Date != sorted[j].Date {
				return sorted[i].Date < sorted[j].Date
			}
			return sorted[i].TimeOfDay < sorted[j].TimeOfDay
		})
		invoices = sorted
	}

	return Views{
		Customers: Customers(invoices),
		Debts:     Debts(invoices),
		Inventory: Inventory(invoices),
	}
}
