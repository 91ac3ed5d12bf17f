/*
customers.go - Customer projector

PURPOSE:
  Folds the journal into one Customer per unique customer name, in stored
  list order. Output order is first-appearance order, which keeps the fold
  deterministic and idempotent.

LIST-ORDER SEMANTICS:
  Phone is captured from the invoice that first names the customer and never
  updated. LastTransaction is set by every invoice in turn, so the LAST
  invoice in list order wins, not the chronologically latest. This replicates
  the reference behavior; pass date-sorted input (see rebuild.go) to get
  calendar semantics instead.
*/
package projection

import (
	"github.com/shopspring/decimal"

	"github.com/alamer/timber-engine/journal"
)

// Customers folds the full invoice list into the customer view.
func Customers(invoices []journal.Invoice) []Customer {
	byName := make(map[string]*Customer)
	var order []string

	for _, inv := range invoices {
		c, ok := byName[inv.CustomerName]
		if !ok {
			c = &Customer{
				Name:            inv.CustomerName,
				Phone:           inv.Phone,
				TotalPurchases:  decimal.Zero,
				TotalSales:      decimal.Zero,
				LastTransaction: inv.Date,
			}
			byName[inv.CustomerName] = c
			order = append(order, inv.CustomerName)
		}

		if inv.Direction == journal.DirectionIncoming {
			c.TotalPurchases = c.TotalPurchases.Add(inv.GrandTotal)
		} else {
			c.TotalSales = c.TotalSales.Add(inv.GrandTotal)
		}
		c.Balance = c.TotalSales.Sub(c.TotalPurchases)
		c.LastTransaction = inv.Date
	}

	customers := make([]Customer, 0, len(order))
	for _, name := range order {
		customers = append(customers, *byName[name])
	}
	return customers
}
