/*
inventory.go - Inventory projector

PURPOSE:
  Folds the journal into one InventoryItem per (wood type, description) key.
  Incoming invoices add each item's summed detail cubic volume; outgoing ones
  subtract it. Quantity has no floor: going negative flags oversold stock.

REFERENCE PRICES:
  The purchase price (incoming) or sale price (outgoing) is overwritten with
  the plain mean of the unit prices across the invoice item's details. No
  volume weighting, no blending with earlier invoices for the same key: the
  last-processed matching invoice wins. This replicates the reference
  behavior exactly (see DESIGN.md for why it is kept).
*/
package projection

import (
	"github.com/shopspring/decimal"

	"github.com/alamer/timber-engine/journal"
)

type inventoryKey struct {
	woodType    string
	description string
}

// Inventory folds the full invoice list into the stock view.
func Inventory(invoices []journal.Invoice) []InventoryItem {
	byKey := make(map[inventoryKey]*InventoryItem)
	var order []inventoryKey

	for _, inv := range invoices {
		for _, item := range inv.Items {
			k := inventoryKey{woodType: item.WoodType, description: item.Description}
			entry, ok := byKey[k]
			if !ok {
				entry = &InventoryItem{
					WoodType:      item.WoodType,
					Description:   item.Description,
					Quantity:      decimal.Zero,
					PurchasePrice: decimal.Zero,
					SalePrice:     decimal.Zero,
				}
				byKey[k] = entry
				order = append(order, k)
			}

			volume := decimal.Zero
			priceSum := decimal.Zero
			for _, d := range item.Details {
				volume = volume.Add(d.Cubic)
				priceSum = priceSum.Add(d.UnitPrice)
			}
			meanPrice := decimal.Zero
			if n := len(item.Details); n > 0 {
				meanPrice = priceSum.Div(decimal.NewFromInt(int64(n)))
			}

			if inv.Direction == journal.DirectionIncoming {
				entry.Quantity = entry.Quantity.Add(volume)
				entry.PurchasePrice = meanPrice
			} else {
				entry.Quantity = entry.Quantity.Sub(volume)
				entry.SalePrice = meanPrice
			}
			entry.LastUpdated = inv.Date
		}
	}

	inventory := make([]InventoryItem, 0, len(order))
	for _, k := range order {
		inventory = append(inventory, *byKey[k])
	}
	return inventory
}
