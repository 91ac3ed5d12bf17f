/*
codec.go - Collection (de)serialization against the KV store

PURPOSE:
  Each entity collection is stored as one JSON array under its own key.
  Absent keys and corrupt payloads both degrade to an empty collection;
  corruption is logged but never fatal. Write errors are surfaced to the
  caller so a failed journal write can abort the whole pass.
*/
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alamer/timber-engine/store"
)

// Storage keys for the five entity collections.
const (
	KeyInvoices  = "invoices"
	KeyCustomers = "customers"
	KeyDebts     = "debts"
	KeyInventory = "inventory"
	KeyWoodTypes = "wood_types"
)

// loadCollection reads and decodes one collection. Absent or unreadable data
// yields an empty slice, never an error.
func loadCollection[T any](ctx context.Context, st store.Store, key string, log zerolog.Logger) []T {
	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage read failed, starting empty")
		return nil
	}
	if !ok || len(raw) == 0 {
		return nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("corrupt stored collection, starting empty")
		return nil
	}
	return items
}

// saveCollection encodes and writes one collection. A nil slice is stored as
// an empty array so a later load round-trips cleanly.
func saveCollection[T any](ctx context.Context, st store.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
