/*
Package store defines the persistence collaborator for the timber engine.

PURPOSE:
  The engine persists each entity collection (invoices, customers, debts,
  inventory, wood types) as one opaque byte blob under its own key. The
  contract is deliberately tiny: Get returns the bytes or reports absence;
  Set replaces them. How the bytes are produced is the engine's business
  (JSON, see engine/codec.go).

ERROR CONTRACT:
  Get errors and corrupt payloads degrade to an empty collection upstream.
  Set errors must be surfaced: a failed journal write aborts the whole
  mutate-and-project pass.

IMPLEMENTATIONS:
  - Memory (this package): for tests and ephemeral runs
  - store/sqlite: durable single-file store for production
*/
package store

import (
	"context"
	"sync"
)

// Store is the opaque key-value persistence collaborator.
type Store interface {
	// Get returns the stored bytes for key. The boolean reports presence;
	// absent keys are not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the stored bytes for key.
	Set(ctx context.Context, key string, value []byte) error
}

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
