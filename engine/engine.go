/*
Package engine owns the invoice journal and the committed derived views.

PURPOSE:
  This is the single-writer core of the system. Every journal mutation runs
  as one critical section: validate, derive, persist the journal, rebuild the
  three projections over the post-mutation list, persist them, and only then
  publish the new view bundle. Readers load the committed bundle through an
  atomic pointer and never block the writer or observe a torn commit.

LIFECYCLE:
  New() loads the five collections from the KV store (absent or corrupt data
  degrades to empty), seeds the wood type catalog on first start, and adopts
  the previously committed views as-is. Views are replaced wholesale on each
  successful mutation; nothing else writes them.

FAILURE SEMANTICS:
  - Validation failure: nothing changes, error surfaced.
  - Journal write failure: the mutation is aborted before any projection
    runs; in-memory journal and views keep their previous state.
  - View write failure: the journal write already succeeded, but the view
    bundle is not published; the previous committed views stay authoritative
    and the error is surfaced. No automatic retry.

SEE ALSO:
  - journal: domain model, validation, derivation
  - projection: the three pure folds
  - store: the KV persistence collaborator
*/
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alamer/timber-engine/journal"
	"github.com/alamer/timber-engine/projection"
	"github.com/alamer/timber-engine/store"
)

// Options configures an Engine.
type Options struct {
	// FoldByDate switches the projectors to date-sorted folding instead of
	// the default stored-list-order folding.
	FoldByDate bool

	// Now supplies the clock for invoice numbering and date defaults.
	// Defaults to time.Now.
	Now func() time.Time
}

// Engine is the stateful core: journal, catalog and committed views.
type Engine struct {
	store store.Store
	log   zerolog.Logger
	opts  Options

	// mu serializes the whole mutate-then-project sequence. Two concurrent
	// upserts must never fold the journal at different times and clobber
	// each other's committed views.
	mu       sync.Mutex
	invoices []journal.Invoice
	woods    []journal.WoodType

	views atomic.Pointer[projection.Views]
}

// New loads persisted state and returns a ready engine.
func New(ctx context.Context, st store.Store, log zerolog.Logger, opts Options) (*Engine, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{store: st, log: log, opts: opts}
	e.invoices = loadCollection[journal.Invoice](ctx, st, KeyInvoices, log)
	e.woods = loadCollection[journal.WoodType](ctx, st, KeyWoodTypes, log)

	views := projection.Views{
		Customers: loadCollection[projection.Customer](ctx, st, KeyCustomers, log),
		Debts:     loadCollection[projection.DebtRecord](ctx, st, KeyDebts, log),
		Inventory: loadCollection[projection.InventoryItem](ctx, st, KeyInventory, log),
	}
	e.views.Store(&views)

	if len(e.woods) == 0 {
		e.woods = journal.DefaultWoodTypes()
		if err := saveCollection(ctx, st, KeyWoodTypes, e.woods); err != nil {
			log.Warn().Err(err).Msg("could not persist seeded wood types")
		}
	}

	log.Info().
		Int("invoices", len(e.invoices)).
		Int("customers", len(views.Customers)).
		Int("debts", len(views.Debts)).
		Int("inventory", len(views.Inventory)).
		Msg("engine loaded")
	return e, nil
}

// =============================================================================
// READS
// =============================================================================

// Invoices returns a copy of the journal in stored order.
func (e *Engine) Invoices() []journal.Invoice {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]journal.Invoice, len(e.invoices))
	copy(out, e.invoices)
	return out
}

// Invoice returns one invoice by id.
func (e *Engine) Invoice(id string) (journal.Invoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, inv := range e.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return journal.Invoice{}, journal.ErrInvoiceNotFound
}

// Views returns the committed view bundle. Lock-free: the bundle is replaced
// atomically as a whole and never mutated after publication.
func (e *Engine) Views() projection.Views {
	return *e.views.Load()
}

// WoodTypes returns a copy of the reference catalog.
func (e *Engine) WoodTypes() []journal.WoodType {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]journal.WoodType, len(e.woods))
	copy(out, e.woods)
	return out
}

// =============================================================================
// MUTATIONS - each one is a full mutate-and-project critical section
// =============================================================================

// UpsertInvoice validates, derives and stores an invoice, then rebuilds and
// commits the three views. An unseen id appends; a known id replaces in
// place, preserving journal order. The invoice number is assigned only when
// the incoming record has none; edits never regenerate it.
func (e *Engine) UpsertInvoice(ctx context.Context, inv journal.Invoice) (journal.Invoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := journal.Validate(inv); err != nil {
		return journal.Invoice{}, err
	}

	now := e.opts.Now()
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Number == "" {
		inv.Number = journal.NextNumber(e.invoices, inv.Direction, now.Year())
	}
	if inv.Date == "" {
		inv.Date = now.Format("2006-01-02")
	}
	if inv.TimeOfDay == "" {
		inv.TimeOfDay = now.Format("15:04")
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
		for j := range inv.Items[i].Details {
			if inv.Items[i].Details[j].ID == "" {
				inv.Items[i].Details[j].ID = uuid.NewString()
			}
		}
	}
	inv = journal.Derive(inv)

	next := make([]journal.Invoice, len(e.invoices))
	copy(next, e.invoices)
	replaced := false
	for i := range next {
		if next[i].ID == inv.ID {
			next[i] = inv
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, inv)
	}

	if err := e.commit(ctx, next); err != nil {
		return journal.Invoice{}, err
	}
	e.log.Info().Str("invoice", inv.Number).Str("direction", string(inv.Direction)).Msg("invoice stored")
	return inv, nil
}

// DeleteInvoice removes an invoice and rebuilds the views. Derived records
// whose only source was this invoice disappear with it.
func (e *Engine) DeleteInvoice(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.invoices {
		if e.invoices[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return journal.ErrInvoiceNotFound
	}

	next := make([]journal.Invoice, 0, len(e.invoices)-1)
	next = append(next, e.invoices[:idx]...)
	next = append(next, e.invoices[idx+1:]...)

	if err := e.commit(ctx, next); err != nil {
		return err
	}
	e.log.Info().Str("invoice_id", id).Msg("invoice deleted")
	return nil
}

// SettleDebt records a payment against an outstanding debt. The payment is
// applied to the underlying invoice's paid amount in the same critical
// section, so the settlement survives every subsequent rebuild instead of
// being overwritten by it.
func (e *Engine) SettleDebt(ctx context.Context, debtID string, amount decimal.Decimal) (projection.DebtRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !amount.IsPositive() {
		return projection.DebtRecord{}, &journal.ValidationError{Field: "amount", Message: "settlement amount must be positive"}
	}

	idx := -1
	for i := range e.invoices {
		if projection.DebtID(e.invoices[i].ID) == debtID && e.invoices[i].PaymentStatus != journal.StatusPaid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return projection.DebtRecord{}, ErrDebtNotFound
	}

	next := make([]journal.Invoice, len(e.invoices))
	copy(next, e.invoices)
	inv := next[idx]
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv = journal.Derive(inv)
	next[idx] = inv

	if err := e.commit(ctx, next); err != nil {
		return projection.DebtRecord{}, err
	}
	e.log.Info().Str("debt", debtID).Str("amount", amount.String()).Msg("debt settled")

	// Report the post-settlement state even when full payment removed the
	// record from the committed debt view.
	for _, d := range e.views.Load().Debts {
		if d.ID == debtID {
			return d, nil
		}
	}
	return projection.DebtRecord{
		ID:              debtID,
		CustomerName:    inv.CustomerName,
		InvoiceNumber:   inv.Number,
		OriginalAmount:  inv.GrandTotal,
		DueDate:         inv.Date,
		Status:          projection.SettlementSettled,
		AmountSettled:   inv.AmountPaid,
		AmountRemaining: inv.AmountRemaining,
		Category:        debtCategoryFor(inv.Direction),
	}, nil
}

// =============================================================================
// WOOD TYPE CATALOG
// =============================================================================

// AddWoodType appends a catalog entry.
func (e *Engine) AddWoodType(ctx context.Context, wt journal.WoodType) (journal.WoodType, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if wt.Name == "" {
		return journal.WoodType{}, &journal.ValidationError{Field: "name", Message: "wood type name is required"}
	}
	if wt.ID == "" {
		wt.ID = uuid.NewString()
	}

	next := make([]journal.WoodType, len(e.woods), len(e.woods)+1)
	copy(next, e.woods)
	next = append(next, wt)
	if err := saveCollection(ctx, e.store, KeyWoodTypes, next); err != nil {
		return journal.WoodType{}, err
	}
	e.woods = next
	return wt, nil
}

// DeleteWoodType removes a catalog entry by id.
func (e *Engine) DeleteWoodType(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.woods {
		if e.woods[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrWoodTypeNotFound
	}

	next := make([]journal.WoodType, 0, len(e.woods)-1)
	next = append(next, e.woods[:idx]...)
	next = append(next, e.woods[idx+1:]...)
	if err := saveCollection(ctx, e.store, KeyWoodTypes, next); err != nil {
		return err
	}
	e.woods = next
	return nil
}

// =============================================================================
// COMMIT - persist journal, project, persist views, publish
// =============================================================================

// commit runs the write half of a mutation. Caller holds e.mu.
//
// Order matters: the journal is persisted first, and a journal write failure
// aborts before any projector runs. The three views are persisted before the
// bundle is published so readers of the store and readers of the process
// agree after a crash.
func (e *Engine) commit(ctx context.Context, next []journal.Invoice) error {
	if err := saveCollection(ctx, e.store, KeyInvoices, next); err != nil {
		e.log.Error().Err(err).Msg("journal write failed, mutation aborted")
		return err
	}
	e.invoices = next

	views := projection.Rebuild(next, projection.Options{FoldByDate: e.opts.FoldByDate})

	if err := saveCollection(ctx, e.store, KeyCustomers, views.Customers); err != nil {
		e.log.Error().Err(err).Msg("customer view write failed, previous views kept")
		return err
	}
	if err := saveCollection(ctx, e.store, KeyDebts, views.Debts); err != nil {
		e.log.Error().Err(err).Msg("debt view write failed, previous views kept")
		return err
	}
	if err := saveCollection(ctx, e.store, KeyInventory, views.Inventory); err != nil {
		e.log.Error().Err(err).Msg("inventory view write failed, previous views kept")
		return err
	}

	e.views.Store(&views)
	return nil
}

func debtCategoryFor(d journal.Direction) projection.DebtCategory {
	if d == journal.DirectionOutgoing {
		return projection.DebtOwedByCustomer
	}
	return projection.DebtOwedToSupplier
}
