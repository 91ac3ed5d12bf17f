/*
engine_test.go - Mutate-and-project sequence tests

Covers the engine-level guarantees: every journal mutation triggers a full
rebuild, commits are all-or-nothing, storage failures abort without advancing
state, corrupt persisted data degrades to empty, and manual debt settlement
survives the next rebuild because it goes through the invoice.
*/
package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alamer/timber-engine/engine"
	"github.com/alamer/timber-engine/journal"
	"github.com/alamer/timber-engine/projection"
	"github.com/alamer/timber-engine/store"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func fixedClock() time.Time {
	return time.Date(2025, time.March, 10, 14, 5, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, st store.Store) *engine.Engine {
	t.Helper()
	eng, err := engine.New(context.Background(), st, zerolog.Nop(), engine.Options{Now: fixedClock})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return eng
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func draftInvoice(customer string, dir journal.Direction, paid float64) journal.Invoice {
	return journal.Invoice{
		CustomerName: customer,
		Direction:    dir,
		AmountPaid:   dec(paid),
		Items: []journal.InvoiceItem{{
			WoodType:    "Beech",
			Description: "Natural beech wood",
			Details: []journal.InvoiceDetail{{
				Width:     dec(2),
				Thickness: dec(3),
				Length:    dec(4),
				Count:     1,
				UnitPrice: dec(10),
			}},
		}},
	}
}

// failingStore wraps a real store and fails Set for chosen keys.
type failingStore struct {
	store.Store
	failKeys map[string]bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failKeys[key] {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, key, value)
}

// =============================================================================
// MUTATE-AND-PROJECT
// =============================================================================

func TestUpsertInvoice_AssignsIdentityAndDerives(t *testing.T) {
	// GIVEN: a fresh engine and a draft invoice without id/number/date
	eng := newTestEngine(t, store.NewMemory())

	// WHEN: upserting
	stored, err := eng.UpsertInvoice(context.Background(), draftInvoice("Acme", journal.DirectionIncoming, 0))
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// THEN: identity and derived fields are filled
	if stored.ID == "" {
		t.Error("expected generated id")
	}
	if stored.Number != "IN-2025-0001" {
		t.Errorf("expected IN-2025-0001, got %s", stored.Number)
	}
	if stored.Date != "2025-03-10" {
		t.Errorf("expected clock date, got %s", stored.Date)
	}
	if stored.GrandTotal.String() != "240" {
		t.Errorf("expected grand total 240, got %v", stored.GrandTotal)
	}
	if stored.PaymentStatus != journal.StatusUnpaid {
		t.Errorf("expected unpaid, got %v", stored.PaymentStatus)
	}
}

func TestUpsertInvoice_TriggersRebuildSynchronously(t *testing.T) {
	// GIVEN: a fresh engine
	eng := newTestEngine(t, store.NewMemory())

	// WHEN: the upsert returns
	_, err := eng.UpsertInvoice(context.Background(), draftInvoice("Acme", journal.DirectionIncoming, 0))
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// THEN: all three views already reflect the mutation
	views := eng.Views()
	if len(views.Customers) != 1 || len(views.Debts) != 1 || len(views.Inventory) != 1 {
		t.Errorf("views not rebuilt: %d customers, %d debts, %d inventory",
			len(views.Customers), len(views.Debts), len(views.Inventory))
	}
	if views.Customers[0].Balance.String() != "-240" {
		t.Errorf("expected balance -240, got %v", views.Customers[0].Balance)
	}
}

func TestUpsertInvoice_KnownIDReplacesInPlace(t *testing.T) {
	// GIVEN: two journaled invoices
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	first, _ := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionIncoming, 0))
	second, _ := eng.UpsertInvoice(ctx, draftInvoice("Borealis", journal.DirectionOutgoing, 0))

	// WHEN: re-upserting the first with a changed paid amount
	edit := first
	edit.AmountPaid = dec(240)
	if _, err := eng.UpsertInvoice(ctx, edit); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	// THEN: order is preserved, the number is not regenerated, and the
	//       debt for the now-paid invoice is gone
	invoices := eng.Invoices()
	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}
	if invoices[0].ID != first.ID || invoices[1].ID != second.ID {
		t.Error("journal order changed on in-place replace")
	}
	if invoices[0].Number != first.Number {
		t.Errorf("edit regenerated number: %s -> %s", first.Number, invoices[0].Number)
	}
	for _, d := range eng.Views().Debts {
		if d.ID == projection.DebtID(first.ID) {
			t.Error("paid invoice still has a debt record")
		}
	}
}

func TestUpsertInvoice_ValidationLeavesStateUntouched(t *testing.T) {
	// GIVEN: an engine with one invoice
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	if _, err := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionIncoming, 0)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// WHEN: upserting an invoice without a customer name
	bad := draftInvoice("", journal.DirectionIncoming, 0)
	_, err := eng.UpsertInvoice(ctx, bad)

	// THEN: the error is a validation failure and nothing changed
	if !journal.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(eng.Invoices()) != 1 {
		t.Error("journal changed after rejected mutation")
	}
	if len(eng.Views().Customers) != 1 {
		t.Error("views changed after rejected mutation")
	}
}

func TestDeleteInvoice_RemovesDerivedRecords(t *testing.T) {
	// GIVEN: a journal whose only invoice names Acme
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	stored, _ := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionIncoming, 0))

	// WHEN: deleting it
	if err := eng.DeleteInvoice(ctx, stored.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// THEN: no orphan records persist in any view
	views := eng.Views()
	if len(views.Customers) != 0 || len(views.Debts) != 0 || len(views.Inventory) != 0 {
		t.Error("derived records survived the source invoice")
	}
}

func TestDeleteInvoice_UnknownID(t *testing.T) {
	eng := newTestEngine(t, store.NewMemory())
	err := eng.DeleteInvoice(context.Background(), "nope")
	if !errors.Is(err, journal.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

// =============================================================================
// STORAGE FAILURE SEMANTICS
// =============================================================================

func TestUpsertInvoice_JournalWriteFailureAbortsEverything(t *testing.T) {
	// GIVEN: a store that rejects the journal key
	mem := store.NewMemory()
	eng := newTestEngine(t, &failingStore{Store: mem, failKeys: map[string]bool{engine.KeyInvoices: true}})

	// WHEN: upserting
	_, err := eng.UpsertInvoice(context.Background(), draftInvoice("Acme", journal.DirectionIncoming, 0))

	// THEN: the mutation fails and neither journal nor views advanced
	if err == nil {
		t.Fatal("expected error from failing journal write")
	}
	if len(eng.Invoices()) != 0 {
		t.Error("in-memory journal advanced past a failed write")
	}
	if len(eng.Views().Customers) != 0 {
		t.Error("views advanced past a failed journal write")
	}
}

func TestUpsertInvoice_ViewWriteFailureKeepsPreviousViews(t *testing.T) {
	// GIVEN: an engine with one committed invoice, then a store that starts
	//        rejecting the customer view key
	mem := store.NewMemory()
	failing := &failingStore{Store: mem, failKeys: map[string]bool{}}
	eng := newTestEngine(t, failing)
	ctx := context.Background()
	if _, err := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionIncoming, 0)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	failing.failKeys[engine.KeyCustomers] = true

	// WHEN: the next mutation cannot persist its views
	_, err := eng.UpsertInvoice(ctx, draftInvoice("Borealis", journal.DirectionOutgoing, 0))

	// THEN: the error surfaces and the previously committed views remain
	//       authoritative as one consistent bundle
	if err == nil {
		t.Fatal("expected error from failing view write")
	}
	views := eng.Views()
	if len(views.Customers) != 1 || views.Customers[0].Name != "Acme" {
		t.Error("committed views were replaced despite failed commit")
	}
	if len(views.Inventory) != 1 {
		t.Error("view bundle torn: inventory advanced while customers did not")
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestNew_CorruptCollectionsDegradeToEmpty(t *testing.T) {
	// GIVEN: stored bytes that are not valid JSON for two keys
	mem := store.NewMemory()
	ctx := context.Background()
	_ = mem.Set(ctx, engine.KeyInvoices, []byte("{definitely not json"))
	_ = mem.Set(ctx, engine.KeyCustomers, []byte("\x00\x01"))

	// WHEN: loading the engine
	eng := newTestEngine(t, mem)

	// THEN: both collections start empty instead of failing startup
	if len(eng.Invoices()) != 0 {
		t.Error("corrupt journal did not degrade to empty")
	}
	if len(eng.Views().Customers) != 0 {
		t.Error("corrupt customer view did not degrade to empty")
	}
}

func TestNew_ReloadsCommittedStateAcrossRestart(t *testing.T) {
	// GIVEN: an engine that committed one mutation
	mem := store.NewMemory()
	eng := newTestEngine(t, mem)
	ctx := context.Background()
	stored, _ := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionIncoming, 0))

	// WHEN: a second engine loads from the same store
	reloaded := newTestEngine(t, mem)

	// THEN: journal and committed views round-trip
	invoices := reloaded.Invoices()
	if len(invoices) != 1 || invoices[0].ID != stored.ID {
		t.Fatal("journal did not round-trip through the store")
	}
	if invoices[0].GrandTotal.String() != "240" {
		t.Errorf("derived fields did not round-trip, got %v", invoices[0].GrandTotal)
	}
	if len(reloaded.Views().Customers) != 1 {
		t.Error("committed views did not round-trip")
	}
}

func TestNew_SeedsWoodTypeCatalogOnce(t *testing.T) {
	// GIVEN: a fresh store
	mem := store.NewMemory()
	eng := newTestEngine(t, mem)

	// THEN: defaults are seeded
	if len(eng.WoodTypes()) != 5 {
		t.Fatalf("expected 5 seeded wood types, got %d", len(eng.WoodTypes()))
	}

	// WHEN: the catalog is emptied down to one entry and the engine reloads
	wts := eng.WoodTypes()
	ctx := context.Background()
	for _, wt := range wts[1:] {
		if err := eng.DeleteWoodType(ctx, wt.ID); err != nil {
			t.Fatalf("delete wood type: %v", err)
		}
	}
	reloaded := newTestEngine(t, mem)

	// THEN: the survivor is kept; no re-seeding over a non-empty catalog
	if len(reloaded.WoodTypes()) != 1 {
		t.Errorf("expected 1 wood type after reload, got %d", len(reloaded.WoodTypes()))
	}
}

// =============================================================================
// DEBT SETTLEMENT
// =============================================================================

func TestSettleDebt_UpdatesInvoiceAndSurvivesRebuild(t *testing.T) {
	// GIVEN: an unpaid outgoing invoice of 240
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	stored, _ := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionOutgoing, 0))
	debtID := projection.DebtID(stored.ID)

	// WHEN: settling 100 against the debt
	record, err := eng.SettleDebt(ctx, debtID, dec(100))
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	// THEN: the record reflects the payment
	if record.AmountSettled.String() != "100" || record.AmountRemaining.String() != "140" {
		t.Errorf("expected settled=100 remaining=140, got %v/%v", record.AmountSettled, record.AmountRemaining)
	}
	if record.Status != projection.SettlementPartiallySettled {
		t.Errorf("expected partially-settled, got %v", record.Status)
	}

	// AND: the underlying invoice was paid in the same step, so a further
	//      unrelated mutation (full rebuild) reproduces the settled state
	inv, err := eng.Invoice(stored.ID)
	if err != nil {
		t.Fatalf("invoice lookup: %v", err)
	}
	if inv.AmountPaid.String() != "100" {
		t.Errorf("invoice paid amount not updated, got %v", inv.AmountPaid)
	}
	if _, err := eng.UpsertInvoice(ctx, draftInvoice("Other", journal.DirectionIncoming, 0)); err != nil {
		t.Fatalf("unrelated mutation: %v", err)
	}
	for _, d := range eng.Views().Debts {
		if d.ID == debtID && d.AmountSettled.String() != "100" {
			t.Errorf("settlement lost on rebuild: %v", d.AmountSettled)
		}
	}
}

func TestSettleDebt_FullPaymentRemovesDebt(t *testing.T) {
	// GIVEN: an unpaid invoice of 240
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	stored, _ := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionOutgoing, 0))
	debtID := projection.DebtID(stored.ID)

	// WHEN: settling the full amount
	record, err := eng.SettleDebt(ctx, debtID, dec(240))
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	// THEN: the returned record is settled and the debt view no longer
	//       carries it
	if record.Status != projection.SettlementSettled {
		t.Errorf("expected settled, got %v", record.Status)
	}
	if len(eng.Views().Debts) != 0 {
		t.Error("fully settled debt still present in view")
	}

	// AND: settling again fails
	if _, err := eng.SettleDebt(ctx, debtID, dec(1)); !errors.Is(err, engine.ErrDebtNotFound) {
		t.Errorf("expected ErrDebtNotFound, got %v", err)
	}
}

func TestSettleDebt_RejectsNonPositiveAmount(t *testing.T) {
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	stored, _ := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionOutgoing, 0))

	_, err := eng.SettleDebt(ctx, projection.DebtID(stored.ID), dec(0))
	if !journal.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// =============================================================================
// SUMMARY
// =============================================================================

func TestSummarize_Rollups(t *testing.T) {
	// GIVEN: a purchase of 240 (unpaid) and a sale of 100 (paid)
	eng := newTestEngine(t, store.NewMemory())
	ctx := context.Background()
	if _, err := eng.UpsertInvoice(ctx, draftInvoice("Acme", journal.DirectionIncoming, 0)); err != nil {
		t.Fatal(err)
	}
	sale := draftInvoice("Acme", journal.DirectionOutgoing, 240)
	if _, err := eng.UpsertInvoice(ctx, sale); err != nil {
		t.Fatal(err)
	}

	// WHEN: summarizing
	s := eng.Summarize()

	// THEN: the rollups tie out
	if s.InvoiceCount != 2 || s.CustomerCount != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.TotalPurchases.String() != "240" || s.TotalSales.String() != "240" {
		t.Errorf("unexpected totals: purchases=%v sales=%v", s.TotalPurchases, s.TotalSales)
	}
	if s.DebtOwedToSuppliers.String() != "240" {
		t.Errorf("expected supplier debt 240, got %v", s.DebtOwedToSuppliers)
	}
	if !s.DebtOwedByCustomers.IsZero() {
		t.Errorf("expected no customer debt, got %v", s.DebtOwedByCustomers)
	}
}
