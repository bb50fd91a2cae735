package memory

import (
	"context" // request-scoped context, unused by the in-memory store

	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"                // balance computation
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"                // domain models: Party, LedgerEntry
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It is filled once at construction and never written again, so reads need no lock.
type MemoryLedgerStore struct {
	parties []models.Party       // parties in seed order
	entries []models.LedgerEntry // entries in seed order, balances computed
}

// NewMemoryLedgerStore copies the given parties and entries and computes the
// running balance of every entry. Seq is reassigned from the slice position.
func NewMemoryLedgerStore(parties []models.Party, entries []models.LedgerEntry) *MemoryLedgerStore {
	p := make([]models.Party, len(parties))
	copy(p, parties)

	seeded := make([]models.LedgerEntry, len(entries))
	for i, e := range entries {
		e.Seq = i
		seeded[i] = e
	}

	return &MemoryLedgerStore{
		parties: p,
		entries: ledger.ComputeBalances(seeded),
	}
}

// NewSeededStore returns a store holding the built-in demo parties and entries.
func NewSeededStore() *MemoryLedgerStore {
	return NewMemoryLedgerStore(SeedParties(), SeedEntries())
}

// ListParties returns a copy of all parties so callers can't modify internal state.
func (m *MemoryLedgerStore) ListParties(ctx context.Context) ([]models.Party, error) {
	copied := make([]models.Party, len(m.parties))
	copy(copied, m.parties)
	return copied, nil
}

// ListEntries returns a copy of all ledger entries in seed order.
func (m *MemoryLedgerStore) ListEntries(ctx context.Context) ([]models.LedgerEntry, error) {
	copied := make([]models.LedgerEntry, len(m.entries))
	copy(copied, m.entries)
	return copied, nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
