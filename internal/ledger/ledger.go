package ledger

import (
	"context"
	"slices"

	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
)

// Ledger is the query layer over a LedgerStore.
type Ledger struct {
	store interfaces.LedgerStore // any read-only store: seeded memory, postgres, ...
}

// NewLedger wraps a store. The store is expected to be immutable for the
// lifetime of the Ledger, so no locking happens here.
func NewLedger(store interfaces.LedgerStore) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) ListParties(ctx context.Context) ([]models.Party, error) {
	return l.store.ListParties(ctx)
}

// FindParty looks a party up by id. A missing party is reported through the
// boolean; the error is reserved for store failures.
func (l *Ledger) FindParty(ctx context.Context, partyID string) (models.Party, bool, error) {
	parties, err := l.store.ListParties(ctx)
	if err != nil {
		return models.Party{}, false, err
	}
	for _, p := range parties {
		if p.ID == partyID {
			return p, true, nil
		}
	}
	return models.Party{}, false, nil
}

// GetLedgerForParty returns the party's entries in (Date, Seq) order. Unknown
// parties and parties without entries both yield an empty, non-nil slice.
func (l *Ledger) GetLedgerForParty(ctx context.Context, partyID string) ([]models.LedgerEntry, error) {
	entries, err := l.store.ListEntries(ctx)
	if err != nil {
		return []models.LedgerEntry{}, err
	}

	result := make([]models.LedgerEntry, 0)
	for _, e := range entries {
		if e.PartyID == partyID {
			result = append(result, e)
		}
	}
	slices.SortStableFunc(result, CompareEntries)
	return result, nil
}
