package interfaces

import (
	"context"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
)

// LedgerStore is read-only reference data: parties and their entries with
// balances already computed.
type LedgerStore interface {
	ListParties(ctx context.Context) ([]models.Party, error)
	ListEntries(ctx context.Context) ([]models.LedgerEntry, error)
}
