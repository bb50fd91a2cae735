package interfaces

import "github.com/sheikh-saqib/ledger-statement-mailer/internal/models"

// StatementRenderer turns a party's ledger into a complete document.
type StatementRenderer interface {
	Render(party models.Party, entries []models.LedgerEntry, fy models.FinancialYear) ([]byte, error)
}
