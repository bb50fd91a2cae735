package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a single dated line on a party's ledger
type LedgerEntry struct {
	ID          string          `json:"id"`          // unique identifier
	PartyID     string          `json:"partyId"`     // which party this entry belongs to
	Seq         int             `json:"-"`           // insertion position, breaks ties between same-date entries
	Date        time.Time       `json:"date"`        // calendar date, midnight local time
	Reference   string          `json:"reference"`   // voucher code, e.g. SA/24-0001
	Particulars string          `json:"particulars"` // free-text description
	Debit       decimal.Decimal `json:"debit"`       // never negative
	Credit      decimal.Decimal `json:"credit"`      // never negative
	Balance     decimal.Decimal `json:"balance"`     // running credit - debit, derived by the store
}

// Net returns the entry's contribution to the running balance.
func (e LedgerEntry) Net() decimal.Decimal {
	return e.Credit.Sub(e.Debit)
}
