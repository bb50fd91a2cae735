package ledger

import (
	"cmp"
	"slices"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
	"github.com/shopspring/decimal"
)

// CompareEntries orders entries by date, then by insertion position.
func CompareEntries(a, b models.LedgerEntry) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

// ComputeBalances returns a copy of entries, in the same order, with Balance
// set to the party's running total of credit - debit up to and including
// that entry. Each party is walked once in (Date, Seq) order.
func ComputeBalances(entries []models.LedgerEntry) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(entries))
	copy(out, entries)

	byParty := make(map[string][]int)
	for i, e := range out {
		byParty[e.PartyID] = append(byParty[e.PartyID], i)
	}

	for _, idx := range byParty {
		slices.SortFunc(idx, func(i, j int) int {
			return CompareEntries(out[i], out[j])
		})
		running := decimal.Zero
		for _, i := range idx {
			running = running.Add(out[i].Net())
			out[i].Balance = running
		}
	}
	return out
}
