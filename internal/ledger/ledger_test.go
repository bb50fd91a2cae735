package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.ParseInLocation(time.DateOnly, s, time.Local)
	return d
}

func TestSeedBalancesFollowRunningTotal(t *testing.T) {
	ctx := context.Background()
	l := ledger.NewLedger(memory.NewSeededStore())

	parties, err := l.ListParties(ctx)
	require.NoError(t, err)
	require.Len(t, parties, 3)

	for _, p := range parties {
		entries, err := l.GetLedgerForParty(ctx, p.ID)
		require.NoError(t, err)

		prev := decimal.Zero
		for i, e := range entries {
			want := prev.Add(e.Credit).Sub(e.Debit)
			assert.True(t, want.Equal(e.Balance), "%s entry %d: want %s got %s", p.ID, i, want, e.Balance)
			prev = e.Balance
		}
	}
}

func TestABCCompanyBalances(t *testing.T) {
	l := ledger.NewLedger(memory.NewSeededStore())

	entries, err := l.GetLedgerForParty(context.Background(), "abc-co")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "entry-1", entries[0].ID)
	assert.True(t, entries[0].Balance.Equal(decimal.NewFromInt(152000)))
	assert.Equal(t, "entry-2", entries[1].ID)
	assert.True(t, entries[1].Balance.IsZero())
}

func TestFindParty(t *testing.T) {
	ctx := context.Background()
	l := ledger.NewLedger(memory.NewSeededStore())

	p, ok, err := l.FindParty(ctx, "xyz-traders")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "XYZ Traders", p.Name)
	assert.Equal(t, "finance@xyztraders.in", p.Email)

	for _, id := range []string{"", "nobody", "ABC-CO"} {
		_, ok, err := l.FindParty(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok, id)
	}
}

func TestGetLedgerForPartyWithoutEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMemoryLedgerStore(
		[]models.Party{{ID: "quiet", Name: "Quiet Co"}},
		nil,
	)
	l := ledger.NewLedger(store)

	entries, err := l.GetLedgerForParty(ctx, "quiet")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	entries, err = l.GetLedgerForParty(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSameDateEntriesKeepInsertionOrder(t *testing.T) {
	store := memory.NewMemoryLedgerStore(
		[]models.Party{{ID: "p", Name: "P"}},
		[]models.LedgerEntry{
			{ID: "late", PartyID: "p", Date: day("2024-06-01"), Credit: decimal.NewFromInt(5)},
			{ID: "first", PartyID: "p", Date: day("2024-05-01"), Credit: decimal.NewFromInt(100)},
			{ID: "second", PartyID: "p", Date: day("2024-05-01"), Debit: decimal.NewFromInt(30)},
		},
	)
	l := ledger.NewLedger(store)

	entries, err := l.GetLedgerForParty(context.Background(), "p")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	ids := []string{entries[0].ID, entries[1].ID, entries[2].ID}
	assert.Equal(t, []string{"first", "second", "late"}, ids)
	assert.True(t, entries[0].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, entries[1].Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, entries[2].Balance.Equal(decimal.NewFromInt(75)))
}
