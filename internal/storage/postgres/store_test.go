package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DATABASE_URL and isolates the test in a throwaway
// schema. The pool is pinned to one connection so search_path sticks.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	schema := "ledger_test_" + uuid.New().String()[:8]
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA %s`, schema))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.ExecContext(context.Background(), fmt.Sprintf(`DROP SCHEMA %s CASCADE`, schema))
		db.Close()
	})

	_, err = db.ExecContext(ctx, fmt.Sprintf(`SET search_path TO %s`, schema))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, Schema)
	require.NoError(t, err)
	return db
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()

	parties := [][]string{
		{"abc-co", "ABC Company Ltd", "accounts@abccompany.com", "+91 9830012345", "15B Park Street, Kolkata"},
		{"xyz-traders", "XYZ Traders", "finance@xyztraders.in", "", ""},
	}
	for _, p := range parties {
		_, err := db.ExecContext(ctx,
			`INSERT INTO parties (id, name, email, phone, address) VALUES ($1, $2, $3, $4, $5)`,
			p[0], p[1], p[2], p[3], p[4])
		require.NoError(t, err)
	}

	// Inserted out of date order; the second abc-co row predates the first.
	entries := []struct {
		id, party, date, ref string
		debit, credit        string
	}{
		{"e1", "abc-co", "2024-05-02", "RC/24-0009", "152000.00", "0"},
		{"e2", "abc-co", "2024-04-05", "SA/24-0001", "0", "152000.00"},
		{"e3", "xyz-traders", "2024-04-10", "SA/24-0010", "0", "84500.50"},
	}
	for _, e := range entries {
		_, err := db.ExecContext(ctx,
			`INSERT INTO ledger_entries (id, party_id, entry_date, reference, particulars, debit, credit)
			VALUES ($1, $2, $3, $4, 'Entry', $5, $6)`,
			e.id, e.party, e.date, e.ref, e.debit, e.credit)
		require.NoError(t, err)
	}
}

func TestPostgresListParties(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	parties, err := NewPostgresLedgerStore(db).ListParties(context.Background())
	require.NoError(t, err)
	require.Len(t, parties, 2)

	assert.Equal(t, "abc-co", parties[0].ID)
	assert.Equal(t, "ABC Company Ltd", parties[0].Name)
	assert.Equal(t, "accounts@abccompany.com", parties[0].Email)
	assert.Equal(t, "+91 9830012345", parties[0].Phone)
	assert.Equal(t, "15B Park Street, Kolkata", parties[0].Address)
	assert.Equal(t, "xyz-traders", parties[1].ID)
	assert.Empty(t, parties[1].Phone)
}

func TestPostgresListEntries(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	entries, err := NewPostgresLedgerStore(db).ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// insertion order is kept
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Less(t, entries[0].Seq, entries[1].Seq)
	assert.Equal(t, "RC/24-0009", entries[0].Reference)
	assert.Equal(t, "abc-co", entries[0].PartyID)

	// dates come back as local midnight
	want := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(entries[0].Date), "got %s", entries[0].Date)
	assert.Equal(t, time.Local, entries[0].Date.Location())

	// balances follow date order, not insertion order
	assert.True(t, entries[1].Balance.Equal(decimal.NewFromInt(152000)), entries[1].Balance.String())
	assert.True(t, entries[0].Balance.IsZero(), entries[0].Balance.String())
	assert.True(t, entries[2].Balance.Equal(decimal.RequireFromString("84500.50")))
	assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(152000)))
}
