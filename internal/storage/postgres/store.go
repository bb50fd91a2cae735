package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" driver
	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
)

// Schema creates the tables read by PostgresLedgerStore.
const Schema = `
CREATE TABLE IF NOT EXISTS parties (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	email   TEXT NOT NULL,
	phone   TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	seq     SERIAL
);

CREATE TABLE IF NOT EXISTS ledger_entries (
	id          TEXT PRIMARY KEY,
	seq         SERIAL,
	party_id    TEXT NOT NULL REFERENCES parties(id),
	entry_date  DATE NOT NULL,
	reference   TEXT NOT NULL,
	particulars TEXT NOT NULL,
	debit       NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (debit >= 0),
	credit      NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (credit >= 0)
);
`

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// Open connects to dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (p *PostgresLedgerStore) ListParties(ctx context.Context) ([]models.Party, error) {
	const query = `SELECT id, name, email, phone, address FROM parties ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parties := make([]models.Party, 0)
	for rows.Next() {
		var party models.Party
		if err := rows.Scan(&party.ID, &party.Name, &party.Email, &party.Phone, &party.Address); err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parties, nil
}

// ListEntries reads every entry in insertion order and derives balances the
// same way the memory store does.
func (p *PostgresLedgerStore) ListEntries(ctx context.Context) ([]models.LedgerEntry, error) {
	const query = `SELECT id, seq, party_id, entry_date, reference, particulars, debit, credit
	FROM ledger_entries ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		var entry models.LedgerEntry
		var date time.Time
		err := rows.Scan(
			&entry.ID,
			&entry.Seq,
			&entry.PartyID,
			&date,
			&entry.Reference,
			&entry.Particulars,
			&entry.Debit,
			&entry.Credit,
		)
		if err != nil {
			return nil, err
		}
		entry.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ledger.ComputeBalances(entries), nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
