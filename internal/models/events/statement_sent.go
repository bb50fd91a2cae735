package events

import "time"

type StatementSent struct {
	StatementID   string    `json:"statement_id"`
	PartyID       string    `json:"party_id"`
	Recipient     string    `json:"recipient"`
	FileName      string    `json:"file_name"`
	FinancialYear string    `json:"financial_year"`
	OccurredAt    time.Time `json:"occurred_at"`
}
