package models

import "time"

// FinancialYear is the reporting window printed on a statement.
// End is the end of the day the value was computed, not the fiscal close.
type FinancialYear struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
