package ledger

import (
	"fmt"
	"time"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
)

// NewFinancialYear computes the financial year containing now. Years start on
// April 1, so January to March belong to the year that began the previous
// April. End is the last instant of now's day: statements run "as of today".
func NewFinancialYear(now time.Time) models.FinancialYear {
	year := now.Year()
	if now.Month() < time.April {
		year--
	}
	loc := now.Location()
	return models.FinancialYear{
		Label: fmt.Sprintf("%d-%d", year, year+1),
		Start: time.Date(year, time.April, 1, 0, 0, 0, 0, loc),
		End:   time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), loc),
	}
}
