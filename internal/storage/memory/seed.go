package memory

import (
	"time"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
	"github.com/shopspring/decimal"
)

func SeedParties() []models.Party {
	return []models.Party{
		{
			ID:      "abc-co",
			Name:    "ABC Company Ltd",
			Email:   "accounts@abccompany.com",
			Phone:   "+91 9830012345",
			Address: "15B Park Street, Kolkata",
		},
		{
			ID:      "xyz-traders",
			Name:    "XYZ Traders",
			Email:   "finance@xyztraders.in",
			Phone:   "+91 9988776655",
			Address: "7 MG Road, Bengaluru",
		},
		{
			ID:      "prime-industries",
			Name:    "Prime Industries Pvt Ltd",
			Email:   "ap@primeindustries.in",
			Phone:   "+91 8877665544",
			Address: "Plot 21, MIDC, Pune",
		},
	}
}

func SeedEntries() []models.LedgerEntry {
	return []models.LedgerEntry{
		entry("entry-1", "abc-co", "2024-04-05", "SA/24-0001", "Sales Invoice", 0, 152000),
		entry("entry-2", "abc-co", "2024-05-02", "RC/24-0009", "Receipt", 152000, 0),
		entry("entry-3", "xyz-traders", "2024-04-10", "SA/24-0010", "Sales Invoice", 0, 84500),
		entry("entry-4", "xyz-traders", "2024-05-15", "RC/24-0022", "Receipt", 50000, 0),
		entry("entry-5", "prime-industries", "2024-04-18", "SA/24-0025", "Sales Invoice", 0, 193400),
	}
}

func entry(id, partyID, date, reference, particulars string, debit, credit int64) models.LedgerEntry {
	d, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		panic("memory: bad seed date " + date)
	}
	return models.LedgerEntry{
		ID:          id,
		PartyID:     partyID,
		Date:        d,
		Reference:   reference,
		Particulars: particulars,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}
