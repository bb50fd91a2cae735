package delivery

// Prefill for the send form.
const (
	DefaultSubject = "Tax Invoice & Ledger Statement"
	DefaultBody    = `Dear Sir/Madam,

Please find attached:
1) Tax Invoice
2) Ledger Statement

Regards,
Your Company Name`
)
