package statement

import "regexp"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName is the statement file name for a party, stable across requests
// so a new statement replaces the previous one.
func FileName(partyName string) string {
	return "Ledger_" + nonAlphanumeric.ReplaceAllString(partyName, "_") + ".pdf"
}
