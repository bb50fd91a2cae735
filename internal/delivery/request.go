package delivery

import (
	"fmt"
	"net/mail"
	"regexp"
)

// emailPattern requires a dotted domain whose labels start with a letter or
// digit. The local part is checked by net/mail, the parser the mailer uses.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+'\-]+@([a-zA-Z0-9][a-zA-Z0-9\-]*\.)+[a-zA-Z]{2,}$`)

// validEmail accepts a bare address that the mail transport will also accept,
// so a bad recipient fails here and not after the statement is written.
func validEmail(s string) bool {
	if !emailPattern.MatchString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Request asks for a party's statement to be mailed to Email.
type Request struct {
	PartyID string `json:"partyId"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields in declaration order and reports the first
// violation only.
func (r Request) Validate() error {
	switch {
	case r.PartyID == "":
		return &ValidationError{Field: "partyId", Message: "partyId is required"}
	case r.Email == "":
		return &ValidationError{Field: "email", Message: "email is required"}
	case !validEmail(r.Email):
		return &ValidationError{Field: "email", Message: "Invalid email address"}
	case r.Subject == "":
		return &ValidationError{Field: "subject", Message: "subject is required"}
	case r.Body == "":
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return nil
}
