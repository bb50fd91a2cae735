package interfaces

import "context"

// Mail is a plain-text message carrying a single file attachment.
type Mail struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
	AttachmentName string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
