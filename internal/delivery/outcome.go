package delivery

// Outcome is the terminal state of one pipeline run. The set is closed:
// Sent, ValidationFailed, PartyNotFound, ConfigurationFailed, RenderFailed,
// PersistFailed and DeliveryFailed.
type Outcome interface {
	// ClientFault is true when the caller's input caused the failure.
	ClientFault() bool
	// Message is the human-readable text returned to the caller.
	Message() string
	name() string
}

const (
	SentMessage          = "Email sent successfully with Ledger attachment!"
	PartyNotFoundMessage = "Please select a Party Ledger"
)

type Sent struct {
	FilePath string
}

type ValidationFailed struct {
	Field  string
	Reason string
}

type PartyNotFound struct {
	PartyID string
}

// ConfigurationFailed means the mail transport is not configured; an
// operator problem rather than a runtime one.
type ConfigurationFailed struct{ Err error }

type RenderFailed struct{ Err error }

type PersistFailed struct {
	Path string
	Err  error
}

type DeliveryFailed struct{ Err error }

func (Sent) ClientFault() bool                { return false }
func (ValidationFailed) ClientFault() bool    { return true }
func (PartyNotFound) ClientFault() bool       { return true }
func (ConfigurationFailed) ClientFault() bool { return false }
func (RenderFailed) ClientFault() bool        { return false }
func (PersistFailed) ClientFault() bool       { return false }
func (DeliveryFailed) ClientFault() bool      { return false }

func (Sent) Message() string                  { return SentMessage }
func (o ValidationFailed) Message() string    { return o.Reason }
func (PartyNotFound) Message() string         { return PartyNotFoundMessage }
func (o ConfigurationFailed) Message() string { return o.Err.Error() }
func (o RenderFailed) Message() string        { return o.Err.Error() }
func (o PersistFailed) Message() string       { return o.Err.Error() }
func (o DeliveryFailed) Message() string      { return o.Err.Error() }

func (Sent) name() string                { return "sent" }
func (ValidationFailed) name() string    { return "validation_error" }
func (PartyNotFound) name() string       { return "party_not_found" }
func (ConfigurationFailed) name() string { return "configuration_error" }
func (RenderFailed) name() string        { return "render_error" }
func (PersistFailed) name() string       { return "persist_error" }
func (DeliveryFailed) name() string      { return "delivery_error" }

// Name is a stable label for logs and metrics.
func Name(o Outcome) string { return o.name() }
