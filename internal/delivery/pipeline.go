package delivery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/config"
	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/metrics"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models/events"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/statement"
	"go.uber.org/zap"
)

// MailerFactory builds the mail collaborator for one delivery. It returns
// config.ErrSMTPConfigIncomplete when the transport is not configured.
type MailerFactory func() (interfaces.Mailer, error)

// DefaultPublishTimeout bounds the StatementSent publish, which runs after the
// mail is out and must not hold the response.
const DefaultPublishTimeout = 3 * time.Second

type Config struct {
	Ledger        *ledger.Ledger
	Renderer      interfaces.StatementRenderer
	NewMailer     MailerFactory
	Publisher     interfaces.EventPublisher // optional
	FinancialYear models.FinancialYear
	OutputDir     string
	Logger        *zap.Logger

	PublishTimeout time.Duration // zero means DefaultPublishTimeout
}

// Pipeline runs validate, resolve, render, persist and deliver for one
// request, strictly in that order. The first failing step ends the run;
// nothing is retried and nothing already done is undone, so a persisted file
// stays on disk when delivery fails.
//
// Two concurrent requests for the same party write the same file; the last
// writer wins.
type Pipeline struct {
	ledger    *ledger.Ledger
	renderer  interfaces.StatementRenderer
	newMailer MailerFactory
	publisher interfaces.EventPublisher
	fy        models.FinancialYear
	outputDir string
	logger    *zap.Logger

	publishTimeout time.Duration
}

func NewPipeline(cfg Config) *Pipeline {
	outputDir := cfg.OutputDir
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var publisher interfaces.EventPublisher = noopPublisher{}
	if cfg.Publisher != nil {
		publisher = cfg.Publisher
	}
	publishTimeout := cfg.PublishTimeout
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &Pipeline{
		ledger:    cfg.Ledger,
		renderer:  cfg.Renderer,
		newMailer: cfg.NewMailer,
		publisher: publisher,
		fy:        cfg.FinancialYear,
		outputDir: outputDir,
		logger:    logger,

		publishTimeout: publishTimeout,
	}
}

func (p *Pipeline) FinancialYear() models.FinancialYear { return p.fy }

// Send runs the pipeline and reports how it ended.
func (p *Pipeline) Send(ctx context.Context, req Request) Outcome {
	start := time.Now()
	log := p.logger.With(zap.String("party_id", req.PartyID), zap.String("recipient", req.Email))

	outcome := p.run(ctx, req, log)

	metrics.RecordOutcome(Name(outcome))
	if s, ok := outcome.(Sent); ok {
		log.Info("statement sent",
			zap.String("file", s.FilePath),
			zap.Duration("duration", time.Since(start)))
	} else {
		log.Error("statement delivery failed",
			zap.String("outcome", Name(outcome)),
			zap.String("error", outcome.Message()),
			zap.Duration("duration", time.Since(start)))
	}
	return outcome
}

func (p *Pipeline) run(ctx context.Context, req Request, log *zap.Logger) Outcome {
	// 1. validate
	if err := req.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return ValidationFailed{Field: verr.Field, Reason: verr.Message}
		}
		return ValidationFailed{Reason: err.Error()}
	}

	st, failed := p.Generate(ctx, req.PartyID)
	if failed != nil {
		return failed
	}
	log.Debug("statement written", zap.String("file", st.Path), zap.Int("bytes", st.Size))

	// 5. deliver
	stageStart := time.Now()
	mailer, err := p.newMailer()
	if err != nil {
		if errors.Is(err, config.ErrSMTPConfigIncomplete) {
			return ConfigurationFailed{Err: err}
		}
		return DeliveryFailed{Err: err}
	}
	err = mailer.Send(ctx, interfaces.Mail{
		To:             req.Email,
		Subject:        req.Subject,
		Body:           req.Body,
		AttachmentPath: st.Path,
		AttachmentName: st.FileName,
	})
	if err != nil {
		return DeliveryFailed{Err: err}
	}
	metrics.ObserveStage("deliver", stageStart)

	p.publish(ctx, st.Party, req.Email, st.FileName, log)
	return Sent{FilePath: st.Path}
}

// Statement is a rendered statement already written to disk.
type Statement struct {
	Party    models.Party
	FileName string
	Path     string
	Size     int
}

// Generate resolves the party, renders its statement and writes it to the
// output directory. On failure it returns the terminal outcome
// (PartyNotFound, RenderFailed or PersistFailed); on success the outcome is nil.
func (p *Pipeline) Generate(ctx context.Context, partyID string) (Statement, Outcome) {
	// 2. resolve party
	party, found, err := p.ledger.FindParty(ctx, partyID)
	if err != nil {
		return Statement{}, RenderFailed{Err: fmt.Errorf("load party: %w", err)}
	}
	if !found {
		return Statement{}, PartyNotFound{PartyID: partyID}
	}

	// 3. render
	stageStart := time.Now()
	entries, err := p.ledger.GetLedgerForParty(ctx, party.ID)
	if err != nil {
		return Statement{}, RenderFailed{Err: fmt.Errorf("load ledger: %w", err)}
	}
	pdf, err := p.renderer.Render(party, entries, p.fy)
	if err != nil {
		return Statement{}, RenderFailed{Err: err}
	}
	metrics.ObserveStage("render", stageStart)
	metrics.ObserveStatementSize(len(pdf))

	// 4. persist
	stageStart = time.Now()
	fileName := statement.FileName(party.Name)
	path, err := p.persist(fileName, pdf)
	if err != nil {
		return Statement{}, PersistFailed{Path: path, Err: err}
	}
	metrics.ObserveStage("persist", stageStart)

	return Statement{Party: party, FileName: fileName, Path: path, Size: len(pdf)}, nil
}

// persist creates the output directory if needed and overwrites any earlier
// statement with the same name.
func (p *Pipeline) persist(fileName string, pdf []byte) (string, error) {
	path := filepath.Join(p.outputDir, fileName)
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return path, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return path, fmt.Errorf("write statement: %w", err)
	}
	return path, nil
}

// publish announces a delivered statement. The mail has already gone out, so
// a failure here is logged and counted but does not change the outcome.
func (p *Pipeline) publish(ctx context.Context, party models.Party, recipient, fileName string, log *zap.Logger) {
	event := events.StatementSent{
		StatementID:   uuid.NewString(),
		PartyID:       party.ID,
		Recipient:     recipient,
		FileName:      fileName,
		FinancialYear: p.fy.Label,
		OccurredAt:    time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()
	if err := p.publisher.Publish(ctx, party.ID, event); err != nil {
		metrics.RecordPublishError()
		log.Warn("failed to publish statement event",
			zap.String("statement_id", event.StatementID),
			zap.Error(err))
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
