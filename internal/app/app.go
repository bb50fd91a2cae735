package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/config"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/delivery"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/mailer"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/statement"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/storage/memory"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/storage/postgres"
	"go.uber.org/zap"
)

// App is the wired service shared by the HTTP server and the CLI.
type App struct {
	Config   config.AppConfig
	Logger   *zap.Logger
	Ledger   *ledger.Ledger
	Format   *statement.Formatter
	Renderer *statement.PDFRenderer
	Pipeline *delivery.Pipeline

	closers []func() error
}

func NewLogger(cfg config.AppConfig) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// New builds every component once. The financial year is fixed from now and
// the ledger store is loaded here; both stay unchanged afterwards.
func New(ctx context.Context, cfg config.AppConfig, logger *zap.Logger, now time.Time) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Ledger = ledger.NewLedger(store)

	a.Format, err = statement.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Renderer = statement.NewPDFRenderer(a.Format)

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, p.Close)
		publisher = p
		logger.Info("publishing statement events",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	fy := ledger.NewFinancialYear(now)
	a.Pipeline = delivery.NewPipeline(delivery.Config{
		Ledger:   a.Ledger,
		Renderer: a.Renderer,
		NewMailer: func() (interfaces.Mailer, error) {
			return mailer.NewSMTPSender(cfg.SMTP)
		},
		Publisher:     publisher,
		FinancialYear: fy,
		OutputDir:     cfg.OutputDir,
		Logger:        logger,
	})

	if err := cfg.SMTP.Validate(); err != nil {
		logger.Warn("SMTP is not configured, statements will be saved but not sent", zap.Error(err))
	}
	logger.Info("ledger ready",
		zap.String("financial_year", fy.Label),
		zap.String("locale", cfg.Locale),
		zap.String("currency", cfg.Currency),
		zap.String("output_dir", cfg.OutputDir))
	return a, nil
}

func (a *App) openStore(ctx context.Context) (interfaces.LedgerStore, error) {
	if a.Config.DatabaseURL == "" {
		a.Logger.Info("using seeded in-memory ledger")
		return memory.NewSeededStore(), nil
	}

	db, err := postgres.Open(ctx, a.Config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ledger store: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	a.Logger.Info("using postgres ledger")
	return postgres.NewPostgresLedgerStore(db), nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
