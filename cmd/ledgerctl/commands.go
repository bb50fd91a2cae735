package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/app"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/config"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/delivery"
	"go.uber.org/zap"
)

var verbose = flag.Bool("v", false, "log pipeline activity to stderr")

// openApp loads the configuration and wires the service.
func openApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}
	return app.New(ctx, cfg, logger, time.Now())
}

// partiesCmd lists the known parties.
type partiesCmd struct{}

func (*partiesCmd) Name() string     { return "parties" }
func (*partiesCmd) Synopsis() string { return "list parties" }
func (*partiesCmd) Usage() string {
	return `ledgerctl parties

  Lists every party with its id and contact details.
`
}
func (*partiesCmd) SetFlags(*flag.FlagSet) {}

func (c *partiesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	parties, err := a.Ledger.ListParties(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading parties: %v\n", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, p := range parties {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Phone)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// ledgerCmd prints the running ledger of one party.
type ledgerCmd struct {
	party string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "show a party's running ledger" }
func (*ledgerCmd) Usage() string {
	return `ledgerctl ledger -p <party-id>

  Prints the party's entries in date order with the running balance.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.party, "p", "", "party id")
}

func (c *ledgerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.party == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	party, found, err := a.Ledger.FindParty(ctx, c.party)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading party: %v\n", err)
		return subcommands.ExitFailure
	}
	if !found {
		fmt.Fprintln(os.Stderr, delivery.PartyNotFoundMessage)
		return subcommands.ExitUsageError
	}

	entries, err := a.Ledger.GetLedgerForParty(ctx, party.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fy := a.Pipeline.FinancialYear()
	fmt.Printf("%s\nFinancial Year: %s\nPeriod: %s - %s\n\n",
		party.Name, fy.Label, a.Format.Date(fy.Start), a.Format.Date(fy.End))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Date\tReference\tParticulars\tDebit\tCredit\tBalance\t")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			a.Format.Date(e.Date), e.Reference, e.Particulars,
			a.Format.Amount(e.Debit), a.Format.Amount(e.Credit), a.Format.Money(e.Balance))
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// renderCmd writes a statement to the output directory without mailing it.
type renderCmd struct {
	party string
}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "write a party's statement PDF" }
func (*renderCmd) Usage() string {
	return `ledgerctl render -p <party-id>

  Renders the statement and writes it to OUTPUT_DIR. Nothing is mailed.
`
}

func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.party, "p", "", "party id")
}

func (c *renderCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.party == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	st, failed := a.Pipeline.Generate(ctx, c.party)
	if failed != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", failed.Message())
		return exitStatus(failed)
	}
	fmt.Println(st.Path)
	return subcommands.ExitSuccess
}

// sendCmd runs the full delivery pipeline.
type sendCmd struct {
	party   string
	to      string
	subject string
	body    string
}

func (*sendCmd) Name() string     { return "send" }
func (*sendCmd) Synopsis() string { return "render and email a party's statement" }
func (*sendCmd) Usage() string {
	return `ledgerctl send -p <party-id> [-to <email>] [-subject <text>] [-body <text>]

  Renders the statement, saves it and mails it as an attachment.
  The recipient defaults to the party's email address.
`
}

func (c *sendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.party, "p", "", "party id")
	f.StringVar(&c.to, "to", "", "recipient email address (default: the party's)")
	f.StringVar(&c.subject, "subject", delivery.DefaultSubject, "email subject")
	f.StringVar(&c.body, "body", delivery.DefaultBody, "email body")
}

func (c *sendCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	to := c.to
	if to == "" && c.party != "" {
		if party, found, err := a.Ledger.FindParty(ctx, c.party); err == nil && found {
			to = party.Email
		}
	}

	outcome := a.Pipeline.Send(ctx, delivery.Request{
		PartyID: c.party,
		Email:   to,
		Subject: c.subject,
		Body:    c.body,
	})
	if sent, ok := outcome.(delivery.Sent); ok {
		fmt.Printf("%s\n%s\n", sent.Message(), sent.FilePath)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", outcome.Message())
	return exitStatus(outcome)
}

func exitStatus(o delivery.Outcome) subcommands.ExitStatus {
	if o.ClientFault() {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
