// Package cmd implements the CLI application to manage the household ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	finanzas "github.com/kindsee/finanzas-desktop"
	"github.com/kindsee/finanzas-desktop/store"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands lists every subcommand. A main package registers them on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&accountsCmd{},
	&addAccountCmd{},
	&txCmd{},
	&transferCmd{},
	&recurringCmd{},
	&adjustCmd{},
	&balanceCmd{},
	&auditCmd{},
	&reconcileCmd{},
	&topCmd{},
	&loansCmd{},
	&newLoanCmd{},
	&scheduleCmd{},
	&recalcCmd{},
	&topicCmd{},
}

// Register registers all subcommands on the commander.
func Register(c *subcommands.Commander) {
	for _, command := range Commands {
		c.Register(command, "")
	}
}

// As a CLI application it has a very short lived lifecycle, so it is ok to use
// global variables for app-wide flags.

var (
	dbFile          *string
	defaultCurrency *string
	verbose         *bool
)

// The .env file feeds the FIN_* defaults, so it must load before the flags
// capture them. A missing file is fine.
func init() {
	godotenv.Load()
	dbFile = flag.String("db", envOr("FIN_DB_FILE", "finanzas.db"), "Path to the SQLite ledger file.")
	defaultCurrency = flag.String("currency", envOr("FIN_CURRENCY", "EUR"), "Currency for new accounts and amounts.")
	verbose = flag.Bool("v", envOr("FIN_VERBOSE", "") != "", "Enable debug logging.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Setup configures logging from the global flags. A main package calls it
// once, after flag.Parse.
func Setup() {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openRepository opens the ledger database named by the -db flag.
func openRepository() (*store.Repository, error) {
	repo, err := store.Open(*dbFile)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %q: %w", *dbFile, err)
	}
	return repo, nil
}

// resolveAccount accepts either a numeric account id or an account name.
func resolveAccount(ctx context.Context, repo *store.Repository, s string) (finanzas.Account, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return repo.Account(ctx, id)
	}
	return repo.AccountByName(ctx, s)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built (dumb terminals, pipes).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

func parseMoneyFlag(amount string) (finanzas.Money, error) {
	return finanzas.ParseMoney(amount, *defaultCurrency)
}
