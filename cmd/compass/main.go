package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/catalog"
	"github.com/alexanderramin/compass/internal/cli"
	"github.com/alexanderramin/compass/internal/config"
	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/logging"
	"github.com/alexanderramin/compass/internal/onboarding"
	"github.com/alexanderramin/compass/internal/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config decides where the database and log live, so the config flags
	// are read before cobra sees the command line. Unknown flags belong to
	// subcommands and are left for cobra.
	pre := pflag.NewFlagSet("compass", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	flags := config.RegisterFlags(pre)
	_ = pre.Parse(os.Args[1:])

	cfg, err := flags.Resolve()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	var observer advising.Observer = advising.NoopObserver{}
	if cfg.Advising.LogCalls {
		observer = advising.NewLogObserver(logger)
	}
	client := advising.NewClient(cfg.Advising.Client(), observer)

	ctx := context.Background()
	persist := session.NewPersistence(database, logger)
	ob := session.NewOnboardingStore(ctx, cat.Names(), client, persist, logger)
	dash := session.NewDashboardStore(ctx, persist, time.Now, logger)

	logger.Info("starting",
		zap.String("db", cfg.DBPath),
		zap.String("advising_url", cfg.Advising.BaseURL),
		zap.String("session", persist.SessionID()))

	app := &cli.App{
		Machine:    onboarding.New(ob, dash, cat, logger),
		Onboarding: ob,
		Dashboard:  dash,
		Catalog:    cat,
		Advisor:    client,
		Resources:  client,
		Feed:       advising.NewResourceFeed(client, logger),
		Log:        logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
