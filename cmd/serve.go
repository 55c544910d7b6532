package cmd

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle/insight"
	"github.com/miraclehq/miracle/logger"
	"github.com/miraclehq/miracle/server"
)

type serveCmd struct {
	port     int
	logLevel string
	logFile  string
	pretty   bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the JSON HTTP API for the web front end" }
func (*serveCmd) Usage() string {
	return `miracle serve [-port <port>] [-log-level <level>] [-log-file <path>]

  Serves the brokerage API. State is held in memory for the lifetime of the
  process and starts from the seed portfolio.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 8080, "Port to listen on.")
	f.StringVar(&c.logLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	f.StringVar(&c.logFile, "log-file", "", "Optional rotating log file.")
	f.BoolVar(&c.pretty, "pretty", false, "Human-readable log output instead of JSON.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger.New(logger.Config{
		Level:    c.logLevel,
		Pretty:   c.pretty,
		FilePath: c.logFile,
	})
	logger.SetGlobal(log)

	catalog, ledger, err := session()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session state")
		return subcommands.ExitFailure
	}

	srv := server.New(server.Config{
		Port:    c.port,
		Log:     log,
		Catalog: catalog,
		Ledger:  ledger,
		Insight: insight.New(ctx),
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Server failed")
			return subcommands.ExitFailure
		}
	case <-stop:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
