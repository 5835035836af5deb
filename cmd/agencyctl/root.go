package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gtmquest/agencymatch"
)

const dsnEnv = "AGENCYMATCH_DSN"

// directory is the subset of *agencymatch.Client the commands use.
type directory interface {
	Search(ctx context.Context, q agencymatch.Criteria) ([]agencymatch.Match, error)
	SearchTerms(ctx context.Context, q agencymatch.Criteria) ([]agencymatch.Match, error)
	Agency(ctx context.Context, slug string) (agencymatch.Profile, error)
	Specializations(ctx context.Context) ([]string, error)
	Close()
}

// connectFunc opens a directory for a DSN.
type connectFunc func(ctx context.Context, dsn string, verbose bool) (directory, error)

func connect(ctx context.Context, dsn string, verbose bool) (directory, error) {
	opts := []agencymatch.Option{agencymatch.WithPostgres(dsn), agencymatch.WithMaxConns(2)}
	if verbose {
		opts = append(opts, agencymatch.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	}
	c, err := agencymatch.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// globals holds the persistent flags shared by every command.
type globals struct {
	dsn     string
	timeout time.Duration
	verbose bool
	asJSON  bool
	connect connectFunc
}

// open connects using --dsn, falling back to AGENCYMATCH_DSN.
func (g *globals) open(ctx context.Context) (directory, error) {
	dsn := g.dsn
	if dsn == "" {
		dsn = os.Getenv(dsnEnv)
	}
	if dsn == "" {
		return nil, errors.New("no database: pass --dsn or set " + dsnEnv)
	}
	return g.connect(ctx, dsn, g.verbose)
}

func (g *globals) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), g.timeout)
}

func newRootCmd(connect connectFunc) *cobra.Command {
	g := &globals{connect: connect}

	root := &cobra.Command{
		Use:   "agencyctl",
		Short: "Query the GTM agency directory",
		Long: `agencyctl ranks and inspects agencies in the GTM agency directory.

Commands that read the directory need a Postgres DSN from --dsn or the
` + dsnEnv + ` environment variable. normalize works offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.dsn, "dsn", "", "Postgres connection string (or set "+dsnEnv+")")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 30*time.Second, "Operation timeout")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log client operations to stderr")
	root.PersistentFlags().BoolVar(&g.asJSON, "json", false, "Print JSON instead of a table")

	root.AddCommand(
		newSearchCmd(g),
		newAgencyCmd(g),
		newSpecializationsCmd(g),
		newNormalizeCmd(g),
	)
	return root
}
