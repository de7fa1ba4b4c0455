// Package cli implements splitledgerctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/splitledger/pkg/database"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// LoadConfig and OpenSweeper are replaced in tests.
	LoadConfig  func() (*config.Config, error)
	OpenSweeper func(ctx context.Context, cfg *config.Config) (portssvc.SyncMaintenanceSvc, func(), error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for splitledgerctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		LoadConfig:  config.LoadConfig,
		OpenSweeper: openSweeper,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splitledgerctl",
		Short: "Operator tasks for the splitledger service",
		// main prints the returned error
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSweepCommand(opts))

	return cmd
}

// logger writes to stderr so that JSON output on stdout stays parseable.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func openSweeper(ctx context.Context, cfg *config.Config) (portssvc.SyncMaintenanceSvc, func(), error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	repos := pgsql.NewRepositoryProvider(pool)
	container := services.NewServiceContainer(cfg, repos, nil)
	return container.Sync, func() { database.ClosePgxPool(pool) }, nil
}
