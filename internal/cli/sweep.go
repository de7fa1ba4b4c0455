package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/spf13/cobra"
)

func newSweepCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove sync intentions that can no longer be acted on",
		Long: `Remove sync intentions whose proposer and counterparty are no longer
mutually connected, or whose debt was unlocked or re-locked since the
proposal was made.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(rootOpts, cmd)
		},
	}
}

func runSweep(opts *RootOptions, cmd *cobra.Command) error {
	logger := opts.logger(cmd)
	ctx := middleware.WithLogger(cmd.Context(), logger)

	cfg, err := opts.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sweeper, closeFn, err := opts.OpenSweeper(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	removed, err := sweeper.SweepDanglingIntentions(ctx)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	logger.Debug("Sweep finished", slog.Int64("removed", removed))

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return json.NewEncoder(out).Encode(dto.SweepResponse{Removed: removed})
	}
	_, err = fmt.Fprintf(out, "removed %d dangling sync intention(s)\n", removed)
	return err
}
