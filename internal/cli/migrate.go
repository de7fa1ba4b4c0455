package cli

import (
	"fmt"

	"github.com/SscSPs/splitledger/pkg/database"
	"github.com/spf13/cobra"
)

// newMigrateCommand creates the migrate command.
func newMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply pending database migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			if err := database.RunMigrations(cfg.DatabaseURL, path, rootOpts.logger(cmd)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "migrations source URL (defaults to MIGRATIONS_PATH)")
	return cmd
}
