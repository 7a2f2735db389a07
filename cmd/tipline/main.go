package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tipline/tipline/cmd/tipline/commands"
	"github.com/tipline/tipline/config"
	"github.com/tipline/tipline/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tipline",
	Short: "tipline - Whistleblower submission tracking",
	Long: `tipline — Schema-driven storage for whistleblower submissions.

Tracks submissions, per-receiver tip views, comments, private messages,
attachments, and identity access requests.

Examples:
  tipline bootstrap        # Create the settings singletons
  tipline db migrate       # Bring the database schema up to date
  tipline db stats         # Show row counts per table
  tipline version          # Show version information`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || cfg.Log.Verbose {
			logger.SetVerbose()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Increase output verbosity")

	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.BootstrapCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
