package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/gwent/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-run source files when they change",
	Long: `Runs every source file in a directory, then re-runs a file each time
it is written. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := driver.FromConfig(cfg, logger)
		opts.Out = cmd.OutOrStdout()
		if err := driver.New(opts).Watch(ctx, args[0]); err != nil {
			printError("watch failed", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
