package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/gwent/internal/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Starts an interactive terminal session. Declarations persist
between submissions.

Keys:
  Enter       evaluate the input
  Tab         switch between session, tokens and AST
  Ctrl+P/N    previous/next history entry
  Ctrl+L      clear the transcript
  Ctrl+C      quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// log lines would corrupt the full-screen UI
		opts := tui.FromConfig(cfg, logger.WithOutput(io.Discard))
		return tui.Run(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
