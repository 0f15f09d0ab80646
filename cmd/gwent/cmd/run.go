package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/gwent/internal/driver"
)

var (
	runPrintTokens bool
	runPrintAST    bool
	runExtensions  []string
)

var runCmd = &cobra.Command{
	Use:   "run <dir|file>...",
	Short: "Run source files",
	Long: `Runs every source file found in the given directories and files.

Directories are scanned one level deep for files with a configured
extension (.gw and .txt by default). A failing file is reported and
the remaining files still run. The exit status is 1 if any file failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runPrintTokens, "tokens", false, "print the tokens of each file")
	runCmd.Flags().BoolVar(&runPrintAST, "ast", false, "print the syntax tree of each file")
	runCmd.Flags().StringSliceVar(&runExtensions, "ext", nil, "source file extensions (default from config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	opts := driver.FromConfig(cfg, logger)
	opts.Out = cmd.OutOrStdout()
	if cmd.Flags().Changed("tokens") {
		opts.PrintTokens = runPrintTokens
	}
	if cmd.Flags().Changed("ast") {
		opts.PrintAST = runPrintAST
	}
	if len(runExtensions) > 0 {
		opts.Extensions = runExtensions
	}

	summary, err := driver.New(opts).Run(cmd.Context(), args)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Files))
	}
	return nil
}
