package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/printer"
	"github.com/msto63/gwent/internal/pipeline"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runStage(cmd, args[0], gwerror.StageLex)
		if err != nil {
			return err
		}
		for _, tok := range res.Tokens {
			fmt.Fprintln(cmd.OutOrStdout(), tok.String())
		}
		return nil
	},
}

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree of a source file",
	Long: `Parses a source file and prints the syntax tree in source-like form.
For loops are shown in their desugared while form.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runStage(cmd, args[0], gwerror.StageParse)
		if err != nil {
			return err
		}
		if len(res.Nodes) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), printer.Program(res.Nodes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)
}

// runStage runs path up to stage and prints any diagnostics to stderr
func runStage(cmd *cobra.Command, path string, stage gwerror.Stage) (*pipeline.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gwerror.Wrap(err, "cannot read "+path).WithCode(gwerror.CodeIO)
	}

	opts := pipeline.FromConfig(cfg, logger)
	opts.StopAfter = stage
	res := pipeline.Run(cmd.Context(), string(data), opts)

	for _, d := range res.Diagnostics {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if res.Failed() {
		return res, fmt.Errorf("%s: %d diagnostics", path, len(res.Diagnostics))
	}
	return res, nil
}
