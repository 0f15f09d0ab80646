package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/gwent/internal/core/config"
	gwlog "github.com/msto63/gwent/internal/core/log"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	// set by loadConfig before any subcommand runs
	cfg    *config.Config
	logger *gwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gwent",
	Short: "gwent - tokenizer, parser and evaluator for gwent scripts",
	Long: `gwent runs scripts written in a small C-like language.

Every source file passes through three stages:
  lex    - turns text into tokens
  parse  - builds a syntax tree, reporting every syntax error
  eval   - type-checks and executes the tree

Configuration is read from --config, $GWENT_CONFIG, ./gwent.toml,
./gwent.yaml or ~/.config/gwent/config.toml, in that order.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json or console")
}

// loadConfig reads the configuration and builds the process logger
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level, err := gwlog.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = gwlog.LevelDebug
	}

	formatName := cfg.General.LogFormat
	if logFormat != "" {
		formatName = logFormat
	}
	format, err := gwlog.ParseFormat(formatName)
	if err != nil {
		return fmt.Errorf("invalid log format: %w", err)
	}

	logger = gwlog.NewWithConfig(gwlog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "gwent",
	})
	gwlog.SetDefault(logger)
	return nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
