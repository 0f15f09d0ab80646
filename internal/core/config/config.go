package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete gwent configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Eval    EvalConfig    `toml:"eval" yaml:"eval"`
	Driver  DriverConfig  `toml:"driver" yaml:"driver"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// LexerConfig holds tokenizer settings
type LexerConfig struct {
	TraceTokens bool `toml:"trace_tokens" yaml:"trace_tokens"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

// EvalConfig holds evaluator settings
type EvalConfig struct {
	MaxDepth int      `toml:"max_depth" yaml:"max_depth"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
}

// DriverConfig holds settings for processing source files
type DriverConfig struct {
	Extensions  []string `toml:"extensions" yaml:"extensions"`
	PrintTokens bool     `toml:"print_tokens" yaml:"print_tokens"`
	PrintAST    bool     `toml:"print_ast" yaml:"print_ast"`
	Debounce    Duration `toml:"debounce" yaml:"debounce"`
}

// REPLConfig holds settings for the interactive session
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
}

// Duration wraps time.Duration for text unmarshaling
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML accepts the same duration strings as the TOML form
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads from $GWENT_CONFIG or the first default location found.
// With no file anywhere the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("GWENT_CONFIG"); path != "" {
		return Load(path)
	}

	defaultPaths := []string{
		"./gwent.toml",
		"./gwent.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/gwent/config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Parser.MaxDepth <= 0 {
		c.Parser.MaxDepth = 256
	}

	if c.Eval.MaxDepth <= 0 {
		c.Eval.MaxDepth = 256
	}
	if c.Eval.Timeout.Duration <= 0 {
		c.Eval.Timeout.Duration = 10 * time.Second
	}

	if len(c.Driver.Extensions) == 0 {
		c.Driver.Extensions = []string{".gw", ".txt"}
	}
	if c.Driver.Debounce.Duration <= 0 {
		c.Driver.Debounce.Duration = 200 * time.Millisecond
	}

	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "gw> "
	}
	if c.REPL.HistorySize <= 0 {
		c.REPL.HistorySize = 500
	}
}

// HasExtension reports whether path carries one of the driver extensions
func (c *Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Driver.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
