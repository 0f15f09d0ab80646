// File: driver.go
// Title: Source File Driver
// Description: Collects source files from directories and explicit paths,
//              runs each one through the pipeline and reports the results.
//              A failing file never stops the remaining ones.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package driver

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/msto63/gwent/internal/core/config"
	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/pipeline"
)

// Options configures a Driver
type Options struct {
	Logger      *gwlog.Logger
	Out         io.Writer // report destination, defaults to stdout
	Extensions  []string
	PrintTokens bool
	PrintAST    bool
	Debounce    time.Duration
	Pipeline    pipeline.Options
}

// FromConfig derives driver options from the loaded configuration
func FromConfig(cfg *config.Config, logger *gwlog.Logger) Options {
	return Options{
		Logger:      logger,
		Extensions:  cfg.Driver.Extensions,
		PrintTokens: cfg.Driver.PrintTokens,
		PrintAST:    cfg.Driver.PrintAST,
		Debounce:    cfg.Driver.Debounce.Duration,
		Pipeline:    pipeline.FromConfig(cfg, logger),
	}
}

// FileResult is the outcome of one source file
type FileResult struct {
	Path        string
	Fingerprint string
	Result      *pipeline.Result // nil when the file could not be read
	Err         error            // read failure
}

// Failed reports whether reading or processing the file failed
func (fr FileResult) Failed() bool {
	return fr.Err != nil || (fr.Result != nil && fr.Result.Failed())
}

// Summary aggregates a driver run
type Summary struct {
	Files  []FileResult
	Passed int
	Failed int
}

// Driver runs source files through the pipeline
type Driver struct {
	opts   Options
	logger *gwlog.Logger
}

// New creates a driver
func New(opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = gwlog.GetDefault()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".gw", ".txt"}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if opts.Pipeline.Logger == nil {
		opts.Pipeline.Logger = opts.Logger
	}
	return &Driver{
		opts:   opts,
		logger: opts.Logger.WithField("component", "driver"),
	}
}

// Collect expands directories into their source files. Directories are
// scanned one level deep and filtered by extension; explicit files are
// always kept. The result is sorted and free of duplicates.
func (d *Driver) Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, gwerror.Wrap(err, "cannot access "+p).WithCode(gwerror.CodeIO)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, gwerror.Wrap(err, "cannot read directory "+p).WithCode(gwerror.CodeIO)
		}
		for _, entry := range entries {
			if entry.IsDir() || !d.hasExtension(entry.Name()) {
				continue
			}
			add(filepath.Join(p, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Run processes every file found under paths and writes the report
func (d *Driver) Run(ctx context.Context, paths []string) (*Summary, error) {
	files, err := d.Collect(paths)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Processing source files", gwlog.Fields{"files": len(files)})
	summary := &Summary{}
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		fr := d.RunFile(ctx, file)
		d.Report(fr)
		summary.add(fr)
	}
	d.ReportSummary(summary)
	return summary, nil
}

// RunFile processes a single file
func (d *Driver) RunFile(ctx context.Context, path string) FileResult {
	fr := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Err = gwerror.Wrap(err, "cannot read "+path).WithCode(gwerror.CodeIO)
		d.logger.LogError(fr.Err)
		return fr
	}
	fr.Fingerprint = Fingerprint(data)

	fr.Result = pipeline.Run(ctx, string(data), d.opts.Pipeline)
	d.logger.Debug("File processed", gwlog.Fields{
		"file":        path,
		"fingerprint": fr.Fingerprint,
		"run":         fr.Result.RunID,
		"diagnostics": len(fr.Result.Diagnostics),
		"duration":    fr.Result.Duration.String(),
	})
	return fr
}

// Fingerprint returns the hex blake3 digest of source text
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (d *Driver) hasExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range d.opts.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func (s *Summary) add(fr FileResult) {
	s.Files = append(s.Files, fr)
	if fr.Failed() {
		s.Failed++
	} else {
		s.Passed++
	}
}
