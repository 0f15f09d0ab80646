package driver

import (
	"fmt"
	"strings"

	"github.com/msto63/gwent/internal/lang/printer"
	"github.com/msto63/gwent/internal/tui"
)

// Report writes the result of one file
func (d *Driver) Report(fr FileResult) {
	var b strings.Builder

	header := tui.FileStyle.Render(fr.Path)
	if fr.Fingerprint != "" {
		header += " " + tui.FingerprintStyle.Render(fr.Fingerprint[:12])
	}
	b.WriteString(header + "\n")

	if fr.Err != nil {
		b.WriteString("  " + tui.RenderError(fr.Err.Error()) + "\n")
		fmt.Fprint(d.opts.Out, b.String())
		return
	}
	res := fr.Result

	if d.opts.PrintTokens && len(res.Tokens) > 0 {
		b.WriteString(tui.SectionStyle.Render("tokens") + "\n")
		for _, tok := range res.Tokens {
			b.WriteString("  " + tok.String() + "\n")
		}
	}

	if d.opts.PrintAST && len(res.Nodes) > 0 {
		b.WriteString(tui.SectionStyle.Render("ast") + "\n")
		for _, line := range strings.Split(printer.Program(res.Nodes), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	if res.Output != "" {
		b.WriteString(tui.SectionStyle.Render("output") + "\n")
		for _, line := range strings.Split(strings.TrimSuffix(res.Output, "\n"), "\n") {
			b.WriteString("  " + tui.OutputStyle.Render(line) + "\n")
		}
	}

	if res.Failed() {
		for _, diag := range res.Diagnostics {
			b.WriteString("  " + tui.DiagnosticStyle(diag.Stage).Render(diag.String()) + "\n")
		}
	} else {
		b.WriteString("  " + tui.OKStyle.Render("ok") + "\n")
	}

	fmt.Fprint(d.opts.Out, b.String())
}

// ReportSummary writes the totals of a run
func (d *Driver) ReportSummary(s *Summary) {
	line := fmt.Sprintf("%d files, %d passed, %d failed", len(s.Files), s.Passed, s.Failed)
	style := tui.OKStyle
	if s.Failed > 0 {
		style = tui.FailStyle
	}
	fmt.Fprintln(d.opts.Out, style.Render(line))
}
