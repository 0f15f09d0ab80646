package tui

import (
	"github.com/charmbracelet/lipgloss"

	gwerror "github.com/msto63/gwent/internal/core/error"
)

// Palette
var (
	colorAccent = lipgloss.Color("#A78BFA")
	colorOK     = lipgloss.Color("#34D399")
	colorValue  = lipgloss.Color("#FBBF24")
	colorLex    = lipgloss.Color("#F472B6")
	colorParse  = lipgloss.Color("#FB923C")
	colorEval   = lipgloss.Color("#F87171")
	colorDim    = lipgloss.Color("#9CA3AF")
	colorText   = lipgloss.Color("#E5E7EB")
	colorBar    = lipgloss.Color("#1F2937")
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	VersionStyle = lipgloss.NewStyle().Foreground(colorDim)

	// REPL transcript
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	OutputStyle = lipgloss.NewStyle().Foreground(colorText)
	ValueStyle  = lipgloss.NewStyle().Foreground(colorValue)
	InputStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorAccent).
			PaddingLeft(1)

	TabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorDim)
	ActiveTabStyle = TabStyle.Foreground(colorAccent).Bold(true).Underline(true)

	StatusBarStyle = lipgloss.NewStyle().Background(colorBar).Foreground(colorText).Padding(0, 1)

	// run report
	FileStyle        = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	SectionStyle     = lipgloss.NewStyle().Foreground(colorDim).Underline(true)
	FingerprintStyle = lipgloss.NewStyle().Foreground(colorDim)
	OKStyle          = lipgloss.NewStyle().Foreground(colorOK)
	FailStyle        = lipgloss.NewStyle().Bold(true).Foreground(colorEval)
)

var stageStyles = map[gwerror.Stage]lipgloss.Style{
	gwerror.StageLex:   lipgloss.NewStyle().Foreground(colorLex),
	gwerror.StageParse: lipgloss.NewStyle().Foreground(colorParse),
	gwerror.StageEval:  lipgloss.NewStyle().Foreground(colorEval),
}

// DiagnosticStyle returns the style for diagnostics of a stage
func DiagnosticStyle(stage gwerror.Stage) lipgloss.Style {
	if s, ok := stageStyles[stage]; ok {
		return s
	}
	return FailStyle
}

// RenderError renders a failure that has no stage, such as an unreadable file
func RenderError(msg string) string {
	return FailStyle.Render("error: " + msg)
}
