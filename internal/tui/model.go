package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/msto63/gwent/internal/core/config"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/core/version"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/eval"
	"github.com/msto63/gwent/internal/lang/printer"
	"github.com/msto63/gwent/internal/lang/token"
	"github.com/msto63/gwent/internal/pipeline"
)

// View represents different views in the TUI
type View int

const (
	ViewTranscript View = iota
	ViewTokens
	ViewAST
)

var viewNames = []string{"Session", "Tokens", "AST"}

// Options configures the REPL
type Options struct {
	Logger      *gwlog.Logger
	Prompt      string
	HistorySize int
	Pipeline    pipeline.Options
}

// FromConfig derives REPL options from the loaded configuration
func FromConfig(cfg *config.Config, logger *gwlog.Logger) Options {
	return Options{
		Logger:      logger,
		Prompt:      cfg.REPL.Prompt,
		HistorySize: cfg.REPL.HistorySize,
		Pipeline:    pipeline.FromConfig(cfg, logger),
	}
}

// Entry is one submission and its outcome
type Entry struct {
	Input       string
	Output      string
	Value       string
	Diagnostics []pipeline.Diagnostic
}

// Failed reports whether the submission produced diagnostics
func (e Entry) Failed() bool {
	return len(e.Diagnostics) > 0
}

// Model is the REPL model. All submissions share one evaluator, so
// declarations stay visible to later input.
type Model struct {
	// State
	view    View
	width   int
	height  int
	ready   bool
	loading bool

	// Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Session state
	session   string
	evaluator *eval.Evaluator
	out       *bytes.Buffer
	entries   []Entry
	tokens    []token.Token
	nodes     []ast.Stmt

	// History navigation; historyPos == len(history) means a fresh line
	history    []string
	historyPos int

	opts Options
}

// NewModel creates a new REPL model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = gwlog.GetDefault()
	}
	if opts.Prompt == "" {
		opts.Prompt = "gw> "
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 500
	}

	session := uuid.NewString()
	logger := opts.Logger.WithRunID(session).WithField("component", "repl")
	opts.Logger = logger
	opts.Pipeline.Logger = logger

	out := &bytes.Buffer{}
	evaluator := eval.New(eval.Options{Logger: logger, Output: out, MaxDepth: opts.Pipeline.EvalMaxDepth})
	opts.Pipeline.Evaluator = evaluator

	ta := textarea.New()
	ta.Placeholder = "Enter statements..."
	ta.Prompt = opts.Prompt
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		view:      ViewTranscript,
		textarea:  ta,
		spinner:   sp,
		session:   session,
		evaluator: evaluator,
		out:       out,
		opts:      opts,
	}
}

// Run starts the REPL and blocks until the user quits
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.view = (m.view + 1) % View(len(viewNames))
			m.updateContent()
			return m, nil

		case "enter":
			if !m.loading {
				input := strings.TrimSpace(m.textarea.Value())
				if input != "" {
					m.remember(input)
					m.textarea.Reset()
					m.loading = true
					return m, tea.Batch(m.spinner.Tick, m.evaluate(input))
				}
			}
			return m, nil

		case "ctrl+p":
			m.recall(-1)
			return m, nil

		case "ctrl+n":
			m.recall(1)
			return m, nil

		case "ctrl+l":
			m.entries = nil
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-9))
			m.viewport.YPosition = 3
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-9)
		}
		m.textarea.SetWidth(max(10, msg.Width-4))
		m.updateContent()

	case evalResultMsg:
		m.loading = false
		m.entries = append(m.entries, msg.entry)
		m.tokens = msg.tokens
		m.nodes = msg.nodes
		m.updateContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Update components
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.loading {
		s.WriteString(m.spinner.View())
		s.WriteString(" Evaluating...\n")
	}

	s.WriteString(InputStyle.Render(m.textarea.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	var renderedTabs []string
	for i, name := range viewNames {
		if View(i) == m.view {
			renderedTabs = append(renderedTabs, ActiveTabStyle.Render(name))
		} else {
			renderedTabs = append(renderedTabs, TabStyle.Render(name))
		}
	}

	title := TitleStyle.Render("gwent") + " " + VersionStyle.Render(version.String())
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabLine)
}

func (m *Model) renderFooter() string {
	help := "Tab: view • Ctrl+P/N: history • Ctrl+L: clear • Ctrl+C: quit"
	session := fmt.Sprintf("session %s", m.session[:8])

	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-len(help)-len(session)-4)),
			session,
		),
	)
}

// renderContent builds the text of the current view
func (m *Model) renderContent() string {
	var content strings.Builder

	switch m.view {
	case ViewTranscript:
		for _, e := range m.entries {
			content.WriteString(PromptStyle.Render(m.opts.Prompt))
			content.WriteString(e.Input)
			content.WriteString("\n")
			if e.Output != "" {
				content.WriteString(OutputStyle.Render(strings.TrimSuffix(e.Output, "\n")))
				content.WriteString("\n")
			}
			if e.Value != "" {
				content.WriteString(ValueStyle.Render("=> " + e.Value))
				content.WriteString("\n")
			}
			for _, d := range e.Diagnostics {
				content.WriteString(DiagnosticStyle(d.Stage).Render(d.String()))
				content.WriteString("\n")
			}
		}

	case ViewTokens:
		for _, tok := range m.tokens {
			content.WriteString(tok.String())
			content.WriteString("\n")
		}

	case ViewAST:
		if len(m.nodes) > 0 {
			content.WriteString(printer.Program(m.nodes))
			content.WriteString("\n")
		}
	}

	return content.String()
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoBottom()
}

// remember appends input to the history, dropping the oldest entries
// beyond the configured size
func (m *Model) remember(input string) {
	if n := len(m.history); n == 0 || m.history[n-1] != input {
		m.history = append(m.history, input)
	}
	if over := len(m.history) - m.opts.HistorySize; over > 0 {
		m.history = m.history[over:]
	}
	m.historyPos = len(m.history)
}

// recall moves through the history by delta
func (m *Model) recall(delta int) {
	pos := m.historyPos + delta
	if pos < 0 || pos > len(m.history) {
		return
	}
	m.historyPos = pos
	if pos == len(m.history) {
		m.textarea.Reset()
		return
	}
	m.textarea.SetValue(m.history[pos])
}

type evalResultMsg struct {
	entry  Entry
	tokens []token.Token
	nodes  []ast.Stmt
}

// evaluate runs input against the session evaluator
func (m *Model) evaluate(input string) tea.Cmd {
	evaluator, out, opts := m.evaluator, m.out, m.opts.Pipeline
	return func() tea.Msg {
		out.Reset()
		opts.Evaluator = evaluator
		res := pipeline.Run(context.Background(), input, opts)

		entry := Entry{Input: input, Output: out.String()}
		entry.Diagnostics = res.Diagnostics
		if !res.Failed() && len(res.Nodes) > 0 {
			if _, ok := res.Nodes[len(res.Nodes)-1].(*ast.ExprStmt); ok && !res.Value.IsNull() {
				entry.Value = res.Value.String()
			}
		}
		return evalResultMsg{entry: entry, tokens: res.Tokens, nodes: res.Nodes}
	}
}
