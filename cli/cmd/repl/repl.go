package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/gpp/lang"
	"github.com/ardnew/gpp/log"
)

// editDoneMsg is sent when editing produced a template that parses.
type editDoneMsg struct{ source string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	contPrompt = "… "
)

func helpMessage() string {
	return `
Commands (prefix with ":" when no loop is open):

  help     Print this cruft
  show     Print the last template in canonical form
  edit     Edit the last template in external $EDITOR
  reset    Discard lines of an unfinished loop
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type template lines. A line without an open loop is expanded at once;
  lines after a "$for (...) {" header are collected until its "}".
  Press Tab / Shift-Tab to cycle through command completions
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	contPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatEcho formats the echo of a submitted line with its prompt.
func formatEcho(prompt, input string) string {
	style := promptStyle
	if prompt == contPrompt {
		style = contPromptStyle
	}

	return style.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	session    *Session
	logger     log.Logger
	history    *History
	historyIdx int
	matches    fuzzy.Matches
	suggIdx    int // selected completion, or -1
	width      int // terminal width for ellipsization
	quitting   bool
}

// Run starts the REPL. History is kept in cacheDir, and opts are used to
// parse and expand every template.
func Run(
	ctx context.Context,
	cacheDir string,
	logger log.Logger,
	opts ...lang.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	opts = append(opts, lang.WithLogger(logger))
	m := newModel(ctx, NewSession(opts...), history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		out, err := m.session.Run(m.ctxFunc(), msg.source)
		if err != nil {
			return m, tea.Println(errorStyle.Render("error: " + err.Error()))
		}

		return m, tea.Println(resultStyle.Render(out))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.width))

	case m.session.Depth() > 0:
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d open loop(s); close with \"}\"", m.session.Depth())))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type a template line, or :help"))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" && m.session.Depth() == 0 {
			m.quitting = true

			return m, tea.Quit
		}

		if m.input.Value() == "" {
			m.session.Reset()
			m.setPrompt()
		}

		m.input.SetValue("")
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		return m.executeInput()

	case tea.KeyTab:
		return m.cycleCompletion(1), nil

	case tea.KeyShiftTab:
		return m.cycleCompletion(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// refreshMatches recomputes command completions for the current input.
func (m *model) refreshMatches() {
	m.suggIdx = -1
	m.matches = nil

	if m.session.Depth() == 0 {
		m.matches = completions(m.input.Value())
	}
}

// cycleCompletion selects the next (dir > 0) or previous completion and
// places it in the input. The candidate list is kept while cycling.
func (m model) cycleCompletion(dir int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	switch {
	case m.suggIdx < 0 && dir < 0:
		m.suggIdx = n - 1
	case m.suggIdx < 0:
		m.suggIdx = 0
	default:
		m.suggIdx = (m.suggIdx + dir + n) % n
	}

	text := cmdPrefix + m.matches[m.suggIdx].Str
	m.input.SetValue(text)
	m.input.SetCursor(len(text))

	if n == 1 {
		m.matches, m.suggIdx = nil, -1
	}

	return m
}

func (m *model) setPrompt() {
	if m.session.Depth() > 0 {
		m.input.Prompt = contPromptStyle.Render(contPrompt)
	} else {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	raw := m.input.Value()
	prompt := evalPrompt

	if m.session.Depth() > 0 {
		prompt = contPrompt
	}

	m.input.SetValue("")
	m.matches, m.suggIdx = nil, -1

	if m.session.Depth() == 0 {
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}

		if isCommand(raw) {
			_, _ = m.history.Write(strings.TrimSpace(raw))
			m.historyIdx = m.history.Len()

			return m.executeCommand(raw)
		}
	}

	_, _ = m.history.Write(raw)
	m.historyIdx = m.history.Len()

	echo := tea.Println(formatEcho(prompt, raw))

	out, done, err := m.session.Feed(m.ctxFunc(), raw)
	m.setPrompt()

	m.logger.TraceContext(m.ctxFunc(), "repl feed",
		slog.String("input", raw),
		slog.Int("depth", m.session.Depth()),
		slog.Bool("expanded", done && err == nil),
	)

	switch {
	case err != nil:
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("error: "+err.Error())))

	case !done || out == "":
		return m, echo

	default:
		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
	}
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(input), cmdPrefix))
	if len(fields) == 0 {
		return m, nil
	}

	echo := tea.Println(formatEcho(evalPrompt, input))

	name, ok := resolveCommand(fields[0])
	if !ok {
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("Unknown command: "+fields[0]+" (try ':help')")))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
	)

	switch name {
	case "quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "show":
		src, err := m.session.Show(m.ctxFunc())

		switch {
		case err != nil:
			return m, tea.Sequence(echo,
				tea.Println(errorStyle.Render("error: "+err.Error())))

		case src == "":
			return m, tea.Sequence(echo,
				tea.Println(hintStyle.Render("nothing expanded yet")))

		default:
			return m, tea.Sequence(echo, tea.Println(src))
		}

	case "reset":
		m.session.Reset()
		m.setPrompt()

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("reset")))

	case "clear":
		return m, tea.ClearScreen

	case "edit":
		return m, tea.Sequence(echo, m.edit())
	}

	return m, echo
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		ctx:     m.ctxFunc(),
		content: m.session.Last(),
		opts:    m.session.opts,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.source == "" {
			return editCancelledMsg{}
		}

		return editDoneMsg{source: cmd.source}
	})
}

func (m model) historyPrev() model {
	if m.historyIdx > 0 {
		m.historyIdx--

		if line, err := m.history.Line(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			m.matches, m.suggIdx = nil, -1
		}
	}

	return m
}

func (m model) historyNext() model {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if line, err := m.history.Line(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
		}
	} else {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
	}

	m.matches, m.suggIdx = nil, -1

	return m
}
