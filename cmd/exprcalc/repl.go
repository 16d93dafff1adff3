package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/exprcalc/calc"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type screen int

const (
	screenMenu screen = iota
	screenExpr
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	engine      *calc.Engine
	logger      *slog.Logger
	screen      screen
	menuIdx     int
	notation    calc.Notation
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	historySize int
	width       int
	height      int
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Choice key.Binding
	Back   key.Binding
	CtrlC  key.Binding
	CtrlD  key.Binding
	CtrlL  key.Binding
	CtrlH  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate"),
	),
	Choice: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "choose"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menu"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "menu"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(engine *calc.Engine, logger *slog.Logger, cfg Config) replModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle

	return replModel{
		textInput:   ti,
		engine:      engine,
		logger:      logger,
		screen:      screenMenu,
		menuIdx:     int(cfg.notation()) - 1,
		history:     make([]historyEntry, 0),
		cmdHistory:  make([]string, 0),
		historyIdx:  -1,
		historySize: cfg.HistorySize,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.CtrlC) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == screenMenu {
			return m.updateMenu(msg)
		}
		return m.updateExpr(msg)
	}

	if m.screen != screenExpr {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.CtrlD):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case key.Matches(msg, keys.Down):
		if m.menuIdx < quitChoice-1 {
			m.menuIdx++
		}
	case key.Matches(msg, keys.Choice):
		return m.choose(int(msg.String()[0] - '1'))
	case key.Matches(msg, keys.Enter):
		return m.choose(m.menuIdx)
	}
	return m, nil
}

// choose acts on a zero-based menu index.
func (m replModel) choose(idx int) (tea.Model, tea.Cmd) {
	if idx == quitChoice-1 {
		m.quitting = true
		return m, tea.Quit
	}
	m.menuIdx = idx
	m = m.enterNotation(calc.Notations()[idx])
	return m, nil
}

func (m replModel) enterNotation(n calc.Notation) replModel {
	m.screen = screenExpr
	m.notation = n
	m.textInput.Prompt = n.String() + "> "
	m.textInput.Placeholder = "e.g. " + n.Example()
	m.textInput.SetValue("")
	m.historyIdx = -1
	return m
}

func (m replModel) backToMenu() replModel {
	m.screen = screenMenu
	m.textInput.SetValue("")
	m.historyIdx = -1
	return m
}

func (m replModel) updateExpr(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.CtrlD), key.Matches(msg, keys.Back):
		return m.backToMenu(), nil

	case key.Matches(msg, keys.CtrlL):
		m.history = make([]historyEntry, 0)
		return m, nil

	case key.Matches(msg, keys.CtrlH):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.Up):
		if len(m.cmdHistory) > 0 {
			if m.historyIdx == -1 {
				m.historyIdx = len(m.cmdHistory) - 1
			} else if m.historyIdx > 0 {
				m.historyIdx--
			}
			m.textInput.SetValue(m.cmdHistory[m.historyIdx])
			m.textInput.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.historyIdx != -1 {
			if m.historyIdx < len(m.cmdHistory)-1 {
				m.historyIdx++
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
			} else {
				m.historyIdx = -1
				m.textInput.SetValue("")
			}
			m.textInput.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		input := strings.TrimSpace(m.textInput.Value())
		if input == "" {
			return m, nil
		}
		if input == "quit" || input == "q" {
			return m.backToMenu(), nil
		}
		if strings.HasPrefix(input, ":") {
			var cmd tea.Cmd
			m, cmd = m.handleCommand(input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, cmd
		}

		output, isErr := m.evaluate(input)
		m.history = appendBounded(m.history, historyEntry{
			input:  input,
			output: output,
			isErr:  isErr,
		}, m.historySize)
		m.cmdHistory = appendBounded(m.cmdHistory, input, m.historySize)
		m.textInput.SetValue("")
		m.historyIdx = -1
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":menu", ":m":
		m = m.backToMenu()
	case ":notation", ":n":
		if len(parts) < 2 {
			m.history = append(m.history, historyEntry{
				input:  input,
				output: "Usage: :notation <prefix|postfix|infix>",
				isErr:  true,
			})
			break
		}
		n, err := calc.ParseNotation(strings.Join(parts[1:], " "))
		if err != nil {
			m.history = append(m.history, historyEntry{input: input, output: err.Error(), isErr: true})
			break
		}
		m.menuIdx = int(n) - 1
		m = m.enterNotation(n)
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Switched to " + n.String(),
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) evaluate(input string) (string, bool) {
	result, err := m.engine.Evaluate(input, m.notation)
	logEvaluation(m.logger, m.notation, input, result, err)
	if err != nil {
		return "Error: " + describeFailure(input, err), true
	}
	return fmt.Sprintf("%s = %s", input, result), false
}

func appendBounded[T any](items []T, item T, limit int) []T {
	items = append(items, item)
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("exprcalc")
	if m.screen == screenExpr {
		header += " " + mutedStyle.Render(m.notation.String())
	}
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	if m.screen == screenMenu {
		b.WriteString(renderMenu(m.menuIdx))
		b.WriteString("\n")
		footer := helpKeyStyle.Render("1-4") + helpDescStyle.Render(" choose  ") +
			helpKeyStyle.Render("↑/↓") + helpDescStyle.Render(" move  ") +
			helpKeyStyle.Render("enter") + helpDescStyle.Render(" select  ") +
			helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
		b.WriteString(footer)
		return b.String()
	}

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if availableHeight > 0 && len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("esc") + helpDescStyle.Render(" menu  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderMenu(selected int) string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Choose a notation"))
	for i, n := range calc.Notations() {
		lines = append(lines, menuLine(i, selected, fmt.Sprintf("%d) %-22s", i+1, n), "e.g. "+n.Example()))
	}
	lines = append(lines, menuLine(quitChoice-1, selected, fmt.Sprintf("%d) quit", quitChoice), ""))
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func menuLine(idx, selected int, label, example string) string {
	marker := "  "
	style := lipgloss.NewStyle()
	if idx == selected {
		marker = "› "
		style = selectedStyle
	}
	line := marker + style.Render(label)
	if example != "" {
		line += " " + mutedStyle.Render(example)
	}
	return line
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate expression history"},
		{"Enter", "Evaluate expression"},
		{"q, quit", "Return to the notation menu"},
		{":notation", "Switch notation (prefix, postfix, infix)"},
		{":menu", "Return to the notation menu"},
		{":clear", "Clear history"},
		{":help", "Toggle this help"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-10s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(engine *calc.Engine, logger *slog.Logger, cfg Config) error {
	p := tea.NewProgram(newREPLModel(engine, logger, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
