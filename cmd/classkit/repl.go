package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/paulmoore/classkit/classes"
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

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	config      classes.Config
	engine      *classes.Engine
	instances   map[string]classes.Value
	instOrder   []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle instances"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg classes.Config) (replModel, error) {
	ti := textinput.New()
	ti.Placeholder = "type a command, :help for the list..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "classes> "

	engine, err := newMenagerie(cfg)
	if err != nil {
		return replModel{}, err
	}

	return replModel{
		textInput:  ti,
		config:     cfg,
		engine:     engine,
		instances:  make(map[string]classes.Value),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}, nil
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
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

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

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
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		engine, err := newMenagerie(m.config)
		if err != nil {
			m.history = append(m.history, historyEntry{input: input, output: err.Error(), isErr: true})
			return m, nil
		}
		m.engine = engine
		m.instances = make(map[string]classes.Value)
		m.instOrder = nil
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Workbench reset",
			isErr:  false,
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

var replCommands = []string{"classes", "methods", "subclass", "new", "call", "super", "callc", "isa", "fields"}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, c := range replCommands {
		if strings.HasPrefix(c, lastWord) {
			completions = append(completions, c)
		}
	}
	for _, class := range m.engine.Classes() {
		if strings.HasPrefix(class.Name, lastWord) {
			completions = append(completions, class.Name)
		}
	}
	for _, id := range m.instOrder {
		if strings.HasPrefix(id, lastWord) {
			completions = append(completions, id)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			input:  "",
			output: "Completions: " + strings.Join(completions, ", "),
			isErr:  false,
		})
	}

	return m
}

// evaluate executes one workbench command against the engine.
func (m *replModel) evaluate(input string) (string, bool) {
	tokens := strings.Fields(input)
	cmd, rest := tokens[0], tokens[1:]
	ctx := context.Background()

	fail := func(err error) (string, bool) { return err.Error(), true }

	switch cmd {
	case "classes":
		var lines []string
		for _, class := range m.engine.Classes() {
			if class.Super() == nil {
				lines = append(lines, class.Name)
				continue
			}
			lines = append(lines, fmt.Sprintf("%s < %s", class.Name, class.Super().Name))
		}
		return strings.Join(lines, "\n"), false

	case "methods":
		if len(rest) != 1 {
			return "usage: methods <Class>", true
		}
		class, err := m.lookupClass(rest[0])
		if err != nil {
			return fail(err)
		}
		var lines []string
		for _, name := range class.MethodNames() {
			lines = append(lines, fmt.Sprintf("%s#%s", class.Name, name))
		}
		for _, name := range class.ClassMethodNames() {
			lines = append(lines, fmt.Sprintf("%s.%s", class.Name, name))
		}
		if len(lines) == 0 {
			return "(no methods)", false
		}
		return strings.Join(lines, "\n"), false

	case "subclass":
		if len(rest) < 1 || len(rest) > 2 {
			return "usage: subclass <Name> [Super]", true
		}
		var super *classes.ClassDef
		if len(rest) == 2 {
			parent, err := m.lookupClass(rest[1])
			if err != nil {
				return fail(err)
			}
			super = parent
		}
		class, err := m.engine.DefineClass(rest[0], super)
		if err != nil {
			return fail(err)
		}
		return fmt.Sprintf("%s < %s", class.Name, class.Super().Name), false

	case "new":
		if len(rest) < 1 {
			return "usage: new <Class> [args...]", true
		}
		class, err := m.lookupClass(rest[0])
		if err != nil {
			return fail(err)
		}
		inst, err := m.engine.New(ctx, class, parseArgs(rest[1:]), classes.CallOptions{})
		if err != nil {
			return fail(err)
		}
		id := fmt.Sprintf("$%d", len(m.instOrder)+1)
		m.instances[id] = inst
		m.instOrder = append(m.instOrder, id)
		return fmt.Sprintf("%s = %s", id, inst.String()), false

	case "call", "super":
		if len(rest) < 2 {
			return fmt.Sprintf("usage: %s <$n> <method> [args...]", cmd), true
		}
		receiver, err := m.lookupInstance(rest[0])
		if err != nil {
			return fail(err)
		}
		if cmd == "super" {
			receiver, err = receiver.Super()
			if err != nil {
				return fail(err)
			}
		}
		result, err := m.engine.Call(ctx, receiver, rest[1], parseArgs(rest[2:]), classes.CallOptions{})
		if err != nil {
			return fail(err)
		}
		return result.String(), false

	case "callc":
		if len(rest) < 2 {
			return "usage: callc <Class> <method> [args...]", true
		}
		class, err := m.lookupClass(rest[0])
		if err != nil {
			return fail(err)
		}
		result, err := m.engine.CallClass(ctx, class, rest[1], parseArgs(rest[2:]), classes.CallOptions{})
		if err != nil {
			return fail(err)
		}
		return result.String(), false

	case "isa":
		if len(rest) != 2 {
			return "usage: isa <$n> <Class>", true
		}
		receiver, err := m.lookupInstance(rest[0])
		if err != nil {
			return fail(err)
		}
		class, err := m.lookupClass(rest[1])
		if err != nil {
			return fail(err)
		}
		ok, err := classes.InstanceOf(receiver, class)
		if err != nil {
			return fail(err)
		}
		return strconv.FormatBool(ok), false

	case "fields":
		if len(rest) != 1 {
			return "usage: fields <$n>", true
		}
		receiver, err := m.lookupInstance(rest[0])
		if err != nil {
			return fail(err)
		}
		fields := receiver.Fields()
		if len(fields) == 0 {
			return "{}", false
		}
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s: %s", name, fields[name].String())
		}
		return "{" + strings.Join(parts, ", ") + "}", false

	default:
		return fmt.Sprintf("unknown command %s (:help lists commands)", cmd), true
	}
}

func (m *replModel) lookupClass(name string) (*classes.ClassDef, error) {
	class, ok := m.engine.Class(name)
	if !ok {
		return nil, fmt.Errorf("unknown class %s", name)
	}
	return class, nil
}

func (m *replModel) lookupInstance(id string) (classes.Value, error) {
	inst, ok := m.instances[id]
	if !ok {
		return classes.NewNil(), fmt.Errorf("unknown instance %s (create one with new)", id)
	}
	return inst, nil
}

// parseArgs converts command tokens into runtime values: ints, floats,
// bools, nil, [a,b] arrays and {k:v} hashes are recognized, everything
// else is a string. Double quotes are stripped so names with digits stay
// strings. Collection literals cannot contain spaces since the command
// line is split on whitespace.
func parseArgs(tokens []string) []classes.Value {
	args := make([]classes.Value, len(tokens))
	for i, tok := range tokens {
		args[i] = parseArg(tok)
	}
	return args
}

func parseArg(tok string) classes.Value {
	if len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) {
		return classes.NewString(tok[1 : len(tok)-1])
	}
	if len(tok) >= 2 && strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") {
		inner := tok[1 : len(tok)-1]
		if inner == "" {
			return classes.NewArray(nil)
		}
		parts := splitTopLevel(inner)
		elems := make([]classes.Value, len(parts))
		for i, part := range parts {
			elems[i] = parseArg(part)
		}
		return classes.NewArray(elems)
	}
	if len(tok) >= 2 && strings.HasPrefix(tok, "{") && strings.HasSuffix(tok, "}") {
		inner := tok[1 : len(tok)-1]
		entries := make(map[string]classes.Value)
		if inner == "" {
			return classes.NewHash(entries)
		}
		for _, part := range splitTopLevel(inner) {
			key, val, ok := strings.Cut(part, ":")
			if !ok {
				entries[part] = classes.NewNil()
				continue
			}
			entries[key] = parseArg(val)
		}
		return classes.NewHash(entries)
	}
	switch tok {
	case "nil":
		return classes.NewNil()
	case "true":
		return classes.NewBool(true)
	case "false":
		return classes.NewBool(false)
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return classes.NewInt(i)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return classes.NewFloat(f)
	}
	return classes.NewString(tok)
}

// splitTopLevel splits on commas outside any bracket nesting, so literals
// inside a collection stay intact.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("classkit workbench")
	limits := mutedStyle.Render(m.engine.ConfigSummary())
	b.WriteString(header + " " + limits + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	if m.showVars {
		reservedLines += len(m.instances) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		for _, line := range strings.Split(entry.output, "\n") {
			if entry.isErr {
				b.WriteString("  " + errorStyle.Render("✗ "+line) + "\n")
			} else {
				b.WriteString("  " + resultStyle.Render("→ "+line) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(m.renderInstancesPanel())
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" instances  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func (m replModel) renderInstancesPanel() string {
	if len(m.instOrder) == 0 {
		return borderStyle.Render(mutedStyle.Render("No instances created"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Instances"))
	idStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, id := range m.instOrder {
		inst := m.instances[id]
		lines = append(lines, fmt.Sprintf("  %s = %s", idStyle.Render(id), inst.String()))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"classes", "List classes and superclass links"},
		{"methods C", "List methods of class C"},
		{"subclass N S", "Define class N under S (root if omitted)"},
		{"new C a...", "Create an instance, bound as $1, $2, ..."},
		{"call $n m a...", "Call instance method m on $n"},
		{"super $n m a...", "Call m through $n's super proxy"},
		{"callc C m a...", "Call class method m on C"},
		{"isa $n C", "Ancestry check"},
		{"fields $n", "Show the instance's fields"},
		{":reset", "Rebuild the engine and drop instances"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-14s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(cfg classes.Config) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("classkit repl: stdin is not a terminal (try the demo command)")
	}
	model, err := newREPLModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
