package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/tcc-runtime/tcc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	exprStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// interactiveModel is a tiny C expression console: each submitted expression
// is wrapped in a function, compiled to memory, relocated, and executed.
// compiling gates submission: the guard admits one session, so a second
// expression must wait for the in-flight evaluation's result.
type interactiveModel struct {
	guard     *tcc.Guard
	input     textinput.Model
	history   []string
	compiling bool
}

type evalResultMsg struct {
	expr   string
	result int32
	diags  []string
	err    error
}

func newInteractiveModel(guard *tcc.Guard) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "1 + 1"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return &interactiveModel{guard: guard, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) evalCmd(expr string) tea.Cmd {
	return func() tea.Msg {
		msg := evalResultMsg{expr: expr}
		msg.result, msg.diags, msg.err = evaluate(m.guard, expr)
		return msg
	}
}

// evaluate compiles `int run(void) { return (expr); }` and calls it.
func evaluate(guard *tcc.Guard, expr string) (int32, []string, error) {
	ctx, err := tcc.NewContext(guard)
	if err != nil {
		return 0, nil, err
	}
	defer ctx.Close()

	var diags []string
	if err := ctx.SetErrorFunc(func(msg string) { diags = append(diags, msg) }); err != nil {
		return 0, nil, err
	}

	src := fmt.Sprintf("int run(void) { return (%s); }\n", expr)
	if err := ctx.CompileString(src); err != nil {
		return 0, diags, err
	}

	img, err := ctx.Relocate()
	if err != nil {
		return 0, diags, err
	}
	defer img.Close()

	sym, ok := img.Symbol("run")
	if !ok {
		return 0, diags, fmt.Errorf("symbol run not found")
	}
	return tcc.CallInt0(sym), diags, nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.compiling {
				return m, nil
			}
			expr := strings.TrimSpace(m.input.Value())
			if expr == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.compiling = true
			return m, m.evalCmd(expr)
		}

	case evalResultMsg:
		m.compiling = false
		line := exprStyle.Render(msg.expr) + " => "
		if msg.err != nil {
			line += errorStyle.Render(msg.err.Error())
		} else {
			line += resultStyle.Render(fmt.Sprintf("%d", msg.result))
		}
		m.history = append(m.history, line)
		for _, d := range msg.diags {
			m.history = append(m.history, errorStyle.Render("  "+d))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ccrun - C expression console"))
	b.WriteString("\n\n")

	start := 0
	if len(m.history) > 12 {
		start = len(m.history) - 12
	}
	for _, line := range m.history[start:] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(m.history) > 0 {
		b.WriteByte('\n')
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.compiling {
		b.WriteString(helpStyle.Render("compiling... | esc: quit"))
	} else {
		b.WriteString(helpStyle.Render("enter: compile and run | esc: quit"))
	}
	b.WriteByte('\n')
	return b.String()
}

func runInteractive() error {
	guard, err := tcc.Acquire()
	if err != nil {
		return err
	}
	defer guard.Release()

	p := tea.NewProgram(newInteractiveModel(guard))
	_, err = p.Run()
	return err
}
