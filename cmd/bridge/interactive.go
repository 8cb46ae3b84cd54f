package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/runtime-bridge/config"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/runtime"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	funcStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	resultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type callResultMsg struct {
	result  string
	foreign string
	err     error
}

type interactiveModel struct {
	sess   *runtime.Session
	funcs  []funcInfo
	state  modelState
	cursor int

	selected funcInfo
	inputs   []textinput.Model
	focused  int

	result  string
	foreign string
	callErr error
}

func newInteractiveModel(cfg config.Options) (*interactiveModel, error) {
	sess, err := runtime.New(context.Background(), newPlayground(), runtime.WithMarshalOptions(cfg.Marshal()))
	if err != nil {
		return nil, err
	}
	return &interactiveModel{
		sess:  sess,
		funcs: playgroundFuncs,
		state: stateSelectFunc,
	}, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateSelectFunc || msg.String() == "ctrl+c" {
				m.sess.Close(context.Background())
				return m, tea.Quit
			}

		case "up":
			if m.state == stateSelectFunc && m.cursor > 0 {
				m.cursor--
			}

		case "down":
			if m.state == stateSelectFunc && m.cursor < len(m.funcs)-1 {
				m.cursor++
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 0 {
				m.inputs[m.focused].Blur()
				m.focused = (m.focused + 1) % len(m.inputs)
				m.inputs[m.focused].Focus()
			}

		case "esc":
			if m.state == stateInputArgs || m.state == stateShowResult {
				m.state = stateSelectFunc
				m.callErr = nil
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.selected = m.funcs[m.cursor]
				if len(m.selected.params) == 0 {
					return m, m.callFunction(nil)
				}
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				values := make([]string, len(m.inputs))
				for i, in := range m.inputs {
					values[i] = in.Value()
				}
				return m, m.callFunction(values)

			case stateShowResult:
				m.state = stateSelectFunc
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.foreign = msg.foreign
		m.callErr = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs && len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	m.inputs = make([]textinput.Model, len(m.selected.params))
	for i, p := range m.selected.params {
		in := textinput.New()
		in.Placeholder = p.typ
		in.Prompt = p.name + ": "
		in.Width = 40
		if i == 0 {
			in.Focus()
		}
		m.inputs[i] = in
	}
	m.focused = 0
}

func (m *interactiveModel) callFunction(raw []string) tea.Cmd {
	sess := m.sess
	name := m.selected.name
	return func() tea.Msg {
		ctx := context.Background()
		fargs := make([]foreign.Value, len(raw))
		for i, r := range raw {
			v, err := parseLiteral(r)
			if err != nil {
				return callResultMsg{err: err}
			}
			fv, err := sess.Marshaller().ToForeign(v)
			if err != nil {
				return callResultMsg{err: err}
			}
			fargs[i] = fv
		}
		fv, err := sess.CallForeign(ctx, name, fargs)
		if err != nil {
			return callResultMsg{err: err}
		}
		host, err := sess.Marshaller().ToHost(fv)
		if err != nil {
			return callResultMsg{err: err}
		}
		return callResultMsg{result: fmt.Sprintf("%v", host), foreign: fv.String()}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("runtime-bridge playground"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function:\n\n")
		for i, f := range m.funcs {
			sig := formatSignature(f)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + sig))
			} else {
				b.WriteString(funcStyle.Render("  " + sig))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("up/down: select | enter: call | q: quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Arguments for %s:\n\n", selectedStyle.Render(m.selected.name)))
		for _, in := range m.inputs {
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: next field | enter: call | esc: back"))

	case stateShowResult:
		if m.callErr != nil {
			b.WriteString(errorStyle.Render("Error: " + m.callErr.Error()))
		} else {
			b.WriteString(fmt.Sprintf("%s = %s\n", m.selected.name, resultStyle.Render(m.result)))
			b.WriteString(helpStyle.Render("foreign: " + m.foreign))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc: back | ctrl+c: quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func runInteractive(cfg config.Options) error {
	m, err := newInteractiveModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
