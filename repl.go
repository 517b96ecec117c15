// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"
)

const helpPage = "usage"

// Styles holds all the styling for the prompt
type Styles struct {
	Border      lipgloss.Style
	Title       lipgloss.Style
	InputPrompt lipgloss.Style
	Echo        lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	Success     lipgloss.Style
	Failure     lipgloss.Style
}

func NewStyles() *Styles {
	p := GetPalette()
	return &Styles{
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		Title: lipgloss.NewStyle().
			Foreground(p.Accent).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(p.Key).
			Bold(true),
		Echo: lipgloss.NewStyle().
			Foreground(p.Key),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Muted).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.Muted),
		Success: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		Failure: lipgloss.NewStyle().
			Foreground(p.Failure).
			Bold(true),
	}
}

// statusMsg reports the outcome of an async command such as a copy.
type statusMsg struct {
	text string
	err  error
}

type replModel struct {
	ready bool

	session     *Session
	renderCache *cache.Cache
	styles      *Styles

	input    textinput.Model
	output   viewport.Model
	helpView viewport.Model
	showHelp bool

	transcript []string
	lastOutput string
	status     statusMsg

	history    []string
	historyIdx int // len(history) when not browsing

	width  int
	height int
}

func newReplModel(s *Session, rc *cache.Cache) replModel {
	ti := textinput.New()
	ti.Placeholder = "insert 4 3 1 23 9 11"
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	m := replModel{
		session:     s,
		renderCache: rc,
		styles:      NewStyles(),
		input:       ti,
		output:      viewport.New(0, 0),
		helpView:    viewport.New(0, 0),
		transcript:  []string{"Type a command, or \"help\". F1 opens the guide."},
	}
	m.input.PromptStyle = m.styles.InputPrompt
	m.output.SetContent(strings.Join(m.transcript, "\n"))
	return m
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit(m.input.Value())
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		case "f1":
			m.showHelp = !m.showHelp
			m.updateLayout()
			return m, nil
		case "ctrl+y":
			text := m.lastOutput
			return m, func() tea.Msg {
				if err := clipboard.WriteAll(text); err != nil {
					return statusMsg{err: fmt.Errorf("copy failed: %w", err)}
				}
				return statusMsg{text: "📋 Copied last output to clipboard"}
			}
		case "pgup":
			m.output.HalfViewUp()
			return m, nil
		case "pgdown":
			m.output.HalfViewDown()
			return m, nil
		case "ctrl+u":
			if m.showHelp {
				m.helpView.HalfViewUp()
			}
			return m, nil
		case "ctrl+d":
			if m.showHelp {
				m.helpView.HalfViewDown()
			}
			return m, nil
		}

	case statusMsg:
		m.status = msg
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs line against the session and appends the result to the
// transcript.
func (m replModel) submit(line string) (tea.Model, tea.Cmd) {
	line = strings.TrimSpace(line)
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.historyIdx = len(m.history)

	if line == "quit" || line == "exit" {
		return m, tea.Quit
	}

	m.transcript = append(m.transcript, m.styles.Echo.Render("› "+line))
	out, err := m.session.Exec(line)
	if out != "" {
		m.transcript = append(m.transcript, out)
		m.lastOutput = out
	}
	if err != nil {
		m.status = statusMsg{err: err}
		m.transcript = append(m.transcript, m.styles.Failure.Render("error: "+err.Error()))
	} else {
		m.status = statusMsg{text: "ok"}
	}

	m.output.SetContent(strings.Join(m.transcript, "\n"))
	m.output.GotoBottom()
	return m, nil
}

// recall moves through previously submitted lines; moving past the newest
// entry clears the input.
func (m *replModel) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.historyIdx = min(max(m.historyIdx+step, 0), len(m.history))
	if m.historyIdx == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.historyIdx])
	m.input.CursorEnd()
}

func (m *replModel) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := max(m.height-8, 3)
	outputWidth := m.width - 2
	if m.showHelp {
		outputWidth = m.width/2 - 2
		helpWidth := m.width - outputWidth - 6
		m.helpView.Width = helpWidth
		m.helpView.Height = bodyHeight
		m.helpView.SetContent(m.renderHelp(helpWidth))
	}
	m.output.Width = outputWidth
	m.output.Height = bodyHeight
	m.output.SetContent(strings.Join(m.transcript, "\n"))
	m.output.GotoBottom()
	m.input.Width = m.width - 6
}

// renderHelp renders the usage guide with glamour, falling back to the raw
// markdown when rendering fails.
func (m *replModel) renderHelp(width int) string {
	style := "dark"
	if GetTerminalMode() == TerminalModeLight {
		style = "light"
	}
	rendered, err := GetOrRender(m.renderCache, helpPage+"/"+style, width, func() (string, error) {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		return r.Render(helpMarkdown())
	})
	if err != nil {
		Log.Debugf("help render failed: %v", err)
		return helpMarkdown()
	}
	return rendered
}

func (m replModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 30 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	header := m.styles.Title.Render(fmt.Sprintf("🌳 bstree %s", version)) +
		m.styles.HelpDesc.Render(fmt.Sprintf("keys %d · height %d", m.session.Len(), m.session.Height()))

	body := m.styles.Border.Render(m.output.View())
	if m.showHelp {
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			body,
			m.styles.Border.Render(m.helpView.View()),
		)
	}

	input := m.styles.Border.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		input,
		m.renderStatus(),
		m.renderFooter(),
	)
}

func (m replModel) renderStatus() string {
	switch {
	case m.status.err != nil:
		return m.styles.Failure.Render(m.status.err.Error())
	case m.status.text != "":
		return m.styles.Success.Render(m.status.text)
	}
	return ""
}

func (m replModel) renderFooter() string {
	keys := []string{"enter", "↑/↓", "f1", "ctrl+y", "pgup/pgdn", "esc"}
	descs := []string{"run", "history", "guide", "copy output", "scroll", "quit"}

	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = m.styles.HelpKey.Render(keys[i]) + " " + m.styles.HelpDesc.Render(descs[i])
	}
	return strings.Join(parts, "  •  ")
}

// runRepl starts the interactive prompt over s.
func runRepl(s *Session) error {
	InitializeColors()

	program := tea.NewProgram(
		newReplModel(s, NewRenderCache()),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
