// Package tui renders the address watch panel in the terminal: an input to
// submit addresses, a table that appears with the first tracked address, and
// a modal for alerts.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabapcia/addresswatch/internal/watchpanel"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Panel is the part of the watch panel the terminal UI drives.
type Panel interface {
	TrackAddress(ctx context.Context, address string) (bool, error)
	Rows() []watchpanel.Row
	Visible() bool
}

type (
	refreshMsg struct{}

	alertMsg struct {
		text string
	}

	trackedMsg struct {
		address string
		ok      bool
		err     error
	}
)

// Model is the bubbletea model of the watch screen: an address input above
// the table of watched addresses, plus an optional alert modal.
type Model struct {
	ctx     context.Context
	panel   Panel
	initial []string

	input  textinput.Model
	alert  string
	status string
	width  int
}

var _ tea.Model = Model{}

// NewModel returns the UI for panel. Addresses in initial are submitted in
// order when the program starts.
func NewModel(ctx context.Context, panel Panel, initial ...string) Model {
	in := textinput.New()
	in.Placeholder = "bitcoin address"
	in.Prompt = "Watch: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(colorAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	in.CharLimit = 140
	in.Width = 66
	in.Focus()

	return Model{
		ctx:     ctx,
		panel:   panel,
		initial: initial,
		input:   in,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.initial))
	for _, address := range m.initial {
		cmds = append(cmds, trackCmd(m.ctx, m.panel, address))
	}

	return tea.Batch(textinput.Blink, tea.Sequence(cmds...))
}

func trackCmd(ctx context.Context, panel Panel, address string) tea.Cmd {
	return func() tea.Msg {
		ok, err := panel.TrackAddress(ctx, address)
		return trackedMsg{address: address, ok: ok, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case alertMsg:
		m.alert = msg.text
		return m, nil

	case refreshMsg:
		return m, nil

	case trackedMsg:
		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("could not track %s: %v", msg.address, msg.err)
		case msg.ok:
			m.status = ""
			if m.input.Value() == msg.address {
				m.input.SetValue("")
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.alert != "" {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
				m.alert = ""
			case tea.KeyCtrlC:
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, trackCmd(m.ctx, m.panel, m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.alert != "" {
		box := alertStyle.Render(m.alert + "\n\n" + helpStyle.Render("press enter to continue"))
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
		}
		return box
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Address watch"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.panel.Visible() {
		b.WriteString("\n")
		b.WriteString(renderTable(m.panel.Rows()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: watch address • esc: quit"))
	return b.String()
}

func renderTable(rows []watchpanel.Row) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("ADDRESS", "BALANCE", "TXS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			style := flashStyle(rows[row].Flash)
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	for _, r := range rows {
		t.Row(r.Address, r.BalanceText(), r.TxCountText())
	}

	return t.Render()
}
