package inspector

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/gll/log"
	"github.com/ardnew/gll/pcomb"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// Run parses input against p under a fresh trampoline and drives the
// inspector TUI over it until the user quits.
func Run(ctx context.Context, p pcomb.Parser, input string) error {
	tr := pcomb.NewTrampoline([]byte(input), log.Default())

	filter := textinput.New()
	filter.Prompt = "filter> "
	filter.CharLimit = 256
	filter.Focus()

	m := model{
		tr:     tr,
		root:   p,
		input:  input,
		filter: filter,
	}

	// Seed the root memo entry so it exists before the TUI starts stepping.
	// Its discovered results live on tr, not on m, so they stay visible to
	// every value-copy Bubbletea makes of the model.
	tr.Push(p, 0, func(pcomb.Result) {})

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

type model struct {
	tr       *pcomb.Trampoline
	root     pcomb.Parser
	input    string
	filter   textinput.Model
	steps    int
	quitting bool
	running  bool
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true

			return m, tea.Quit

		case " ":
			if m.tr.HasNext() {
				m.tr.Step()
				m.steps++
			}

			return m, nil

		case "r":
			for m.tr.HasNext() {
				m.tr.Step()
				m.steps++
			}

			return m, nil

		default:
			var cmd tea.Cmd

			m.filter, cmd = m.filter.Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	snap := m.tr.Snapshot()

	fmt.Fprintf(&b, "%s  input=%q  step=%d  queue=%d  results=%d\n\n",
		headerStyle.Render("gll trampoline inspector"), m.input, m.steps, snap.QueueLen, snap.ResultRows)

	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("memo table"))
	b.WriteString("\n")
	b.WriteString(m.renderMemo())
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("results"))
	b.WriteString("\n")

	for _, r := range m.tr.Results(m.root, 0) {
		fmt.Fprintf(&b, "  %s\n", rowStyle.Render(r.Value.String()))
	}

	if !m.tr.HasNext() {
		b.WriteString("\n" + doneStyle.Render("drained") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("space: step   r: run   q: quit") + "\n")

	return b.String()
}

// renderMemo lists memo rows, narrowed by the filter box's current text via
// fuzzy matching on the parser label. With an empty filter, rows are sorted
// by position then label for a stable display; with a filter, they appear
// in fuzzy match rank order.
func (m model) renderMemo() string {
	snap := m.tr.Snapshot()

	sort.Slice(snap.MemoRows, func(i, j int) bool {
		if snap.MemoRows[i].Position != snap.MemoRows[j].Position {
			return snap.MemoRows[i].Position < snap.MemoRows[j].Position
		}

		return snap.MemoRows[i].Parser < snap.MemoRows[j].Parser
	})

	query := m.filter.Value()

	var b strings.Builder

	if query == "" {
		for _, row := range snap.MemoRows {
			fmt.Fprintf(&b, "  [%3d] %-30s results=%d continuations=%d\n",
				row.Position, row.Parser, row.ResultCount, row.Continuations)
		}

		return b.String()
	}

	labels := make([]string, len(snap.MemoRows))
	for i, row := range snap.MemoRows {
		labels[i] = row.Parser
	}

	for _, match := range fuzzy.Find(query, labels) {
		row := snap.MemoRows[match.Index]

		fmt.Fprintf(&b, "  [%3d] %-30s results=%d continuations=%d\n",
			row.Position, matchStyle.Render(row.Parser), row.ResultCount, row.Continuations)
	}

	return b.String()
}
