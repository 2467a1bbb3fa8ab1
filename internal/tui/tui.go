// Package tui is a read-only bubbletea browser over a loaded hypergraph:
// pick a node, watch its materialized k-best list grow on demand, drill
// into an antecedent.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
)

type nodeItem struct{ node *hgraph.Node }

func (i nodeItem) Title() string { return i.node.ID }
func (i nodeItem) Description() string {
	return fmt.Sprintf("span [%d,%d) · %d incoming edges", i.node.I, i.node.J, len(i.node.Edges))
}
func (i nodeItem) FilterValue() string { return i.node.ID }

var headerStyle = lipgloss.NewStyle().Bold(true)
var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// Model is the bubbletea model for the hypergraph browser.
type Model struct {
	hg   *hgraph.Hypergraph
	ex   *cube.Extractor
	list list.Model

	stack []*hgraph.Node
	lines []string
	k     int
	err   error
}

// New builds a Model over hg, using ex to enumerate k-best lists lazily.
func New(hg *hgraph.Hypergraph, ex *cube.Extractor) Model {
	items := make([]list.Item, 0, len(hg.Nodes))
	for _, n := range hg.Nodes {
		items = append(items, nodeItem{node: n})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "hypergraph nodes"
	return Model{hg: hg, ex: ex, list: l, k: 1}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height/2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(nodeItem); ok {
				m.stack = append(m.stack, it.node)
				m.k = 1
				m.refresh()
			}
			return m, nil
		case "backspace":
			if len(m.stack) > 0 {
				m.stack = m.stack[:len(m.stack)-1]
				m.k = 1
				m.refresh()
			}
			return m, nil
		case "n":
			if len(m.stack) > 0 {
				m.k++
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// refresh recomputes ranks 1..k at the currently selected node, stopping
// early at the first RankUnreachable rank.
func (m *Model) refresh() {
	if len(m.stack) == 0 {
		m.lines, m.err = nil, nil
		return
	}
	node := m.stack[len(m.stack)-1]

	lines := make([]string, 0, m.k)
	for k := 1; k <= m.k; k++ {
		line, ok, err := m.ex.KthHypothesis(node, k, -1)
		if err != nil {
			m.err = err
			return
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	m.lines, m.err = lines, nil
}

func (m Model) View() string {
	var b string
	b += headerStyle.Render("kbest inspect") + "\n"
	b += m.list.View()

	if len(m.stack) > 0 {
		node := m.stack[len(m.stack)-1]
		b += fmt.Sprintf("\nnode %s — %d hypotheses known\n", node.ID, len(m.lines))
		for _, l := range m.lines {
			b += "  " + l + "\n"
		}
		if m.err != nil {
			b += errStyle.Render("error: "+m.err.Error()) + "\n"
		}
	}

	b += "\n(enter: drill in · backspace: up · n: next rank · q: quit)"
	return b
}

// Run starts the bubbletea program and blocks until the user quits.
func Run(hg *hgraph.Hypergraph, ex *cube.Extractor) error {
	_, err := tea.NewProgram(New(hg, ex)).Run()
	return err
}
