// Package explore is the interactive terminal browser over a loaded
// corpus: a filterable element list on the left, the selected element's
// property sheet and reactions on the right.
package explore

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// elementItem adapts chem.Element to list.Item.
type elementItem struct {
	elem chem.Element
}

func (i elementItem) Title() string {
	return fmt.Sprintf("%-3s %s", i.elem.Symbol, i.elem.Name)
}

func (i elementItem) Description() string {
	return fmt.Sprintf("Z=%d • %s • %s",
		i.elem.AtomicNumber, i.elem.Classification.Category, i.elem.Physical.PhaseAtSTP)
}

func (i elementItem) FilterValue() string {
	return i.elem.Symbol + " " + i.elem.Name + " " + string(i.elem.Classification.Category)
}

// Model is the explorer's bubbletea model.
type Model struct {
	list     list.Model
	viewport viewport.Model

	// focusDetail routes keys to the detail pane instead of the list.
	focusDetail bool
	selected    int // atomic number of the rendered element, 0 for none

	width  int
	height int
	styles styles
}

type styles struct {
	header      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	muted       lipgloss.Style
	pane        lipgloss.Style
	focusBorder lipgloss.Color
	blurBorder  lipgloss.Color
}

func defaultStyles() styles {
	return styles{
		header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label:       lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("243")),
		value:       lipgloss.NewStyle(),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		pane:        lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()),
		focusBorder: lipgloss.Color("205"),
		blurBorder:  lipgloss.Color("238"),
	}
}

// New builds the explorer over a query engine.
func New(eng *query.Engine) Model {
	elements := eng.Store().Elements()
	items := make([]list.Item, len(elements))
	for i, e := range elements {
		items[i] = elementItem{elem: e}
	}

	stats := eng.Stats()
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Elements (%d) • %d reactions", stats.Elements, stats.Reactions)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	// The outer model owns quit and back; the default q/esc binding
	// would exit the program instead.
	l.KeyMap.Quit.SetEnabled(false)

	vp := viewport.New(0, 0)
	vp.SetContent("Select an element.")

	return Model{
		list:     l,
		viewport: vp,
		styles:   defaultStyles(),
	}
}

// Run starts the explorer and blocks until the user quits.
func Run(eng *query.Engine) error {
	_, err := tea.NewProgram(New(eng), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "enter":
				if m.list.SelectedItem() != nil {
					m.focusDetail = true
				}
				return m, nil
			case "esc":
				if m.focusDetail {
					m.focusDetail = false
					return m, nil
				}
				// Fall through to the list so esc clears an applied
				// filter.
			}
		}
	}

	_, isKey := msg.(tea.KeyMsg)
	toList := !isKey || !m.focusDetail || m.list.FilterState() == list.Filtering
	toViewport := !isKey || (m.focusDetail && m.list.FilterState() != list.Filtering)

	if toList {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	if toViewport {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if sel, ok := m.list.SelectedItem().(elementItem); ok && sel.elem.AtomicNumber != m.selected {
		m.selected = sel.elem.AtomicNumber
		m.viewport.SetContent(renderElement(&sel.elem, m.styles))
		m.viewport.GotoTop()
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	listW := int(float64(m.width) * 0.35)
	detailW := m.width - listW

	listStyle := m.styles.pane.BorderForeground(m.styles.blurBorder)
	detailStyle := m.styles.pane.BorderForeground(m.styles.blurBorder)
	if m.focusDetail {
		detailStyle = m.styles.pane.BorderForeground(m.styles.focusBorder)
	} else {
		listStyle = m.styles.pane.BorderForeground(m.styles.focusBorder)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Width(listW-paneChromeW).Render(m.list.View()),
		detailStyle.Width(detailW-paneChromeW).Render(m.viewport.View()),
	)
	help := m.styles.muted.Render(" enter: inspect • esc: back • /: filter • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, panes, help)
}

// Pane chrome: 2 border columns plus 2 padding columns, 2 border rows.
const (
	paneChromeW = 4
	paneChromeH = 2
)

func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h

	paneH := h - 1 - paneChromeH // help line
	if paneH < 0 {
		paneH = 0
	}
	listW := int(float64(w) * 0.35)

	m.list.SetSize(max(listW-paneChromeW, 0), paneH)
	m.viewport.Width = max(w-listW-paneChromeW, 0)
	m.viewport.Height = paneH
}
