package components

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MultiSelect is a checkbox list; space toggles, enter confirms.
type MultiSelect struct {
	Label string
	Items []SelectItem

	cur  cursor
	done bool
	err  string

	st  SelectStyles
	kbd KbdHint
}

// NewMultiSelect ticks the items whose value is in checked.
func NewMultiSelect(label string, items []SelectItem, checked []string, st SelectStyles) MultiSelect {
	items = slices.Clone(items)
	for i := range items {
		items[i].Checked = slices.Contains(checked, items[i].Value)
	}
	return MultiSelect{Label: label, Items: items, st: st, kbd: NewKbdHint(st.KbdKey, st.KbdDesc, HintsMulti)}
}

// Init reopens the list after back-navigation.
func (m *MultiSelect) Init() tea.Cmd {
	m.done = false
	return nil
}

func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}
	m.err = ""
	if m.cur.move(key.String(), len(m.Items)) {
		return m, nil
	}
	switch key.String() {
	case " ":
		if len(m.Items) > 0 {
			m.Items[m.cur.pos].Checked = !m.Items[m.cur.pos].Checked
		}
	case "enter":
		m.done = true
	}
	return m, nil
}

func (m MultiSelect) View(width int) string {
	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		mark := m.st.color(m.st.Dim).Render("☐")
		if it.Checked {
			mark = m.st.color(m.st.Accent).Render("☑")
		}
		rows[i] = m.st.row(width, i == m.cur.pos, it.Label, mark, "")
	}
	return m.st.list(m.Label, rows, m.err, m.kbd)
}

func (m MultiSelect) Done() bool { return m.done }

// Value returns the checked values joined with commas.
func (m MultiSelect) Value() string {
	return strings.Join(m.SelectedValues(), ",")
}

// SelectedValues returns the checked values in list order.
func (m MultiSelect) SelectedValues() []string {
	var vals []string
	for _, it := range m.Items {
		if it.Checked {
			vals = append(vals, it.Value)
		}
	}
	return vals
}

// SetError shows msg and reopens the list.
func (m *MultiSelect) SetError(msg string) {
	m.err = msg
	m.done = false
}
