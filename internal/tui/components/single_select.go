package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SingleSelect is a radio list; enter picks the option under the cursor.
type SingleSelect struct {
	Label string
	Items []SelectItem

	cur    cursor
	picked bool
	err    string

	st  SelectStyles
	kbd KbdHint
}

// NewSingleSelect starts with the cursor on the item whose value is current.
func NewSingleSelect(label string, items []SelectItem, current string, st SelectStyles) SingleSelect {
	s := SingleSelect{Label: label, Items: items, st: st, kbd: NewKbdHint(st.KbdKey, st.KbdDesc, HintsSelect)}
	for i, it := range items {
		if it.Value == current {
			s.cur.pos = i
		}
	}
	return s
}

// Init reopens the list after back-navigation.
func (s *SingleSelect) Init() tea.Cmd {
	s.picked = false
	return nil
}

func (s SingleSelect) Update(msg tea.Msg) (SingleSelect, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || s.picked {
		return s, nil
	}
	s.err = ""
	if !s.cur.move(key.String(), len(s.Items)) && key.String() == "enter" && len(s.Items) > 0 {
		s.picked = true
	}
	return s, nil
}

func (s SingleSelect) View(width int) string {
	rows := make([]string, len(s.Items))
	for i, it := range s.Items {
		active := i == s.cur.pos
		mark, desc := s.st.color(s.st.Dim).Render("○"), ""
		if active {
			mark, desc = s.st.color(s.st.Accent).Render("◉"), it.Description
		}
		rows[i] = s.st.row(width, active, it.Label, mark, desc)
	}
	return s.st.list(s.Label, rows, s.err, s.kbd)
}

func (s SingleSelect) Done() bool { return s.picked }

// Value is the value under the cursor; once Done it is the chosen one.
func (s SingleSelect) Value() string {
	if s.cur.pos < len(s.Items) {
		return s.Items[s.cur.pos].Value
	}
	return ""
}

// SelectedLabel returns the label under the cursor.
func (s SingleSelect) SelectedLabel() string {
	if s.cur.pos < len(s.Items) {
		return s.Items[s.cur.pos].Label
	}
	return ""
}

// SetError shows msg and reopens the list.
func (s *SingleSelect) SetError(msg string) {
	s.err = msg
	s.picked = false
}
