package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoe5466/Gudiee-sub001/internal/tui/components"
)

// fieldInput is the common surface of the components a field is edited
// with.
type fieldInput interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
	Done() bool
	Value() string
	SetError(msg string)
}

type textField struct{ c components.TextInput }

func (f *textField) Init() tea.Cmd { return f.c.Init() }
func (f *textField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.c, cmd = f.c.Update(msg)
	return cmd
}
func (f *textField) View(width int) string { return f.c.View(width) }
func (f *textField) Done() bool            { return f.c.Done() }
func (f *textField) Value() string         { return f.c.Value() }
func (f *textField) SetError(msg string)   { f.c.SetError(msg) }

type areaField struct{ c components.TextArea }

func (f *areaField) Init() tea.Cmd { return f.c.Init() }
func (f *areaField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.c, cmd = f.c.Update(msg)
	return cmd
}
func (f *areaField) View(width int) string { return f.c.View(width) }
func (f *areaField) Done() bool            { return f.c.Done() }
func (f *areaField) Value() string         { return f.c.Value() }
func (f *areaField) SetError(msg string)   { f.c.SetError(msg) }

type selectField struct{ c components.SingleSelect }

func (f *selectField) Init() tea.Cmd { return f.c.Init() }
func (f *selectField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.c, cmd = f.c.Update(msg)
	return cmd
}
func (f *selectField) View(width int) string { return f.c.View(width) }
func (f *selectField) Done() bool            { return f.c.Done() }
func (f *selectField) Value() string         { return f.c.Value() }
func (f *selectField) SetError(msg string)   { f.c.SetError(msg) }

type multiField struct{ c components.MultiSelect }

func (f *multiField) Init() tea.Cmd { return f.c.Init() }
func (f *multiField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.c, cmd = f.c.Update(msg)
	return cmd
}
func (f *multiField) View(width int) string { return f.c.View(width) }
func (f *multiField) Done() bool            { return f.c.Done() }
func (f *multiField) Value() string         { return f.c.Value() }
func (f *multiField) SetError(msg string)   { f.c.SetError(msg) }

type checkField struct{ c components.Checkbox }

func (f *checkField) Init() tea.Cmd { return nil }
func (f *checkField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.c, cmd = f.c.Update(msg)
	return cmd
}
func (f *checkField) View(width int) string { return f.c.View(width) }
func (f *checkField) Done() bool            { return f.c.Done() }
func (f *checkField) Value() string         { return f.c.Value() }
func (f *checkField) SetError(msg string)   { f.c.SetError(msg) }
