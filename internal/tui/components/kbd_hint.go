package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key and what it does.
type KeyBinding struct {
	Key  string
	Desc string
}

// HintSet names the footer shown under each kind of input.
type HintSet int

const (
	HintsInput HintSet = iota
	HintsSelect
	HintsMulti
	HintsTextArea
	HintsToggle
)

var (
	keyMove    = KeyBinding{"↑↓", "移動"}
	keyBack    = KeyBinding{"shift+tab", "上一欄"}
	keyQuit    = KeyBinding{"esc", "離開"}
	keyConfirm = KeyBinding{"⏎", "確認"}
)

var hintSets = map[HintSet][]KeyBinding{
	HintsInput:    {{"⏎", "下一步"}, keyBack, keyQuit},
	HintsSelect:   {keyMove, {"⏎", "選擇"}, keyBack, keyQuit},
	HintsMulti:    {keyMove, {"space", "勾選"}, keyConfirm, keyBack},
	HintsTextArea: {{"⏎", "換行"}, {"tab", "完成"}, keyBack},
	HintsToggle:   {{"space", "切換"}, keyConfirm, keyBack},
}

// Hints returns a copy of the bindings for set.
func Hints(set HintSet) []KeyBinding {
	return append([]KeyBinding(nil), hintSets[set]...)
}

// KbdHint is the footer line of key bindings.
type KbdHint struct {
	Bindings  []KeyBinding
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// NewKbdHint builds the footer for set.
func NewKbdHint(key, desc lipgloss.Style, set HintSet) KbdHint {
	return KbdHint{Bindings: Hints(set), KeyStyle: key, DescStyle: desc}
}

func (k KbdHint) View() string {
	var b strings.Builder
	b.WriteString("  ")
	for i, kb := range k.Bindings {
		if i > 0 {
			b.WriteString("    ")
		}
		b.WriteString(k.KeyStyle.Render(kb.Key))
		b.WriteByte(' ')
		b.WriteString(k.DescStyle.Render(kb.Desc))
	}
	return b.String()
}
