package drill

import (
	"charm.land/bubbles/v2/key"

	"github.com/wordloop/wordloop/internal/ui/layout"
)

type keyMap struct {
	Choose key.Binding
	Move   key.Binding
	Submit key.Binding
	Next   key.Binding
	End    key.Binding
	Yes    key.Binding
	No     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "choose")),
		Move:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑↓", "move")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Next:   key.NewBinding(key.WithKeys("enter", "space", "n"), key.WithHelp("enter", "next")),
		End:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "end session")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "end session")),
		No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep going")),
	}
}

func hintsFor(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
