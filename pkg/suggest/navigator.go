package suggest

import "strings"

// ActionKind says what Enter did.
type ActionKind int

const (
	// Submit means no suggestion was selected and the raw input is the query.
	Submit ActionKind = iota
	// Accept means the selected suggestion was chosen as a filter.
	Accept
)

func (k ActionKind) String() string {
	if k == Accept {
		return "accept"
	}
	return "submit"
}

// Action is the outcome of pressing Enter.
type Action struct {
	Kind  ActionKind
	Value string
}

// Navigator tracks the highlighted suggestion. Selection starts at -1 (none)
// and moves circularly in both directions.
type Navigator struct {
	items    []string
	selected int
}

func NewNavigator() *Navigator {
	return &Navigator{selected: -1}
}

// Reset replaces the list and clears the selection.
func (n *Navigator) Reset(items []string) {
	n.items = items
	n.selected = -1
}

// Items returns the current list.
func (n *Navigator) Items() []string {
	return n.items
}

// Selected returns the highlighted index, or -1.
func (n *Navigator) Selected() int {
	return n.selected
}

// Current returns the highlighted suggestion.
func (n *Navigator) Current() (string, bool) {
	if n.selected < 0 || n.selected >= len(n.items) {
		return "", false
	}
	return n.items[n.selected], true
}

// Down highlights the next suggestion, wrapping to the first.
func (n *Navigator) Down() {
	if len(n.items) == 0 {
		return
	}
	n.selected = (n.selected + 1) % len(n.items)
}

// Up highlights the previous suggestion, wrapping to the last.
func (n *Navigator) Up() {
	if len(n.items) == 0 {
		return
	}
	n.selected = (n.selected - 1 + len(n.items)) % len(n.items)
}

// Enter accepts the highlighted suggestion, or submits input when nothing
// is highlighted.
func (n *Navigator) Enter(input string) Action {
	if v, ok := n.Current(); ok {
		return Action{Kind: Accept, Value: v}
	}
	return Action{Kind: Submit, Value: strings.TrimSpace(input)}
}
