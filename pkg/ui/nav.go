package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Navigator maintains the stack of visible views on top of tview pages. The
// top of the stack is the page receiving input; popping it refocuses its
// parent. The root page is the base of the stack and can never be popped.
type Navigator struct {
	App   *tview.Application
	Pages *tview.Pages

	stack []navEntry
	seq   int
}

type navEntry struct {
	name string
	prim tview.Primitive
}

func NewNavigator(app *tview.Application) *Navigator {
	return &Navigator{
		App:   app,
		Pages: tview.NewPages(),
	}
}

// SetRoot installs the base page. Must be called exactly once before any
// Push.
func (n *Navigator) SetRoot(name string, p tview.Primitive) {
	n.Pages.AddPage(name, p, true, true)
	n.stack = []navEntry{{name: name, prim: p}}
}

// Push overlays a view and gives it focus. The returned name is unique so
// the same kind of view can be pushed repeatedly.
func (n *Navigator) Push(kind string, p tview.Primitive) string {
	n.seq++
	name := fmt.Sprintf("%s-%d", kind, n.seq)
	n.Pages.AddPage(name, p, true, true)
	n.stack = append(n.stack, navEntry{name: name, prim: p})
	n.App.SetFocus(p)
	return name
}

// Pop removes the top view and refocuses its parent. Popping the root is a
// no-op.
func (n *Navigator) Pop() {
	if len(n.stack) <= 1 {
		return
	}
	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	n.Pages.RemovePage(top.name)
	n.App.SetFocus(n.stack[len(n.stack)-1].prim)
}

// Top reports the name of the visible view.
func (n *Navigator) Top() string {
	if len(n.stack) == 0 {
		return ""
	}
	return n.stack[len(n.stack)-1].name
}

// Depth reports the stack size including the root.
func (n *Navigator) Depth() int {
	return len(n.stack)
}
