package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Each picker dismisses with a typed result consumed by whoever pushed it:
// a namespace (or the all-namespaces marker), a context name, a container
// name, or a filter pattern. Escape always cancels without a result.

// allNamespacesItem is the first entry of the namespace picker; selecting it
// clears the namespace scope.
const allNamespacesItem = "all"

func newNamespacePicker(namespaces []string, onDone func(ns string, all bool), onCancel func()) *tview.List {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(" Namespace ")

	list.AddItem(allNamespacesItem, "", 0, func() {
		onDone("", true)
	})
	for _, ns := range namespaces {
		ns := ns
		list.AddItem(ns, "", 0, func() {
			onDone(ns, false)
		})
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			onCancel()
			return nil
		}
		return event
	})
	return list
}

func newContextPicker(contexts []string, current string, onDone func(name string), onCancel func()) *tview.List {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(" Context ")

	for _, name := range contexts {
		name := name
		label := "  " + name
		if name == current {
			label = "* " + name
		}
		list.AddItem(label, "", 0, func() {
			onDone(name)
		})
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			onCancel()
			return nil
		}
		return event
	})
	return list
}

func newContainerPicker(containers []string, onDone func(name string), onCancel func()) *tview.List {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(" Container ")

	for _, name := range containers {
		name := name
		list.AddItem(name, "", 0, func() {
			onDone(name)
		})
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			onCancel()
			return nil
		}
		return event
	})
	return list
}

func newPatternInput(initial string, onDone func(pattern string), onCancel func()) *tview.InputField {
	input := tview.NewInputField().
		SetLabel(" filter: ").
		SetText(initial).
		SetFieldWidth(0)
	input.SetBorder(true).SetTitle(" Regex Filter ")

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			onDone(input.GetText())
		case tcell.KeyEscape:
			onCancel()
		}
	})
	return input
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
