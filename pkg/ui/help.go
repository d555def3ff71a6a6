package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func newHelpView(onExit func()) *tview.TextView {
	help := tview.NewTextView().
		SetDynamicColors(true).
		SetText(`
 [yellow::b]podview[white::-] - pod dashboard

 [cyan]Pod table:[white]
   [yellow]j/k[white] or [yellow]Up/Down[white]  Move selection
   [yellow]Enter[white]             Pod detail
   [yellow]l[white]                 View logs
   [yellow]n[white]                 Select namespace
   [yellow]c[white]                 Select context
   [yellow]?[white]                 This help
   [yellow]q[white]                 Quit

 [cyan]Log view:[white]
   [yellow]r[white]                 Refresh logs
   [yellow]g[white]                 Regex filter
   [yellow]Ctrl-G[white]            Clear filter

 [gray]Escape closes any view[white]
`)
	help.SetBorder(true).SetTitle(" Help ")

	help.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' || event.Rune() == '?' {
			onExit()
			return nil
		}
		return event
	})
	return help
}
