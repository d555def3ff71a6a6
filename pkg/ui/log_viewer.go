package ui

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/podview/podview-cli/pkg/k8s"
	"github.com/podview/podview-cli/pkg/log"
	"github.com/rivo/tview"
)

const logFetchTimeout = 30 * time.Second

// LogViewer shows a full log snapshot for one pod container, with an
// optional regex line filter. The filter outlives refreshes: a refetch
// replaces the raw text and reapplies whatever pattern is active.
type LogViewer struct {
	View *tview.TextView

	app       *tview.Application
	k8s       *k8s.Client
	pod       PodKey
	container string
	tailLines int64

	raw        string
	pattern    *regexp.Regexp
	patternSrc string
	cancel     context.CancelFunc

	notify         func(msg string, isErr bool)
	requestPattern func(current string, apply func(pattern string))
	onExit         func()
}

func NewLogViewer(app *tview.Application, client *k8s.Client, pod PodKey, container string, tailLines int64,
	notify func(msg string, isErr bool), requestPattern func(current string, apply func(pattern string)), onExit func()) *LogViewer {

	l := &LogViewer{
		View:           tview.NewTextView().SetScrollable(true).SetWrap(false),
		app:            app,
		k8s:            client,
		pod:            pod,
		container:      container,
		tailLines:      tailLines,
		notify:         notify,
		requestPattern: requestPattern,
		onExit:         onExit,
	}
	l.updateTitle()
	l.View.SetBorder(true)

	l.View.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			l.Stop()
			l.onExit()
			return nil
		case tcell.KeyCtrlG:
			l.clearPattern()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r':
				l.Refresh()
				return nil
			case 'g':
				l.requestPattern(l.patternSrc, l.applyPattern)
				return nil
			}
		}
		return event
	})
	return l
}

// Refresh refetches the log text in the background and reapplies the active
// pattern. A completion arriving after Stop is discarded.
func (l *LogViewer) Refresh() {
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), logFetchTimeout)
	l.cancel = cancel

	go func() {
		text, err := l.k8s.GetPodLogs(ctx, l.pod.Namespace, l.pod.Name, l.container, l.tailLines)
		if ctx.Err() != nil {
			return // view was torn down or superseded mid-fetch
		}
		if err != nil {
			code, msg := k8s.StatusOf(err)
			log.Errorf("log fetch for %s/%s failed: %v", l.pod.Namespace, l.pod.Name, err)
			l.notify(fmt.Sprintf("logs %s/%s: %d %s", l.pod.Namespace, l.pod.Name, code, msg), true)
			return
		}
		l.app.QueueUpdateDraw(func() {
			l.raw = text
			l.redraw()
		})
	}()
}

// Stop abandons any in-flight fetch so its late completion is a no-op.
func (l *LogViewer) Stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// applyPattern installs a new line filter. An empty pattern clears it. A
// pattern that does not compile is reported and the previous filter state is
// left alone; it never breaks the view.
func (l *LogViewer) applyPattern(src string) {
	if src == "" {
		l.clearPattern()
		return
	}
	re, err := regexp.Compile(src)
	if err != nil {
		l.notify(fmt.Sprintf("invalid pattern %q: %v", src, err), true)
		return
	}
	l.pattern = re
	l.patternSrc = src
	l.redraw()
}

func (l *LogViewer) clearPattern() {
	l.pattern = nil
	l.patternSrc = ""
	l.redraw()
}

func (l *LogViewer) redraw() {
	l.View.SetText(filterLines(l.raw, l.pattern))
	l.View.ScrollToBeginning()
	l.updateTitle()
}

func (l *LogViewer) updateTitle() {
	title := fmt.Sprintf(" Logs: %s/%s ", l.pod.Namespace, l.pod.Name)
	if l.container != "" {
		title = fmt.Sprintf(" Logs: %s/%s [%s] ", l.pod.Namespace, l.pod.Name, l.container)
	}
	if l.patternSrc != "" {
		title += fmt.Sprintf("(filter: %s) ", l.patternSrc)
	}
	l.View.SetTitle(title)
}

// filterLines returns the lines of raw matching re, in their original order.
// A nil pattern passes the text through verbatim.
func filterLines(raw string, re *regexp.Regexp) string {
	if re == nil {
		return raw
	}
	lines := strings.Split(raw, "\n")
	matched := make([]string, 0, len(lines))
	for _, line := range lines {
		if re.MatchString(line) {
			matched = append(matched, line)
		}
	}
	return strings.Join(matched, "\n")
}
