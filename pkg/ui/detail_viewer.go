package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/podview/podview-cli/pkg/k8s"
	"github.com/podview/podview-cli/pkg/log"
	"github.com/rivo/tview"
	"sigs.k8s.io/yaml"
)

const detailFetchTimeout = 10 * time.Second

// DetailViewer renders a pod's full descriptor as YAML, with a live usage
// line when metrics are available.
type DetailViewer struct {
	View *tview.TextView

	app    *tview.Application
	k8s    *k8s.Client
	pod    PodKey
	cancel context.CancelFunc

	notify func(msg string, isErr bool)
	onExit func()
}

func NewDetailViewer(app *tview.Application, client *k8s.Client, pod PodKey,
	notify func(msg string, isErr bool), onExit func()) *DetailViewer {

	d := &DetailViewer{
		View: tview.NewTextView().
			SetDynamicColors(true).
			SetScrollable(true).
			SetWordWrap(true),
		app:    app,
		k8s:    client,
		pod:    pod,
		notify: notify,
		onExit: onExit,
	}
	d.View.SetBorder(true).SetTitle(fmt.Sprintf(" Pod: %s/%s ", pod.Namespace, pod.Name))
	d.View.SetText("Loading...")

	d.View.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			d.Stop()
			d.onExit()
			return nil
		}
		return event
	})
	return d
}

// Load fetches the descriptor in the background. On a transport error the
// viewer reports it and pops itself rather than sitting on a broken page.
func (d *DetailViewer) Load() {
	ctx, cancel := context.WithTimeout(context.Background(), detailFetchTimeout)
	d.cancel = cancel

	go func() {
		pod, err := d.k8s.GetPod(ctx, d.pod.Namespace, d.pod.Name)
		if ctx.Err() != nil {
			return
		}

		var usage string
		if err == nil {
			if cpu, mem, uerr := d.k8s.GetPodUsage(ctx, d.pod.Namespace, d.pod.Name); uerr == nil {
				usage = fmt.Sprintf("[gray]usage:[white] %dm CPU, %dMi memory\n\n", cpu, mem)
			}
		}

		if err != nil {
			code, msg := k8s.StatusOf(err)
			log.Errorf("pod detail fetch for %s/%s failed: %v", d.pod.Namespace, d.pod.Name, err)
			d.notify(fmt.Sprintf("pod %s/%s: %d %s", d.pod.Namespace, d.pod.Name, code, msg), true)
			d.app.QueueUpdateDraw(d.onExit)
			return
		}

		d.app.QueueUpdateDraw(func() {
			pod.SetManagedFields(nil)
			buf, merr := yaml.Marshal(pod)
			if merr != nil {
				d.View.SetText(fmt.Sprintf("[red]Error encoding pod: %v", merr))
				return
			}
			d.View.SetText(usage + highlightKeys(string(buf)))
			d.View.ScrollToBeginning()
		})
	}()
}

func (d *DetailViewer) Stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func highlightKeys(text string) string {
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if idx := strings.Index(line, ":"); idx >= 0 {
			b.WriteString(fmt.Sprintf("[yellow]%s:[white]%s\n", tview.Escape(line[:idx]), tview.Escape(line[idx+1:])))
		} else {
			b.WriteString(tview.Escape(line) + "\n")
		}
	}
	return b.String()
}
