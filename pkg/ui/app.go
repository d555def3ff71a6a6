package ui

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gdamore/tcell/v2"
	"github.com/podview/podview-cli/pkg/config"
	"github.com/podview/podview-cli/pkg/k8s"
	"github.com/podview/podview-cli/pkg/log"
	"github.com/rivo/tview"
)

const listTimeout = 10 * time.Second

// App is the dashboard application: the pod table at the root, a poller
// keeping it fresh, and a stack of modal views above it.
type App struct {
	*tview.Application

	Nav    *Navigator
	Table  *PodTable
	Poller *Poller
	Config *config.Config

	// client and namespace are swapped by the pickers while the poller
	// reads them; a context switch replaces the client wholesale so
	// requests in flight keep their old credential.
	mx        sync.RWMutex
	client    *k8s.Client
	namespace string // empty means all namespaces

	refreshing atomic.Bool
	cancelLock sync.Mutex
	cancelFn   context.CancelFunc

	header    *tview.TextView
	flash     *tview.TextView
	statusBar *tview.TextView
}

func NewApp(cfg *config.Config) (*App, error) {
	client, err := k8s.NewClient(cfg.Kubeconfig)
	if err != nil {
		return nil, err
	}
	return InitApp(tview.NewApplication(), cfg, client), nil
}

// InitApp wires the application onto an existing tview instance so tests can
// supply a simulation screen and a fake gateway.
func InitApp(tviewApp *tview.Application, cfg *config.Config, client *k8s.Client) *App {
	a := &App{
		Application: tviewApp,
		Config:      cfg,
		client:      client,
		Table:       NewPodTable(),
	}
	a.Nav = NewNavigator(tviewApp)
	a.Poller = NewPoller(cfg.RefreshInterval.Duration(), a.refresh)

	a.setupUI()
	a.setupKeybindings()
	a.updateHeader()

	return a
}

func (a *App) setupUI() {
	theme := a.Config.Theme

	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.header.SetBackgroundColor(theme.HeaderBg.ToTcell(tcell.ColorDarkBlue))

	a.flash = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.statusBar.SetBackgroundColor(theme.StatusBarBg.ToTcell(tcell.ColorDarkGreen))
	a.statusBar.SetText(" [black]c[white]Context [black]n[white]Namespace [black]l[white]Logs [black]Enter[white]Detail [black]?[white]Help [black]q[white]Quit")

	a.Table.Root.SetSelectedStyle(theme.SelectionStyle())
	a.Table.Root.SetBorderColor(theme.Border.ToTcell(tview.Styles.BorderColor))

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 2, 0, false).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.Table.Root, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.Nav.SetRoot("main", mainFlex)
	a.SetRoot(a.Nav.Pages, true)
	a.SetFocus(a.Table.Root)
}

func (a *App) setupKeybindings() {
	a.Table.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				a.Stop()
				return nil
			case 'c':
				a.showContextPicker()
				return nil
			case 'n':
				a.showNamespacePicker()
				return nil
			case 'l':
				a.showLogs()
				return nil
			case '?':
				a.showHelp()
				return nil
			case 'j':
				return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
			case 'k':
				return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
			}
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		}
		return event
	})

	a.Table.Root.SetSelectedFunc(func(row, column int) {
		a.showDetail()
	})
}

// gateway returns the current client and namespace scope as one consistent
// pair.
func (a *App) gateway() (*k8s.Client, string) {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.client, a.namespace
}

// prepareContext cancels whatever fetch was outstanding and opens a new one,
// so a stale completion can never overtake a newer request.
func (a *App) prepareContext() (context.Context, context.CancelFunc) {
	a.cancelLock.Lock()
	defer a.cancelLock.Unlock()

	if a.cancelFn != nil {
		a.cancelFn()
	}
	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	a.cancelFn = cancel
	return ctx, cancel
}

// refresh is the poller entry point. The guard makes a tick that lands while
// a fetch is still in flight a no-op; the poller never issues two runs at
// once, so manual refreshes are delayed rather than dropped.
func (a *App) refresh(manual bool) {
	if !a.refreshing.CompareAndSwap(false, true) {
		log.Debugf("refresh already in flight, skipping (manual=%v)", manual)
		return
	}
	defer a.refreshing.Store(false)

	ctx, cancel := a.prepareContext()
	defer cancel()

	if err := a.fetchAndReconcile(ctx); err != nil {
		if ctx.Err() != nil {
			return // superseded, result discarded
		}
		// A failed poll keeps the previous table; stale beats broken.
		code, msg := k8s.StatusOf(err)
		log.Warnf("pod list failed: %v", err)
		a.flashMsg(fmt.Sprintf("list pods: %d %s", code, msg), true)
	}
}

func (a *App) fetchAndReconcile(ctx context.Context) error {
	client, namespace := a.gateway()

	pods, err := client.ListPods(ctx, namespace)
	if err != nil {
		return err
	}

	snap := NewSnapshot(pods)
	a.QueueUpdateDraw(func() {
		a.Table.Reconcile(snap, namespace != "")
	})
	return nil
}

// initialRefresh retries the first fetch with exponential backoff so a slow
// API server does not leave an empty table on launch.
func (a *App) initialRefresh() {
	if !a.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer a.refreshing.Store(false)

	bf := backoff.NewExponentialBackOff()
	bf.InitialInterval = 300 * time.Millisecond
	bf.MaxElapsedTime = 10 * time.Second

	err := backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		return a.fetchAndReconcile(ctx)
	}, bf)
	if err != nil {
		code, msg := k8s.StatusOf(err)
		log.Errorf("initial pod list failed: %v", err)
		a.flashMsg(fmt.Sprintf("list pods: %d %s", code, msg), true)
	}
}

func (a *App) setNamespace(namespace string) {
	a.mx.Lock()
	a.namespace = namespace
	a.mx.Unlock()

	a.updateHeader()
	a.Poller.Kick()
}

func (a *App) switchContext(name string) {
	client, _ := a.gateway()
	next, err := client.WithContext(name)
	if err != nil {
		log.Errorf("context switch to %s failed: %v", name, err)
		a.flashMsg(fmt.Sprintf("switch context: %v", err), true)
		return
	}

	a.mx.Lock()
	a.client = next
	a.mx.Unlock()

	log.Infof("switched context to %s", name)
	a.updateHeader()
	a.Poller.Kick()
}

func (a *App) showNamespacePicker() {
	client, _ := a.gateway()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		nss, err := client.ListNamespaces(ctx)
		if err != nil {
			code, msg := k8s.StatusOf(err)
			log.Errorf("list namespaces failed: %v", err)
			a.flashMsg(fmt.Sprintf("list namespaces: %d %s", code, msg), true)
			return
		}
		a.QueueUpdateDraw(func() {
			names := make([]string, 0, len(nss))
			for _, ns := range nss {
				names = append(names, ns.Name)
			}
			picker := newNamespacePicker(names, func(ns string, all bool) {
				a.Nav.Pop()
				if all {
					a.setNamespace("")
				} else {
					a.setNamespace(ns)
				}
			}, a.Nav.Pop)
			a.Nav.Push("namespace", centered(picker, 50, min(len(names)+3, 20)))
		})
	}()
}

func (a *App) showContextPicker() {
	client, _ := a.gateway()

	contexts, current, err := client.ListContexts()
	if err != nil {
		log.Errorf("list contexts failed: %v", err)
		a.flashMsg(fmt.Sprintf("list contexts: %v", err), true)
		return
	}

	picker := newContextPicker(contexts, current, func(name string) {
		a.Nav.Pop()
		go a.switchContext(name)
	}, a.Nav.Pop)
	a.Nav.Push("context", centered(picker, 60, min(len(contexts)+3, 20)))
}

// showLogs resolves the selected pod's containers. One container skips the
// picker entirely; more than one shows it first.
func (a *App) showLogs() {
	key, ok := a.Table.Selected()
	if !ok {
		return
	}
	client, _ := a.gateway()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		pod, err := client.GetPod(ctx, key.Namespace, key.Name)
		if err != nil {
			code, msg := k8s.StatusOf(err)
			log.Errorf("pod lookup for %s/%s failed: %v", key.Namespace, key.Name, err)
			a.flashMsg(fmt.Sprintf("pod %s/%s: %d %s", key.Namespace, key.Name, code, msg), true)
			return
		}
		a.QueueUpdateDraw(func() {
			containers := make([]string, 0, len(pod.Spec.Containers))
			for _, c := range pod.Spec.Containers {
				containers = append(containers, c.Name)
			}

			if len(containers) <= 1 {
				a.openLogView(key, "")
				return
			}
			picker := newContainerPicker(containers, func(container string) {
				a.Nav.Pop()
				a.openLogView(key, container)
			}, a.Nav.Pop)
			a.Nav.Push("container", centered(picker, 50, min(len(containers)+3, 20)))
		})
	}()
}

func (a *App) openLogView(key PodKey, container string) {
	client, _ := a.gateway()

	lv := NewLogViewer(a.Application, client, key, container, a.Config.LogTailLines,
		a.flashMsg,
		func(current string, apply func(pattern string)) {
			input := newPatternInput(current, func(pattern string) {
				a.Nav.Pop()
				apply(pattern)
			}, a.Nav.Pop)
			a.Nav.Push("pattern", centered(input, 60, 3))
		},
		a.Nav.Pop)

	a.Nav.Push("logs", lv.View)
	lv.Refresh()
}

func (a *App) showDetail() {
	key, ok := a.Table.Selected()
	if !ok {
		return
	}
	client, _ := a.gateway()

	dv := NewDetailViewer(a.Application, client, key, a.flashMsg, a.Nav.Pop)
	a.Nav.Push("detail", dv.View)
	dv.Load()
}

func (a *App) showHelp() {
	a.Nav.Push("help", centered(newHelpView(a.Nav.Pop), 50, 22))
}

// flashMsg shows a transient notification above the table. The updates are
// queued from a fresh goroutine, never the event loop, so it is safe to call
// from anywhere.
func (a *App) flashMsg(msg string, isError bool) {
	color := "[green]"
	if isError {
		color = "[red]"
	}
	text := color + tview.Escape(msg) + "[white]"

	go func() {
		a.QueueUpdateDraw(func() { a.flash.SetText(text) })
		time.Sleep(3 * time.Second)
		a.QueueUpdateDraw(func() { a.flash.SetText("") })
	}()
}

func (a *App) updateHeader() {
	client, namespace := a.gateway()

	ctxName := "n/a"
	if client != nil && client.ContextName != "" {
		ctxName = client.ContextName
	}
	scope := "all"
	if namespace != "" {
		scope = namespace
	}

	// SetText only mutates widget state; the next draw picks it up. Queueing
	// here would deadlock the picker callbacks that run on the event loop.
	a.header.SetText(fmt.Sprintf(
		" [yellow::b]podview[white::-]\n [gray]Context:[white] %s  [gray]Namespace:[white] [green]%s[white]",
		ctxName, scope,
	))
}

// Run starts the poller and the event loop. The first refresh happens after
// the first draw so the loading state is visible immediately.
func (a *App) Run() error {
	a.SetAfterDrawFunc(func(screen tcell.Screen) {
		a.SetAfterDrawFunc(nil)
		go a.initialRefresh()
	})

	a.Poller.Start()
	defer a.Poller.Stop()

	log.Infof("starting podview")
	return a.Application.Run()
}
