package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUITester wraps a tview application with a simulation screen for automated
// testing.
type TUITester struct {
	App    *tview.Application
	Screen tcell.SimulationScreen
}

func NewTUITester() (*TUITester, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, err
	}
	app := tview.NewApplication().SetScreen(screen)
	return &TUITester{
		App:    app,
		Screen: screen,
	}, nil
}

// InjectKey simulates a key press and gives tview a moment to process it.
func (t *TUITester) InjectKey(key tcell.Key, r rune, mod tcell.ModMask) {
	t.Screen.InjectKey(key, r, mod)
	time.Sleep(20 * time.Millisecond)
}

// GetContent returns the text content of the simulation screen.
func (t *TUITester) GetContent() string {
	width, height := t.Screen.Size()
	var content string
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			mainc, _, _, _ := t.Screen.GetContent(x, y)
			content += string(mainc)
		}
		content += "\n"
	}
	return content
}

// Run runs the application in a goroutine and returns a stop function.
func (t *TUITester) Run() func() {
	go func() {
		if err := t.App.Run(); err != nil {
			panic(err)
		}
	}()
	time.Sleep(20 * time.Millisecond)
	return func() {
		t.App.Stop()
	}
}

// WaitFor polls cond until it holds or the deadline passes.
func (t *TUITester) WaitFor(tb testing.TB, timeout time.Duration, cond func() bool, desc string) {
	tb.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	tb.Fatalf("timed out waiting for %s", desc)
}

// AssertTop verifies the navigator's visible view kind.
func (t *TUITester) AssertTop(tb testing.TB, nav *Navigator, kind string) {
	tb.Helper()
	top := nav.Top()
	if top != kind && !strings.HasPrefix(top, kind+"-") {
		tb.Errorf("expected top view %s, got %s", kind, top)
	}
}
