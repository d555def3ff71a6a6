package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func TestNavigatorStack(t *testing.T) {
	nav := NewNavigator(tview.NewApplication())
	root := tview.NewBox()
	nav.SetRoot("main", root)

	if nav.Top() != "main" {
		t.Errorf("top = %q, expected main", nav.Top())
	}
	if nav.Depth() != 1 {
		t.Errorf("depth = %d, expected 1", nav.Depth())
	}

	first := nav.Push("help", tview.NewBox())
	second := nav.Push("help", tview.NewBox())
	if first == second {
		t.Errorf("pushed names must be unique, both were %q", first)
	}
	if nav.Top() != second {
		t.Errorf("top = %q, expected %q", nav.Top(), second)
	}
	if nav.Depth() != 3 {
		t.Errorf("depth = %d, expected 3", nav.Depth())
	}

	nav.Pop()
	if nav.Top() != first {
		t.Errorf("top = %q after pop, expected %q", nav.Top(), first)
	}
	nav.Pop()
	if nav.Top() != "main" {
		t.Errorf("top = %q after pop, expected main", nav.Top())
	}

	// The root is the floor of the stack.
	nav.Pop()
	nav.Pop()
	if nav.Top() != "main" || nav.Depth() != 1 {
		t.Errorf("root was popped: top=%q depth=%d", nav.Top(), nav.Depth())
	}
}

func TestNavigation(t *testing.T) {
	tester, err := NewTUITester()
	if err != nil {
		t.Fatalf("failed to create tester: %v", err)
	}

	client := NewFakePodClient(namespaceFixture("default"))
	app := InitApp(tester.App, TestConfig(), client)

	stop := tester.Run()
	defer stop()

	// 1. Initial state: the pod table.
	tester.AssertTop(t, app.Nav, "main")

	// 2. Show help (?)
	tester.InjectKey(tcell.KeyRune, '?', tcell.ModNone)
	tester.AssertTop(t, app.Nav, "help")

	// 3. Back to the table (ESC)
	tester.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	tester.AssertTop(t, app.Nav, "main")

	// 4. Namespace picker (n). The namespace list loads in the background.
	tester.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	tester.WaitFor(t, time.Second, func() bool {
		return app.Nav.Depth() == 2
	}, "namespace picker")
	tester.AssertTop(t, app.Nav, "namespace")

	// 5. Cancel it (ESC)
	tester.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	tester.AssertTop(t, app.Nav, "main")
}

func TestNamespacePickerAllScope(t *testing.T) {
	tester, err := NewTUITester()
	if err != nil {
		t.Fatalf("failed to create tester: %v", err)
	}

	client := NewFakePodClient(namespaceFixture("ns1"))
	app := InitApp(tester.App, TestConfig(), client)
	app.setNamespace("ns1")

	stop := tester.Run()
	defer stop()

	tester.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	tester.WaitFor(t, time.Second, func() bool {
		return app.Nav.Depth() == 2
	}, "namespace picker")

	// The first entry is the all-namespaces marker; selecting it clears the
	// scope.
	tester.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	tester.WaitFor(t, time.Second, func() bool {
		return app.Nav.Depth() == 1
	}, "picker dismissal")

	_, namespace := app.gateway()
	if namespace != "" {
		t.Errorf("namespace = %q, expected empty for all-namespaces scope", namespace)
	}
}
