package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	corev1 "k8s.io/api/core/v1"
)

// PodKey identifies a pod globally. The pair is unique across the cluster.
type PodKey struct {
	Namespace string
	Name      string
}

// PodRow is one immutable table entry derived from a pod descriptor.
type PodRow struct {
	Key    PodKey
	Ready  string
	Status string
}

// Snapshot is the unordered result of one pod list call. It carries no
// relationship to any previous snapshot; PodTable.Reconcile establishes
// continuity between them.
type Snapshot map[PodKey]PodRow

func NewSnapshot(pods []corev1.Pod) Snapshot {
	snap := make(Snapshot, len(pods))
	for i := range pods {
		p := &pods[i]
		key := PodKey{Namespace: p.Namespace, Name: p.Name}
		snap[key] = PodRow{
			Key:    key,
			Ready:  podReadiness(p),
			Status: podStatus(p),
		}
	}
	return snap
}

func podReadiness(p *corev1.Pod) string {
	if len(p.Status.ContainerStatuses) == 0 {
		return "0/0"
	}
	ready := 0
	for _, cs := range p.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
	}
	return fmt.Sprintf("%d/%d", ready, len(p.Status.ContainerStatuses))
}

func podStatus(p *corev1.Pod) string {
	for _, cs := range p.Status.ContainerStatuses {
		if cs.State.Waiting != nil && cs.State.Waiting.Reason != "" {
			return cs.State.Waiting.Reason
		}
	}
	return string(p.Status.Phase)
}

// PodTable keeps a tview table synchronized with pod snapshots. Rather than
// clearing and redrawing on every poll, which makes the scrollbar bounce
// around whenever the user is not at the top of the list, it diffs the new
// snapshot against the displayed rows and touches only what changed.
type PodTable struct {
	Root *tview.Table

	rows        []PodRow
	namespaced  bool
	initialized bool
}

func NewPodTable() *PodTable {
	t := &PodTable{
		Root: tview.NewTable().
			SetSelectable(true, false).
			SetFixed(1, 0),
	}
	t.Root.SetBorder(true).SetTitle(" Pods ")
	t.Root.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkCyan).
		Foreground(tcell.ColorWhite))
	return t
}

// RowCount reports the number of data rows (the header excluded).
func (t *PodTable) RowCount() int {
	return len(t.rows)
}

// Selected returns the identity of the row under the cursor.
func (t *PodTable) Selected() (PodKey, bool) {
	row, _ := t.Root.GetSelection()
	idx := row - 1 // row 0 is the header
	if idx < 0 || idx >= len(t.rows) {
		return PodKey{}, false
	}
	return t.rows[idx].Key, true
}

// Reconcile mutates the displayed rows to match the snapshot. namespaceScoped
// reports whether the snapshot covers a single namespace; the namespace
// column is shown only when it does not. Flipping that flag forces a one-time
// full rebuild since the column schema changes.
func (t *PodTable) Reconcile(snap Snapshot, namespaceScoped bool) {
	cursor, _ := t.Root.GetSelection()

	if !t.initialized || t.namespaced != namespaceScoped {
		t.rows = nil
		t.Root.Clear()
		t.namespaced = namespaceScoped
		t.initialized = true
	}

	// Net-new identities remain in working once the kept rows are updated.
	working := make(Snapshot, len(snap))
	for k, v := range snap {
		working[k] = v
	}

	kept := t.rows[:0]
	for _, row := range t.rows {
		fresh, ok := working[row.Key]
		if !ok {
			continue // pod went away, row dropped
		}
		row.Ready = fresh.Ready
		row.Status = fresh.Status
		kept = append(kept, row)
		delete(working, row.Key)
	}

	added := make([]PodRow, 0, len(working))
	for _, row := range working {
		added = append(added, row)
	}
	sort.Slice(added, func(i, j int) bool {
		if added[i].Key.Namespace != added[j].Key.Namespace {
			return added[i].Key.Namespace < added[j].Key.Namespace
		}
		return added[i].Key.Name < added[j].Key.Name
	})
	t.rows = append(kept, added...)

	// No separate sort key survives between polls, so the order must be
	// derivable from the visible columns alone: left to right, ascending,
	// ties broken by insertion order.
	sort.SliceStable(t.rows, func(i, j int) bool {
		return t.less(t.rows[i], t.rows[j])
	})

	t.render()
	t.clampCursor(cursor)
}

func (t *PodTable) less(a, b PodRow) bool {
	if !t.namespaced && a.Key.Namespace != b.Key.Namespace {
		return a.Key.Namespace < b.Key.Namespace
	}
	if a.Key.Name != b.Key.Name {
		return a.Key.Name < b.Key.Name
	}
	if a.Ready != b.Ready {
		return a.Ready < b.Ready
	}
	return a.Status < b.Status
}

func (t *PodTable) headers() []string {
	if t.namespaced {
		return []string{"NAME", "READY", "STATUS"}
	}
	return []string{"NAMESPACE", "NAME", "READY", "STATUS"}
}

func (t *PodTable) render() {
	for i, h := range t.headers() {
		t.Root.SetCell(0, i, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}

	for r, row := range t.rows {
		cells := []string{row.Key.Name, row.Ready, row.Status}
		if !t.namespaced {
			cells = append([]string{row.Key.Namespace}, cells...)
		}
		for c, text := range cells {
			color := tcell.ColorWhite
			if c == len(cells)-1 {
				color = statusColor(text)
			}
			t.Root.SetCell(r+1, c, tview.NewTableCell(text).
				SetTextColor(color).
				SetExpansion(1))
		}
	}

	// Drop rows past the end. Walk backwards so indices stay valid.
	for r := t.Root.GetRowCount() - 1; r > len(t.rows); r-- {
		t.Root.RemoveRow(r)
	}

	t.Root.SetTitle(fmt.Sprintf(" Pods (%d) ", len(t.rows)))
}

// clampCursor restores the pre-reconcile selection, clamped to the data rows
// so a shrinking list can never leave the cursor past the last row.
func (t *PodTable) clampCursor(cursor int) {
	if len(t.rows) == 0 {
		return
	}
	if cursor < 1 {
		cursor = 1
	}
	if cursor > len(t.rows) {
		cursor = len(t.rows)
	}
	t.Root.Select(cursor, 0)
}

func statusColor(status string) tcell.Color {
	switch strings.ToLower(status) {
	case "running", "succeeded", "completed":
		return tcell.ColorGreen
	case "pending", "containercreating", "podinitializing":
		return tcell.ColorYellow
	case "failed", "error", "crashloopbackoff", "imagepullbackoff", "errimagepull":
		return tcell.ColorRed
	default:
		return tcell.ColorWhite
	}
}
