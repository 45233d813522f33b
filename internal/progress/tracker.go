package progress

import (
	"fmt"

	"redcell/internal/logging"
)

// TaskID identifies one row on a Surface.
type TaskID int

// Surface is the rendering sink the tracker drives. The live terminal
// implementation lives in the tui package; tests supply fakes.
type Surface interface {
	// AddTask adds a row. A row added with started=false renders as
	// pending until StartTask is called for it.
	AddTask(label string, total int64, started bool) TaskID
	StartTask(id TaskID)
	SetTotal(id TaskID, total int64)
	SetCompleted(id TaskID, completed int64)
	SetLabel(id TaskID, label string)
	RemoveTask(id TaskID)
	// Close stops rendering and restores the terminal.
	Close()
}

// Tracker folds classified pull events into Surface state. One tracker
// serves one pull operation.
type Tracker struct {
	surface Surface
	log     *logging.Logger

	downloadRow TaskID
	extractRow  TaskID

	seen         map[string]struct{}
	downloadDone map[string]struct{}
	extractDone  map[string]struct{}
	downloading  map[string]TaskID
	extracting   map[string]TaskID

	extractStarted bool
}

// NewTracker creates a tracker with the two aggregate rows already on the
// surface. The extraction row stays pending until extraction begins.
func NewTracker(surface Surface, log *logging.Logger) *Tracker {
	t := &Tracker{
		surface:      surface,
		log:          log,
		seen:         make(map[string]struct{}),
		downloadDone: make(map[string]struct{}),
		extractDone:  make(map[string]struct{}),
		downloading:  make(map[string]TaskID),
		extracting:   make(map[string]TaskID),
	}
	t.downloadRow = surface.AddTask("Downloading layers...", 0, true)
	t.extractRow = surface.AddTask("Extracting layers...", 0, false)
	return t
}

// Apply folds one event into the tracker. It returns true when the event
// terminates the operation.
func (t *Tracker) Apply(ev Event) bool {
	switch ev.Kind {
	case EventLayerDiscovered:
		t.addLayer(ev.LayerID)
	case EventSourceNamed:
		t.surface.SetLabel(t.downloadRow, fmt.Sprintf("Downloading %s layers...", ev.Source))
		t.surface.SetLabel(t.extractRow, fmt.Sprintf("Extracting %s layers...", ev.Source))
	case EventDownloadFinished:
		t.addLayer(ev.LayerID)
		t.finishDownload(ev.LayerID)
	case EventExtractFinished:
		t.addLayer(ev.LayerID)
		t.startExtraction()
		t.finishExtraction(ev.LayerID)
	case EventDownloadProgress:
		t.addLayer(ev.LayerID)
		t.updatePool(t.downloading, ev, "Downloading")
	case EventExtractProgress:
		t.addLayer(ev.LayerID)
		t.startExtraction()
		t.updatePool(t.extracting, ev, "Extracting")
	case EventOperationComplete:
		if t.log != nil {
			t.log.Success("%s", ev.Message)
		}
		return true
	default:
		if t.log != nil {
			t.log.Debug("%s", ev.Message)
		}
	}
	return false
}

// Finish forces every known layer into the done state. Safe to call more
// than once, and after Apply already reported completion.
func (t *Tracker) Finish() {
	for id := range t.seen {
		t.finishDownload(id)
		t.finishExtraction(id)
	}
}

func (t *Tracker) addLayer(id string) {
	if id == "" {
		return
	}
	if _, ok := t.seen[id]; ok {
		return
	}
	t.seen[id] = struct{}{}
	t.surface.SetTotal(t.downloadRow, int64(len(t.seen)))
	t.surface.SetTotal(t.extractRow, int64(len(t.seen)))
}

func (t *Tracker) startExtraction() {
	if t.extractStarted {
		return
	}
	t.extractStarted = true
	t.surface.StartTask(t.extractRow)
}

func (t *Tracker) finishDownload(id string) {
	if _, ok := t.downloadDone[id]; ok {
		return
	}
	t.downloadDone[id] = struct{}{}
	t.surface.SetCompleted(t.downloadRow, int64(len(t.downloadDone)))
	if task, ok := t.downloading[id]; ok {
		t.surface.RemoveTask(task)
		delete(t.downloading, id)
	}
}

func (t *Tracker) finishExtraction(id string) {
	if _, ok := t.extractDone[id]; ok {
		return
	}
	t.extractDone[id] = struct{}{}
	t.surface.SetCompleted(t.extractRow, int64(len(t.extractDone)))
	if task, ok := t.extracting[id]; ok {
		t.surface.RemoveTask(task)
		delete(t.extracting, id)
	}
}

func (t *Tracker) updatePool(pool map[string]TaskID, ev Event, verb string) {
	task, ok := pool[ev.LayerID]
	if !ok {
		task = t.surface.AddTask(fmt.Sprintf("%s %s", verb, ev.LayerID), ev.Total, true)
		pool[ev.LayerID] = task
	}
	t.surface.SetTotal(task, ev.Total)
	t.surface.SetCompleted(task, ev.Current)
}
