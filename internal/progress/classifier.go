// Package progress tracks and renders pull and build progress from the
// engine's event streams.
package progress

import (
	"fmt"
	"strings"

	"redcell/internal/engine"
)

// EventKind is the closed set of pull event classifications.
type EventKind int

const (
	// EventUnclassified is anything the classifier does not recognize.
	// It is logged at debug level and never affects tracker state.
	EventUnclassified EventKind = iota
	// EventLayerDiscovered announces a new layer to download.
	EventLayerDiscovered
	// EventSourceNamed carries the image name the pull is reading from.
	EventSourceNamed
	// EventDownloadFinished marks one layer's download as done.
	EventDownloadFinished
	// EventExtractFinished marks one layer's extraction as done.
	EventExtractFinished
	// EventDownloadProgress reports download byte counters for one layer.
	EventDownloadProgress
	// EventExtractProgress reports extraction byte counters for one layer.
	EventExtractProgress
	// EventOperationComplete is the terminal signal for the whole pull.
	EventOperationComplete
)

// Event is one classified pull event.
type Event struct {
	Kind    EventKind
	LayerID string
	Source  string // image ref, only for EventSourceNamed
	Current int64
	Total   int64
	Message string
}

const (
	statusLayerDiscovered  = "Pulling fs layer"
	statusSourcePrefix     = "Pulling from "
	statusDownloadComplete = "Download complete"
	statusPullComplete     = "Pull complete"
	statusDownloading      = "Downloading"
	statusExtracting       = "Extracting"
	statusUpToDate         = "Image is up to date"
	statusNewerImage       = "Status: Downloaded newer image for"
)

// defaultProgress is substituted when an event carries no byte counters,
// so a layer with no detail renders as instantaneously complete instead of
// failing.
const defaultProgress = 100

// Classify interprets one raw engine event. Malformed events never fail:
// missing counters default, unknown statuses come back unclassified.
func Classify(raw engine.StatusEvent) Event {
	current, total := int64(defaultProgress), int64(defaultProgress)
	if raw.ProgressDetail != nil {
		if raw.ProgressDetail.Current != nil {
			current = *raw.ProgressDetail.Current
		}
		if raw.ProgressDetail.Total != nil {
			total = *raw.ProgressDetail.Total
		}
	}

	switch {
	case raw.Status == statusLayerDiscovered:
		return Event{Kind: EventLayerDiscovered, LayerID: raw.ID}
	case strings.Contains(raw.Status, statusSourcePrefix):
		tag := raw.ID
		if tag == "" {
			tag = "latest"
		}
		name := strings.Replace(raw.Status, statusSourcePrefix, "", 1)
		return Event{Kind: EventSourceNamed, Source: fmt.Sprintf("%s:%s", name, tag)}
	case raw.Status == statusDownloadComplete:
		return Event{Kind: EventDownloadFinished, LayerID: raw.ID}
	case raw.Status == statusPullComplete:
		return Event{Kind: EventExtractFinished, LayerID: raw.ID}
	case raw.Status == statusDownloading:
		return Event{Kind: EventDownloadProgress, LayerID: raw.ID, Current: current, Total: total}
	case raw.Status == statusExtracting:
		return Event{Kind: EventExtractProgress, LayerID: raw.ID, Current: current, Total: total}
	case strings.Contains(raw.Status, statusUpToDate), strings.Contains(raw.Status, statusNewerImage):
		return Event{Kind: EventOperationComplete, Message: raw.Status}
	default:
		return Event{Kind: EventUnclassified, Message: fmt.Sprintf("%s %s", raw.ID, raw.Status)}
	}
}
