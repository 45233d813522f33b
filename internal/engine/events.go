package engine

import (
	"bufio"
	"encoding/json"
	"io"
)

// ProgressDetail carries byte counters for one layer operation. The fields
// are pointers so an explicit zero, which the engine sends at download
// start, stays distinct from an absent counter.
type ProgressDetail struct {
	Current *int64 `json:"current"`
	Total   *int64 `json:"total"`
}

// StatusEvent is one element of the engine's pull or build response stream.
// Pull streams populate Status/ID/ProgressDetail; build streams populate
// Stream (one text line per event). A build that pulls a base image emits
// pull-shaped events on the same stream.
type StatusEvent struct {
	Status         string          `json:"status"`
	ID             string          `json:"id"`
	Stream         string          `json:"stream"`
	ProgressDetail *ProgressDetail `json:"progressDetail"`
	Error          string          `json:"error"`
}

// EventStream decodes StatusEvents lazily from an engine response body,
// one JSON object per line. Consumption is strictly ordered and pull-based,
// so a consumer can stop mid-stream and hand the remainder to another
// consumer.
type EventStream struct {
	body    io.Closer
	scanner *bufio.Scanner
}

// NewEventStream wraps an engine response body.
func NewEventStream(body io.ReadCloser) *EventStream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &EventStream{body: body, scanner: scanner}
}

// Next returns the next event, or io.EOF when the stream is exhausted.
// Lines that are not valid event objects are skipped rather than aborting
// the whole operation.
func (s *EventStream) Next() (StatusEvent, error) {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event StatusEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		return event, nil
	}
	if err := s.scanner.Err(); err != nil {
		return StatusEvent{}, err
	}
	return StatusEvent{}, io.EOF
}

// Close releases the underlying response body.
func (s *EventStream) Close() error {
	return s.body.Close()
}
