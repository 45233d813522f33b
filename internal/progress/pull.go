package progress

import (
	"errors"
	"io"

	"redcell/internal/engine"
	"redcell/internal/logging"
)

// ConsumePull drains a pull event stream into the surface until either the
// stream ends or, when quickExit is set, the engine reports the operation
// complete. quickExit is used during builds, where the same stream carries
// build output after the embedded pull and must not be drained past it.
func ConsumePull(stream *engine.EventStream, surface Surface, log *logging.Logger, quickExit bool) error {
	tracker := NewTracker(surface, log)
	for {
		raw, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if raw.Error != "" {
			return errors.New(raw.Error)
		}
		if tracker.Apply(Classify(raw)) && quickExit {
			break
		}
	}
	tracker.Finish()
	return nil
}
