package progress

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"redcell/internal/engine"
	"redcell/internal/logging"
)

var (
	builtPattern  = regexp.MustCompile(`^Successfully built [a-z0-9]{12}`)
	taggedPattern = regexp.MustCompile(`^Successfully tagged `)
)

// ConsumeBuild drains a build event stream, logging build steps as they
// arrive. Any line naming a FROM instruction triggers an embedded pull on
// the same stream: a fresh surface from newSurface renders it, with quick
// exit so the loop resumes build output once the base image is pulled.
func ConsumeBuild(stream *engine.EventStream, newSurface func() Surface, log *logging.Logger) error {
	for {
		raw, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if raw.Error != "" {
			return errors.New(raw.Error)
		}
		line := raw.Stream
		if line == "" {
			continue
		}
		text := strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(text, "Step"):
			log.Info("%s", text)
		case isBuildMilestone(text):
			log.Verbose("%s", text)
		default:
			log.Raw(logging.LevelDebug, line)
		}
		if strings.Contains(text, ": FROM ") {
			surface := newSurface()
			err := ConsumePull(stream, surface, log, true)
			surface.Close()
			if err != nil {
				return err
			}
		}
	}
}

func isBuildMilestone(text string) bool {
	return strings.Contains(text, "--->") ||
		strings.Contains(text, "Removing intermediate container ") ||
		builtPattern.MatchString(text) ||
		taggedPattern.MatchString(text)
}
