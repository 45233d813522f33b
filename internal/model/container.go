package model

import (
	"fmt"
	"strings"
)

// Container is one managed environment container.
type Container struct {
	Name        string
	ID          string
	State       string
	ImageTag    string
	Privileged  bool
	NetworkHost bool
	Mounts      []string
	Devices     []string
	Envs        []string
}

// Key returns the unique display key used for interactive selection.
func (c Container) Key() string {
	return c.Name
}

// Running reports whether the container is currently running.
func (c Container) Running() bool {
	return c.State == "running"
}

// StateText formats the container state for display.
func (c Container) StateText() string {
	if c.State == "" {
		return "Unknown"
	}
	return strings.ToUpper(c.State[:1]) + c.State[1:]
}

// FeaturesText summarizes the security-relevant creation options.
func (c Container) FeaturesText() string {
	var features []string
	if c.Privileged {
		features = append(features, "Privileged")
	}
	if c.NetworkHost {
		features = append(features, "Network host")
	}
	if len(features) == 0 {
		return "Default"
	}
	return strings.Join(features, ", ")
}

// MountsText lists the container mounts. At lower verbosity the list is
// redacted to a count; full detail only shows when unredacted.
func (c Container) MountsText(unredacted bool) string {
	return redactedList(c.Mounts, "mount", unredacted)
}

// DevicesText lists the passed-through devices, redacted to a count unless
// unredacted.
func (c Container) DevicesText(unredacted bool) string {
	return redactedList(c.Devices, "device", unredacted)
}

// EnvsText lists the environment variables, redacted to a count unless
// unredacted.
func (c Container) EnvsText(unredacted bool) string {
	return redactedList(c.Envs, "env", unredacted)
}

func redactedList(items []string, noun string, unredacted bool) string {
	if len(items) == 0 {
		return "-"
	}
	if !unredacted {
		if len(items) == 1 {
			return fmt.Sprintf("1 %s", noun)
		}
		return fmt.Sprintf("%d %ss", len(items), noun)
	}
	return strings.Join(items, "\n")
}
