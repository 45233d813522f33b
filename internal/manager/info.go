package manager

import (
	"context"

	"redcell/internal/system"
)

// Info prints an overview of the host, the installed images and the
// managed containers. Table detail follows the logger's verbosity.
func (m *Manager) Info(ctx context.Context) error {
	vitals, err := system.GetVitals()
	if err != nil {
		m.log.Warning("Unable to read host vitals: %s", err)
	} else {
		m.console.PrintVitals(*vitals)
	}

	images, err := m.ListImages(ctx)
	if err != nil {
		return err
	}
	m.console.PrintImages(images)

	containers, err := m.ListContainers(ctx)
	if err != nil {
		return err
	}
	m.console.PrintContainers(containers)
	return nil
}
