// Package model holds the domain records the CLI presents and selects.
package model

// Selectable is the capability shared by every record that can be offered
// in an interactive selection: it exposes a unique display key.
type Selectable interface {
	Key() string
}
