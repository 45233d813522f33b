package tui

import (
	"errors"
	"fmt"
	"sort"

	"github.com/manifoldco/promptui"

	"redcell/internal/model"
)

// ErrEmptyInput is returned when a selection is requested over nothing.
var ErrEmptyInput = errors.New("nothing to select from")

// Prompter runs the interactive list prompt. Tests substitute a fake.
type Prompter interface {
	Select(label string, items []string, cursor int) (index int, value string, err error)
}

type selectPrompter struct{}

func (selectPrompter) Select(label string, items []string, cursor int) (int, string, error) {
	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Size:      10,
		CursorPos: cursor,
		Templates: &promptui.SelectTemplates{
			Active:   "> {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "{{ . | green }}",
		},
	}
	return prompt.Run()
}

// SelectImage picks an image by tag, printing the candidate table first. A
// single candidate is returned without prompting; the cursor starts on
// preferredTag when present.
func (c *Console) SelectImage(images []model.Image, preferredTag string) (model.Image, error) {
	if len(images) == 0 {
		c.Log.Warning("No images are available")
		return model.Image{}, ErrEmptyInput
	}
	if len(images) > 1 {
		c.PrintImages(images)
	}
	idx, err := c.selectKey(keysOf(images), preferredTag, "Select an image by his name")
	if err != nil {
		return model.Image{}, err
	}
	return images[idx], nil
}

// SelectContainer picks a container by name, printing the candidate table
// first so the user sees what each name carries.
func (c *Console) SelectContainer(containers []model.Container, preferredName string) (model.Container, error) {
	if len(containers) == 0 {
		c.Log.Warning("No containers are available")
		return model.Container{}, ErrEmptyInput
	}
	if len(containers) > 1 {
		c.PrintContainers(containers)
	}
	idx, err := c.selectKey(keysOf(containers), preferredName, "Select a container by his name")
	if err != nil {
		return model.Container{}, err
	}
	return containers[idx], nil
}

// SelectString picks one value from an ordered list, keeping the caller's
// order. A single candidate is returned without prompting.
func (c *Console) SelectString(subject string, values []string, preferred string) (string, error) {
	idx, err := c.selectKey(values, preferred, "Select "+subject)
	if err != nil {
		return "", err
	}
	return values[idx], nil
}

// SelectValue picks one entry from a map by key, keys sorted for a stable
// prompt order and printed as a table under title. The cursor starts on
// preferred when present.
func SelectValue[V any](c *Console, subject, title string, values map[string]V, preferred string) (V, error) {
	var zero V
	if len(values) == 0 {
		return zero, ErrEmptyInput
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 1 {
		c.PrintStrings(title, keys)
	}
	key, err := c.SelectString(subject, keys, preferred)
	if err != nil {
		return zero, err
	}
	v, ok := values[key]
	if !ok {
		// Unreachable: the prompt enforces a closed choice set.
		c.Log.Critical("selected key %q not found among candidates", key)
		return zero, fmt.Errorf("selected key %q not found", key)
	}
	return v, nil
}

func (c *Console) selectKey(keys []string, preferred, label string) (int, error) {
	switch len(keys) {
	case 0:
		return 0, ErrEmptyInput
	case 1:
		return 0, nil
	}
	cursor := 0
	for i, k := range keys {
		if k == preferred {
			cursor = i
			break
		}
	}
	idx, _, err := c.Prompter.Select(label, keys, cursor)
	if err != nil {
		return 0, err
	}
	return idx, nil
}

func keysOf[S model.Selectable](items []S) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key()
	}
	return keys
}
