package tui

import (
	"bytes"
	"errors"
	"testing"

	"redcell/internal/logging"
	"redcell/internal/model"
)

type fakePrompter struct {
	label  string
	items  []string
	cursor int
	pick   int
	err    error
	calls  int
}

func (f *fakePrompter) Select(label string, items []string, cursor int) (int, string, error) {
	f.calls++
	f.label = label
	f.items = items
	f.cursor = cursor
	if f.err != nil {
		return 0, "", f.err
	}
	return f.pick, items[f.pick], nil
}

func testConsole(p Prompter) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return &Console{
		Out:      &out,
		Log:      logging.New(logging.LevelInfo, &out),
		Prompter: p,
	}, &out
}

func TestSelectImageEmpty(t *testing.T) {
	c, _ := testConsole(&fakePrompter{})
	if _, err := c.SelectImage(nil, ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("SelectImage(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestSelectImageSingleSkipsPrompt(t *testing.T) {
	p := &fakePrompter{}
	c, _ := testConsole(p)
	images := []model.Image{{Tag: "full"}}

	got, err := c.SelectImage(images, "")
	if err != nil {
		t.Fatalf("SelectImage() error = %v", err)
	}
	if got.Tag != "full" {
		t.Errorf("SelectImage() = %q, want full", got.Tag)
	}
	if p.calls != 0 {
		t.Errorf("prompter called %d times for a single candidate", p.calls)
	}
}

func TestSelectImageCursorOnPreferred(t *testing.T) {
	p := &fakePrompter{pick: 2}
	c, _ := testConsole(p)
	images := []model.Image{{Tag: "ad"}, {Tag: "full"}, {Tag: "light"}}

	got, err := c.SelectImage(images, "full")
	if err != nil {
		t.Fatalf("SelectImage() error = %v", err)
	}
	if p.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (preferred tag)", p.cursor)
	}
	if got.Tag != "light" {
		t.Errorf("SelectImage() = %q, want the picked item", got.Tag)
	}
	if p.label != "Select an image by his name" {
		t.Errorf("label = %q", p.label)
	}
}

func TestSelectContainerPrintsCandidates(t *testing.T) {
	p := &fakePrompter{pick: 0}
	c, out := testConsole(p)
	containers := []model.Container{
		{Name: "redcell-demo", State: "running", ImageTag: "full"},
		{Name: "redcell-web", State: "exited", ImageTag: "light"},
	}

	if _, err := c.SelectContainer(containers, ""); err != nil {
		t.Fatalf("SelectContainer() error = %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("redcell-demo")) {
		t.Error("candidate table not printed before prompting")
	}
}

func TestSelectContainerPropagatesPromptError(t *testing.T) {
	wantErr := errors.New("interrupted")
	c, _ := testConsole(&fakePrompter{err: wantErr})
	containers := []model.Container{{Name: "a"}, {Name: "b"}}

	if _, err := c.SelectContainer(containers, ""); !errors.Is(err, wantErr) {
		t.Errorf("SelectContainer() error = %v, want %v", err, wantErr)
	}
}

func TestSelectValue(t *testing.T) {
	p := &fakePrompter{pick: 1}
	c, out := testConsole(p)
	values := map[string]int{"charlie": 3, "alpha": 1, "bravo": 2}

	got, err := SelectValue(c, "a profile", "Profile", values, "bravo")
	if err != nil {
		t.Fatalf("SelectValue() error = %v", err)
	}
	wantItems := []string{"alpha", "bravo", "charlie"}
	for i, item := range wantItems {
		if p.items[i] != item {
			t.Fatalf("items = %v, want sorted %v", p.items, wantItems)
		}
	}
	if got != 2 {
		t.Errorf("SelectValue() = %d, want 2", got)
	}
	if p.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (preferred key)", p.cursor)
	}
	if !bytes.Contains(out.Bytes(), []byte("charlie")) {
		t.Error("key table not printed before prompting")
	}
}

func TestSelectValueSingleAndEmpty(t *testing.T) {
	p := &fakePrompter{}
	c, _ := testConsole(p)

	if _, err := SelectValue(c, "a profile", "Profile", map[string]int{}, ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty map error = %v, want ErrEmptyInput", err)
	}
	got, err := SelectValue(c, "a profile", "Profile", map[string]int{"only": 7}, "")
	if err != nil || got != 7 {
		t.Errorf("single entry = (%d, %v), want (7, nil)", got, err)
	}
	if p.calls != 0 {
		t.Error("prompter called for trivial selections")
	}
}
