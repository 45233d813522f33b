package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	appprogress "redcell/internal/progress"
)

const surfaceTickInterval = 100 * time.Millisecond

var pendingStyle = lipgloss.NewStyle().Faint(true)

// LiveSurface renders concurrent progress rows inline in the terminal and
// clears them when closed. It runs a bubbletea program in the background;
// every mutation is delivered as a message, so callers never touch model
// state directly.
type LiveSurface struct {
	prog *tea.Program
	done chan struct{}

	mu   sync.Mutex
	next appprogress.TaskID
}

type (
	addTaskMsg struct {
		id      appprogress.TaskID
		label   string
		total   int64
		started bool
	}
	startTaskMsg struct{ id appprogress.TaskID }
	setTotalMsg  struct {
		id    appprogress.TaskID
		total int64
	}
	setCompletedMsg struct {
		id        appprogress.TaskID
		completed int64
	}
	setLabelMsg struct {
		id    appprogress.TaskID
		label string
	}
	removeTaskMsg struct{ id appprogress.TaskID }
	shutdownMsg   struct{}
	tickMsg       time.Time
)

// NewLiveSurface starts rendering on out. Input is detached so the surface
// never competes with an attached container shell for stdin.
func NewLiveSurface(out io.Writer) *LiveSurface {
	prog := tea.NewProgram(newSurfaceModel(),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	s := &LiveSurface{prog: prog, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		_, _ = prog.Run()
	}()
	return s
}

// AddTask adds a row and returns its handle.
func (s *LiveSurface) AddTask(label string, total int64, started bool) appprogress.TaskID {
	s.mu.Lock()
	id := s.next
	s.next++
	s.mu.Unlock()
	s.prog.Send(addTaskMsg{id: id, label: label, total: total, started: started})
	return id
}

func (s *LiveSurface) StartTask(id appprogress.TaskID) {
	s.prog.Send(startTaskMsg{id: id})
}

func (s *LiveSurface) SetTotal(id appprogress.TaskID, total int64) {
	s.prog.Send(setTotalMsg{id: id, total: total})
}

func (s *LiveSurface) SetCompleted(id appprogress.TaskID, completed int64) {
	s.prog.Send(setCompletedMsg{id: id, completed: completed})
}

func (s *LiveSurface) SetLabel(id appprogress.TaskID, label string) {
	s.prog.Send(setLabelMsg{id: id, label: label})
}

func (s *LiveSurface) RemoveTask(id appprogress.TaskID) {
	s.prog.Send(removeTaskMsg{id: id})
}

// Close clears the rendered rows and waits for the program to stop.
func (s *LiveSurface) Close() {
	s.prog.Send(shutdownMsg{})
	<-s.done
}

type surfaceRow struct {
	id        appprogress.TaskID
	label     string
	total     int64
	completed int64
	started   bool
	startedAt time.Time
	bar       progress.Model
}

type surfaceModel struct {
	rows     []*surfaceRow
	index    map[appprogress.TaskID]*surfaceRow
	quitting bool
}

func newSurfaceModel() *surfaceModel {
	return &surfaceModel{index: make(map[appprogress.TaskID]*surfaceRow)}
}

func (m *surfaceModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(surfaceTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *surfaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addTaskMsg:
		row := &surfaceRow{
			id:      msg.id,
			label:   msg.label,
			total:   msg.total,
			started: msg.started,
			bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		}
		if msg.started {
			row.startedAt = time.Now()
		}
		m.rows = append(m.rows, row)
		m.index[msg.id] = row
	case startTaskMsg:
		if row, ok := m.index[msg.id]; ok && !row.started {
			row.started = true
			row.startedAt = time.Now()
		}
	case setTotalMsg:
		if row, ok := m.index[msg.id]; ok {
			row.total = msg.total
		}
	case setCompletedMsg:
		if row, ok := m.index[msg.id]; ok {
			row.completed = msg.completed
		}
	case setLabelMsg:
		if row, ok := m.index[msg.id]; ok {
			row.label = msg.label
		}
	case removeTaskMsg:
		if row, ok := m.index[msg.id]; ok {
			delete(m.index, msg.id)
			for i, r := range m.rows {
				if r == row {
					m.rows = append(m.rows[:i], m.rows[i+1:]...)
					break
				}
			}
		}
	case shutdownMsg:
		m.quitting = true
		return m, tea.Quit
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tickCmd()
	}
	return m, nil
}

// View renders one line per row. After shutdown it renders nothing, which
// makes bubbletea erase the inline frame and leave the terminal clean.
func (m *surfaceModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	for _, row := range m.rows {
		b.WriteString(renderRow(row, time.Now()))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderRow(row *surfaceRow, now time.Time) string {
	if !row.started {
		return pendingStyle.Render(fmt.Sprintf("%s (waiting)", row.label))
	}
	ratio := 0.0
	if row.total > 0 {
		ratio = float64(row.completed) / float64(row.total)
		if ratio > 1 {
			ratio = 1
		}
	}
	elapsed := now.Sub(row.startedAt)
	return fmt.Sprintf("%s %s %.1f%% %s %s %s",
		row.label,
		row.bar.ViewAs(ratio),
		ratio*100,
		renderCount(row.completed, row.total),
		renderRate(row.completed, row.total, elapsed),
		renderETA(row.completed, row.total, elapsed),
	)
}

func renderETA(completed, total int64, elapsed time.Duration) string {
	if completed <= 0 || total <= completed {
		return "--"
	}
	remaining := time.Duration(float64(elapsed) * float64(total-completed) / float64(completed))
	return "eta " + remaining.Round(time.Second).String()
}

// Aggregate rows count layers; layer rows count bytes. Totals below a KiB
// can only be layer counts, everything else formats as bytes.
func renderCount(completed, total int64) string {
	if total < 1024 {
		return fmt.Sprintf("%d/%d", completed, total)
	}
	return fmt.Sprintf("%s/%s", humanize.Bytes(uint64(completed)), humanize.Bytes(uint64(total)))
}

func renderRate(completed, total int64, elapsed time.Duration) string {
	if total < 1024 || elapsed <= 0 {
		return elapsed.Round(time.Second).String()
	}
	rate := float64(completed) / elapsed.Seconds()
	return fmt.Sprintf("%s/s %s", humanize.Bytes(uint64(rate)), elapsed.Round(time.Second))
}
