package ui

import (
	"sync"
	"time"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/machinefile"
)

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	Status    string
	LastError error
	FilePath  string

	LeftPanelVisible  bool
	RightPanelVisible bool
	DarkMode          bool

	Logs []string

	LastUpdated time.Time
}

// AppState tracks the state shared between the Gio event loop and the
// goroutines that open machine files and write log records.
type AppState struct {
	mu sync.RWMutex

	status    string
	lastError error
	filePath  string

	leftPanelVisible  bool
	rightPanelVisible bool
	darkMode          bool

	// Machines read from a file, waiting for the frame loop to pick them up
	pending []machinefile.Entry

	logs     []string
	logLimit int

	lastUpdated time.Time
}

// NewState returns a baseline AppState with safe defaults.
func NewState() *AppState {
	return &AppState{
		status:            "Ready",
		leftPanelVisible:  true,
		rightPanelVisible: true,
		logLimit:          200,
		lastUpdated:       time.Now(),
	}
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	return StateSnapshot{
		Status:            s.status,
		LastError:         s.lastError,
		FilePath:          s.filePath,
		LeftPanelVisible:  s.leftPanelVisible,
		RightPanelVisible: s.rightPanelVisible,
		DarkMode:          s.darkMode,
		Logs:              logCopy,
		LastUpdated:       s.lastUpdated,
	}
}

// SetStatus sets the status line and clears the last error.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastError = nil
	s.touch()
}

// SetError records err; the status line shows it until the next SetStatus.
func (s *AppState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.touch()
}

// AppendLog adds a line to the log pane, dropping the oldest lines beyond
// the limit.
func (s *AppState) AppendLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, msg)
	if over := len(s.logs) - s.logLimit; over > 0 {
		s.logs = append(s.logs[:0], s.logs[over:]...)
	}
	s.touch()
}

// QueueMachines hands machines read from path to the frame loop.
func (s *AppState) QueueMachines(path string, entries []machinefile.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filePath = path
	s.pending = append(s.pending[:0], entries...)
	s.touch()
}

// TakeMachines returns and clears the queued machines.
func (s *AppState) TakeMachines() []machinefile.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

func (s *AppState) SetLeftPanelVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leftPanelVisible = visible
	s.touch()
}

func (s *AppState) SetRightPanelVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rightPanelVisible = visible
	s.touch()
}

func (s *AppState) SetDarkMode(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = dark
	s.touch()
}

func (s *AppState) touch() {
	s.lastUpdated = time.Now()
}
