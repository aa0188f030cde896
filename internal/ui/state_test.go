package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/machinefile"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

func TestStateLogLimit(t *testing.T) {
	s := NewState()
	for i := 0; i < 250; i++ {
		s.AppendLog(fmt.Sprintf("line %d", i))
	}
	logs := s.Snapshot().Logs
	if len(logs) != 200 {
		t.Fatalf("got %d lines, want 200", len(logs))
	}
	if logs[0] != "line 50" || logs[199] != "line 249" {
		t.Errorf("got %q .. %q, want the newest 200 lines", logs[0], logs[199])
	}
}

func TestStateStatusClearsError(t *testing.T) {
	s := NewState()
	s.SetError(errors.New("bad poles"))
	if s.Snapshot().LastError == nil {
		t.Fatal("error not recorded")
	}
	s.SetStatus("ok")
	snap := s.Snapshot()
	if snap.LastError != nil || snap.Status != "ok" {
		t.Errorf("got status %q error %v", snap.Status, snap.LastError)
	}
}

func TestStateMachineQueue(t *testing.T) {
	s := NewState()
	if got := s.TakeMachines(); got != nil {
		t.Fatalf("empty queue returned %v", got)
	}
	entries := []machinefile.Entry{{Name: "a", Machine: winding.DefaultMachine()}}
	s.QueueMachines("stators.wnd", entries)

	if s.Snapshot().FilePath != "stators.wnd" {
		t.Errorf("file path not recorded")
	}
	got := s.TakeMachines()
	if len(got) != 1 || got[0].Name != "a" {
		t.Errorf("got %+v", got)
	}
	if s.TakeMachines() != nil {
		t.Errorf("queue not cleared")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState()
	s.AppendLog("first")
	snap := s.Snapshot()
	snap.Logs[0] = "changed"
	if s.Snapshot().Logs[0] != "first" {
		t.Errorf("snapshot aliases the state")
	}
}

func TestLogHandler(t *testing.T) {
	s := NewState()
	var buf strings.Builder
	next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := slog.New(newLogHandler(s, next)).With("component", "ui", "view", "circular")

	log.Debug("hidden")
	log.Info("design calculated", "coils", 24)
	log.Warn("machine rejected", "error", "bad")

	logs := s.Snapshot().Logs
	if len(logs) != 2 {
		t.Fatalf("got %d pane lines, want 2: %q", len(logs), logs)
	}
	if logs[0] != "[INFO] design calculated view=circular coils=24" {
		t.Errorf("got %q", logs[0])
	}
	if strings.Contains(logs[1], "component=") {
		t.Errorf("pane line carries the component: %q", logs[1])
	}

	out := buf.String()
	if strings.Contains(out, "design calculated") {
		t.Errorf("info reached a warn-level handler: %s", out)
	}
	if !strings.Contains(out, "machine rejected") || !strings.Contains(out, "component=ui") {
		t.Errorf("warning not passed on: %s", out)
	}
	if !log.Handler().Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("info should always be enabled for the pane")
	}
}
