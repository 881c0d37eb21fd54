package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"outline-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func TestWatchSource_SendsOnWrite(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "outline.yaml")
	if err := os.WriteFile(p, []byte("categories: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	other := filepath.Join(dir, "other.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan tea.Msg, 4)
	if err := watchSource(ctx, p, func(msg tea.Msg) { got <- msg }, zap.NewNop()); err != nil {
		t.Fatalf("watchSource: %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	select {
	case msg := <-got:
		t.Fatalf("expected no message for unrelated file, got %#v", msg)
	case <-time.After(3 * watchDebounce):
	}

	if err := os.WriteFile(p, []byte("categories: [{id: a}]\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case msg := <-got:
		ch, ok := msg.(sourceChangedMsg)
		if !ok {
			t.Fatalf("expected sourceChangedMsg, got %#v", msg)
		}
		abs, _ := filepath.Abs(p)
		if ch.path != abs {
			t.Fatalf("expected path %q, got %q", abs, ch.path)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change notification")
	}
}

func TestModel_SourceChangedTriggersReload(t *testing.T) {
	calls := 0
	m := newTestModel(t, Options{Load: func() ([]model.Node, error) {
		calls++
		return testTree(), nil
	}})
	_, cmd := m.Update(sourceChangedMsg{path: "x"})
	if cmd == nil {
		t.Fatalf("expected reload command")
	}
	msg, ok := cmd().(sourceLoadedMsg)
	if !ok || msg.err != nil || len(msg.nodes) != 2 {
		t.Fatalf("unexpected reload result: %#v", msg)
	}
	if calls != 2 {
		t.Fatalf("expected load at start and on change, got %d calls", calls)
	}
}
