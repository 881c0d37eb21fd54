package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStores(t *testing.T) map[string]PaneStore {
	t.Helper()
	ctx := context.Background()
	sq, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "outline.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]PaneStore{
		"sqlite": sq,
		"memory": NewMemoryPaneStore(),
	}
}

func TestPaneState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, s := range openTestStores(t) {
		name, s := name, s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Missing keys => zero state.
			st0, err := LoadPaneState(ctx, s, "viewer:file.yaml")
			if err != nil {
				t.Fatalf("LoadPaneState: %v", err)
			}
			if st0 != (PaneState{}) {
				t.Fatalf("expected zero state, got %#v", st0)
			}

			want := PaneState{Width: 48, Collapsed: true}
			if err := SavePaneState(ctx, s, "viewer:file.yaml", want); err != nil {
				t.Fatalf("SavePaneState: %v", err)
			}
			got, err := LoadPaneState(ctx, s, "viewer:file.yaml")
			if err != nil {
				t.Fatalf("LoadPaneState: %v", err)
			}
			if got != want {
				t.Fatalf("expected %#v, got %#v", want, got)
			}

			// Overwrite.
			if err := SavePaneState(ctx, s, "viewer:file.yaml", PaneState{Width: 60}); err != nil {
				t.Fatalf("SavePaneState: %v", err)
			}
			got, _ = LoadPaneState(ctx, s, "viewer:file.yaml")
			if got != (PaneState{Width: 60}) {
				t.Fatalf("expected overwrite, got %#v", got)
			}

			// Other contexts are independent.
			other, _ := LoadPaneState(ctx, s, "editor:other")
			if other != (PaneState{}) {
				t.Fatalf("expected independent context, got %#v", other)
			}
		})
	}
}

func TestPaneState_CorruptValuesIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryPaneStore()
	_ = s.Set(ctx, WidthKey("c"), "wide")
	_ = s.Set(ctx, CollapsedKey("c"), "maybe")

	got, err := LoadPaneState(ctx, s, "c")
	if err != nil {
		t.Fatalf("LoadPaneState: %v", err)
	}
	if got != (PaneState{}) {
		t.Fatalf("expected corrupt values to be ignored, got %#v", got)
	}
}

func TestViewState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, s := range openTestStores(t) {
		name, s := name, s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			st0, err := LoadViewState(ctx, s, "ctx")
			if err != nil {
				t.Fatalf("LoadViewState: %v", err)
			}
			if st0 == nil || st0.Version != 1 {
				t.Fatalf("expected default Version=1; got %#v", st0)
			}

			want := &ViewState{
				Version:    1,
				ActiveID:   "field:a",
				Expanded:   []string{"category:a"},
				Known:      []string{"category:a", "section:b"},
				Query:      "serial",
				ShowDetail: true,
			}
			if err := SaveViewState(ctx, s, "ctx", want); err != nil {
				t.Fatalf("SaveViewState: %v", err)
			}
			got, err := LoadViewState(ctx, s, "ctx")
			if err != nil {
				t.Fatalf("LoadViewState: %v", err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("round-trip mismatch:\nwant=%#v\ngot=%#v", want, got)
			}

			_ = s.Set(ctx, ViewKey("bad"), "{")
			bad, err := LoadViewState(ctx, s, "bad")
			if err != nil || bad.Version != 1 || bad.ActiveID != "" {
				t.Fatalf("expected corrupt state treated as missing, got %#v err=%v", bad, err)
			}
		})
	}
}

func TestSQLitePaneStore_KeysAndReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "outline.sqlite")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := SavePaneState(ctx, s, "x", PaneState{Width: 30}); err != nil {
		t.Fatalf("SavePaneState: %v", err)
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"pane:x:collapsed", "pane:x:width"}) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := LoadPaneState(ctx, s2, "x")
	if err != nil || got.Width != 30 {
		t.Fatalf("expected persisted width 30, got %#v err=%v", got, err)
	}
}
