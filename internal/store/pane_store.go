// Package store persists small UI state (pane width, collapsed flag, last view) behind a
// key/value port. Callers treat every read as best effort: missing or corrupt values
// fall back to defaults.
package store

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// PaneStore is the host's key/value port.
type PaneStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

func WidthKey(contextID string) string     { return "pane:" + contextID + ":width" }
func CollapsedKey(contextID string) string { return "pane:" + contextID + ":collapsed" }
func ViewKey(contextID string) string      { return "view:" + contextID }

// PaneState is the persisted state of one outline pane. Width 0 means "use the default".
type PaneState struct {
	Width     int  `json:"width"`
	Collapsed bool `json:"collapsed"`
}

func LoadPaneState(ctx context.Context, s PaneStore, contextID string) (PaneState, error) {
	var st PaneState
	if s == nil || strings.TrimSpace(contextID) == "" {
		return st, nil
	}
	if v, ok, err := s.Get(ctx, WidthKey(contextID)); err != nil {
		return st, err
	} else if ok {
		if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && w > 0 {
			st.Width = w
		}
	}
	if v, ok, err := s.Get(ctx, CollapsedKey(contextID)); err != nil {
		return st, err
	} else if ok {
		st.Collapsed, _ = strconv.ParseBool(strings.TrimSpace(v))
	}
	return st, nil
}

func SavePaneState(ctx context.Context, s PaneStore, contextID string, st PaneState) error {
	if s == nil || strings.TrimSpace(contextID) == "" {
		return nil
	}
	if st.Width > 0 {
		if err := s.Set(ctx, WidthKey(contextID), strconv.Itoa(st.Width)); err != nil {
			return err
		}
	}
	return s.Set(ctx, CollapsedKey(contextID), strconv.FormatBool(st.Collapsed))
}

// ViewState restores the last screen of a source on relaunch.
type ViewState struct {
	Version int `json:"version"`

	// ActiveID is the focused row id.
	ActiveID string `json:"activeId,omitempty"`
	// Expanded holds the expanded ids; Known the expandable ids they were reconciled against.
	Expanded []string `json:"expanded,omitempty"`
	Known    []string `json:"known,omitempty"`
	Query    string   `json:"query,omitempty"`

	ShowDetail bool `json:"showDetail,omitempty"`
}

func LoadViewState(ctx context.Context, s PaneStore, contextID string) (*ViewState, error) {
	if s == nil || strings.TrimSpace(contextID) == "" {
		return &ViewState{Version: 1}, nil
	}
	v, ok, err := s.Get(ctx, ViewKey(contextID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return &ViewState{Version: 1}, nil
	}
	var st ViewState
	if err := json.Unmarshal([]byte(v), &st); err != nil {
		// Corrupt state is treated as missing.
		return &ViewState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveViewState(ctx context.Context, s PaneStore, contextID string, st *ViewState) error {
	if s == nil || st == nil || strings.TrimSpace(contextID) == "" {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.Set(ctx, ViewKey(contextID), string(b))
}
