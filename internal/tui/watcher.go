package tui

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// sourceChangedMsg tells the model the source file changed on disk.
type sourceChangedMsg struct {
	path string
}

const watchDebounce = 150 * time.Millisecond

// watchSource reports changes to path until ctx is cancelled. The parent directory is
// watched, not the file, since editors often save by renaming a temp file over it.
// Bursts of events are debounced into one send.
func watchSource(ctx context.Context, path string, send func(tea.Msg), logger *zap.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer w.Close()
		logger.Debug("watcher: started", zap.String("path", abs))

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				logger.Debug("watcher: stopped")
				return

			case <-fire:
				fire = nil
				send(sourceChangedMsg{path: abs})

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(watchDebounce)
				}
				fire = timer.C

			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher: error", zap.Error(werr))
			}
		}
	}()
	return nil
}
