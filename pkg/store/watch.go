package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent signals that a persisted collection changed on disk,
// typically because another process (the CLI alongside a running UI)
// wrote it.
type WatchEvent struct {
	// Key is EventsKey or TasksKey, or "" when the change could not
	// be attributed and callers should reload both.
	Key string
}

// Watch streams change notifications for the adapter's directory until
// ctx is cancelled. Events are dropped rather than blocking the
// watcher when the consumer lags; a dropped event only costs a
// redundant reload later.
func (a *DiskAdapter) Watch(ctx context.Context) (<-chan WatchEvent, error) {
	if a.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(a.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(a.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", a.basePath, err)
	}

	events := make(chan WatchEvent, 16)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		}()

		send := func(ev WatchEvent) {
			select {
			case events <- ev:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				_ = err
				send(WatchEvent{})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				switch filepath.Base(evt.Name) {
				case EventsKey:
					send(WatchEvent{Key: EventsKey})
				case TasksKey:
					send(WatchEvent{Key: TasksKey})
				default:
					send(WatchEvent{})
				}
			}
		}
	}()

	return events, nil
}
