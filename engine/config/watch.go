package config

import (
	"errors"

	"github.com/fsnotify/fsnotify"

	"github.com/arkestra/spatialscan/engine/core"
)

// Watcher re-reads the config file whenever it changes on disk and hands
// the fresh Config to a callback. Callbacks run on the watcher goroutine.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("config watcher requires a file path")
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     path,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. onChange is invoked with the re-parsed config;
// parse failures are logged and the previous config stays in effect.
func (w *Watcher) Start(onChange func(*Config)) error {
	if w.isClosed {
		return errors.New("config watcher already closed")
	}
	if err := w.fsnotify.Add(w.path); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-w.fsnotify.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(w.path)
				if err != nil {
					core.LogError("config reload failed: %s", err.Error())
					continue
				}
				core.LogInfo("config reloaded from %s", w.path)
				onChange(cfg)
			case err, ok := <-w.fsnotify.Errors:
				if !ok {
					return
				}
				core.LogError("config watcher: %s", err.Error())
			}
		}
	}()
	return nil
}

func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}
