package maps

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed map files in a set of directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	fire    chan string
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fire:    make(chan string),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run forwards a file name once no further event for it arrived within the
// debounce window, so a save that truncates then writes is reported once.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isMapFile(event.Name) {
				continue
			}
			if t, ok := pending[event.Name]; ok {
				t.Reset(debounce)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(debounce, func() {
				select {
				case w.fire <- name:
				case <-w.closeCh:
				}
			})
		case name := <-w.fire:
			delete(pending, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Follow reloads the pool from dir whenever the watcher reports a change,
// until ctx is done or the watcher is closed. Rejected reloads are logged
// and leave the pool as it was.
func (p *Pool) Follow(ctx context.Context, w *Watcher, dir string, size Size, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			if err := p.Reload(dir, size); err != nil {
				logger.Warn("map reload rejected", "file", name, "err", err)
				continue
			}
			logger.Info("maps reloaded", "file", name, "count", len(p.Maps()))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("map watcher", "err", err)
		}
	}
}
