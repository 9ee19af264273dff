package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher logs create/write/remove events under the storage root, so
// changes made outside the web flows still show up in the server log.
// Subdirectories created while watching are added to the watch set.
type Watcher struct {
	fw   *fsnotify.Watcher
	log  zerolog.Logger
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func Watch(root string, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fw: fw, log: log, stop: make(chan struct{})}
	if err := w.addRecursive(root); err != nil {
		fw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stop:
			return
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if evt.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					_ = w.fw.Add(evt.Name)
				}
			}
			w.log.Debug().Str("op", evt.Op.String()).Str("path", evt.Name).Msg("storage event")
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("storage watcher")
		}
	}
}

func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.stop)
		w.fw.Close()
		w.wg.Wait()
	})
}
