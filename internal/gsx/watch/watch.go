// Package watch reports changes to .gsx files under a set of directories.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kilianc/render/internal/gsx/errwrap"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of events is collected before reporting.
const DefaultDebounce = 100 * time.Millisecond

// Watcher wraps an fsnotify watcher over a set of directory trees.
type Watcher struct {
	// Debounce collects events for this long before calling back.
	Debounce time.Duration

	// Skip reports whether a directory with this base name is not watched.
	Skip func(name string) bool

	// Logf is used for non fatal errors. It defaults to a no-op.
	Logf func(format string, v ...interface{})

	watcher *fsnotify.Watcher
}

// New watches every directory below each of roots. The watcher is live when New
// returns.
func New(skip func(name string) bool, roots ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't create watcher")
	}
	w := &Watcher{
		Debounce: DefaultDebounce,
		Skip:     skip,
		watcher:  fw,
	}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() {
			return nil
		}
		if path != root && w.Skip != nil && w.Skip(de.Name()) {
			return filepath.SkipDir
		}
		return errwrap.Wrapf(w.watcher.Add(path), "can't watch `%s`", path)
	})
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls fn with every .gsx file written or created, once per debounce window and
// in path order, until ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	logf := w.Logf
	if logf == nil {
		logf = func(format string, v ...interface{}) {}
	}
	pending := map[string]bool{}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						logf("watch: %v", err)
					}
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".gsx") {
				continue
			}
			pending[event.Name] = true
			fire = time.After(w.Debounce)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = map[string]bool{}
			for _, p := range paths {
				fn(p)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logf("watch: %v", err)
		}
	}
}
