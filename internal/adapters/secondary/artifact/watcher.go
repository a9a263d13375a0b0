package artifact

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

type ChangeOp string

const (
	ChangeWritten ChangeOp = "written"
	ChangeCreated ChangeOp = "created"
	ChangeRemoved ChangeOp = "removed"
	ChangeRenamed ChangeOp = "renamed"
)

// Change reports that a loaded artifact file changed on disk.
type Change struct {
	Path string
	Op   ChangeOp
}

// Watcher observes the files behind file-based artifact locations. Loaded
// artifacts are never reloaded; changes only mean the process is now serving
// stale artifacts until restarted.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{}
}

// NewWatcher watches every file location in locations. Locations with other
// schemes are ignored.
func NewWatcher(locations []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	aw := &Watcher{
		watcher: w,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
	}
	for _, loc := range locations {
		if Scheme(loc) != SchemeFile {
			continue
		}
		path, err := filepath.Abs(FilePath(loc))
		if err != nil {
			w.Close()
			return nil, err
		}
		aw.files[path] = struct{}{}
		aw.dirs[filepath.Dir(path)] = struct{}{}
	}
	return aw, nil
}

// Watch starts monitoring and emits a Change for every watched file event.
// The channel closes when ctx is done or the watcher is stopped.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	// Directories are watched so that editors replacing a file by rename
	// keep producing events.
	for dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return nil, err
		}
	}

	changes := make(chan Change, 16)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				path, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}
				if _, watched := w.files[path]; !watched {
					continue
				}

				var op ChangeOp
				switch {
				case event.Op&fsnotify.Write == fsnotify.Write:
					op = ChangeWritten
				case event.Op&fsnotify.Create == fsnotify.Create:
					op = ChangeCreated
				case event.Op&fsnotify.Remove == fsnotify.Remove:
					op = ChangeRemoved
				case event.Op&fsnotify.Rename == fsnotify.Rename:
					op = ChangeRenamed
				default:
					continue
				}

				select {
				case changes <- Change{Path: path, Op: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("artifact watcher error")
			}
		}
	}()

	return changes, nil
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
