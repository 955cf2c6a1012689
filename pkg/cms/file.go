package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/observability"
)

// reloadDelay coalesces the bursts of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// projectFile is the on-disk shape of a content file:
//
//	projects:
//	  - title: Air Max Day
//	    slug: air-max-day
type projectFile struct {
	Projects []content.Project `json:"projects" yaml:"projects" toml:"projects"`
}

// FileSource serves projects from a YAML, JSON or TOML file. It is safe for
// concurrent use, including while a reload is in progress.
type FileSource struct {
	path   string
	logger *log.Logger

	mu       sync.RWMutex
	projects []content.Project

	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
}

// NewFileSource loads path. The format follows the file extension.
func NewFileSource(path string, logger *log.Logger) (*FileSource, error) {
	if logger == nil {
		logger = log.Default()
	}
	f := &FileSource{path: path, logger: logger}
	if err := f.Reload(context.Background()); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FileSource) Name() string { return "file" }

// Path returns the file being served.
func (f *FileSource) Path() string { return f.path }

// Projects returns a copy of the loaded projects in display order.
func (f *FileSource) Projects(ctx context.Context) ([]content.Project, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	start := time.Now()
	observability.CMS().OnQueryStart(ctx, f.Name(), "projects")
	out := make([]content.Project, len(f.projects))
	copy(out, f.projects)
	observability.CMS().OnQueryComplete(ctx, f.Name(), "projects", len(out), time.Since(start), nil)
	return out, nil
}

// Project returns the project with the given slug.
func (f *FileSource) Project(ctx context.Context, slug string) (content.Project, error) {
	if err := errors.ValidateSlug(slug); err != nil {
		return content.Project{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return findProject(f.projects, slug)
}

// Reload reads the file again. On failure the previously loaded projects
// are kept.
func (f *FileSource) Reload(ctx context.Context) error {
	projects, err := LoadProjects(f.path)
	observability.CMS().OnReload(ctx, f.Name(), len(projects), err)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.projects = projects
	f.mu.Unlock()
	return nil
}

// Watch reloads the file whenever it changes until ctx is cancelled or
// Close is called. The parent directory is watched so that editors which
// replace the file on save are handled.
func (f *FileSource) Watch(ctx context.Context) error {
	f.mu.Lock()
	if f.watcher != nil {
		f.mu.Unlock()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		f.mu.Unlock()
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		f.mu.Unlock()
		w.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", f.path)
	}
	stop, done := make(chan struct{}), make(chan struct{})
	f.watcher, f.stop, f.done = w, stop, done
	f.mu.Unlock()

	go f.run(ctx, w, stop, done)
	return nil
}

func (f *FileSource) run(ctx context.Context, w *fsnotify.Watcher, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	name := filepath.Clean(f.path)
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			f.logger.Warn("content watcher", "err", err)
		case <-timer.C:
			if err := f.Reload(ctx); err != nil {
				f.logger.Error("reload content", "path", f.path, "err", err)
				continue
			}
			f.logger.Info("reloaded content", "path", f.path)
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (f *FileSource) Close() error {
	f.mu.Lock()
	w, stop, done := f.watcher, f.stop, f.done
	f.watcher = nil
	f.mu.Unlock()

	if w == nil {
		return nil
	}
	close(stop)
	<-done
	return w.Close()
}

// LoadProjects decodes a content file and returns its projects in display
// order. Image dimensions missing from the file are taken from asset
// references.
func LoadProjects(path string) ([]content.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "content file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	var doc projectFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case ".toml":
		_, err = toml.Decode(string(data), &doc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported content file type %q", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
	}

	if err := validateProjects(doc.Projects); err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		fillImage(&doc.Projects[i].Image)
		for j := range doc.Projects[i].Body {
			fillImage(doc.Projects[i].Body[j].Image)
		}
	}
	content.Sort(doc.Projects)
	return doc.Projects, nil
}
