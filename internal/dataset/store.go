// Package dataset manages the chartable datasets served by the API:
// a directory of JSON files, optionally watched for live reload, plus
// remote feed-activity sources.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/huntiq/lightcharts/pkg/models"
)

// EventType identifies a store change notification.
type EventType string

const (
	EventUpdated EventType = "dataset_updated"
	EventRemoved EventType = "dataset_removed"
)

// Event is a store change notification delivered to subscribers.
type Event struct {
	Type EventType `json:"type"`
	Name string    `json:"name"`
}

// Store is a directory-backed collection of named datasets. All
// methods are safe for concurrent use.
type Store struct {
	dir string
	log *zap.Logger

	mu   sync.RWMutex
	sets map[string]*models.Dataset
	subs map[int]chan Event
	next int

	watcher *fsnotify.Watcher
	done    chan struct{}
	closeMu sync.Once
}

// NewStore creates a store over dir. Call Load to read the initial
// datasets and Watch to follow file changes.
func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		dir:  dir,
		log:  log,
		sets: make(map[string]*models.Dataset),
		subs: make(map[int]chan Event),
		done: make(chan struct{}),
	}
}

// Load reads every *.json file in the store directory. Invalid files
// are skipped with a warning; a missing directory is not an error so a
// server can start before its first dataset lands.
func (s *Store) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading dataset dir %s: %w", s.dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := s.loadFile(filepath.Join(s.dir, e.Name())); err != nil {
			s.log.Warn("skipping dataset", zap.String("file", e.Name()), zap.Error(err))
		}
	}
	return nil
}

// loadFile reads, validates and stores one dataset file. The dataset
// name defaults to the file name without extension.
func (s *Store) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = datasetName(path)
	}
	if err := ds.Validate(); err != nil {
		return err
	}

	s.Put(&ds)
	return nil
}

// Put stores a dataset and notifies subscribers.
func (s *Store) Put(ds *models.Dataset) {
	s.mu.Lock()
	s.sets[ds.Name] = ds
	s.mu.Unlock()
	s.notify(Event{Type: EventUpdated, Name: ds.Name})
}

// Remove deletes a dataset by name and notifies subscribers.
func (s *Store) Remove(name string) {
	s.mu.Lock()
	_, ok := s.sets[name]
	delete(s.sets, name)
	s.mu.Unlock()
	if ok {
		s.notify(Event{Type: EventRemoved, Name: name})
	}
}

// Get returns the dataset with the given name.
func (s *Store) Get(name string) (*models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.sets[name]
	return ds, ok
}

// List returns all dataset names, sorted.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every dataset, sorted by name.
func (s *Store) All() []*models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*models.Dataset, 0, len(s.sets))
	for _, ds := range s.sets {
		all = append(all, ds)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Subscribe registers for change events. The returned cancel func
// releases the subscription; the channel is buffered and slow readers
// drop events rather than block the store.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan Event, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than block
		}
	}
}

// Watch follows the dataset directory with fsnotify, reloading files
// as they change until Close is called.
func (s *Store) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}
	s.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				s.handleFSEvent(ev)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("dataset watcher error", zap.Error(err))
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

func (s *Store) handleFSEvent(ev fsnotify.Event) {
	if !strings.HasSuffix(ev.Name, ".json") {
		return
	}
	switch {
	case ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create):
		if err := s.loadFile(ev.Name); err != nil {
			s.log.Warn("reloading dataset", zap.String("file", ev.Name), zap.Error(err))
			return
		}
		s.log.Info("dataset reloaded", zap.String("file", filepath.Base(ev.Name)))
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		s.Remove(datasetName(ev.Name))
	}
}

// Close stops the watcher. Safe to call more than once.
func (s *Store) Close() error {
	var err error
	s.closeMu.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

// datasetName derives a dataset name from its file path.
func datasetName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}
