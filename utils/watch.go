package utils

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zbanalyzer/zbparse/config"
)

const watchDebounce = 200 * time.Millisecond

// Watcher reports changes to a set of files. Bursts of events for the same
// file within the debounce window collapse into one.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the directories holding files, filtering events down
// to those files. Watching the directory keeps editors that replace the
// file on save visible.
func NewWatcher(files ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		files:   watched,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// firing is a debounce timer expiry for one generation of a file's events.
type firing struct {
	name string
	gen  uint64
}

// debouncer collapses bursts per name. Every touch bumps the name's
// generation, and only a firing carrying the latest generation is accepted,
// so a timer that expired while a newer event arrived is ignored.
type debouncer struct {
	delay  time.Duration
	gens   map[string]uint64
	timers map[string]*time.Timer
	fire   chan firing
	done   <-chan struct{}
}

func newDebouncer(delay time.Duration, done <-chan struct{}) *debouncer {
	return &debouncer{
		delay:  delay,
		gens:   make(map[string]uint64),
		timers: make(map[string]*time.Timer),
		fire:   make(chan firing, 16),
		done:   done,
	}
}

func (d *debouncer) touch(name string) {
	d.gens[name]++
	f := firing{name: name, gen: d.gens[name]}
	if t, ok := d.timers[name]; ok {
		t.Stop()
	}
	d.timers[name] = time.AfterFunc(d.delay, func() {
		select {
		case d.fire <- f:
		case <-d.done:
		}
	})
}

// accept reports whether f is the latest firing for its name and clears it.
func (d *debouncer) accept(f firing) bool {
	if d.gens[f.name] != f.gen {
		return false
	}
	delete(d.gens, f.name)
	delete(d.timers, f.name)
	return true
}

func (d *debouncer) stop() {
	for _, t := range d.timers {
		t.Stop()
	}
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	deb := newDebouncer(watchDebounce, w.closeCh)
	defer deb.stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			deb.touch(name)
		case f := <-deb.fire:
			if !deb.accept(f) {
				continue
			}
			select {
			case w.Events <- f.name:
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

// RunWatch parses inPath into outPath now and again every time the dump
// changes, until stop is closed. Parse failures are reported and the
// previous report is left in place.
func RunWatch(inPath, outPath string, cfg *config.Config, stop <-chan struct{}) error {
	if err := RunParse(inPath, outPath, cfg); err != nil {
		fmt.Println("Error:", err)
	}
	w, err := NewWatcher(inPath)
	if err != nil {
		return err
	}
	defer w.Close()
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", inPath)
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Printf("watch: %s changed", name)
			if err := RunParse(inPath, outPath, cfg); err != nil {
				fmt.Println("Error:", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-stop:
			return nil
		}
	}
}
