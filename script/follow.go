package script

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fwojciec/fold"
)

// Follower tails a growing script file, delivering existing steps
// first and appended steps as they are written. It watches the parent
// directory to catch atomic replace writes.
type Follower struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	steps    chan Step
	done     chan struct{}
}

// NewFollower creates a follower for the given script path. The file
// does not need to exist yet.
func NewFollower(path string) (*Follower, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	f := &Follower{
		watcher:  w,
		path:     path,
		debounce: 100 * time.Millisecond,
		steps:    make(chan Step, 64),
		done:     make(chan struct{}),
	}
	go f.loop()
	return f, nil
}

// Close stops the follower.
func (f *Follower) Close() error {
	close(f.done)
	return f.watcher.Close()
}

// Feed returns a FeedFunc delivering steps as the file grows. It only
// returns when the context is cancelled.
func (f *Follower) Feed() fold.FeedFunc {
	return func(ctx context.Context, onEvent func(fold.Event)) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case st := <-f.steps:
				if st.Delay > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(st.Delay):
					}
				}
				if st.Event != nil {
					onEvent(st.Event)
				}
			}
		}
	}
}

func (f *Follower) loop() {
	kick := make(chan struct{}, 1)
	offset := f.drain(0)
	var timer *time.Timer
	for {
		select {
		case <-f.done:
			return
		case <-kick:
			offset = f.drain(offset)
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(f.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Debounce: reset timer on each write; the drain itself
			// runs back on this goroutine.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(f.debounce, func() {
				select {
				case kick <- struct{}{}:
				default: // already signaled, skip
				}
			})
		case _, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// drain reads complete lines from offset onward and returns the new
// offset. A partial trailing line is left for the next write;
// malformed lines are skipped.
func (f *Follower) drain(offset int64) int64 {
	file, err := os.Open(f.path)
	if err != nil {
		return offset
	}
	defer file.Close()
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset
	}

	r := bufio.NewReader(file)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return offset
		}
		offset += int64(len(line))
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		var dto stepDTO
		if err := json.Unmarshal([]byte(trimmed), &dto); err != nil {
			continue
		}
		st, err := fromDTO(dto)
		if err != nil {
			continue
		}
		select {
		case f.steps <- st:
		case <-f.done:
			return offset
		}
	}
}
