package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors often write files in multiple steps.
const debounceDelay = 100 * time.Millisecond

// watch parses the query file once, then again after every change until ctx
// is cancelled.
func (cmd *ParseCmd) watch(ctx context.Context, w, errW io.Writer) error {
	filename := cmd.Query.Filename

	var mu sync.Mutex
	reparse := func() {
		mu.Lock()
		defer mu.Unlock()

		contents, err := os.ReadFile(filename)
		if err != nil {
			log.Printf("Failed to read %s: %v", filename, err)
			return
		}
		_ = cmd.parse(ctx, w, errW, string(contents))
	}

	_ = cmd.parse(ctx, w, errW, cmd.Query.Text)
	printInfof(errW, "Watching %s for changes", pathStyle.Render(filename))

	return watchFile(ctx, filename, reparse)
}

// watchFile calls onChange after writes to filename settle. It blocks until
// ctx is cancelled.
func watchFile(ctx context.Context, filename string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	runWatcher(ctx, watcher, filename, onChange)
	return nil
}

// runWatcher processes file system events with debouncing.
func runWatcher(ctx context.Context, watcher *fsnotify.Watcher, filename string, onChange func()) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				// Re-add in case the file was replaced.
				if err := watcher.Add(filename); err != nil {
					log.Printf("Warning: failed to watch %s: %v", filename, err)
				}
				onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}
