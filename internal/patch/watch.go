package patch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the patch at path whenever it is written, created or renamed
// into place, and sends each valid result on patches. Load and watcher
// errors go to errs. The watch stops when ctx is done.
//
// The parent directory is watched so that editors which replace the file
// instead of writing it in place are still seen.
func Watch(ctx context.Context, path string, patches chan<- *Patch, errs chan<- error) error {
	clean := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("patch: create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(clean)); err != nil {
		watcher.Close()
		return fmt.Errorf("patch: watch %q: %w", path, err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(ev.Name) != clean || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}

				p, err := Load(clean)
				if err != nil {
					send(ctx, errs, err)
					continue
				}

				send(ctx, patches, p)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				send(ctx, errs, err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
