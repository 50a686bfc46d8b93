package profile

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/errs"
)

// Watch reloads the profile whenever its file changes. The parent directory
// is watched rather than the file itself so rename-and-replace edits keep
// working. The returned stop function blocks until the watch loop exits.
func (s *Store) Watch(ctx context.Context) (func(), error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.path == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.Wrap(err, "create profile watcher")
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, errs.Wrapf(err, "watch profile directory %q", dir)
	}

	done := make(chan struct{})
	go s.watchLoop(ctx, watcher, done)

	return func() {
		_ = watcher.Close()
		<-done
	}, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	logCtx := logging.WithAttrs(ctx, slog.String("component", "profile.watch"), slog.String("path", s.path))
	base := filepath.Base(s.path)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := s.Reload(ctx); err != nil {
				logging.Warn(logCtx, "governance profile reload failed", slog.Any("err", errs.Loggable(err)))
				continue
			}
			logging.Info(logCtx, "governance profile reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Warn(logCtx, "governance profile watcher error", slog.Any("err", errs.Loggable(err)))
		}
	}
}
