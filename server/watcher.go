package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zoe5466/Gudiee-sub001/logging"
)

// CatalogWatcher reloads a Catalog when its file changes on disk.
type CatalogWatcher struct {
	catalog  *Catalog
	logger   logging.Logger
	debounce time.Duration
	onReload func(error)
}

// NewCatalogWatcher creates a watcher for c. onReload, if non-nil, is
// called after every reload attempt.
func NewCatalogWatcher(c *Catalog, logger logging.Logger, onReload func(error)) *CatalogWatcher {
	return &CatalogWatcher{
		catalog:  c,
		logger:   logging.Fallback(logger),
		debounce: 300 * time.Millisecond,
		onReload: onReload,
	}
}

// Watch blocks until ctx is cancelled. The parent directory is watched so
// editors that replace the file by rename are still seen.
func (w *CatalogWatcher) Watch(ctx context.Context) error {
	if w.catalog.Path() == "" {
		<-ctx.Done()
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	defer fw.Close() //nolint:errcheck

	target := filepath.Clean(w.catalog.Path())
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	w.logger.Info("watching service catalog", map[string]any{"path": target})

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("catalog watcher overflow", nil)
				continue
			}
			w.logger.Error("catalog watcher error", map[string]any{"error": err})
		case <-timerC:
			timerC = nil
			err := w.catalog.Reload()
			if err != nil {
				w.logger.Warn("catalog reload failed, keeping previous services", map[string]any{"error": err})
			} else {
				w.logger.Info("service catalog reloaded", map[string]any{"services": len(w.catalog.List())})
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}
