package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
)

// watchIndex reloads the holder whenever the local index file at path
// changes. It returns when ctx is done.
func watchIndex(ctx context.Context, holder *index.Holder, path string) error {
	logger := log.ForService("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating index watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", path, err)
	}
	logger.Infof("Watching index file for changes: %s", path)

	go func() {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close index watcher: %v", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editors and generators often replace the file atomically
				if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)) {
					continue
				}
				logger.Debugf("Index file changed: %s (event: %s)", event.Name, event.Op.String())

				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)
					if _, err := os.Stat(path); os.IsNotExist(err) {
						logger.Warnf("Index file was removed and not replaced, keeping the loaded index")
						continue
					}
					if err := watcher.Add(path); err != nil {
						logger.Warnf("failed to re-add index file to watcher: %v", err)
					}
				} else {
					time.Sleep(100 * time.Millisecond)
				}

				// Failures are logged by the holder and keep the previous index
				_ = holder.Reload(ctx)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("Index watcher error: %v", err)
			}
		}
	}()

	return nil
}

// reloadOnSignal reloads the holder on every SIGHUP until ctx is done.
func reloadOnSignal(ctx context.Context, holder *index.Holder) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				log.ForService("watch").Infof("Received SIGHUP, reloading index...")
				_ = holder.Reload(ctx)
			}
		}
	}()
}

// refreshPeriodically reloads the holder every interval until ctx is done.
func refreshPeriodically(ctx context.Context, holder *index.Holder, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		logger := log.ForService("watch")
		for {
			select {
			case <-ctx.Done():
				logger.Debugf("Index refresh stopped")
				return
			case <-ticker.C:
				logger.Debugf("Running scheduled index refresh")
				_ = holder.Reload(ctx)
			}
		}
	}()
}

// startReloaders wires SIGHUP reloads, scheduled refreshes and file
// watching (when enabled and the index is local).
func startReloaders(ctx context.Context, holder *index.Holder, source string, watch bool, interval time.Duration) {
	reloadOnSignal(ctx, holder)
	if interval > 0 {
		log.ForService("watch").Infof("Refreshing index every %s", interval)
		refreshPeriodically(ctx, holder, interval)
	}
	if !watch {
		return
	}
	path, ok := localIndexPath(source)
	if !ok {
		log.ForService("watch").Warnf("watch is only supported for local index files, not %s", source)
		return
	}
	if err := watchIndex(ctx, holder, path); err != nil {
		log.ForService("watch").Warnf("%v", err)
	}
}
