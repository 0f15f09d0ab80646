package driver

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
)

// Watch runs every file in dir once and then re-runs a file whenever it is
// written or created. Events for one file inside the debounce window are
// dropped, as are writes that leave the content unchanged. Watch blocks
// until ctx is cancelled.
func (d *Driver) Watch(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return gwerror.Wrap(err, "cannot watch "+dir).WithCode(gwerror.CodeIO)
	}
	if !info.IsDir() {
		return gwerror.Newf("%s is not a directory", dir).WithCode(gwerror.CodeInvalidInput)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return gwerror.Wrap(err, "failed to create watcher").WithCode(gwerror.CodeIO)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return gwerror.Wrap(err, "failed to watch directory").WithCode(gwerror.CodeIO)
	}

	fingerprints := make(map[string]string)
	summary, err := d.Run(ctx, []string{dir})
	if err != nil {
		return err
	}
	for _, fr := range summary.Files {
		fingerprints[fr.Path] = fr.Fingerprint
	}

	d.logger.Info("Watching for changes", gwlog.Fields{"dir": dir})

	// Debounce map to skip bursts of events for the same file
	debounce := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Stopping file watcher", gwlog.Fields{"dir": dir})
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !d.hasExtension(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if last, exists := debounce[event.Name]; exists && time.Since(last) < d.opts.Debounce {
				continue
			}
			debounce[event.Name] = time.Now()

			path := filepath.Clean(event.Name)
			if data, err := os.ReadFile(path); err == nil && fingerprints[path] == Fingerprint(data) {
				d.logger.Debug("Content unchanged", gwlog.Fields{"file": path})
				continue
			}
			fr := d.RunFile(ctx, path)
			fingerprints[path] = fr.Fingerprint
			d.Report(fr)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Error("Watcher error", gwlog.Fields{"error": err.Error()})
		}
	}
}
