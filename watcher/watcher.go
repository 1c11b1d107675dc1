package watcher

import (
	"path/filepath"
	"strings"

	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/fsnotify/fsnotify"
)

// Start watches the watch folder and calls onEvent whenever a new entry
// appears. The event only nudges the scan queue, the scan pass itself
// re-lists the folder, so coalesced or dropped events cost nothing.
func Start(watchpath string, onEvent func()) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(watchpath); err != nil {
		w.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == 0 && event.Op&fsnotify.Rename == 0 {
					continue
				}
				if strings.HasPrefix(filepath.Base(event.Name), ".") {
					continue
				}
				logger.Log.Debug("Watcher event: ", event.Name)
				onEvent()
			case errw, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Log.Error("Watcher error: ", errw)
			}
		}
	}()
	return w, nil
}
