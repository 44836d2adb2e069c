package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"jukebox/types"
)

// Broadcaster receives library updates for fan-out to subscribers
type Broadcaster interface {
	Broadcast(update types.LibraryUpdate)
}

// LibraryWatcher rescans the audio root on an interval and broadcasts the new
// listing whenever it differs from the previous scan.
type LibraryWatcher struct {
	index       AudioIndex
	broadcaster Broadcaster
	interval    time.Duration

	primed bool
	last   string
}

// NewLibraryWatcher creates a watcher. A non-positive interval disables polling.
func NewLibraryWatcher(index AudioIndex, broadcaster Broadcaster, interval time.Duration) *LibraryWatcher {
	return &LibraryWatcher{
		index:       index,
		broadcaster: broadcaster,
		interval:    interval,
	}
}

// Run polls until ctx is cancelled
func (w *LibraryWatcher) Run(ctx context.Context) {
	if w.interval <= 0 {
		log.Printf("Library watcher disabled")
		return
	}

	// Prime the fingerprint so the first tick only fires on a real change
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check performs one scan and broadcasts if the listing changed. It reports
// whether an update was sent.
func (w *LibraryWatcher) Check(ctx context.Context) bool {
	files, err := w.index.Scan(ctx)
	if err != nil {
		log.Printf("Library watcher scan failed: %v", err)
		return false
	}

	fp := Fingerprint(files)
	if !w.primed {
		w.primed, w.last = true, fp
		return false
	}
	if fp == w.last {
		return false
	}
	w.last = fp

	w.broadcaster.Broadcast(NewLibraryUpdate(files))
	return true
}

// NewLibraryUpdate wraps a scan result for delivery to subscribers
func NewLibraryUpdate(files []types.AudioFile) types.LibraryUpdate {
	if files == nil {
		files = []types.AudioFile{}
	}
	return types.LibraryUpdate{
		Files:     files,
		Count:     len(files),
		Timestamp: time.Now(),
	}
}

// Fingerprint summarizes a listing independent of directory order
func Fingerprint(files []types.AudioFile) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, fmt.Sprintf("%s\x00%d", f.Name, f.Size))
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x01")
}
