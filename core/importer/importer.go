// Package importer watches a drop directory and imports finished WAV files
// into the recording store.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"recbox/core/wav"
	"recbox/logger"
	"recbox/model"
	"recbox/repository"
)

const (
	checkInterval = 200 * time.Millisecond
	settleWindow  = 500 * time.Millisecond
)

// Importer scans a directory for dropped .wav files, waits for each file to
// stop changing, then decodes it, stores it as a recording and removes the
// source file. Failures log and skip the file; the watcher keeps running.
type Importer struct {
	dir  string
	repo repository.RecordingRepository

	// timeNow is injectable for tests.
	timeNow func() time.Time
}

// New creates an importer over the given drop directory.
func New(dir string, repo repository.RecordingRepository) *Importer {
	return &Importer{dir: dir, repo: repo, timeNow: time.Now}
}

// Run watches the directory until the context is cancelled. Files already
// present at startup are imported first.
func (i *Importer) Run(ctx context.Context) error {
	if err := os.MkdirAll(i.dir, 0755); err != nil {
		return fmt.Errorf("creating watch directory %s: %w", i.dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(i.dir); err != nil {
		return fmt.Errorf("watching %s: %w", i.dir, err)
	}

	logger.Info("Importer watching for dropped WAV files", logger.String("dir", i.dir))

	i.scanExisting()

	// Settle queue: a file is imported only after it has stopped changing
	// for the settle window, so half-written files are never picked up.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && isWAV(event.Name) {
				pending[event.Name] = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", logger.ErrorField(err))

		case <-ticker.C:
			now := time.Now()
			for path, lastWrite := range pending {
				if now.Sub(lastWrite) < settleWindow {
					continue
				}
				delete(pending, path)
				i.importFile(path)
			}
		}
	}
}

// scanExisting imports files that were already sitting in the directory.
func (i *Importer) scanExisting() {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		logger.Warn("Initial directory scan failed", logger.ErrorField(err))
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && isWAV(entry.Name()) {
			i.importFile(filepath.Join(i.dir, entry.Name()))
		}
	}
}

// importFile decodes one WAV file into a recording and stores it. The
// source file is removed only after a successful put.
func (i *Importer) importFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading dropped file failed",
			logger.String("path", path),
			logger.ErrorField(err))
		return
	}

	pcm, format, err := wav.Decode(data)
	if err != nil {
		logger.Warn("Skipping undecodable file",
			logger.String("path", path),
			logger.ErrorField(err))
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	payload := make([]byte, len(pcm))
	copy(payload, pcm)

	rec := &model.Recording{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		Duration:  wav.DurationSeconds(len(pcm), format),
		MimeType:  fmt.Sprintf("audio/L16;rate=%d;channels=%d", format.SampleRate, format.Channels),
		CreatedAt: i.timeNow(),
	}

	if err := i.repo.Put(rec); err != nil {
		logger.Error("Storing imported recording failed",
			logger.String("path", path),
			logger.ErrorField(err))
		return
	}

	if err := os.Remove(path); err != nil {
		logger.Warn("Removing imported file failed",
			logger.String("path", path),
			logger.ErrorField(err))
	}

	logger.Info("Imported recording",
		logger.String("id", rec.ID),
		logger.String("name", rec.Name),
		logger.Int("durationSec", rec.Duration),
		logger.Int("payloadBytes", len(rec.Payload)))
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
