package importer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"recbox/core/wav"
	"recbox/model"
)

type memRepo struct {
	mu   sync.Mutex
	recs []*model.Recording
}

func (r *memRepo) Put(rec *model.Recording) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	return nil
}

func (r *memRepo) ListAll() ([]*model.Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.Recording{}, r.recs...), nil
}

func (r *memRepo) Get(id string) (*model.Recording, error) { return nil, nil }
func (r *memRepo) Delete(id string) error                  { return nil }

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recs)
}

func (r *memRepo) first() *model.Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.recs) == 0 {
		return nil
	}
	return r.recs[0]
}

func startImporter(t *testing.T, dir string, repo *memRepo) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		New(dir, repo).Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("importer did not shut down")
		}
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not reached within deadline")
}

// threeSecondsPCM is 3s of 16-bit mono audio at 16 kHz.
func threeSecondsPCM() []byte {
	return make([]byte, 3*16000*2)
}

func TestImportsExistingFileOnStartup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "standup.wav")
	data := wav.Encode(threeSecondsPCM(), wav.Format{SampleRate: 16000, Channels: 1})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	repo := &memRepo{}
	startImporter(t, dir, repo)

	waitFor(t, func() bool { return repo.count() == 1 })

	rec := repo.first()
	if rec.Name != "standup" {
		t.Errorf("expected name from file, got %q", rec.Name)
	}
	if rec.Duration != 3 {
		t.Errorf("expected 3s duration, got %d", rec.Duration)
	}
	if rec.MimeType != "audio/L16;rate=16000;channels=1" {
		t.Errorf("unexpected mime type %q", rec.MimeType)
	}
	if len(rec.Payload) != 3*16000*2 {
		t.Errorf("unexpected payload size %d", len(rec.Payload))
	}

	// Source file is consumed after a successful import.
	waitFor(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	})
}

func TestImportsFileDroppedWhileWatching(t *testing.T) {
	dir := t.TempDir()
	repo := &memRepo{}
	startImporter(t, dir, repo)

	// Give the watcher a moment to come up before dropping the file.
	time.Sleep(200 * time.Millisecond)

	data := wav.Encode(threeSecondsPCM(), wav.Format{SampleRate: 16000, Channels: 1})
	if err := os.WriteFile(filepath.Join(dir, "dropped.wav"), data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	waitFor(t, func() bool { return repo.count() == 1 })
	if rec := repo.first(); rec.Name != "dropped" {
		t.Errorf("expected name from file, got %q", rec.Name)
	}
}

func TestSkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(bad, []byte("not a wav"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	good := filepath.Join(dir, "good.wav")
	data := wav.Encode(threeSecondsPCM(), wav.Format{SampleRate: 16000, Channels: 1})
	if err := os.WriteFile(good, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	repo := &memRepo{}
	startImporter(t, dir, repo)

	waitFor(t, func() bool { return repo.count() == 1 })
	if rec := repo.first(); rec.Name != "good" {
		t.Errorf("expected only the decodable file imported, got %q", rec.Name)
	}

	// The broken file is left in place for the user to inspect.
	if _, err := os.Stat(bad); err != nil {
		t.Errorf("broken file should remain: %v", err)
	}
}
