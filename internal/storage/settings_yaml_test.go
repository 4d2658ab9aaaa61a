package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/ui/preferences"
)

type fixedConfigDir struct {
	dir string
	err error
}

func (provider fixedConfigDir) GetConfigDir() (string, error) {
	return provider.dir, provider.err
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "missing", settingsFileName))
	settings, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", settings)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(fixedConfigDir{dir: t.TempDir()}, "focusflow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	settings := preferences.Settings{
		DefaultMode:  model.ModeLightStudy,
		SoundEnabled: false,
		Volume:       -2.5,
		MaxRecording: 45 * time.Second,
		Quality:      model.Quality720p,
		VideosDir:    "/tmp/videos",
		FrontCamera:  "/dev/video4",
		BackCamera:   "/dev/video6",
		Language:     "es",
	}
	if err := store.Save(settings); err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(filepath.Dir(store.Path())) != "focusflow" {
		t.Errorf("expected app directory in path, got %s", store.Path())
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != settings {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, settings)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	raw := []byte("default_mode: nap\nvolume: 7\nmax_recording_seconds: -3\nquality: 8k\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := NewStoreAt(path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defaults := preferences.DefaultSettings()
	if settings.DefaultMode != defaults.DefaultMode {
		t.Errorf("expected default mode, got %s", settings.DefaultMode)
	}
	if settings.Volume != defaults.Volume {
		t.Errorf("expected default volume, got %v", settings.Volume)
	}
	if settings.MaxRecording != defaults.MaxRecording {
		t.Errorf("expected default cap, got %s", settings.MaxRecording)
	}
	if settings.Quality != defaults.Quality {
		t.Errorf("expected default quality, got %s", settings.Quality)
	}
	if !settings.SoundEnabled {
		t.Error("absent sound_enabled should keep the default")
	}
}

func TestLoadMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	if err := os.WriteFile(path, []byte("quality: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings, err := NewStoreAt(path).Load()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if settings != preferences.DefaultSettings() {
		t.Error("expected defaults alongside the error")
	}
}

func TestNewStoreWrapsProviderError(t *testing.T) {
	cause := errors.New("no home")
	_, err := NewStore(fixedConfigDir{err: cause}, "focusflow")
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
