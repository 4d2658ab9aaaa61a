package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	DefaultMode         string   `yaml:"default_mode"`
	SoundEnabled        *bool    `yaml:"sound_enabled"`
	Volume              *float64 `yaml:"volume"`
	MaxRecordingSeconds int      `yaml:"max_recording_seconds"`
	Quality             string   `yaml:"quality"`
	VideosDir           string   `yaml:"videos_dir,omitempty"`
	FrontCamera         string   `yaml:"front_camera,omitempty"`
	BackCamera          string   `yaml:"back_camera,omitempty"`
	Language            string   `yaml:"language"`
}

// ConfigDirProvider resolves the base configuration directory.
type ConfigDirProvider interface {
	GetConfigDir() (string, error)
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore places settings.yaml under <config dir>/<appName>.
func NewStore(provider ConfigDirProvider, appName string) (*Store, error) {
	configDir, err := provider.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	return NewStoreAt(filepath.Join(configDir, appName, settingsFileName)), nil
}

// NewStoreAt uses an explicit settings file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *Store) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundEnabled := settings.SoundEnabled
	volume := settings.Volume
	fileData := yamlSettings{
		DefaultMode:         string(settings.DefaultMode),
		SoundEnabled:        &soundEnabled,
		Volume:              &volume,
		MaxRecordingSeconds: int(settings.MaxRecording / time.Second),
		Quality:             string(settings.Quality),
		VideosDir:           settings.VideosDir,
		FrontCamera:         settings.FrontCamera,
		BackCamera:          settings.BackCamera,
		Language:            settings.Language,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if mode := model.Mode(fileData.DefaultMode); mode.Valid() {
		settings.DefaultMode = mode
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.Volume != nil && *fileData.Volume >= -4 && *fileData.Volume <= 0 {
		settings.Volume = *fileData.Volume
	}
	if fileData.MaxRecordingSeconds > 0 {
		settings.MaxRecording = time.Duration(fileData.MaxRecordingSeconds) * time.Second
	}
	if quality := model.Quality(fileData.Quality); quality.Valid() {
		settings.Quality = quality
	}
	if fileData.Language != "" {
		settings.Language = fileData.Language
	}

	settings.VideosDir = fileData.VideosDir
	settings.FrontCamera = fileData.FrontCamera
	settings.BackCamera = fileData.BackCamera
}
