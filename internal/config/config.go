// Package config persists operator preferences across runs as a single JSON
// blob at a fixed path. Absent keys fall back to defaults, so a config file
// written by an older build keeps working.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Capture-timing modes. "mid" snapshots the UI during the action after
// MidDelayMs; "post" snapshots after the action plus WaitAfterMs.
const (
	CaptureMid  = "mid"
	CapturePost = "post"
)

// Defaults applied when a key is absent from the stored blob.
const (
	DefaultCaptureMode = CapturePost
	DefaultMidDelayMs  = 50
	DefaultWaitAfterMs = 400
)

// Config holds the persisted operator preferences.
type Config struct {
	// ElementPathSelector is the CSS selector for the host page region that
	// renders the selected node's element path (XPath). Empty disables
	// path extraction.
	ElementPathSelector string `mapstructure:"elementPathSelector" json:"elementPathSelector" yaml:"elementPathSelector"`
	CaptureMode         string `mapstructure:"captureMode"         json:"captureMode"         yaml:"captureMode"`
	MidDelayMs          int    `mapstructure:"midDelayMs"          json:"midDelayMs"          yaml:"midDelayMs"`
	WaitAfterMs         int    `mapstructure:"waitAfterMs"         json:"waitAfterMs"         yaml:"waitAfterMs"`
}

// Store loads and saves the config blob.
type Store struct {
	v    *viper.Viper
	path string
}

// DefaultPath returns the fixed location of the config blob,
// ~/.config/bridgectl/panel.json (or the platform user-config equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "bridgectl", "panel.json"), nil
}

// NewStore creates a store backed by the given file path. An empty path uses
// DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("elementPathSelector", "")
	v.SetDefault("captureMode", DefaultCaptureMode)
	v.SetDefault("midDelayMs", DefaultMidDelayMs)
	v.SetDefault("waitAfterMs", DefaultWaitAfterMs)
	return &Store{v: v, path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the blob from disk. A missing file is not an error: defaults
// apply, matching a first run.
func (s *Store) Load() (Config, error) {
	var cfg Config
	if err := s.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return cfg, fmt.Errorf("read config %s: %w", s.path, err)
			}
		}
	}
	if err := s.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", s.path, err)
	}
	if cfg.CaptureMode != CaptureMid && cfg.CaptureMode != CapturePost {
		cfg.CaptureMode = DefaultCaptureMode
	}
	return cfg, nil
}

// Save writes the blob to disk, creating the parent directory on first save.
func (s *Store) Save(cfg Config) error {
	if cfg.CaptureMode != CaptureMid && cfg.CaptureMode != CapturePost {
		return fmt.Errorf("invalid capture mode %q (use %s or %s)", cfg.CaptureMode, CaptureMid, CapturePost)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	s.v.Set("elementPathSelector", cfg.ElementPathSelector)
	s.v.Set("captureMode", cfg.CaptureMode)
	s.v.Set("midDelayMs", cfg.MidDelayMs)
	s.v.Set("waitAfterMs", cfg.WaitAfterMs)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	return nil
}
