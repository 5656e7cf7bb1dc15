// Package config loads user settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "gabimaru"
	configFileName = "config.yaml"
	logFileName    = "gabimaru.log"
)

// Tab names accepted by StartTab.
const (
	TabTimer     = "timer"
	TabStopwatch = "stopwatch"
)

// Bounds for the refresh interval. Anything below a millisecond only burns
// CPU; anything above a quarter second makes the dial stutter.
const (
	MinFrameInterval = time.Millisecond
	MaxFrameInterval = 250 * time.Millisecond
)

// ErrInvalidValue marks a setting that failed validation.
var ErrInvalidValue = errors.New("invalid config value")

// Config contains the runtime settings.
type Config struct {
	Volume        float64
	FrameInterval time.Duration
	StartTab      string
	AlarmLoop     bool
	AudioRequired bool
	LogFile       string
	LogLevel      string
}

type yamlConfig struct {
	Volume          *float64 `yaml:"volume"`
	FrameIntervalMs int      `yaml:"frame_interval_ms"`
	StartTab        string   `yaml:"start_tab"`
	AlarmLoop       *bool    `yaml:"alarm_loop"`
	AudioRequired   bool     `yaml:"audio_required"`
	LogFile         string   `yaml:"log_file"`
	LogLevel        string   `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Volume:        0.5,
		FrameInterval: 16 * time.Millisecond,
		StartTab:      TabTimer,
		AlarmLoop:     true,
		LogLevel:      "info",
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

// DefaultLogPath returns the log file location next to the config file.
func DefaultLogPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, logFileName), nil
}

// Load reads settings from path. A missing file yields the defaults.
// Values that fail validation keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&cfg, fileData)
	return cfg, nil
}

// Validate reports the first setting outside its accepted range.
func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %v not in [0,1]", ErrInvalidValue, c.Volume)
	}
	if c.FrameInterval < MinFrameInterval || c.FrameInterval > MaxFrameInterval {
		return fmt.Errorf("%w: frame interval %v not in [%v,%v]", ErrInvalidValue, c.FrameInterval, MinFrameInterval, MaxFrameInterval)
	}
	if !validTab(c.StartTab) {
		return fmt.Errorf("%w: start tab %q", ErrInvalidValue, c.StartTab)
	}
	if !validLevel(c.LogLevel) {
		return fmt.Errorf("%w: log level %q", ErrInvalidValue, c.LogLevel)
	}
	return nil
}

func applyYamlConfig(cfg *Config, fileData yamlConfig) {
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		cfg.Volume = *fileData.Volume
	}

	interval := time.Duration(fileData.FrameIntervalMs) * time.Millisecond
	if interval >= MinFrameInterval && interval <= MaxFrameInterval {
		cfg.FrameInterval = interval
	}

	if validTab(fileData.StartTab) {
		cfg.StartTab = fileData.StartTab
	}
	if fileData.AlarmLoop != nil {
		cfg.AlarmLoop = *fileData.AlarmLoop
	}
	if validLevel(fileData.LogLevel) {
		cfg.LogLevel = fileData.LogLevel
	}

	cfg.AudioRequired = fileData.AudioRequired
	cfg.LogFile = fileData.LogFile
}

func validTab(tab string) bool {
	return tab == TabTimer || tab == TabStopwatch
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
