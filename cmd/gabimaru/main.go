// Command gabimaru is a terminal stopwatch and countdown timer.
//
// Usage:
//
//	gabimaru [flags]
//
// Flags:
//
//	-config string     Configuration file path (default <user config dir>/gabimaru/config.yaml)
//	-tab string        Widget shown at startup: timer, stopwatch
//	-duration duration Preload the timer, e.g. 1m30s
//	-volume float      Alarm volume in [0,1]
//	-log-file string   Log file path (default <user config dir>/gabimaru/gabimaru.log)
//	-log-level string  Log level: debug, info, warn, error
//
// Examples:
//
//	# Open the timer preloaded with a tea steep
//	gabimaru -duration 4m
//
//	# Start on the stopwatch with debug logging
//	gabimaru -tab stopwatch -log-level debug
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gabimaru/gabimaru/internal/app"
	"github.com/gabimaru/gabimaru/internal/assets"
	"github.com/gabimaru/gabimaru/internal/config"
	"github.com/gabimaru/gabimaru/internal/countdown"
	"github.com/gabimaru/gabimaru/internal/logging"
	"github.com/gabimaru/gabimaru/internal/sound"
	"github.com/gabimaru/gabimaru/internal/sound/speaker"
)

// Flags holds the command line overrides.
type Flags struct {
	ConfigFile string
	Tab        string
	Duration   time.Duration
	Volume     float64
	LogFile    string
	LogLevel   string
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Tab, "tab", "", "Widget shown at startup: timer, stopwatch")
	flag.DurationVar(&flags.Duration, "duration", 0, "Preload the timer, e.g. 1m30s")
	flag.Float64Var(&flags.Volume, "volume", sound.DefaultVolume, "Alarm volume in [0,1]")
	flag.StringVar(&flags.LogFile, "log-file", "", "Log file path")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gabimaru: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flags.Duration != 0 {
		if _, err := countdown.DigitsFor(flags.Duration); err != nil {
			return fmt.Errorf("-duration: %w", err)
		}
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := app.Options{
		Logger:        logger,
		FrameInterval: cfg.FrameInterval,
		StartTab:      startTab(cfg.StartTab),
		AlarmOnce:     !cfg.AlarmLoop,
		Duration:      flags.Duration,
	}

	manager, err := openSound(cfg, logger)
	switch {
	case err == nil:
		defer func() {
			if err := manager.Close(); err != nil {
				logger.Warn("close audio", zap.Error(err))
			}
		}()
		opts.Player = manager
		opts.Volume = manager
	case cfg.AudioRequired:
		return err
	default:
		logger.Warn("audio unavailable, alarm is silent", zap.Error(err))
		opts.Player = sound.Silent{}
	}

	logger.Info("starting",
		zap.String("tab", cfg.StartTab),
		zap.Duration("frame_interval", cfg.FrameInterval),
		zap.Bool("audio", opts.Volume != nil),
	)

	p := tea.NewProgram(app.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig() (config.Config, error) {
	path := flags.ConfigFile
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tab":
			cfg.StartTab = flags.Tab
		case "volume":
			cfg.Volume = flags.Volume
		case "log-file":
			cfg.LogFile = flags.LogFile
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogging(cfg config.Config) (*zap.Logger, error) {
	path := cfg.LogFile
	if path == "" {
		defaultPath, err := config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return logging.New(path, cfg.LogLevel)
}

func openSound(cfg config.Config, logger *zap.Logger) (*sound.Manager, error) {
	alarm, err := assets.Sound(assets.AlarmFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sound.ErrAudioUnavailable, err)
	}

	manager, err := speaker.Open(sound.Config{
		Sources: map[sound.Effect][]byte{sound.Alarm: alarm},
		Volume:  cfg.Volume,
	}, logger)
	if err != nil {
		if errors.Is(err, sound.ErrAudioUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", sound.ErrAudioUnavailable, err)
	}
	return manager, nil
}

func startTab(name string) app.Tab {
	if name == config.TabStopwatch {
		return app.TabStopwatch
	}
	return app.TabTimer
}
