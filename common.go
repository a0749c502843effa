// ABOUTME: Shared setup for every command: debug log, config loading and output options
// ABOUTME: Provides the package wide debugf logger and the RootOptions subcommands read

package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"algoviz/config"
	"algoviz/playback"
	"algoviz/trace"
)

const debugLogFile = "algoviz-debug.log"

var debugLog *log.Logger

// validFormats lists the accepted --format values
var validFormats = []string{trace.FormatText, trace.FormatJSON, trace.FormatYAML}

// RootOptions contains the global flags shared by all commands
type RootOptions struct {
	ConfigPath string
	Debug      bool
	Format     string
	Play       bool
	Speed      float64
	Seed       uint64
	CPUProfile string
	MemProfile string
}

// configPath returns the --config value or the default lookup path
func (o *RootOptions) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}

	return config.GetConfigPath()
}

// loadConfig reads the config file and applies flag overrides.
// A broken file is reported and the defaults are used instead.
func (o *RootOptions) loadConfig() config.Config {
	path := o.configPath()

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
	}

	if o.Speed > 0 {
		cfg.Speed = playback.ClampSpeed(o.Speed)
	}

	debugf("[CONFIG] loaded %s: %+v", path, cfg)

	return cfg
}

// rng returns a source seeded from --seed, or from the clock when unset
func (o *RootOptions) rng() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed>>1))
}

func isValidFormat(format string) bool {
	return slices.Contains(validFormats, format)
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if isTTY(os.Stderr) {
		fmt.Fprintf(os.Stderr, "Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}
