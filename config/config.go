// ABOUTME: Configuration management for visualizer defaults and playback tuning
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"algoviz/dataset"
	"algoviz/dispatch"
	"algoviz/playback"
	"algoviz/searching"
	"algoviz/sorting"
	"algoviz/trace"
	"algoviz/tree"
)

// Bounds for numeric settings
const (
	MinBaseDelayMS = 50
	MaxBaseDelayMS = 5000
	MinServers     = 1
	MaxServers     = 8
)

// Config holds the persisted visualizer settings
type Config struct {
	// Playback
	Speed       float64 `toml:"speed"`
	BaseDelayMS int     `toml:"base_delay_ms"`

	// Array visualizers
	ArraySize       int    `toml:"array_size"`
	SortAlgorithm   string `toml:"sort_algorithm"`
	SearchAlgorithm string `toml:"search_algorithm"`

	// Tree visualizer
	TreeType  string `toml:"tree_type"`
	Traversal string `toml:"traversal"`

	// Dispatch simulation
	DispatchPolicy string `toml:"dispatch_policy"`
	Servers        int    `toml:"servers"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/algoviz/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./algoviz.toml"); err == nil {
		return "./algoviz.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./algoviz.toml"
	}

	return filepath.Join(home, ".config", "algoviz", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// Missing keys keep their defaults; a missing file yields the default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config.Clamp(), nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Round speed to 2 decimal places to match UI precision
	config = config.Clamp()
	config.Speed = math.Round(config.Speed*100) / 100

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the settings the visualizers start with
func DefaultConfig() Config {
	return Config{
		Speed:           playback.DefaultSpeed,
		BaseDelayMS:     int(trace.DefaultBaseDelay / time.Millisecond),
		ArraySize:       len(dataset.Default()),
		SortAlgorithm:   string(sorting.Bubble),
		SearchAlgorithm: string(searching.Linear),
		TreeType:        string(tree.BST),
		Traversal:       string(tree.Inorder),
		DispatchPolicy:  string(dispatch.RoundRobin),
		Servers:         dispatch.DefaultServers,
	}
}

// Clamp pulls numeric settings into range and replaces unknown names with defaults
func (c Config) Clamp() Config {
	def := DefaultConfig()

	c.Speed = playback.ClampSpeed(c.Speed)
	c.BaseDelayMS = min(max(c.BaseDelayMS, MinBaseDelayMS), MaxBaseDelayMS)
	c.ArraySize = dataset.ClampSize(c.ArraySize)
	c.Servers = min(max(c.Servers, MinServers), MaxServers)

	if a, err := sorting.Parse(c.SortAlgorithm); err == nil {
		c.SortAlgorithm = string(a)
	} else {
		c.SortAlgorithm = def.SortAlgorithm
	}

	if a, err := searching.Parse(c.SearchAlgorithm); err == nil {
		c.SearchAlgorithm = string(a)
	} else {
		c.SearchAlgorithm = def.SearchAlgorithm
	}

	if t, err := tree.ParseType(c.TreeType); err == nil {
		c.TreeType = string(t)
	} else {
		c.TreeType = def.TreeType
	}

	if o, err := tree.ParseOrder(c.Traversal); err == nil {
		c.Traversal = string(o)
	} else {
		c.Traversal = def.Traversal
	}

	if p, err := dispatch.ParsePolicy(c.DispatchPolicy); err == nil {
		c.DispatchPolicy = string(p)
	} else {
		c.DispatchPolicy = def.DispatchPolicy
	}

	return c
}

// BaseDelay returns the base step duration
func (c Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMS) * time.Millisecond
}
