// ABOUTME: TUI startup options and injected dependencies
// ABOUTME: Defines everything Run needs from the command line layer

package tui

import (
	"math/rand/v2"

	"algoviz/playback"
)

// Domain selects which visualizer is on screen
type Domain int

// Visualizer domains, bound to keys 1, 2 and 3
const (
	SortDomain Domain = iota
	SearchDomain
	TreeDomain
)

func (d Domain) String() string {
	switch d {
	case SortDomain:
		return "Sorting"
	case SearchDomain:
		return "Searching"
	case TreeDomain:
		return "Binary Tree"
	default:
		return "Unknown"
	}
}

// Options contains configuration for running the TUI
type Options struct {
	Domain Domain // Visualizer shown first
	Watch  bool   // Reload the config file when it changes on disk
}

// Dependencies holds all external dependencies for the TUI
type Dependencies struct {
	SharedConfig ConfigProvider
	Clock        playback.Clock // nil means the real clock
	Rand         *rand.Rand     // nil means a time seeded source
	Debugf       func(string, ...interface{})
	ConfigPath   string
}
