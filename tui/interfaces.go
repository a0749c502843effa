// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Lets tests drive the model with a scheduler on a manual clock

package tui

import (
	"algoviz/config"
	"algoviz/playback"
	"algoviz/trace"
)

// ConfigProvider provides thread-safe access to the live configuration
type ConfigProvider interface {
	Get() config.Config
	Update(cfg config.Config)
}

// Player is the subset of playback.Scheduler the model drives
type Player interface {
	Start(tr trace.Trace, speed float64) error
	Load(tr trace.Trace) error
	Pause() error
	Resume() error
	StepForward() error
	Replay() error
	Stop() error
	SetSpeed(speed float64) error
	Close() error
	State() playback.State
}

var _ Player = (*playback.Scheduler)(nil)
