// ABOUTME: Real time playback of a trace on the command line
// ABOUTME: Drives the scheduler on the wall clock and prints each step as it is emitted

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"algoviz/config"
	"algoviz/playback"
	"algoviz/trace"
)

// playEventBuffer smooths bursts of zero delay steps
const playEventBuffer = 16

// playTrace plays tr at the configured speed and returns when it completes
// or ctx is cancelled
func playTrace(ctx context.Context, w io.Writer, tr trace.Trace, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan playback.Event, playEventBuffer)

	s := playback.New(playback.RealClock(), playback.Forward(ctx, events),
		playback.WithBaseDelay(cfg.BaseDelay()),
		playback.WithSpeed(cfg.Speed),
		playback.WithDebug(debugf),
	)

	defer func() {
		if err := s.Close(); err != nil {
			debugf("[CLI] close scheduler: %v", err)
		}
	}()

	p := newStepPrinter(w, tr)

	// Start emits the first step synchronously, so it must not block on the channel
	started := make(chan error, 1)
	go func() {
		started <- s.Start(tr, cfg.Speed)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-started:
			if err != nil {
				return err
			}

			started = nil
		case ev := <-events:
			if ev.Kind == playback.CompleteEvent {
				return p.complete(ev)
			}

			if err := p.step(ev); err != nil {
				return err
			}
		}
	}
}

// stepPrinter writes emitted steps, prefixed with elapsed time on a terminal
type stepPrinter struct {
	w        io.Writer
	tr       trace.Trace
	start    time.Time
	terminal bool
}

func newStepPrinter(w io.Writer, tr trace.Trace) *stepPrinter {
	f, ok := w.(*os.File)

	return &stepPrinter{
		w:        w,
		tr:       tr,
		start:    time.Now(),
		terminal: ok && isTTY(f),
	}
}

func (p *stepPrinter) step(ev playback.Event) error {
	if ev.Index == 0 {
		if _, err := fmt.Fprintf(p.w, "trace %s: %d steps\n", p.tr.Algorithm(), ev.Total); err != nil {
			return fmt.Errorf("failed to write step: %w", err)
		}
	}

	if p.terminal {
		if _, err := fmt.Fprintf(p.w, "%s ", formatElapsed(time.Since(p.start))); err != nil {
			return fmt.Errorf("failed to write step: %w", err)
		}
	}

	if _, err := io.WriteString(p.w, trace.StepText(ev.Index, ev.Step)); err != nil {
		return fmt.Errorf("failed to write step: %w", err)
	}

	return nil
}

func (p *stepPrinter) complete(ev playback.Event) error {
	_, err := fmt.Fprintf(p.w, "Playback complete: %d steps in %v\n",
		ev.Total, time.Since(p.start).Round(time.Millisecond))

	return err
}

// formatElapsed right-aligns elapsed time to 7 characters, e.g. " 12.3s" or "1m05.2s"
func formatElapsed(d time.Duration) string {
	var s string
	if d >= time.Minute {
		s = fmt.Sprintf("%dm%04.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
	} else {
		s = fmt.Sprintf("%.1fs", d.Seconds())
	}

	return fmt.Sprintf("%7s", s)
}
