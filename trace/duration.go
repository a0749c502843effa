// ABOUTME: Canonical display duration table for step kinds
// ABOUTME: Weights scale the base delay; playback divides the result by the speed factor

package trace

import "time"

// DefaultBaseDelay is the display duration of a weight 1.0 step at speed 1
const DefaultBaseDelay = 800 * time.Millisecond

// weights is the single canonical duration table. Outcome steps linger,
// bookkeeping steps are brief.
var weights = map[Kind]float64{
	KindInit:     1.0,
	KindCompare:  1.0,
	KindSwap:     1.0,
	KindMove:     1.0,
	KindSelect:   1.0,
	KindPivot:    1.25,
	KindDivide:   1.0,
	KindMerge:    1.25,
	KindSorted:   0.75,
	KindExamine:  1.0,
	KindNarrow:   1.0,
	KindVisit:    1.0,
	KindProcess:  1.0,
	KindEnqueue:  0.75,
	KindDequeue:  0.75,
	KindPush:     0.75,
	KindInsert:   1.5,
	KindDelete:   1.5,
	KindReplace:  1.5,
	KindFound:    2.0,
	KindNotFound: 2.0,
	KindStage:    1.0,
	KindDone:     1.5,
}

// Weight returns the relative display duration for the kind (1.0 when unknown)
func (k Kind) Weight() float64 {
	if w, ok := weights[k]; ok {
		return w
	}

	return 1.0
}

// WeightFor expresses an absolute duration as a weight relative to DefaultBaseDelay
func WeightFor(d time.Duration) float64 {
	return float64(d) / float64(DefaultBaseDelay)
}

// Delay computes how long step s stays on screen for the given base delay and speed.
// A non-positive speed is treated as 1.
func Delay(s Step, base time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}

	w := s.Weight
	if w <= 0 {
		w = s.Kind.Weight()
	}

	return time.Duration(float64(base) * w / speed)
}
