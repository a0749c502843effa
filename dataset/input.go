// ABOUTME: Validation of user supplied values, indices and lists
// ABOUTME: Runs before any runner is invoked so invalid input never produces a trace

package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validation errors surfaced to the user
var (
	ErrNotNumeric      = errors.New("please enter a valid number")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMissingTarget   = errors.New("please enter a target value")
	ErrEmpty           = errors.New("structure is empty")
	ErrFull            = errors.New("array is full")
)

// ParseValue parses a single integer value
func ParseValue(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingTarget
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}

	return v, nil
}

// ParseIndex parses an index and checks it against [0, upper)
func ParseIndex(s string, upper int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}

	if idx < 0 || idx >= upper {
		return 0, fmt.Errorf("%w: index must be between 0 and %d", ErrIndexOutOfRange, upper-1)
	}

	return idx, nil
}

// ParseValues parses a comma or space separated list of integers
func ParseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	out := make([]int, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotNumeric, f)
		}

		out = append(out, v)
	}

	return out, nil
}
