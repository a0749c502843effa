// ABOUTME: Tests for ParamManager parameter adjustment and navigation
// ABOUTME: Verifies boundary checking, choice cycling, and reset functionality

package tui

import (
	"fmt"
	"testing"

	"algoviz/config"
)

func TestParamManager_Selection(t *testing.T) {
	tests := []struct {
		name          string
		paramCount    int
		initialIndex  int
		operation     string
		expectedIndex int
	}{
		{"select next", 5, 0, "next", 1},
		{"select next at end", 5, 4, "next", 4},
		{"select previous", 5, 2, "prev", 1},
		{"select previous at start", 5, 0, "prev", 0},
		{"set valid index", 5, 0, "set:3", 3},
		{"set invalid negative", 5, 2, "set:-1", 2},
		{"set invalid too high", 5, 2, "set:10", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewParamManager(createTestParams(tt.paramCount))
			pm.SetSelected(tt.initialIndex)

			switch tt.operation {
			case "next":
				pm.SelectNext()
			case "prev":
				pm.SelectPrevious()
			default:
				var idx int
				if _, err := fmt.Sscanf(tt.operation, "set:%d", &idx); err == nil {
					pm.SetSelected(idx)
				}
			}

			if pm.Selected() != tt.expectedIndex {
				t.Errorf("Expected index %d, got %d", tt.expectedIndex, pm.Selected())
			}
		})
	}
}

func TestParamManager_Speed(t *testing.T) {
	speed := 1.0
	pm := NewParamManager([]Parameter{
		{Name: paramSpeed, Value: &speed, Min: 0.25, Max: 8, Step: 0.25},
	})

	tests := []struct {
		name         string
		initialVal   float64
		increase     bool
		expectChange bool
		expectedVal  float64
	}{
		{"increase from middle", 1.0, true, true, 1.25},
		{"increase to max", 7.75, true, true, 8},
		{"increase at max", 8, true, false, 8},
		{"decrease from middle", 1.0, false, true, 0.75},
		{"decrease to min", 0.5, false, true, 0.25},
		{"decrease at min", 0.25, false, false, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speed = tt.initialVal

			var changed bool
			if tt.increase {
				changed = pm.Increase()
			} else {
				changed = pm.Decrease()
			}

			if changed != tt.expectChange {
				t.Errorf("Expected changed=%v, got %v", tt.expectChange, changed)
			}

			if speed != tt.expectedVal {
				t.Errorf("Expected value %.2f, got %.2f", tt.expectedVal, speed)
			}
		})
	}
}

func TestParamManager_FloatPrecisionClamping(t *testing.T) {
	val := 0.35
	pm := NewParamManager([]Parameter{
		{Name: "test", Value: &val, Min: 0.25, Max: 1.0, Step: 0.1},
	})

	if !pm.Decrease() {
		t.Fatal("Expected decrease to succeed")
	}

	// 0.35 - 0.1 lands a hair below 0.25 and is clamped
	if val != 0.25 {
		t.Errorf("Expected value to be 0.25, got %.10f", val)
	}
}

func TestParamManager_ArraySize(t *testing.T) {
	size := 10
	pm := NewParamManager([]Parameter{
		{Name: paramArraySize, IntValue: &size, Min: 5, Max: 20, Step: 1, IsInt: true},
	})

	tests := []struct {
		name         string
		initialVal   int
		increase     bool
		expectChange bool
		expectedVal  int
	}{
		{"increase from middle", 10, true, true, 11},
		{"increase at max", 20, true, false, 20},
		{"decrease from middle", 10, false, true, 9},
		{"decrease at min", 5, false, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size = tt.initialVal

			var changed bool
			if tt.increase {
				changed = pm.Increase()
			} else {
				changed = pm.Decrease()
			}

			if changed != tt.expectChange {
				t.Errorf("Expected changed=%v, got %v", tt.expectChange, changed)
			}

			if size != tt.expectedVal {
				t.Errorf("Expected value %d, got %d", tt.expectedVal, size)
			}
		})
	}
}

func TestParamManager_ChoiceCycles(t *testing.T) {
	alg := "bubble"
	pm := NewParamManager([]Parameter{
		{Name: paramSortAlgorithm, Choice: &alg, Choices: []string{"bubble", "quick", "merge"}},
	})

	steps := []struct {
		increase bool
		want     string
	}{
		{true, "quick"},
		{true, "merge"},
		{true, "bubble"}, // wraps forward
		{false, "merge"}, // wraps backward
		{false, "quick"},
	}

	for i, s := range steps {
		var changed bool
		if s.increase {
			changed = pm.Increase()
		} else {
			changed = pm.Decrease()
		}

		if !changed {
			t.Errorf("step %d: expected a change", i)
		}

		if alg != s.want {
			t.Errorf("step %d: got %q, want %q", i, alg, s.want)
		}
	}
}

func TestParamManager_SingleChoiceDoesNotChange(t *testing.T) {
	only := "bst"
	pm := NewParamManager([]Parameter{
		{Name: paramTreeType, Choice: &only, Choices: []string{"bst"}},
	})

	if pm.Increase() || pm.Decrease() {
		t.Error("A single choice should never report a change")
	}
}

func TestParamManager_ResetToDefaults(t *testing.T) {
	cfg := config.Config{
		Speed:           4,
		ArraySize:       17,
		SortAlgorithm:   "heap",
		SearchAlgorithm: "binary",
		TreeType:        "complete",
		Traversal:       "bfs",
	}

	pm := NewParamManager([]Parameter{
		{Name: paramSpeed, Value: &cfg.Speed, Min: 0.25, Max: 8, Step: 0.25},
		{Name: paramArraySize, IntValue: &cfg.ArraySize, Min: 5, Max: 20, Step: 1, IsInt: true},
		{Name: paramSortAlgorithm, Choice: &cfg.SortAlgorithm},
		{Name: paramSearchAlgorithm, Choice: &cfg.SearchAlgorithm},
		{Name: paramTreeType, Choice: &cfg.TreeType},
		{Name: paramTraversal, Choice: &cfg.Traversal},
	})

	defaults := config.DefaultConfig()
	pm.ResetToDefaults(defaults)

	if cfg.Speed != defaults.Speed || cfg.ArraySize != defaults.ArraySize {
		t.Errorf("Numeric params not reset: speed %.2f size %d", cfg.Speed, cfg.ArraySize)
	}

	if cfg.SortAlgorithm != defaults.SortAlgorithm ||
		cfg.SearchAlgorithm != defaults.SearchAlgorithm ||
		cfg.TreeType != defaults.TreeType ||
		cfg.Traversal != defaults.Traversal {
		t.Errorf("Choice params not reset: %+v", cfg)
	}
}

func TestParamManager_GetMethods(t *testing.T) {
	params := createTestParams(5)
	pm := NewParamManager(params)

	if pm.Len() != 5 {
		t.Errorf("Expected length 5, got %d", pm.Len())
	}

	param := pm.Get(2)
	if param == nil {
		t.Fatal("Expected non-nil parameter")
	}

	if param.Name != params[2].Name {
		t.Errorf("Expected parameter %s, got %s", params[2].Name, param.Name)
	}

	if pm.Get(-1) != nil {
		t.Error("Expected nil for negative index")
	}

	if pm.Get(10) != nil {
		t.Error("Expected nil for out-of-bounds index")
	}

	pm.SetSelected(3)

	selected := pm.GetSelected()
	if selected == nil || selected.Name != params[3].Name {
		t.Errorf("Expected selected parameter %s, got %+v", params[3].Name, selected)
	}

	if len(pm.All()) != 5 {
		t.Errorf("Expected All() to return 5 parameters, got %d", len(pm.All()))
	}
}

func TestFormatValue(t *testing.T) {
	speed, size, alg := 1.5, 12, "quick"

	tests := []struct {
		param Parameter
		want  string
	}{
		{Parameter{Value: &speed}, "1.50x"},
		{Parameter{IntValue: &size, IsInt: true}, "12"},
		{Parameter{Choice: &alg}, "quick"},
		{Parameter{}, "N/A"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.param); got != tt.want {
			t.Errorf("formatValue(%+v) = %q, want %q", tt.param, got, tt.want)
		}
	}
}

// createTestParams builds count float parameters named param_0..param_n
func createTestParams(count int) []Parameter {
	params := make([]Parameter, count)
	for i := range params {
		val := float64(i) * 0.25
		params[i] = Parameter{
			Name:  fmt.Sprintf("param_%d", i),
			Value: &val,
			Min:   0.0,
			Max:   1.0,
			Step:  0.25,
		}
	}

	return params
}
