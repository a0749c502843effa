// ABOUTME: Parameter manager for visualizer settings
// ABOUTME: Handles numeric adjustments with boundary checking and cycling through named choices

package tui

import "algoviz/config"

// Parameter represents a tunable setting. Exactly one of Value, IntValue or
// Choice points into the model's local config.
type Parameter struct {
	Name     string
	Value    *float64
	IntValue *int
	Choice   *string
	Choices  []string
	Min      float64
	Max      float64
	Step     float64
	IsInt    bool
}

// IsChoice reports whether the parameter cycles through named options
func (p *Parameter) IsChoice() bool {
	return p.Choice != nil
}

// ParamManager manages parameter selection and adjustment
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value, or moves a choice to the
// next option. Returns true if the value was changed.
func (pm *ParamManager) Increase() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	switch {
	case param.IsChoice():
		return cycle(param, 1)
	case param.IsInt:
		newVal := *param.IntValue + int(param.Step)
		if float64(newVal) <= param.Max {
			*param.IntValue = newVal
			return true
		}
	default:
		newVal := *param.Value + param.Step
		if newVal <= param.Max+0.0001 {
			*param.Value = min(newVal, param.Max)
			return true
		}
	}

	return false
}

// Decrease decreases the selected parameter value, or moves a choice to the
// previous option. Returns true if the value was changed.
func (pm *ParamManager) Decrease() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	switch {
	case param.IsChoice():
		return cycle(param, -1)
	case param.IsInt:
		newVal := *param.IntValue - int(param.Step)
		if float64(newVal) >= param.Min {
			*param.IntValue = newVal
			return true
		}
	default:
		newVal := *param.Value - param.Step
		// Clamp to min if we're very close (handles floating point precision)
		if newVal < param.Min && newVal >= param.Min-0.0001 {
			newVal = param.Min
		}

		if newVal >= param.Min {
			*param.Value = newVal
			return true
		}
	}

	return false
}

// cycle moves a choice by delta, wrapping at both ends
func cycle(param *Parameter, delta int) bool {
	if len(param.Choices) < 2 {
		return false
	}

	idx := 0

	for i, c := range param.Choices {
		if c == *param.Choice {
			idx = i
			break
		}
	}

	n := len(param.Choices)
	*param.Choice = param.Choices[((idx+delta)%n+n)%n]

	return true
}

// ResetToDefaults resets all parameters to their default values
// Uses name-based lookup to avoid fragile array indexing
func (pm *ParamManager) ResetToDefaults(defaults config.Config) {
	for i := range pm.params {
		p := &pm.params[i]

		switch p.Name {
		case paramSpeed:
			*p.Value = defaults.Speed
		case paramArraySize:
			*p.IntValue = defaults.ArraySize
		case paramSortAlgorithm:
			*p.Choice = defaults.SortAlgorithm
		case paramSearchAlgorithm:
			*p.Choice = defaults.SearchAlgorithm
		case paramTreeType:
			*p.Choice = defaults.TreeType
		case paramTraversal:
			*p.Choice = defaults.Traversal
		}
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}

	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
