package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wavescape/internal/core"
)

// ControlState is the cached value of one adjustable parameter.
type ControlState struct {
	Control core.ParameterControl
	Value   string

	IntValue   int
	FloatValue float64
	HasValue   bool
}

// Controls tracks the HUD-adjustable parameters of a scene and applies
// stepped edits through the scene's setters.
type Controls struct {
	scene       core.Scene
	title       string
	states      []ControlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// NewControls inspects scene for the optional parameter interfaces.
func NewControls(scene core.Scene) *Controls {
	c := &Controls{scene: scene, title: buildTitle(scene)}
	if provider, ok := scene.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		c.states = make([]ControlState, len(controls))
		for i, ctrl := range controls {
			c.states[i] = ControlState{Control: ctrl, Value: "--"}
		}
	}
	if setter, ok := scene.(core.IntParameterSetter); ok {
		c.intSetter = setter
	}
	if setter, ok := scene.(core.FloatParameterSetter); ok {
		c.floatSetter = setter
	}
	c.Refresh()
	return c
}

func buildTitle(scene core.Scene) string {
	if scene == nil || scene.Name() == "" {
		return "Controls"
	}
	name := scene.Name()
	return fmt.Sprintf("%s Controls", strings.ToUpper(name[:1])+name[1:])
}

// Title is the panel heading.
func (c *Controls) Title() string { return c.title }

// Len returns the number of controls.
func (c *Controls) Len() int { return len(c.states) }

// State returns the cached state of control i.
func (c *Controls) State(i int) ControlState { return c.states[i] }

// Refresh reloads every control value from the scene's parameter snapshot.
func (c *Controls) Refresh() {
	if len(c.states) == 0 {
		return
	}
	provider, ok := c.scene.(core.ParameterProvider)
	if !ok {
		return
	}
	snapshot := provider.Parameters()
	for i := range c.states {
		state := &c.states[i]
		state.HasValue = false
		state.Value = "--"
		param, ok := snapshot.Lookup(state.Control.Key)
		if !ok {
			continue
		}
		switch state.Control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.IntValue = parsed
			state.FloatValue = float64(parsed)
			state.Value = strconv.Itoa(parsed)
			state.HasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.FloatValue = parsed
			state.Value = formatFloat(state.Control, parsed)
			state.HasValue = true
		}
	}
}

// Index returns the position of the control with key, or -1.
func (c *Controls) Index(key string) int {
	for i := range c.states {
		if c.states[i].Control.Key == key {
			return i
		}
	}
	return -1
}

// AdjustKey steps the control with key; see Adjust.
func (c *Controls) AdjustKey(key string, direction int) bool {
	i := c.Index(key)
	if i < 0 {
		return false
	}
	return c.Adjust(i, direction)
}

// Adjust moves control i one step in direction (-1 or +1), clamped to its
// bounds. It reports whether the scene accepted a changed value.
func (c *Controls) Adjust(i, direction int) bool {
	if i < 0 || i >= len(c.states) || direction == 0 {
		return false
	}
	state := &c.states[i]
	if !state.HasValue {
		return false
	}
	switch state.Control.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return false
		}
		target := int(state.Control.Clamp(float64(state.IntValue + direction*intStep(state.Control))))
		if target == state.IntValue {
			return false
		}
		if !c.intSetter.SetIntParameter(state.Control.Key, target) {
			return false
		}
		state.IntValue = target
		state.FloatValue = float64(target)
		state.Value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return false
		}
		target := state.Control.Clamp(state.FloatValue + float64(direction)*floatStep(state.Control))
		if math.Abs(target-state.FloatValue) < 1e-9 {
			return false
		}
		if !c.floatSetter.SetFloatParameter(state.Control.Key, target) {
			return false
		}
		state.FloatValue = target
		state.Value = formatFloat(state.Control, target)
		return true
	}
	return false
}

// CanAdjust reports whether Adjust(i, direction) could change the value.
func (c *Controls) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(c.states) || direction == 0 {
		return false
	}
	state := c.states[i]
	if !state.HasValue {
		return false
	}
	switch state.Control.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return false
		}
		target := state.IntValue + direction*intStep(state.Control)
		return int(state.Control.Clamp(float64(target))) != state.IntValue
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return false
		}
		target := state.Control.Clamp(state.FloatValue + float64(direction)*floatStep(state.Control))
		return math.Abs(target-state.FloatValue) >= 1e-9
	}
	return false
}

func intStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	return step
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
