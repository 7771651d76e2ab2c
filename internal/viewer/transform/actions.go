// Package transform holds the interactive model transform of a viewer
// session and the pure reducer that advances it each frame.
package transform

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a named viewer command bound to a key.
type Action uint8

const (
	RotateXInc Action = iota
	RotateXDec
	RotateYInc
	RotateYDec
	RotateZInc
	RotateZDec
	MoveXInc
	MoveXDec
	MoveYInc
	MoveYDec
	MoveZInc
	MoveZDec
	ScaleUp
	ScaleDown
	ToggleTexture
	ToggleBounds
	Screenshot
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	RotateXInc:    "rotate_x_inc",
	RotateXDec:    "rotate_x_dec",
	RotateYInc:    "rotate_y_inc",
	RotateYDec:    "rotate_y_dec",
	RotateZInc:    "rotate_z_inc",
	RotateZDec:    "rotate_z_dec",
	MoveXInc:      "move_x_inc",
	MoveXDec:      "move_x_dec",
	MoveYInc:      "move_y_inc",
	MoveYDec:      "move_y_dec",
	MoveZInc:      "move_z_inc",
	MoveZDec:      "move_z_dec",
	ScaleUp:       "scale_up",
	ScaleDown:     "scale_down",
	ToggleTexture: "toggle_texture",
	ToggleBounds:  "toggle_bounds",
	Screenshot:    "screenshot",
	Quit:          "quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q (known: %s)", name, strings.Join(ActionNames(), ", "))
}

// ActionNames returns every action name in sorted order.
func ActionNames() []string {
	names := make([]string, 0, actionCount)
	for _, n := range actionNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultBindings maps action names to SDL key names.
func DefaultBindings() map[string]string {
	return map[string]string{
		"rotate_x_inc":   "Up",
		"rotate_x_dec":   "Down",
		"rotate_y_inc":   "Right",
		"rotate_y_dec":   "Left",
		"rotate_z_inc":   "Z",
		"rotate_z_dec":   "X",
		"move_x_inc":     "D",
		"move_x_dec":     "A",
		"move_y_inc":     "W",
		"move_y_dec":     "S",
		"move_z_inc":     "E",
		"move_z_dec":     "Q",
		"scale_up":       "=",
		"scale_down":     "-",
		"toggle_texture": "T",
		"toggle_bounds":  "B",
		"screenshot":     "F12",
		"quit":           "Escape",
	}
}

// ActionSet is a set of actions.
type ActionSet uint32

// Set returns s with a added.
func (s ActionSet) Set(a Action) ActionSet {
	return s | 1<<a
}

// Has reports whether a is in s.
func (s ActionSet) Has(a Action) bool {
	return s&(1<<a) != 0
}

// Actions builds a set from a list of actions.
func Actions(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.Set(a)
	}
	return s
}
