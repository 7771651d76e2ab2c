package viewer

import (
	"fmt"
	"sort"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/viewer/transform"
)

// binding ties an action to a physical key.
type binding struct {
	action transform.Action
	key    sdl.Scancode
}

// Keymap resolves key bindings against the keyboard state.
type Keymap struct {
	bindings []binding
}

// NewKeymap resolves SDL key names such as "Up" or "F12".
func NewKeymap(keys map[string]string) (*Keymap, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	km := &Keymap{}
	for _, name := range names {
		action, err := transform.ParseAction(name)
		if err != nil {
			return nil, err
		}
		code := sdl.GetScancodeFromName(keys[name])
		if code == 0 { // SDL_SCANCODE_UNKNOWN
			return nil, fmt.Errorf("action %s: unknown key %q", name, keys[name])
		}
		km.bindings = append(km.bindings, binding{action: action, key: code})
	}
	return km, nil
}

// Sets returns the actions whose keys are held and those pressed this frame.
func (k *Keymap) Sets(in *input.Input) (held, pressed transform.ActionSet) {
	for _, b := range k.bindings {
		if in.IsKeyHeld(b.key) {
			held = held.Set(b.action)
		}
		if in.IsKeyPressed(b.key) {
			pressed = pressed.Set(b.action)
		}
	}
	return held, pressed
}
