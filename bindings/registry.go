package bindings

import "github.com/patrislav/marwind/geometry"

// KeyAction is the callback run when a Keybind fires.
type KeyAction func()

// MouseAction is the callback run when a Mousebind fires, given the
// pointer's current position.
type MouseAction func(pt geometry.Point[int, geometry.Logical])

// KeybindRegistry maps Keybinds to the action that should run when they
// fire. Each bind holds exactly one callback; a second Bind for the
// same Keybind replaces the first.
type KeybindRegistry struct {
	binds map[Keybind]KeyAction
}

// NewKeybindRegistry constructs an empty KeybindRegistry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{binds: make(map[Keybind]KeyAction)}
}

// Bind registers action to run when kb fires.
func (r *KeybindRegistry) Bind(kb Keybind, action KeyAction) {
	r.binds[kb] = action
}

// Unbind removes any action registered for kb.
func (r *KeybindRegistry) Unbind(kb Keybind) {
	delete(r.binds, kb)
}

// Lookup returns the action registered for kb, if any.
func (r *KeybindRegistry) Lookup(kb Keybind) (KeyAction, bool) {
	a, ok := r.binds[kb]
	return a, ok
}

// All returns every registered Keybind, e.g. for grabbing them all at
// startup.
func (r *KeybindRegistry) All() []Keybind {
	out := make([]Keybind, 0, len(r.binds))
	for kb := range r.binds {
		out = append(out, kb)
	}
	return out
}

// MousebindRegistry maps Mousebinds to actions, and additionally tracks
// which button is currently held during a drag so Motion events can be
// routed to the right Press binding's action without a fresh lookup.
type MousebindRegistry struct {
	binds  map[Mousebind]MouseAction
	held   *ButtonIndex
	heldFn MouseAction
}

// NewMousebindRegistry constructs an empty MousebindRegistry.
func NewMousebindRegistry() *MousebindRegistry {
	return &MousebindRegistry{binds: make(map[Mousebind]MouseAction)}
}

// Bind registers action to run when mb fires.
func (r *MousebindRegistry) Bind(mb Mousebind, action MouseAction) {
	r.binds[mb] = action
}

// Unbind removes any action registered for mb.
func (r *MousebindRegistry) Unbind(mb Mousebind) {
	delete(r.binds, mb)
}

// Lookup returns the action registered for mb, if any.
func (r *MousebindRegistry) Lookup(mb Mousebind) (MouseAction, bool) {
	a, ok := r.binds[mb]
	return a, ok
}

// BeginDrag records button as held, with its bound action remembered so
// subsequent Motion events can be routed to it via HeldAction. A second
// BeginDrag before EndDrag replaces the held button (the previous drag is
// considered abandoned).
func (r *MousebindRegistry) BeginDrag(button ButtonIndex, action MouseAction) {
	b := button
	r.held = &b
	r.heldFn = action
}

// EndDrag clears the currently held button, if any.
func (r *MousebindRegistry) EndDrag() {
	r.held = nil
	r.heldFn = nil
}

// HeldButton returns the button currently held in a drag, if any.
func (r *MousebindRegistry) HeldButton() (ButtonIndex, bool) {
	if r.held == nil {
		return 0, false
	}
	return *r.held, true
}

// HeldAction returns the action bound to the button currently held in a
// drag, if any.
func (r *MousebindRegistry) HeldAction() (MouseAction, bool) {
	if r.heldFn == nil {
		return nil, false
	}
	return r.heldFn, true
}
