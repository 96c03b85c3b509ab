package wayland

import (
	"encoding/json"
	"fmt"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// sendAction issues a niri IPC Action request over the control socket.
// niri replies with a line we don't need to wait on for the fire-and-
// forget actions this connector issues (CloseWindow, FocusWindow).
func (c *Conn) sendAction(name string, payload any) error {
	req := map[string]any{
		"Action": map[string]any{name: payload},
	}
	b, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("wayland: encode action %s: %w", name, err)
	}
	b = append(b, '\n')
	if _, err := c.ctlConn.Write(b); err != nil {
		return fmt.Errorf("wayland: send action %s: %w", name, err)
	}
	return nil
}

// GetRoot returns a synthetic root window; niri has no single root
// surface concept, so this just gives the core something to anchor a
// zero-sized geometry to.
func (c *Conn) GetRoot() (display.RootWindow, error) {
	return display.RootWindow{ID: 0, Geom: geometry.Rectangle[int, geometry.Logical]{}}, nil
}

// GetGeometry is unsupported: niri computes window geometry itself and
// doesn't expose a query for it over this IPC surface.
func (c *Conn) GetGeometry(window.ID) (geometry.Rectangle[int, geometry.Logical], error) {
	return geometry.Rectangle[int, geometry.Logical]{}, ErrUnsupported
}

// QueryTree returns the ids of every window this connector has observed
// via WindowOpenedOrChanged events, since niri has no concept of
// a window hierarchy to query.
func (c *Conn) QueryTree(window.ID) ([]window.ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]window.ID, 0, len(c.windows))
	for _, w := range c.windows {
		ids = append(ids, w.id)
	}
	return ids, nil
}

// QueryPointer is unsupported over niri's IPC.
func (c *Conn) QueryPointer(window.ID) (display.PointerReply, error) {
	return display.PointerReply{}, ErrUnsupported
}

// AllOutputs returns one Output per distinct output name seen across
// tracked workspaces, with a zero geometry since niri's event stream
// doesn't report output dimensions.
func (c *Conn) AllOutputs() ([]display.Output, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]bool)
	var outs []display.Output
	for _, ws := range c.workspace {
		if ws.output == "" || seen[ws.output] {
			continue
		}
		seen[ws.output] = true
		outs = append(outs, display.Output{Name: ws.output})
	}
	return outs, nil
}

// Atom/LookupAtom keep a purely local name<->id table: niri has no atom
// system, but dispatch code still wants a stable handle to compare
// against across calls.
func (c *Conn) Atom(name display.Atom) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.atomsByName == nil {
		c.atomsByName = make(map[string]uint32)
		c.atomsByID = make(map[uint32]string)
	}
	if id, ok := c.atomsByName[string(name)]; ok {
		return id, nil
	}
	id := uint32(len(c.atomsByName) + 1)
	c.atomsByName[string(name)] = id
	c.atomsByID[id] = string(name)
	return id, nil
}

func (c *Conn) LookupAtom(id uint32) (display.Atom, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.atomsByID[id]
	if !ok {
		return "", fmt.Errorf("wayland: unknown atom %d", id)
	}
	return display.Atom(name), nil
}

// GrabKey/UngrabKey/GrabButton/UngrabButton/GrabPointer/UngrabPointer are
// unsupported: niri owns all input routing and exposes keybinds only
// through its own config file, not this IPC.
func (c *Conn) GrabKey(bindings.Keybind) error        { return ErrUnsupported }
func (c *Conn) UngrabKey(bindings.Keybind) error      { return ErrUnsupported }
func (c *Conn) GrabButton(bindings.Mousebind) error   { return ErrUnsupported }
func (c *Conn) UngrabButton(bindings.Mousebind) error { return ErrUnsupported }
func (c *Conn) GrabPointer() error                    { return ErrUnsupported }
func (c *Conn) UngrabPointer() error                  { return ErrUnsupported }


// MapWindow/UnmapWindow are unsupported: niri has no direct map/unmap
// request in its action set.
func (c *Conn) MapWindow(window.ID) error   { return ErrUnsupported }
func (c *Conn) UnmapWindow(window.ID) error { return ErrUnsupported }

// DestroyWindow asks niri to close id via its CloseWindow action.
func (c *Conn) DestroyWindow(id window.ID) error {
	return c.sendAction("CloseWindow", map[string]any{"id": uint64(id)})
}

// SetInputFocus asks niri to focus id via its FocusWindow action.
func (c *Conn) SetInputFocus(id window.ID) error {
	return c.sendAction("FocusWindow", map[string]any{"id": uint64(id)})
}

// SetGeometry/ConfigureWindow/ChangeWindowAttributes are unsupported:
// niri's scrolling layout computes window placement itself.
func (c *Conn) SetGeometry(window.ID, geometry.Rectangle[int, geometry.Logical]) error {
	return ErrUnsupported
}

func (c *Conn) ConfigureWindow(window.ID, geometry.Rectangle[int, geometry.Logical], uint32) error {
	return ErrUnsupported
}

func (c *Conn) ChangeWindowAttributes(window.ID, uint32) error { return ErrUnsupported }

// SetProperty/GetProperty are in-memory-only: niri has no ICCCM/EWMH
// property store, but dispatch code still expects to be able to round-
// trip the handful of properties it sets (e.g. urgency hints) without a
// backend-specific branch.
func (c *Conn) SetProperty(id window.ID, atom display.Atom, prop display.Property) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.props == nil {
		c.props = make(map[window.ID]map[display.Atom]display.Property)
	}
	if c.props[id] == nil {
		c.props[id] = make(map[display.Atom]display.Property)
	}
	c.props[id][atom] = prop
	return nil
}

func (c *Conn) GetProperty(id window.ID, atom display.Atom) (display.Property, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byAtom, ok := c.props[id]
	if !ok {
		return display.Property{}, false, nil
	}
	prop, ok := byAtom[atom]
	return prop, ok, nil
}

// SendClientMessage is a no-op: niri's compositor protocol has no
// ClientMessage equivalent this connector can forward.
func (c *Conn) SendClientMessage(window.ID, display.Atom, [5]uint32) error { return nil }

// ShouldManage always reports true: every toplevel niri reports is
// already a managed window by the time this connector sees it.
func (c *Conn) ShouldManage(window.ID) bool { return true }

// ShouldFloat always reports false: niri tracks floating state itself
// (Window.IsFloating) rather than delegating the decision to the core's
// float-class configuration.
func (c *Conn) ShouldFloat(window.ID, []string) bool { return false }
