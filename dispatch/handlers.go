package dispatch

import (
	"fmt"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/desktop"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/errs"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/window"
)

// handleMapTrackedClient implements MapTrackedClient(id): floats the
// window off-layout if the connector says it should (by window type or
// the configured float-class list), else adds it on-layout; either way
// it's mapped and selected for the events the dispatcher needs going
// forward.
func (d *Dispatcher) handleMapTrackedClient(a event.Action) error {
	geom, err := d.conn.GetGeometry(a.Window)
	if err != nil {
		return fmt.Errorf("dispatch: map tracked client %d: %w: %v", a.Window, errs.ErrProtocolError, err)
	}

	ws := d.desktop.Current()
	var w *window.Window
	if d.conn.ShouldFloat(a.Window, d.floatClasses) {
		w = window.OutsideLayout(a.Window, window.ClassNormal, geom)
		ws.AddWindowOffLayout(w)
	} else {
		w = window.New(a.Window, window.ClassNormal, geom)
		ws.AddWindowOnLayout(w)
	}
	w.Map()

	if err := d.conn.ChangeWindowAttributes(a.Window, uint32(display.ClientEventMask)); err != nil {
		return fmt.Errorf("dispatch: map tracked client %d: %w: %v", a.Window, errs.ErrProtocolError, err)
	}
	if err := d.conn.MapWindow(a.Window); err != nil {
		return fmt.Errorf("dispatch: map tracked client %d: %w: %v", a.Window, errs.ErrProtocolError, err)
	}
	return nil
}

// handleMapUntrackedClient implements MapUntrackedClient(id): map only,
// never track (e.g. override-redirect windows).
func (d *Dispatcher) handleMapUntrackedClient(a event.Action) error {
	if err := d.conn.MapWindow(a.Window); err != nil {
		return fmt.Errorf("dispatch: map untracked client %d: %w: %v", a.Window, errs.ErrProtocolError, err)
	}
	return nil
}

// handleRemoveClient implements UnmapClient/DestroyClient: both just drop
// the window from whichever workspace holds it. A window not tracked by
// any workspace is a no-op, per the UnknownClient policy in §7.
func (d *Dispatcher) handleRemoveClient(id window.ID) error {
	ws, _ := d.desktop.Retrieve(id)
	if ws == nil {
		return nil
	}
	ws.DelWindow(id)
	return nil
}

// handleConfigureClient implements ConfigureClient(data): a window's own
// ConfigureRequest is honored only while it's off-layout or untracked;
// an on-layout window's geometry is owned by its layout, so the request
// is silently dropped rather than fought over on the next relayout.
func (d *Dispatcher) handleConfigureClient(a event.Action) error {
	cfg := a.Configure
	ws, _ := d.desktop.Retrieve(cfg.ID)
	if ws != nil && ws.HasWindowInLayout(cfg.ID) {
		return nil
	}

	if err := d.conn.ConfigureWindow(cfg.ID, cfg.Geom, d.borderPx); err != nil {
		return fmt.Errorf("dispatch: configure client %d: %w: %v", cfg.ID, errs.ErrProtocolError, err)
	}
	if ws != nil {
		if w := ws.Lookup(cfg.ID); w != nil {
			w.SetGeometry(cfg.Geom)
		}
	}
	return nil
}

// handleRunKeybind implements RunKeybind(kb, id): look up the bound
// callback and invoke it. An unbound key simply does nothing.
func (d *Dispatcher) handleRunKeybind(a event.Action) error {
	action, ok := d.keybinds.Lookup(a.Keybind)
	if !ok {
		return nil
	}
	action()
	return nil
}

// handleRunMousebind implements RunMousebind(mb, id, pt): Press grabs the
// pointer and begins a drag, Release ends it, Motion invokes whichever
// action the held drag bound.
func (d *Dispatcher) handleRunMousebind(a event.Action) error {
	pt := toLogical(a.Point)

	switch a.Mousebind.Kind {
	case bindings.MousePress:
		action, ok := d.mousebinds.Lookup(a.Mousebind)
		if !ok {
			return nil
		}
		if err := d.conn.GrabPointer(); err != nil {
			return fmt.Errorf("dispatch: run mousebind: %w: %v", errs.ErrBindingError, err)
		}
		d.mousebinds.BeginDrag(a.Mousebind.Button, action)
		id := a.Window
		d.selected = &id
		d.lastMousePos = pt

	case bindings.MouseRelease:
		d.mousebinds.EndDrag()
		d.selected = nil
		if err := d.conn.UngrabPointer(); err != nil {
			return fmt.Errorf("dispatch: run mousebind: %w: %v", errs.ErrBindingError, err)
		}

	case bindings.MouseMotion:
		if fn, ok := d.mousebinds.HeldAction(); ok {
			fn(pt)
		}
	}
	return nil
}

// handleClientToWorkspace implements ClientToWorkspace(id, idx): resolve
// the workspace at idx and defer to Desktop.SendWindowTo.
func (d *Dispatcher) handleClientToWorkspace(a event.Action) error {
	ws, ok := d.desktop.Get(a.WorkspaceIdx)
	if !ok {
		return fmt.Errorf("dispatch: client to workspace: %w: index %d", desktop.ErrUnknownWorkspace, a.WorkspaceIdx)
	}
	if err := d.desktop.SendWindowTo(a.Window, ws.Name()); err != nil {
		return fmt.Errorf("dispatch: client to workspace: %w", err)
	}
	return nil
}

// handleToggleClientFullscreen implements ToggleClientFullscreen: applies
// the requested fullscreen state (from _NET_WM_STATE), reflects it back
// via _NET_WM_STATE, and relayouts.
func (d *Dispatcher) handleToggleClientFullscreen(a event.Action) error {
	ws, _ := d.desktop.Retrieve(a.Window)
	if ws == nil {
		return nil
	}
	w := ws.Lookup(a.Window)
	if w == nil {
		return nil
	}
	if w.IsFullscreen() != a.Fullscreen {
		w.ToggleFullscreen()
	}
	d.syncNetWMState(a.Window, w)
	ws.Relayout()
	return nil
}

// handleToggleUrgency implements ToggleUrgency: flips the window's
// urgency flag and re-syncs _NET_WM_STATE, which carries only the
// fullscreen state, so the urgency flag is not reflected there.
func (d *Dispatcher) handleToggleUrgency(a event.Action) error {
	ws, _ := d.desktop.Retrieve(a.Window)
	if ws == nil {
		return nil
	}
	w := ws.Lookup(a.Window)
	if w == nil {
		return nil
	}
	w.ToggleUrgent()
	d.syncNetWMState(a.Window, w)
	return nil
}

// syncNetWMState reflects w's fullscreen state into _NET_WM_STATE per
// §6.4. Urgency has no corresponding EWMH state atom in this core's atom
// table, so it isn't reflected here; WM_HINTS itself (set by whichever
// client raised it) remains the source of truth for urgency.
func (d *Dispatcher) syncNetWMState(id window.ID, w *window.Window) {
	var atoms []string
	if w.IsFullscreen() {
		atoms = append(atoms, string(display.AtomNetWMStateFullscreen))
	}
	prop := display.Property{Kind: display.PropAtom, Atoms: atoms}
	if err := d.conn.SetProperty(id, display.AtomNetWMState, prop); err != nil && d.log != nil {
		d.log.WithError(err).WithField("window", id).Warn("dispatch: failed to sync _NET_WM_STATE")
	}
}

// handleMoveClientFocus implements MoveClientFocus(id): focuses the
// window within its workspace and gives it input focus on the connector.
func (d *Dispatcher) handleMoveClientFocus(a event.Action) error {
	ws, _ := d.desktop.Retrieve(a.Window)
	if ws == nil {
		return nil
	}
	ws.FocusWindow(a.Window)
	if err := d.conn.SetInputFocus(a.Window); err != nil {
		return fmt.Errorf("dispatch: move client focus %d: %w: %v", a.Window, errs.ErrProtocolError, err)
	}
	return nil
}

// handleScreenReconfigure implements ScreenReconfigure: re-query outputs,
// re-bind workspaces, relayout all active workspaces (via Desktop.Reconfigure).
func (d *Dispatcher) handleScreenReconfigure() error {
	outs, err := d.conn.AllOutputs()
	if err != nil {
		return fmt.Errorf("dispatch: screen reconfigure: %w: %v", errs.ErrProtocolError, err)
	}
	screens := make([]*desktop.Screen, len(outs))
	for i, o := range outs {
		screens[i] = desktop.NewScreen(o.Name, i, o.Geom)
	}
	d.desktop.Reconfigure(screens)
	return nil
}

// handleSetFocusedScreen implements SetFocusedScreen(pt): resolve pt to a
// monitor, recording it for subsequent output-targeted bindings.
func (d *Dispatcher) handleSetFocusedScreen(a event.Action) error {
	if !a.HasPoint {
		return nil
	}
	handle, err := desktop.PointToScreen(d.desktop.Screens(), toLogical(a.Point))
	if err != nil {
		return fmt.Errorf("dispatch: set focused screen: %w", err)
	}
	d.focusedScreen = handle
	return nil
}
