// Package desktop multiplexes workspaces onto outputs: Screen tracks one
// monitor's true and effective (border/panel-trimmed) geometry, and Desktop
// holds the ring of workspaces plus the operations that move windows and
// focus between them and between outputs.
package desktop

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/ring"
	"github.com/patrislav/marwind/window"
	"github.com/patrislav/marwind/workspace"
)

// QueryPointer resolves a window under the pointer, if any; passed through
// to workspace.Workspace.Activate when no window was already focused.
type QueryPointer func() (window.ID, bool)

// Screen describes one output: its name, true geometry as reported by the
// display backend, and effective geometry after reserving space for bars or
// other chrome. Screens are addressed by index within a Desktop's output
// list; workspace.MonitorHandle values are those indices.
type Screen struct {
	name      string
	idx       int
	trueGeom  geometry.Rectangle[int, geometry.Logical]
	effective geometry.Rectangle[int, geometry.Logical]
}

// NewScreen constructs a Screen with its effective geometry initially equal
// to its true geometry.
func NewScreen(name string, idx int, trueGeom geometry.Rectangle[int, geometry.Logical]) *Screen {
	return &Screen{name: name, idx: idx, trueGeom: trueGeom, effective: trueGeom}
}

// Name returns the screen's name (typically the output's connector name).
func (s *Screen) Name() string { return s.name }

// Idx returns the screen's index within its Desktop's output list.
func (s *Screen) Idx() int { return s.idx }

// TrueGeom returns the screen's full, untrimmed geometry.
func (s *Screen) TrueGeom() geometry.Rectangle[int, geometry.Logical] { return s.trueGeom }

// EffectiveGeom returns the screen's geometry after reserved space is
// trimmed; this is what workspaces lay out windows against.
func (s *Screen) EffectiveGeom() geometry.Rectangle[int, geometry.Logical] { return s.effective }

// SetEffective overwrites the screen's effective geometry directly.
func (s *Screen) SetEffective(geom geometry.Rectangle[int, geometry.Logical]) { s.effective = geom }

// UpdateEffective recomputes effective geometry by trimming amount pixels
// from trueGeom in the given direction (e.g. reserving a status bar's
// height at the top).
func (s *Screen) UpdateEffective(dir geometry.Cardinal, amount int) {
	s.effective = s.trueGeom.Trim(amount, dir)
}

// UpdateTrue replaces the screen's true geometry (e.g. on a RandR
// reconfigure), resetting effective geometry to match until re-trimmed.
func (s *Screen) UpdateTrue(trueGeom geometry.Rectangle[int, geometry.Logical]) {
	s.trueGeom = trueGeom
	s.effective = trueGeom
}

// Desktop multiplexes a ring of workspaces onto a set of screens. Each
// screen shows at most one workspace at a time; which workspace that is per
// screen is tracked on workspace.Workspace itself via Activate/Deactivate,
// not here. Desktop additionally tracks one "current" workspace, the target
// of keybind-driven operations like CycleTo/SendFocusedTo.
type Desktop struct {
	log logrus.FieldLogger

	workspaces *ring.Ring[*workspace.Workspace]
	screens    []*Screen
}

// New constructs a Desktop from an already-built, non-empty set of
// workspaces, focused on the first one. A caller assembling workspaces from
// configuration is responsible for surfacing InvalidConfig before reaching
// here if the list would be empty; Desktop itself has no use for an empty
// ring since spec.md requires at least one workspace to exist.
func New(log logrus.FieldLogger, workspaces []*workspace.Workspace, screens []*Screen) *Desktop {
	r := ring.FromSlice(workspaces)
	if !r.IsEmpty() {
		r.SetFocused(0)
	}
	return &Desktop{log: log, workspaces: r, screens: screens}
}

// Screens returns the desktop's screen list, indexed by
// workspace.MonitorHandle.
func (d *Desktop) Screens() []*Screen { return d.screens }

// ScreenFor resolves a MonitorHandle to its Screen, if valid.
func (d *Desktop) ScreenFor(handle workspace.MonitorHandle) (*Screen, bool) {
	idx := int(handle)
	if idx < 0 || idx >= len(d.screens) {
		return nil, false
	}
	return d.screens[idx], true
}

// IsManaging reports whether id belongs to any workspace on the desktop.
func (d *Desktop) IsManaging(id window.ID) bool {
	_, ok := d.Retrieve(id)
	return ok
}

// CurrentIdx returns the index of the current workspace in the ring.
func (d *Desktop) CurrentIdx() (int, bool) { return d.workspaces.FocusedIdx() }

// Current returns the current workspace. Panics if unset, a broken
// invariant: a Desktop built from a non-empty workspace list always keeps a
// focused element once constructed.
func (d *Desktop) Current() *workspace.Workspace {
	ws := d.workspaces.Focused()
	if ws == nil {
		panic("desktop: no current workspace")
	}
	return *ws
}

// CurrentName returns the current workspace's name.
func (d *Desktop) CurrentName() string { return d.Current().Name() }

// CurrentLayout returns the current workspace's active layout name.
func (d *Desktop) CurrentLayout() string { return d.Current().Layout() }

// CurrentClient returns the current workspace's focused window, if any.
func (d *Desktop) CurrentClient() *window.Window { return d.Current().Focused() }

// Retrieve locates the workspace and tiling-ring index containing id, if
// any workspace on this desktop manages it.
func (d *Desktop) Retrieve(id window.ID) (*workspace.Workspace, int) {
	var found *workspace.Workspace
	idx := -1
	d.workspaces.Iter(func(_ int, ws *workspace.Workspace) bool {
		if i, ok := ws.Contains(id); ok {
			found, idx = ws, i
			return false
		}
		return true
	})
	return found, idx
}

// Get returns the workspace at idx within the ring, if in bounds.
func (d *Desktop) Get(idx int) (*workspace.Workspace, bool) {
	ws := d.workspaces.Get(idx)
	if ws == nil {
		return nil, false
	}
	return *ws, true
}

// Find returns the workspace named name, if any.
func (d *Desktop) Find(name string) (*workspace.Workspace, bool) {
	_, ws := d.workspaces.ElementBy(func(w *workspace.Workspace) bool { return w.Name() == name })
	if ws == nil {
		return nil, false
	}
	return *ws, true
}

func (d *Desktop) setCurrent(idx int) { d.workspaces.SetFocused(idx) }

// Reconfigure replaces the desktop's screen list, e.g. after a RandR
// change, and re-binds every active workspace: a workspace whose output
// index is still valid is re-activated against the new geometry
// (relaying out in the process); one whose output vanished is
// deactivated, the way ScreenReconfigure's "re-bind workspaces" step is
// described.
func (d *Desktop) Reconfigure(screens []*Screen) {
	d.screens = screens
	d.workspaces.Iter(func(_ int, ws *workspace.Workspace) bool {
		out, ok := ws.Output()
		if !ok {
			return true
		}
		if scr, ok := d.ScreenFor(out); ok {
			ws.Activate(out, scr.EffectiveGeom(), nil)
		} else {
			ws.Deactivate()
		}
		return true
	})
}

// GoTo switches the current workspace to name, activating it on output and
// deactivating whichever workspace output was previously showing. Returns
// an error wrapping ErrUnknownWorkspace if no workspace with that name
// exists; state is left unchanged in that case.
func (d *Desktop) GoTo(name string, output workspace.MonitorHandle, qp QueryPointer) error {
	idx, ws := d.workspaces.ElementBy(func(w *workspace.Workspace) bool { return w.Name() == name })
	if ws == nil {
		return fmt.Errorf("desktop: %w: %q", ErrUnknownWorkspace, name)
	}
	target := *ws

	if cur, ok := d.CurrentIdx(); ok && cur == idx && target.IsActive() {
		return nil
	}

	if scr, ok := d.ScreenFor(output); ok {
		if prevWs, found := d.findOnOutput(output); found && prevWs != target {
			prevWs.Deactivate()
		}
		target.Activate(output, scr.EffectiveGeom(), qp)
	}

	d.setCurrent(idx)
	return nil
}

func (d *Desktop) findOnOutput(output workspace.MonitorHandle) (*workspace.Workspace, bool) {
	var found *workspace.Workspace
	d.workspaces.Iter(func(_ int, ws *workspace.Workspace) bool {
		if out, ok := ws.Output(); ok && out == output {
			found = ws
			return false
		}
		return true
	})
	return found, found != nil
}

// CycleTo moves the current-workspace focus by one in dir within the
// desktop's own ring, then activates the newly current workspace on
// output via GoTo, once the ring has moved.
func (d *Desktop) CycleTo(dir workspace.Direction, output workspace.MonitorHandle, qp QueryPointer) error {
	d.workspaces.CycleFocus(dir.ToRing())
	return d.GoTo(d.Current().Name(), output, qp)
}

// SendWindowTo moves id out of whichever workspace currently holds it and
// into the workspace named name, preserving focus behavior: if the target
// had no focused window, the moved window takes focus. If name doesn't
// resolve, the window is left exactly where it was and an error wrapping
// ErrUnknownWorkspace is returned. If id isn't managed by any workspace, the
// call is a no-op wrapping ErrUnknownClient.
func (d *Desktop) SendWindowTo(id window.ID, name string) error {
	src, _ := d.Retrieve(id)
	if src == nil {
		return fmt.Errorf("desktop: %w: %d", ErrUnknownClient, id)
	}

	target, ok := d.Find(name)
	if !ok {
		return fmt.Errorf("desktop: %w: %q", ErrUnknownWorkspace, name)
	}
	if target == src {
		return nil
	}

	w, ok := src.TakeWindow(id)
	if !ok {
		return nil
	}

	target.PutWindow(w)
	if target.Focused() == nil {
		target.FocusWindow(w.ID())
	}
	if target.IsActive() {
		target.Relayout()
	}
	if src.IsActive() {
		src.Relayout()
	}
	return nil
}

// SendFocusedTo sends the current workspace's focused window to the
// workspace named name. No-op if nothing is focused.
func (d *Desktop) SendFocusedTo(name string) error {
	f := d.Current().Focused()
	if f == nil {
		return nil
	}
	return d.SendWindowTo(f.ID(), name)
}
