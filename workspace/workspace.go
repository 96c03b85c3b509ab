// Package workspace groups windows under a name and a ring of layouts,
// tracking both tiling order (via window.WindowRing) and stacking order
// (via window.FocusStack), and multiplexing them onto an output.
package workspace

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/layout"
	"github.com/patrislav/marwind/window"
)

// MonitorHandle is an opaque reference to an output a workspace may be
// displayed on. The desktop package owns the registry handles resolve
// against; workspace never looks inside one.
type MonitorHandle int

// Spec describes a workspace to be constructed from configuration: a
// name and the names of the layouts (resolved against an existing
// layout.Ring) it should cycle through.
type Spec struct {
	Name    string
	Layouts []string
}

// Workspace is a named group of windows arranged by one of several
// layouts. At most one MonitorHandle is associated with a Workspace at a
// time; see Activate/Deactivate.
type Workspace struct {
	log logrus.FieldLogger

	name    string
	windows *window.WindowRing
	focuses *window.FocusStack
	layouts *layout.Ring

	output      *MonitorHandle
	screenGeom  geometry.Rectangle[int, geometry.Logical]
	borderPx    uint32
}

// New constructs an empty, inactive Workspace with the given layouts.
func New(log logrus.FieldLogger, name string, layouts *layout.Ring, borderPx uint32) *Workspace {
	return &Workspace{
		log:      log,
		name:     name,
		windows:  window.NewWindowRing(),
		focuses:  window.NewFocusStack(),
		layouts:  layouts,
		borderPx: borderPx,
	}
}

// FromSpec builds a Workspace from spec, resolving its named layouts
// against the available set. Returns an error if a named layout can't be
// found or if the resulting set fails layout.NewRing's invariants.
func FromSpec(log logrus.FieldLogger, spec Spec, available *layout.Ring, borderPx uint32) (*Workspace, error) {
	var layouts []layout.Layout
	for _, name := range spec.Layouts {
		idx, ok := available.ElementByName(name)
		if !ok {
			return nil, fmt.Errorf("workspace %q: unknown layout %q", spec.Name, name)
		}
		layouts = append(layouts, available.Ring().Items()[idx])
	}
	lr, err := layout.NewRing(layouts)
	if err != nil {
		return nil, fmt.Errorf("workspace %q: %w", spec.Name, err)
	}
	return New(log, spec.Name, lr, borderPx), nil
}

// Name returns the workspace's name.
func (ws *Workspace) Name() string { return ws.name }

// IsActive reports whether the workspace is currently displayed on an
// output.
func (ws *Workspace) IsActive() bool { return ws.output != nil }

// Output returns the workspace's current output handle, if active.
func (ws *Workspace) Output() (MonitorHandle, bool) {
	if ws.output == nil {
		return 0, false
	}
	return *ws.output, true
}

// SetLayout switches to the layout named name and re-runs it. No-op if no
// such layout exists.
func (ws *Workspace) SetLayout(name string) {
	idx, ok := ws.layouts.ElementByName(name)
	if !ok {
		if ws.log != nil {
			ws.log.WithField("layout", name).Warn("no layout with this name")
		}
		return
	}
	ws.layouts.Ring().SetFocused(idx)
	ws.Relayout()
}

// CycleLayout moves to the next layout in dir and re-runs it.
func (ws *Workspace) CycleLayout(dir Direction) {
	ws.layouts.Ring().CycleFocus(dir.toRingDirection())
	ws.Relayout()
}

// ContainsWindow reports whether id is in this workspace.
func (ws *Workspace) ContainsWindow(id window.ID) bool { return ws.windows.Contains(id) }

// Lookup returns the window with id, if present in this workspace.
func (ws *Workspace) Lookup(id window.ID) *window.Window { return ws.windows.Lookup(id) }

// Contains returns the index of id in the tiling ring, if present.
func (ws *Workspace) Contains(id window.ID) (int, bool) { return ws.windows.GetIdx(id) }

// Focused returns the currently focused window, if any.
func (ws *Workspace) Focused() *window.Window {
	f := ws.windows.Ring().Focused()
	if f == nil {
		return nil
	}
	return *f
}

// Windows returns all windows in tiling-ring order.
func (ws *Workspace) Windows() []*window.Window { return ws.windows.Ring().Items() }

// WindowsInLayout returns only the on-layout windows, in tiling-ring
// order.
func (ws *Workspace) WindowsInLayout() []*window.Window {
	var out []*window.Window
	for _, w := range ws.windows.Ring().Items() {
		if !w.IsOffLayout() {
			out = append(out, w)
		}
	}
	return out
}

// WindowsOffLayout returns only the off-layout (floating) windows, in
// tiling-ring order.
func (ws *Workspace) WindowsOffLayout() []*window.Window {
	var out []*window.Window
	for _, w := range ws.windows.Ring().Items() {
		if w.IsOffLayout() {
			out = append(out, w)
		}
	}
	return out
}

// IsEmpty reports whether the workspace holds no windows.
func (ws *Workspace) IsEmpty() bool { return ws.windows.Ring().IsEmpty() }

// IsTiling reports whether the workspace's current layout is Tiled.
func (ws *Workspace) IsTiling() bool { return !ws.IsFloating() }

// IsFloating reports whether the workspace's current layout is Floating.
func (ws *Workspace) IsFloating() bool { return ws.layouts.Focused().Style().IsFloating() }

// Layout returns the name of the workspace's current layout. Panics if no
// layout is focused, which is a broken invariant rather than a runtime
// condition: layout.NewRing always focuses one and nothing clears it.
func (ws *Workspace) Layout() string { return ws.layouts.Focused().Name() }

// LayoutRing exposes the workspace's layout ring, e.g. to cycle focus.
func (ws *Workspace) LayoutRing() *layout.Ring { return ws.layouts }

// Activate maps all windows, associates output and screenGeom with the
// workspace, and re-runs the layout. If a window was already focused it
// keeps focus; otherwise queryPointer (if non-nil) is consulted to decide
// whether a window under the pointer should take focus instead. Returns
// the workspace's previous output, if any.
func (ws *Workspace) Activate(output MonitorHandle, screenGeom geometry.Rectangle[int, geometry.Logical], queryPointer func() (window.ID, bool)) (MonitorHandle, bool) {
	prev, hadPrev := ws.Output()
	ws.screenGeom = screenGeom

	if ws.windows.Ring().IsEmpty() {
		ws.output = &output
		return prev, hadPrev
	}

	for _, w := range ws.windows.Ring().Items() {
		w.Map()
	}

	ws.output = &output
	ws.Relayout()

	if f := ws.Focused(); f != nil {
		ws.FocusWindow(f.ID())
	} else if queryPointer != nil {
		if id, ok := queryPointer(); ok {
			ws.FocusWindow(id)
		}
	}

	return prev, hadPrev
}

// Deactivate unmaps all windows and releases the workspace's output
// handle. Panics if the workspace is not active: deactivating an
// inactive workspace is a programmer error, not a runtime condition.
func (ws *Workspace) Deactivate() MonitorHandle {
	for _, w := range ws.windows.Ring().Items() {
		w.Unmap()
	}
	if ws.output == nil {
		panic("workspace: cannot deactivate a workspace with no active output")
	}
	out := *ws.output
	ws.output = nil
	return out
}

// TakeOutput releases the workspace's output handle without unmapping
// windows, returning it if present.
func (ws *Workspace) TakeOutput() (MonitorHandle, bool) {
	if ws.output == nil {
		return 0, false
	}
	out := *ws.output
	ws.output = nil
	return out, true
}

// Relayout re-runs the focused layout and applies its actions. No-op if
// the workspace is inactive: running a layout against an output with no
// screen geometry would produce meaningless results.
func (ws *Workspace) Relayout() {
	if !ws.IsActive() {
		return
	}
	actions := ws.layouts.Generate(layout.Ctxt{
		Workspace:  workspaceView{ws},
		ScreenGeom: ws.screenGeom,
		BorderPx:   ws.borderPx,
	})
	ws.applyLayout(actions)
}

func (ws *Workspace) applyLayout(actions []layout.Action) {
	for _, a := range actions {
		switch a.Kind {
		case layout.ActionResize:
			if w := ws.windows.Lookup(a.ID); w != nil {
				w.SetGeometry(a.Geom)
			}
		case layout.ActionStackOnTop:
			ws.focuses.BubbleToTop(ws.log, a.ID, ws.windows)
		case layout.ActionRemove:
			if w := ws.windows.Lookup(a.ID); w != nil {
				w.SetOffLayout()
			}
		}
	}
}

// AddWindowOnLayout appends w to the workspace, on-layout, and relays out.
func (ws *Workspace) AddWindowOnLayout(w *window.Window) {
	w.SetOnLayout()
	ws.addWindow(w)
}

// AddWindowOffLayout appends w to the workspace, off-layout (floating),
// and relays out.
func (ws *Workspace) AddWindowOffLayout(w *window.Window) {
	w.SetOffLayout()
	ws.addWindow(w)
}

func (ws *Workspace) addWindow(w *window.Window) {
	ws.windows.Append(w)
	ws.focuses.AddByLayoutStatus(ws.log, w.ID(), ws.windows)
	ws.Relayout()
}

// DelWindow removes and returns the window with id, relaying out only if
// it was on-layout.
func (ws *Workspace) DelWindow(id window.ID) (*window.Window, bool) {
	w := ws.windows.Lookup(id)
	if w == nil {
		if ws.log != nil {
			ws.log.WithField("window", id).Warn("no window with this id found")
		}
		return nil, false
	}
	onLayout := !w.IsOffLayout()
	return ws.delWindow(id, onLayout)
}

// DelFocusedWindow removes and returns the currently focused window, if
// any.
func (ws *Workspace) DelFocusedWindow() (*window.Window, bool) {
	f := ws.Focused()
	if f == nil {
		return nil, false
	}
	return ws.DelWindow(f.ID())
}

func (ws *Workspace) delWindow(id window.ID, onLayout bool) (*window.Window, bool) {
	w, ok := ws.windows.RemoveByID(id)
	if !ok {
		return nil, false
	}
	ws.focuses.RemoveByID(id)
	if onLayout {
		ws.Relayout()
	}
	return w, true
}

// TakeWindow removes and returns the window with id directly, without
// re-running the layout. Used for cross-workspace moves.
func (ws *Workspace) TakeWindow(id window.ID) (*window.Window, bool) {
	return ws.windows.RemoveByID(id)
}

// TakeFocusedWindow removes and returns the focused window directly,
// without re-running the layout.
func (ws *Workspace) TakeFocusedWindow() (*window.Window, bool) {
	f := ws.Focused()
	if f == nil {
		return nil, false
	}
	return ws.TakeWindow(f.ID())
}

// PutWindow pushes w into the workspace directly, without re-running the
// layout. Used for cross-workspace moves, paired with TakeWindow on the
// source.
func (ws *Workspace) PutWindow(w *window.Window) {
	id := w.ID()
	ws.windows.Ring().Push(w)
	ws.focuses.AddByLayoutStatus(ws.log, id, ws.windows)
}

// FocusWindow focuses the window with id. No-op (with a warning) if not
// present.
func (ws *Workspace) FocusWindow(id window.ID) {
	if _, ok := ws.windows.GetIdx(id); !ok {
		if ws.log != nil {
			ws.log.WithField("window", id).Warn("focus_window: no window found in workspace")
		}
		return
	}
	ws.windows.SetFocusedByID(ws.log, id)
}

// CycleFocus moves focus to the next window in dir. No-op if nothing is
// currently focused.
func (ws *Workspace) CycleFocus(dir Direction) {
	if ws.Focused() == nil {
		if ws.log != nil {
			ws.log.WithField("workspace", ws.name).Error("cycle_focus: nothing focused")
		}
		return
	}
	ws.windows.Ring().CycleFocus(dir.toRingDirection())
}

// ToggleFocusedFullscreen toggles fullscreen on the focused window.
func (ws *Workspace) ToggleFocusedFullscreen() {
	if f := ws.Focused(); f != nil {
		f.ToggleFullscreen()
	}
}

// ToggleFocusedState toggles the focused window between on- and
// off-layout.
func (ws *Workspace) ToggleFocusedState() {
	f := ws.Focused()
	if f == nil {
		return
	}
	if f.IsOffLayout() {
		ws.AddToLayout(f.ID())
	} else {
		ws.RemoveFromLayout(f.ID())
	}
}

// AddToLayout marks id on-layout, bubbles its stacking position, and
// relays out.
func (ws *Workspace) AddToLayout(id window.ID) {
	w := ws.windows.Lookup(id)
	if w == nil {
		return
	}
	w.SetOnLayout()
	ws.focuses.BubbleToTop(ws.log, id, ws.windows)
	ws.Relayout()
}

// RemoveFromLayout marks id off-layout (floating), bubbles it to the top
// of the stack, and relays out.
func (ws *Workspace) RemoveFromLayout(id window.ID) {
	w := ws.windows.Lookup(id)
	if w == nil {
		return
	}
	w.SetOffLayout()
	ws.focuses.BubbleToTop(ws.log, id, ws.windows)
	ws.Relayout()
}

// UpdateFocusedLayout sends msg to the focused layout and re-runs it.
func (ws *Workspace) UpdateFocusedLayout(msg any) {
	ws.layouts.SendUpdate(msg)
	ws.Relayout()
}

// HasWindowInLayout reports whether id is currently on-layout.
func (ws *Workspace) HasWindowInLayout(id window.ID) bool {
	w := ws.windows.Lookup(id)
	return w != nil && !w.IsOffLayout()
}

// ManagedCount returns the number of on-layout (tiled) windows.
func (ws *Workspace) ManagedCount() int { return len(ws.WindowsInLayout()) }

// FloatingCount returns the number of off-layout (floating) windows.
func (ws *Workspace) FloatingCount() int { return len(ws.WindowsOffLayout()) }

// workspaceView adapts *Workspace to layout.WorkspaceView without
// exposing the whole Workspace API to layouts.
type workspaceView struct{ ws *Workspace }

func (v workspaceView) ManagedCount() int { return v.ws.ManagedCount() }

func (v workspaceView) FirstInLayout() (window.ID, bool) {
	inLayout := v.ws.WindowsInLayout()
	if len(inLayout) == 0 {
		return 0, false
	}
	return inLayout[0].ID(), true
}

func (v workspaceView) HasWindowInLayout(id window.ID) bool { return v.ws.HasWindowInLayout(id) }

func (v workspaceView) InLayoutIDs() []window.ID {
	inLayout := v.ws.WindowsInLayout()
	ids := make([]window.ID, len(inLayout))
	for i, w := range inLayout {
		ids[i] = w.ID()
	}
	return ids
}
