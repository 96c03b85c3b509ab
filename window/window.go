// Package window holds the per-window state tracked by the core: its
// geometry, mapping and layout status, and the ordering rings built on top
// of it (WindowRing for tiling order, FocusStack for stacking order).
package window

import (
	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/ring"
)

// ID identifies a window as tracked by the display backend (an X11 XID or
// a Wayland surface handle).
type ID uint32

// Class classifies a window's type, used to decide whether it should float
// regardless of the active layout.
type Class int

const (
	ClassNormal Class = iota
	ClassDock
	ClassDialog
	ClassToolbar
	ClassNotification
)

// ShouldFloat reports whether windows of this class float by default,
// independent of any float-class-name list in configuration.
func (c Class) ShouldFloat() bool {
	switch c {
	case ClassDialog, ClassToolbar, ClassNotification:
		return true
	default:
		return false
	}
}

// Window is a single managed window: its identity, geometry, and status
// flags.
type Window struct {
	id    ID
	class Class

	geom        geometry.Rectangle[int, geometry.Logical]
	initialGeom geometry.Rectangle[int, geometry.Logical]

	urgent       bool
	fullscreen   bool
	insideLayout bool
	mapped       bool
}

// New constructs a Window tracking id with the given initial geometry and
// class. It starts unmapped and inside the layout.
func New(id ID, class Class, geom geometry.Rectangle[int, geometry.Logical]) *Window {
	return &Window{
		id:           id,
		class:        class,
		geom:         geom,
		initialGeom:  geom,
		insideLayout: true,
	}
}

// OutsideLayout constructs a Window that starts outside the layout (e.g.
// a dialog that should float on appearance).
func OutsideLayout(id ID, class Class, geom geometry.Rectangle[int, geometry.Logical]) *Window {
	w := New(id, class, geom)
	w.insideLayout = false
	return w
}

// ID returns the window's identity.
func (w *Window) ID() ID { return w.id }

// Class returns the window's type classification.
func (w *Window) Class() Class { return w.class }

// X returns the window's current x coordinate.
func (w *Window) X() int { return w.geom.Point.X }

// Y returns the window's current y coordinate.
func (w *Window) Y() int { return w.geom.Point.Y }

// Height returns the window's current height.
func (w *Window) Height() int { return w.geom.Size.Height }

// Width returns the window's current width.
func (w *Window) Width() int { return w.geom.Size.Width }

// Geometry returns the window's current geometry.
func (w *Window) Geometry() geometry.Rectangle[int, geometry.Logical] { return w.geom }

// SetGeometry replaces the window's current geometry.
func (w *Window) SetGeometry(geom geometry.Rectangle[int, geometry.Logical]) { w.geom = geom }

// InitialGeometry returns the geometry requested by the window's own
// program at creation time, preserved for restoring from fullscreen/tiled
// state.
func (w *Window) InitialGeometry() geometry.Rectangle[int, geometry.Logical] { return w.initialGeom }

// IsUrgent reports whether the window's urgency hint is set.
func (w *Window) IsUrgent() bool { return w.urgent }

// ToggleUrgent flips the window's urgency hint.
func (w *Window) ToggleUrgent() { w.urgent = !w.urgent }

// IsFullscreen reports whether the window is fullscreen.
func (w *Window) IsFullscreen() bool { return w.fullscreen }

// ToggleFullscreen flips the window's fullscreen state.
func (w *Window) ToggleFullscreen() { w.fullscreen = !w.fullscreen }

// IsMapped reports whether the window is currently mapped (visible).
func (w *Window) IsMapped() bool { return w.mapped }

// Map marks the window mapped. No-op if already mapped.
func (w *Window) Map() {
	if !w.mapped {
		w.mapped = true
	}
}

// Unmap marks the window unmapped. No-op if already unmapped.
func (w *Window) Unmap() {
	if w.mapped {
		w.mapped = false
	}
}

// IsOffLayout reports whether the window sits outside the active layout
// (i.e. is floating).
func (w *Window) IsOffLayout() bool { return !w.insideLayout }

// SetOffLayout marks the window as floating, outside the layout.
func (w *Window) SetOffLayout() { w.insideLayout = false }

// SetOnLayout marks the window as tiled, inside the layout.
func (w *Window) SetOnLayout() { w.insideLayout = true }

// WindowRing is a Ring[*Window] with lookups keyed by window ID. Its
// focused element is the window with input focus.
type WindowRing struct {
	r *ring.Ring[*Window]
}

// NewWindowRing constructs an empty WindowRing.
func NewWindowRing() *WindowRing {
	return &WindowRing{r: ring.New[*Window]()}
}

// Ring exposes the underlying Ring for generic operations (Len, Items,
// CycleFocus, etc.).
func (wr *WindowRing) Ring() *ring.Ring[*Window] { return wr.r }

// AddAtIndex inserts w at idx.
func (wr *WindowRing) AddAtIndex(idx int, w *Window) {
	wr.r.Insert(ring.AtIndex(idx), w)
}

// Append inserts w at the back.
func (wr *WindowRing) Append(w *Window) { wr.r.Append(w) }

// GetIdx returns the index of the window with id, if present.
func (wr *WindowRing) GetIdx(id ID) (int, bool) {
	idx, w := wr.r.ElementBy(func(w *Window) bool { return w.ID() == id })
	return idx, w != nil
}

// RemoveByID removes and returns the window with id, if present.
func (wr *WindowRing) RemoveByID(id ID) (*Window, bool) {
	idx, ok := wr.GetIdx(id)
	if !ok {
		return nil, false
	}
	return wr.r.Remove(idx)
}

// Lookup returns the window with id, if present.
func (wr *WindowRing) Lookup(id ID) *Window {
	idx, ok := wr.GetIdx(id)
	if !ok {
		return nil
	}
	return *wr.r.Get(idx)
}

// Contains reports whether a window with id is present.
func (wr *WindowRing) Contains(id ID) bool {
	_, ok := wr.GetIdx(id)
	return ok
}

// SetFocusedByID focuses the window with id. Logs and no-ops if not found.
func (wr *WindowRing) SetFocusedByID(log logrus.FieldLogger, id ID) {
	idx, ok := wr.GetIdx(id)
	if !ok {
		if log != nil {
			log.WithField("window", id).Warn("tried to focus a window not in the workspace")
		}
		return
	}
	wr.r.SetFocused(idx)
}

// IsFocused reports whether the window with id currently holds focus.
func (wr *WindowRing) IsFocused(id ID) bool {
	f := wr.r.Focused()
	return f != nil && (*f).ID() == id
}

// FocusStack tracks stacking order, keeping off-layout (floating) windows
// above on-layout (tiled) windows. Its focused element is the currently
// focused window ID.
type FocusStack struct {
	r *ring.Ring[ID]
}

// NewFocusStack constructs an empty FocusStack.
func NewFocusStack() *FocusStack {
	return &FocusStack{r: ring.New[ID]()}
}

// Ring exposes the underlying Ring for generic operations.
func (fs *FocusStack) Ring() *ring.Ring[ID] { return fs.r }

// AddByLayoutStatus inserts id at the front if the window is off-layout, or
// at the partition boundary (first on-layout slot) if on-layout, so that
// the stack stays partitioned off-layout-then-on-layout.
func (fs *FocusStack) AddByLayoutStatus(log logrus.FieldLogger, id ID, windows *WindowRing) {
	w := windows.Lookup(id)
	if w == nil {
		if log != nil {
			log.WithField("window", id).Warn("could not find window in window ring")
		}
		return
	}
	if w.IsOffLayout() {
		fs.r.Push(id)
	} else {
		idx := fs.PartitionIdx(windows)
		if idx >= fs.r.Len() {
			fs.r.Append(id)
		} else {
			fs.r.Insert(ring.AtIndex(idx), id)
		}
	}
}

// SetFocusedByID focuses the given id. Logs and no-ops if not found.
func (fs *FocusStack) SetFocusedByID(log logrus.FieldLogger, id ID) {
	if idx, ok := fs.GetIdx(id); ok {
		fs.r.SetFocused(idx)
	} else if log != nil {
		log.WithField("window", id).Warn("no window with this id found")
	}
}

// RemoveByID removes id from the stack, if present.
func (fs *FocusStack) RemoveByID(id ID) (ID, bool) {
	idx, ok := fs.GetIdx(id)
	if !ok {
		return 0, false
	}
	return fs.r.Remove(idx)
}

// GetIdx returns the index of id in the stack, if present.
func (fs *FocusStack) GetIdx(id ID) (int, bool) {
	idx, w := fs.r.ElementBy(func(v ID) bool { return v == id })
	return idx, w != nil
}

// OnLayout returns the IDs in the stack whose windows are currently on
// layout, in stack order.
func (fs *FocusStack) OnLayout(windows *WindowRing) []ID {
	var out []ID
	fs.r.Iter(func(_ int, id ID) bool {
		if w := windows.Lookup(id); w != nil && !w.IsOffLayout() {
			out = append(out, id)
		}
		return true
	})
	return out
}

// OffLayout returns the IDs in the stack whose windows are currently off
// layout, in stack order.
func (fs *FocusStack) OffLayout(windows *WindowRing) []ID {
	var out []ID
	fs.r.Iter(func(_ int, id ID) bool {
		if w := windows.Lookup(id); w != nil && w.IsOffLayout() {
			out = append(out, id)
		}
		return true
	})
	return out
}

// BubbleToTop moves id to the top of its respective partition: the front
// of the stack if off-layout, or the first on-layout slot if on-layout.
func (fs *FocusStack) BubbleToTop(log logrus.FieldLogger, id ID, windows *WindowRing) {
	if fs.r.IsEmpty() {
		return
	}
	idx, ok := fs.GetIdx(id)
	if !ok {
		if log != nil {
			log.WithField("window", id).Warn("could not find window in window ring")
		}
		return
	}
	w := windows.Lookup(id)
	if w == nil {
		if log != nil {
			log.WithField("window", id).Warn("could not find window in window ring")
		}
		return
	}
	if w.IsOffLayout() {
		fs.r.MoveFront(idx)
	} else {
		nIdx := fs.PartitionIdx(windows)
		fs.r.MoveTo(idx, nIdx)
	}
}

// PartitionIdx returns the index of the first on-layout window in the
// stack. Assumes the stack is already partitioned off-layout-then-on.
func (fs *FocusStack) PartitionIdx(windows *WindowRing) int {
	items := fs.r.Items()
	for i, id := range items {
		if w := windows.Lookup(id); w != nil && !w.IsOffLayout() {
			return i
		}
	}
	return len(items)
}
