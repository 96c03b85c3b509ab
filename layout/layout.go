// Package layout defines the Layout contract workspaces apply to their
// on-layout windows, along with the built-in Floating and DynamicTiled
// implementations.
package layout

import (
	"fmt"

	"github.com/patrislav/marwind/errs"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/ring"
	"github.com/patrislav/marwind/window"
)

// Style names the broad behavior of a Layout.
type Style int

const (
	// Floating layouts leave window placement entirely to the user.
	Floating Style = iota
	// Tiled layouts enforce window positions programmatically.
	Tiled
)

func (s Style) IsFloating() bool { return s == Floating }
func (s Style) IsTiled() bool    { return s == Tiled }

// ActionKind names the kind of change a Layout wants applied to a window.
type ActionKind int

const (
	ActionResize ActionKind = iota
	ActionMap
	ActionUnmap
	ActionStackOnTop
	ActionRemove
)

// Action is one change a Layout wants the owning workspace to apply.
type Action struct {
	Kind ActionKind
	ID   window.ID
	Geom geometry.Rectangle[int, geometry.Logical]
}

// ResizeAction constructs a Resize action.
func ResizeAction(id window.ID, geom geometry.Rectangle[int, geometry.Logical]) Action {
	return Action{Kind: ActionResize, ID: id, Geom: geom}
}

// MapAction constructs a Map action.
func MapAction(id window.ID) Action { return Action{Kind: ActionMap, ID: id} }

// UnmapAction constructs an Unmap action.
func UnmapAction(id window.ID) Action { return Action{Kind: ActionUnmap, ID: id} }

// StackOnTopAction constructs a StackOnTop action.
func StackOnTopAction(id window.ID) Action { return Action{Kind: ActionStackOnTop, ID: id} }

// RemoveAction constructs a Remove action, meaning the window should be
// treated as no longer under the layout's control.
func RemoveAction(id window.ID) Action { return Action{Kind: ActionRemove, ID: id} }

// WorkspaceView is the slice of Workspace behavior a Layout needs to
// compute its policy. Kept as an interface, rather than a direct
// *workspace.Workspace dependency, so layout does not import workspace
// (workspace imports layout for its Layouts ring).
type WorkspaceView interface {
	// ManagedCount returns the number of windows currently on-layout.
	ManagedCount() int
	// FirstInLayout returns the id of the first on-layout window, in
	// tiling-ring order.
	FirstInLayout() (window.ID, bool)
	// HasWindowInLayout reports whether id is currently on-layout.
	HasWindowInLayout(id window.ID) bool
	// InLayoutIDs returns the ids of all on-layout windows, in
	// tiling-ring order.
	InLayoutIDs() []window.ID
}

// Ctxt carries the information a Layout needs to generate its actions.
type Ctxt struct {
	// Workspace is the workspace invoking the layout.
	Workspace WorkspaceView
	// ScreenGeom is the usable geometry of the output the workspace is
	// displayed on.
	ScreenGeom geometry.Rectangle[int, geometry.Logical]
	// BorderPx is the configured window border width.
	BorderPx uint32
}

// Layout enforces window placement for the windows a workspace has marked
// on-layout.
type Layout interface {
	// Name identifies the layout, e.g. for display in a status bar.
	Name() string
	// Style reports whether the layout is Floating or Tiled.
	Style() Style
	// Generate returns the actions needed to enforce the layout's policy.
	Generate(ctxt Ctxt) []Action
	// ReceiveUpdate applies msg if this layout understands it. Layouts
	// silently ignore updates that don't apply to them.
	ReceiveUpdate(msg any)
}

// Ring is the ordered set of layouts a workspace can cycle through. It
// must never be empty and must always have a focused element; use
// NewRing, which enforces both invariants, rather than ring.New directly.
type Ring struct {
	r *ring.Ring[Layout]
}

// NewRing builds a Ring from layouts, focusing the first one. Returns an
// error wrapping errs.ErrLayoutConflict if any two layouts share a name,
// or if layouts is empty.
func NewRing(layouts []Layout) (*Ring, error) {
	if len(layouts) == 0 {
		return nil, fmt.Errorf("layout: %w: no layouts given", errs.ErrLayoutConflict)
	}
	seen := make(map[string]bool, len(layouts))
	var dupes []string
	for _, l := range layouts {
		if seen[l.Name()] {
			dupes = append(dupes, l.Name())
		}
		seen[l.Name()] = true
	}
	if len(dupes) > 0 {
		return nil, fmt.Errorf("layout: %w: conflicting layout names: %v", errs.ErrLayoutConflict, dupes)
	}

	r := ring.New[Layout]()
	for _, l := range layouts {
		r.Append(l)
	}
	r.SetFocused(0)
	return &Ring{r: r}, nil
}

// Ring exposes the underlying Ring for Len/CycleFocus/etc.
func (lr *Ring) Ring() *ring.Ring[Layout] { return lr.r }

// Focused returns the currently focused layout. Panics if unset, which
// indicates a broken invariant rather than a runtime condition: NewRing
// always sets a focus and nothing in this package ever clears it.
func (lr *Ring) Focused() Layout {
	l := lr.r.Focused()
	if l == nil {
		panic("layout: no focused layout")
	}
	return *l
}

// Generate runs the focused layout's policy.
func (lr *Ring) Generate(ctxt Ctxt) []Action {
	return lr.Focused().Generate(ctxt)
}

// SendUpdate delivers msg to the focused layout only.
func (lr *Ring) SendUpdate(msg any) {
	lr.Focused().ReceiveUpdate(msg)
}

// BroadcastUpdate delivers msg to every layout in the ring.
func (lr *Ring) BroadcastUpdate(msg any) {
	lr.r.Iter(func(_ int, l Layout) bool {
		l.ReceiveUpdate(msg)
		return true
	})
}

// ElementByName returns the index of the layout with the given name.
func (lr *Ring) ElementByName(name string) (int, bool) {
	idx, l := lr.r.ElementBy(func(l Layout) bool { return l.Name() == name })
	return idx, l != nil
}

// ResizeMain is an Update that adjusts a DynamicTiled layout's main/stack
// ratio by delta (positive grows main).
type ResizeMain struct{ Delta float32 }

// SetBorderPx is an Update that changes a layout's border width in pixels.
type SetBorderPx struct{ Width uint32 }

// SetGapPx is an Update that changes a layout's inter-window gap in
// pixels, distinct from the border width per runtime configuration's
// separate gap_px/border_px knobs.
type SetGapPx struct{ Width uint32 }
