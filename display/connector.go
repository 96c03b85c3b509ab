// Package display declares the abstract display-server connector the core
// drives: a non-blocking event poll plus the handful of window/output
// operations the manager needs, implemented concretely by display/x11 (xgb)
// and display/wayland (niri IPC).
package display

import (
	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// RootWindow identifies the root/background surface of one display and its
// geometry.
type RootWindow struct {
	ID   window.ID
	Geom geometry.Rectangle[int, geometry.Logical]
}

// PointerReply carries the result of a pointer query: its position and the
// modifier mask currently held.
type PointerReply struct {
	Pos  geometry.Point[int, geometry.Logical]
	Mask bindings.ModMask
}

// Output describes one physical output as reported by the backend (from
// RandR/Xinerama on X11, or the compositor's output list on Wayland).
type Output struct {
	Name string
	Geom geometry.Rectangle[int, geometry.Logical]
}

// PropertyKind narrows Property to the shapes the core understands; an
// unrecognized property type round-trips as raw words via U32List/U8List.
type PropertyKind int

const (
	PropAtom PropertyKind = iota
	PropCardinal
	PropString
	PropUTF8String
	PropWindow
	PropWMHints
	PropWMSizeHints
	PropU8List
	PropU16List
	PropU32List
)

// WMHintsFlags is the ICCCM WM_HINTS flags bitmask.
type WMHintsFlags uint32

const (
	WMHintsInput       WMHintsFlags = 1 << 0
	WMHintsStateHint   WMHintsFlags = 1 << 1
	WMHintsIconPixmap  WMHintsFlags = 1 << 2
	WMHintsIconWindow  WMHintsFlags = 1 << 3
	WMHintsIconPos     WMHintsFlags = 1 << 4
	WMHintsIconMask    WMHintsFlags = 1 << 5
	WMHintsWindowGroup WMHintsFlags = 1 << 6
	WMHintsUrgency     WMHintsFlags = 1 << 8
)

// WMHints is the decoded ICCCM WM_HINTS property.
type WMHints struct {
	Flags WMHintsFlags
}

// IsUrgent reports whether the urgency bit is set.
func (h WMHints) IsUrgent() bool { return h.Flags&WMHintsUrgency != 0 }

// Property is a decoded X server property value.
type Property struct {
	Kind     PropertyKind
	Atoms    []string
	Cardinal uint32
	Strings  []string
	Windows  []window.ID
	WMHints  WMHints
	U8List   []uint8
	U16List  []uint16
	U32List  []uint32
}

// EventMask is a bitmask of server events to select for on a window. Bit
// positions match X11's protocol-level event mask layout (the same way
// bindings.ModMask mirrors X11's modifier bits) so display/x11 can pass
// these straight through to ChangeWindowAttributes without translation.
type EventMask uint32

const (
	EventMaskEnterWindow     EventMask = 1 << 4
	EventMaskLeaveWindow     EventMask = 1 << 5
	EventMaskStructureNotify EventMask = 1 << 17
	EventMaskPropertyChange  EventMask = 1 << 22
)

// ClientEventMask is the mask the dispatcher selects for on every window
// it starts managing, so it sees that window's own property and
// structure changes in addition to what the root window's
// SubstructureNotify mask already reports.
const ClientEventMask = EventMaskEnterWindow | EventMaskLeaveWindow | EventMaskStructureNotify | EventMaskPropertyChange

// Connector is the abstract display-server backend the core drives. Every
// method here corresponds to a row in the core's display connector
// contract: non-blocking event delivery, window lifecycle, property access,
// and input grabbing.
type Connector interface {
	// PollNextEvent returns the next queued event without blocking. Returns
	// (Event{}, false, nil) if the queue is empty, and a non-nil error only
	// on a fatal, unrecoverable connector failure (disconnect).
	PollNextEvent() (event.Event, bool, error)

	// GetRoot returns the root window's id and geometry.
	GetRoot() (RootWindow, error)
	// GetGeometry returns id's current server-side geometry.
	GetGeometry(id window.ID) (geometry.Rectangle[int, geometry.Logical], error)
	// QueryTree returns the children of id.
	QueryTree(id window.ID) ([]window.ID, error)
	// QueryPointer returns the pointer's current location and modifier
	// state relative to id (typically the root).
	QueryPointer(id window.ID) (PointerReply, error)
	// AllOutputs returns the physical outputs currently attached, with
	// their effective (panel-trimmed) geometries.
	AllOutputs() ([]Output, error)

	// Atom interns name, returning a backend-specific handle.
	Atom(name Atom) (uint32, error)
	// LookupAtom resolves a backend-specific handle back to its name.
	LookupAtom(id uint32) (Atom, error)

	// GrabKey/UngrabKey/GrabButton/UngrabButton/GrabPointer/UngrabPointer
	// route raw input exclusively to the window manager.
	GrabKey(kb bindings.Keybind) error
	UngrabKey(kb bindings.Keybind) error
	GrabButton(mb bindings.Mousebind) error
	UngrabButton(mb bindings.Mousebind) error
	GrabPointer() error
	UngrabPointer() error

	// MapWindow/UnmapWindow/DestroyWindow control window visibility and
	// lifecycle.
	MapWindow(id window.ID) error
	UnmapWindow(id window.ID) error
	DestroyWindow(id window.ID) error

	// SetInputFocus/SetGeometry/ConfigureWindow/ChangeWindowAttributes
	// mutate window state.
	SetInputFocus(id window.ID) error
	SetGeometry(id window.ID, geom geometry.Rectangle[int, geometry.Logical]) error
	ConfigureWindow(id window.ID, geom geometry.Rectangle[int, geometry.Logical], borderPx uint32) error
	ChangeWindowAttributes(id window.ID, eventMask uint32) error

	// SetProperty/GetProperty access typed window properties.
	SetProperty(id window.ID, atom Atom, prop Property) error
	GetProperty(id window.ID, atom Atom) (Property, bool, error)

	// SendClientMessage delivers an out-of-band ClientMessage to id.
	SendClientMessage(id window.ID, msgType Atom, data [5]uint32) error

	// ShouldManage reports whether id should be tracked at all (false for
	// e.g. dock/splash/notification window types).
	ShouldManage(id window.ID) bool
	// ShouldFloat reports whether id should be placed off-layout on map,
	// combining its window-type atoms with the configured float-class
	// list.
	ShouldFloat(id window.ID, floatClasses []string) bool

	// Close releases any resources held by the connection.
	Close() error
}
