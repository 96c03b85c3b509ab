package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// PollNextEvent drains one event off the X connection without blocking,
// the way xgb.PollForEvent is meant to be driven from a select-free main
// loop (xgb queues wire reads on its own goroutine).
func (c *Conn) PollNextEvent() (event.Event, bool, error) {
	xev, xerr := c.xc.PollForEvent()
	if xerr != nil {
		c.log.WithError(xerr).Warn("x11: protocol error")
		return event.Event{}, false, nil
	}
	if xev == nil {
		return event.Event{}, false, nil
	}

	ev, ok := c.translate(xev)
	if !ok {
		return event.Event{}, false, nil
	}
	return ev, true, nil
}

func (c *Conn) translate(xev xgb.Event) (event.Event, bool) {
	switch e := xev.(type) {
	case xproto.ConfigureNotifyEvent:
		return event.Event{
			Kind:   event.ConfigureNotify,
			Window: window.ID(e.Window),
			Configure: event.ConfigureData{
				ID: window.ID(e.Window),
				Geom: geometry.NewRectangle[int, geometry.Logical](
					int(e.X), int(e.Y), int(e.Height), int(e.Width),
				),
				IsRoot: e.Window == c.root,
			},
		}, true

	case xproto.ConfigureRequestEvent:
		return event.Event{
			Kind:   event.ConfigureRequest,
			Window: window.ID(e.Window),
			Configure: event.ConfigureData{
				ID: window.ID(e.Window),
				Geom: geometry.NewRectangle[int, geometry.Logical](
					int(e.X), int(e.Y), int(e.Height), int(e.Width),
				),
			},
		}, true

	case xproto.MapRequestEvent:
		override := false
		if attr, err := xproto.GetWindowAttributes(c.xc, e.Window).Reply(); err == nil {
			override = attr.OverrideRedirect
		}
		return event.Event{
			Kind:     event.MapRequest,
			Window:   window.ID(e.Window),
			Override: override,
		}, true

	case xproto.UnmapNotifyEvent:
		return event.Event{Kind: event.UnmapNotify, Window: window.ID(e.Window)}, true

	case xproto.DestroyNotifyEvent:
		return event.Event{Kind: event.DestroyNotify, Window: window.ID(e.Window)}, true

	case xproto.EnterNotifyEvent:
		return event.Event{
			Kind:    event.EnterNotify,
			Window:  window.ID(e.Event),
			Grabbed: e.Mode != xproto.NotifyModeNormal,
			Point:   geometry.NewPoint[int, geometry.Physical](int(e.RootX), int(e.RootY)),
		}, true

	case xproto.LeaveNotifyEvent:
		return event.Event{
			Kind:    event.LeaveNotify,
			Window:  window.ID(e.Event),
			Grabbed: e.Mode != xproto.NotifyModeNormal,
		}, true

	case xproto.MotionNotifyEvent:
		return event.Event{
			Kind:   event.MotionNotify,
			Window: window.ID(e.Event),
			Point:  geometry.NewPoint[int, geometry.Physical](int(e.RootX), int(e.RootY)),
		}, true

	case xproto.PropertyNotifyEvent:
		name, err := c.LookupAtom(uint32(e.Atom))
		if err != nil {
			return event.Event{}, false
		}
		isHints := name == "WM_HINTS"
		urgent := false
		if isHints {
			if prop, ok, err := c.GetProperty(window.ID(e.Window), "WM_HINTS"); err == nil && ok {
				urgent = prop.WMHints.IsUrgent()
			}
		}
		return event.Event{
			Kind:      event.PropertyNotify,
			Window:    window.ID(e.Window),
			IsWMHints: isHints,
			Urgent:    urgent,
		}, true

	case xproto.KeyPressEvent:
		return event.Event{
			Kind:    event.KeyPress,
			Window:  window.ID(e.Event),
			Keybind: bindings.Keybind{Mask: bindings.ModMask(e.State), Code: bindings.KeyCode(e.Detail)},
			Point:   geometry.NewPoint[int, geometry.Physical](int(e.RootX), int(e.RootY)),
		}, true

	case xproto.ButtonPressEvent:
		return event.Event{
			Kind:      event.ButtonPress,
			Window:    window.ID(e.Event),
			Mousebind: buttonToMousebind(e.State, e.Detail, bindings.MousePress),
			Point:     geometry.NewPoint[int, geometry.Physical](int(e.RootX), int(e.RootY)),
		}, true

	case xproto.ButtonReleaseEvent:
		return event.Event{
			Kind:      event.ButtonRelease,
			Window:    window.ID(e.Event),
			Mousebind: buttonToMousebind(e.State, e.Detail, bindings.MouseRelease),
			Point:     geometry.NewPoint[int, geometry.Physical](int(e.RootX), int(e.RootY)),
		}, true

	case xproto.ClientMessageEvent:
		return c.translateClientMessage(e), true

	case randr.NotifyEvent:
		return event.Event{Kind: event.RandRNotify}, true
	case randr.ScreenChangeNotifyEvent:
		return event.Event{Kind: event.RandRNotify}, true

	default:
		return event.Event{Kind: event.Unknown}, true
	}
}

func buttonToMousebind(state uint16, detail xproto.Button, kind bindings.MouseEventKind) bindings.Mousebind {
	var btn bindings.ButtonIndex
	switch detail {
	case 1:
		btn = bindings.ButtonLeft
	case 2:
		btn = bindings.ButtonMiddle
	case 3:
		btn = bindings.ButtonRight
	case 4:
		btn = bindings.ButtonScrollUp
	default:
		btn = bindings.ButtonScrollDown
	}
	return bindings.Mousebind{Mask: bindings.ModMask(state), Button: btn, Kind: kind}
}

func (c *Conn) translateClientMessage(e xproto.ClientMessageEvent) event.Event {
	name, err := c.LookupAtom(uint32(e.Type))
	if err != nil {
		return event.Event{Kind: event.Unknown}
	}
	data := e.Data.Data32

	ev := event.Event{Kind: event.ClientMessage, Window: window.ID(e.Window)}
	switch name {
	case "_NET_WM_DESKTOP":
		ev.Message = event.ClientMessageData{Kind: event.NetWMDesktop}
	case "_NET_WM_STATE":
		fsAtom, _ := c.Atom("_NET_WM_STATE_FULLSCREEN")
		isFS := data[1] == fsAtom
		ev.Message = event.ClientMessageData{Kind: event.NetWMState, Fullscreen: isFS}
	default:
		ev.Message = event.ClientMessageData{Kind: event.ClientMessageOther}
	}
	ev.Message.Data = data
	return ev
}

