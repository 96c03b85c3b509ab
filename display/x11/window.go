package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// MapWindow maps id.
func (c *Conn) MapWindow(id window.ID) error {
	return xproto.MapWindowChecked(c.xc, xproto.Window(id)).Check()
}

// UnmapWindow unmaps id.
func (c *Conn) UnmapWindow(id window.ID) error {
	return xproto.UnmapWindowChecked(c.xc, xproto.Window(id)).Check()
}

// DestroyWindow destroys id's X window.
func (c *Conn) DestroyWindow(id window.ID) error {
	return xproto.DestroyWindowChecked(c.xc, xproto.Window(id)).Check()
}

// SetInputFocus gives id the input focus.
func (c *Conn) SetInputFocus(id window.ID) error {
	return xproto.SetInputFocusChecked(
		c.xc, xproto.InputFocusPointerRoot, xproto.Window(id), xproto.TimeCurrentTime,
	).Check()
}

// SetGeometry moves and resizes id to geom, without touching its border.
func (c *Conn) SetGeometry(id window.ID, geom geometry.Rectangle[int, geometry.Logical]) error {
	return xproto.ConfigureWindowChecked(
		c.xc, xproto.Window(id),
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(int32(geom.Point.X)), uint32(int32(geom.Point.Y)),
			uint32(geom.Size.Width), uint32(geom.Size.Height),
		},
	).Check()
}

// ConfigureWindow moves, resizes and sets the border width of id in one
// request.
func (c *Conn) ConfigureWindow(id window.ID, geom geometry.Rectangle[int, geometry.Logical], borderPx uint32) error {
	return xproto.ConfigureWindowChecked(
		c.xc, xproto.Window(id),
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|
			xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{
			uint32(int32(geom.Point.X)), uint32(int32(geom.Point.Y)),
			uint32(geom.Size.Width), uint32(geom.Size.Height), borderPx,
		},
	).Check()
}

// ChangeWindowAttributes sets id's event mask.
func (c *Conn) ChangeWindowAttributes(id window.ID, eventMask uint32) error {
	return xproto.ChangeWindowAttributesChecked(
		c.xc, xproto.Window(id), xproto.CwEventMask, []uint32{eventMask},
	).Check()
}

// SendClientMessage delivers a 32-bit ClientMessage to id.
func (c *Conn) SendClientMessage(id window.ID, msgType display.Atom, data [5]uint32) error {
	atomID, err := c.Atom(msgType)
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(id),
		Type:   xproto.Atom(atomID),
		Data:   xproto.ClientMessageDataUnion{Data32: data},
	}
	return xproto.SendEventChecked(
		c.xc, false, xproto.Window(id), xproto.EventMaskNoEvent, string(ev.Bytes()),
	).Check()
}
