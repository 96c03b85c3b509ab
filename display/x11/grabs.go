package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/patrislav/marwind/bindings"
)

func buttonCode(b bindings.ButtonIndex) xproto.Button {
	switch b {
	case bindings.ButtonLeft:
		return 1
	case bindings.ButtonMiddle:
		return 2
	case bindings.ButtonRight:
		return 3
	case bindings.ButtonScrollUp:
		return 4
	default: // ButtonScrollDown
		return 5
	}
}

// GrabKey grabs kb exclusively on the root window.
func (c *Conn) GrabKey(kb bindings.Keybind) error {
	return xproto.GrabKeyChecked(
		c.xc, false, c.root, uint16(kb.Mask), xproto.Keycode(kb.Code),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Check()
}

// UngrabKey releases a previously grabbed key combination.
func (c *Conn) UngrabKey(kb bindings.Keybind) error {
	return xproto.UngrabKeyChecked(c.xc, xproto.Keycode(kb.Code), c.root, uint16(kb.Mask)).Check()
}

// GrabButton grabs mb exclusively on the root window.
func (c *Conn) GrabButton(mb bindings.Mousebind) error {
	mask := uint16(xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)
	return xproto.GrabButtonChecked(
		c.xc, false, c.root, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, 0, buttonCode(mb.Button), uint16(mb.Mask),
	).Check()
}

// UngrabButton releases a previously grabbed button combination.
func (c *Conn) UngrabButton(mb bindings.Mousebind) error {
	return xproto.UngrabButtonChecked(c.xc, buttonCode(mb.Button), c.root, uint16(mb.Mask)).Check()
}

// GrabPointer grabs the pointer for the duration of a mouse-drag
// move/resize action.
func (c *Conn) GrabPointer() error {
	mask := uint16(xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)
	_, err := xproto.GrabPointer(
		c.xc, false, c.root, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, 0, xproto.TimeCurrentTime,
	).Reply()
	return err
}

// UngrabPointer releases a pointer grab started by GrabPointer.
func (c *Conn) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.xc, xproto.TimeCurrentTime).Check()
}
