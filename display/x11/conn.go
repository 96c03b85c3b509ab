// Package x11 implements display.Connector over the X11 protocol using
// github.com/BurntSushi/xgb, talking xproto/randr/xinerama/xfixes directly
// rather than through a higher-level wrapper.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// Conn is a display.Connector backed by a live X11 connection.
type Conn struct {
	log logrus.FieldLogger

	xc     *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo

	atoms      *atomCache
	keymap     *bindings.Keymap
	firstKCode xproto.Keycode

	hasRandr    bool
	hasXinerama bool
}

// Connect opens a new X11 connection, becomes the window manager on the
// default screen's root window, and loads the keyboard mapping. Returns
// ErrAlreadyManaged if another window manager already holds
// SubstructureRedirect on the root window.
func Connect(log logrus.FieldLogger) (*Conn, error) {
	xc, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}

	setup := xproto.Setup(xc)
	if setup == nil || len(setup.Roots) < 1 {
		xc.Close()
		return nil, fmt.Errorf("x11: could not parse X setup info")
	}
	screen := &setup.Roots[0]

	c := &Conn{
		log:    log,
		xc:     xc,
		root:   screen.Root,
		screen: screen,
		atoms:  newAtomCache(xc),
	}

	if err := c.becomeWM(); err != nil {
		xc.Close()
		if _, ok := err.(xproto.AccessError); ok {
			return nil, fmt.Errorf("x11: %w", ErrAlreadyManaged)
		}
		return nil, fmt.Errorf("x11: become wm: %w", err)
	}

	if err := xfixes.Init(xc); err == nil {
		xfixes.QueryVersion(xc, 5, 0)
	}
	if err := randr.Init(xc); err == nil {
		c.hasRandr = true
		randr.SelectInput(xc, screen.Root, randr.NotifyMaskScreenChange)
	}
	if err := xinerama.Init(xc); err == nil {
		c.hasXinerama = true
	}

	if err := c.loadKeymap(); err != nil {
		xc.Close()
		return nil, fmt.Errorf("x11: load keymap: %w", err)
	}

	return c, nil
}

func (c *Conn) becomeWM() error {
	mask := uint32(
		xproto.EventMaskKeyPress | xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
			xproto.EventMaskPointerMotion | xproto.EventMaskPropertyChange |
			xproto.EventMaskStructureNotify | xproto.EventMaskSubstructureRedirect |
			xproto.EventMaskSubstructureNotify | xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow,
	)
	return xproto.ChangeWindowAttributesChecked(
		c.xc, c.root, xproto.CwEventMask, []uint32{mask},
	).Check()
}

func (c *Conn) loadKeymap() error {
	const loKey, hiKey = 8, 255
	reply, err := xproto.GetKeyboardMapping(c.xc, loKey, hiKey-loKey+1).Reply()
	if err != nil {
		return err
	}
	syms := make([]bindings.KeySym, len(reply.Keysyms))
	for i, s := range reply.Keysyms {
		syms[i] = bindings.KeySym(s)
	}
	c.firstKCode = loKey
	c.keymap = bindings.NewKeymap(bindings.KeyCode(loKey), int(reply.KeysymsPerKeycode), syms)
	return nil
}

// Keymap exposes the loaded keyboard mapping, for the manager to resolve
// configured keybind strings against at startup.
func (c *Conn) Keymap() *bindings.Keymap { return c.keymap }

// Close releases the X11 connection.
func (c *Conn) Close() error {
	c.xc.Close()
	return nil
}

// GetRoot returns the root window's id and true geometry.
func (c *Conn) GetRoot() (display.RootWindow, error) {
	return display.RootWindow{
		ID: window.ID(c.root),
		Geom: geometry.NewRectangle[int, geometry.Logical](
			0, 0, int(c.screen.HeightInPixels), int(c.screen.WidthInPixels),
		),
	}, nil
}

// GetGeometry returns id's current server-side geometry.
func (c *Conn) GetGeometry(id window.ID) (geometry.Rectangle[int, geometry.Logical], error) {
	reply, err := xproto.GetGeometry(c.xc, xproto.Drawable(id)).Reply()
	if err != nil {
		return geometry.Rectangle[int, geometry.Logical]{}, fmt.Errorf("x11: get geometry: %w", err)
	}
	return geometry.NewRectangle[int, geometry.Logical](
		int(reply.X), int(reply.Y), int(reply.Height), int(reply.Width),
	), nil
}

// QueryTree returns the children of id.
func (c *Conn) QueryTree(id window.ID) ([]window.ID, error) {
	reply, err := xproto.QueryTree(c.xc, xproto.Window(id)).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: query tree: %w", err)
	}
	out := make([]window.ID, len(reply.Children))
	for i, w := range reply.Children {
		out[i] = window.ID(w)
	}
	return out, nil
}

// QueryPointer returns the pointer's current position and modifier state
// relative to id.
func (c *Conn) QueryPointer(id window.ID) (display.PointerReply, error) {
	reply, err := xproto.QueryPointer(c.xc, xproto.Window(id)).Reply()
	if err != nil {
		return display.PointerReply{}, fmt.Errorf("x11: query pointer: %w", err)
	}
	return display.PointerReply{
		Pos:  geometry.NewPoint[int, geometry.Logical](int(reply.RootX), int(reply.RootY)),
		Mask: bindings.ModMask(reply.Mask),
	}, nil
}

// AllOutputs returns the physical outputs currently attached, preferring
// RandR and falling back to Xinerama when RandR is unavailable.
func (c *Conn) AllOutputs() ([]display.Output, error) {
	if c.hasRandr {
		if outs, err := c.randrOutputs(); err == nil && len(outs) > 0 {
			return outs, nil
		}
	}
	if c.hasXinerama {
		if outs, err := c.xineramaOutputs(); err == nil && len(outs) > 0 {
			return outs, nil
		}
	}
	return []display.Output{{
		Name: "default",
		Geom: geometry.NewRectangle[int, geometry.Logical](
			0, 0, int(c.screen.HeightInPixels), int(c.screen.WidthInPixels),
		),
	}}, nil
}

func (c *Conn) randrOutputs() ([]display.Output, error) {
	res, err := randr.GetScreenResources(c.xc, c.root).Reply()
	if err != nil {
		return nil, err
	}
	var outs []display.Output
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(c.xc, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 {
			continue
		}
		outs = append(outs, display.Output{
			Name: fmt.Sprintf("crtc-%d", crtc),
			Geom: geometry.NewRectangle[int, geometry.Logical](
				int(info.X), int(info.Y), int(info.Height), int(info.Width),
			),
		})
	}
	return outs, nil
}

func (c *Conn) xineramaOutputs() ([]display.Output, error) {
	reply, err := xinerama.QueryScreens(c.xc).Reply()
	if err != nil {
		return nil, err
	}
	outs := make([]display.Output, len(reply.ScreenInfo))
	for i, s := range reply.ScreenInfo {
		outs[i] = display.Output{
			Name: fmt.Sprintf("xinerama-%d", i),
			Geom: geometry.NewRectangle[int, geometry.Logical](
				int(s.XOrg), int(s.YOrg), int(s.Height), int(s.Width),
			),
		}
	}
	return outs, nil
}

// Atom interns name, returning its X atom id.
func (c *Conn) Atom(name display.Atom) (uint32, error) { return c.atoms.intern(string(name)) }

// LookupAtom resolves an X atom id back to its name.
func (c *Conn) LookupAtom(id uint32) (display.Atom, error) {
	name, err := c.atoms.name(xproto.Atom(id))
	return display.Atom(name), err
}

var _ display.Connector = (*Conn)(nil)
