// Package bindings models keyboard and mouse bindings: the keymap that
// resolves symbolic key names to keycodes, the "MOD-MOD-KEY" string parser,
// and the registries the dispatcher consults to run a bound action.
package bindings

import (
	"fmt"
	"strings"

	"github.com/patrislav/marwind/errs"
)

// KeyCode is a physical key position, as reported by the display backend.
type KeyCode uint8

// KeySym is a symbolic key identity (a letter, a named key like Down, a
// function key, ...), independent of keyboard layout.
type KeySym uint32

// ModMask is a bitmask of held modifier keys. Values match X11's modifier
// mask bit layout (Shift=1, Control=4, Mod1=8, Mod4=64) so display/x11 can
// pass xproto modifier state straight through without translation.
type ModMask uint16

const (
	ModMaskShift ModMask = 1 << 0
	ModMaskCtrl  ModMask = 1 << 2
	ModMaskAlt   ModMask = 1 << 3
	ModMaskMeta  ModMask = 1 << 6
)

// ModKey names one modifier key, used only by the string parser; ModMask
// is what's actually stored and compared.
type ModKey int

const (
	ModCtrl ModKey = iota
	ModAlt
	ModShift
	ModMeta
)

func (m ModKey) mask() ModMask {
	switch m {
	case ModCtrl:
		return ModMaskCtrl
	case ModAlt:
		return ModMaskAlt
	case ModShift:
		return ModMaskShift
	default:
		return ModMaskMeta
	}
}

// Keybind is a resolved keyboard binding: the modifiers that must be held,
// and the keycode that must be pressed.
type Keybind struct {
	Mask ModMask
	Code KeyCode
}

// ButtonIndex names a pointer button.
type ButtonIndex int

const (
	ButtonLeft ButtonIndex = iota
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// MouseEventKind names the pointer event a Mousebind triggers on.
type MouseEventKind int

const (
	MouseMotion MouseEventKind = iota
	MousePress
	MouseRelease
)

// Mousebind is a resolved mouse binding.
type Mousebind struct {
	Mask   ModMask
	Button ButtonIndex
	Kind   MouseEventKind
}

// Keymap resolves symbolic key names to keycodes, built from a display
// backend's raw keycode-to-keysyms table (e.g. an X11
// GetKeyboardMapping reply, or an equivalent Wayland keymap dump) via
// NewKeymap, kept independent of any specific backend's wire types.
type Keymap struct {
	codesBySym map[KeySym][]KeyCode
}

// NewKeymap builds a Keymap from a flat keycode-to-keysyms table: for
// each keycode starting at firstCode, syms holds symsPerCode consecutive
// entries (the primary keysym is assumed to be the first of each group,
// matching X11's GetKeyboardMapping layout).
func NewKeymap(firstCode KeyCode, symsPerCode int, syms []KeySym) *Keymap {
	km := &Keymap{codesBySym: make(map[KeySym][]KeyCode)}
	if symsPerCode <= 0 {
		return km
	}
	n := len(syms) / symsPerCode
	for i := 0; i < n; i++ {
		code := KeyCode(int(firstCode) + i)
		group := syms[i*symsPerCode : (i+1)*symsPerCode]
		for _, sym := range group {
			if sym == 0 {
				continue
			}
			km.codesBySym[sym] = append(km.codesBySym[sym], code)
		}
	}
	return km
}

// LookupName resolves a symbolic key name (e.g. "Down", "h", "Return") to
// a keycode via the keysym name table in keysym.go.
func (km *Keymap) LookupName(name string) (KeyCode, bool) {
	sym, ok := keysymByName[name]
	if !ok {
		return 0, false
	}
	codes, ok := km.codesBySym[sym]
	if !ok || len(codes) == 0 {
		return 0, false
	}
	return codes[0], true
}

// ParseKeybind parses a binding string of the form "MOD-MOD-KEY" (e.g.
// "M-S-Down") into a Keybind, resolving the key token against km.
// Modifier tokens are "C" (Ctrl), "S" (Shift), "A" (Alt), "M" (Meta); any
// other token is treated as the key name. Returns an error if no token
// resolves to a known key.
func ParseKeybind(km *Keymap, s string) (Keybind, error) {
	var mask ModMask
	var code KeyCode
	found := false

	for _, tok := range strings.Split(s, "-") {
		switch tok {
		case "C":
			mask |= ModCtrl.mask()
		case "S":
			mask |= ModShift.mask()
		case "A":
			mask |= ModAlt.mask()
		case "M":
			mask |= ModMeta.mask()
		default:
			if c, ok := km.LookupName(tok); ok {
				code = c
				found = true
			}
		}
	}

	if !found {
		return Keybind{}, fmt.Errorf("bindings: %w: could not parse keybind %q", errs.ErrBindingError, s)
	}
	return Keybind{Mask: mask, Code: code}, nil
}

var buttonByName = map[string]ButtonIndex{
	"Button1": ButtonLeft,
	"Button2": ButtonMiddle,
	"Button3": ButtonRight,
	"Button4": ButtonScrollUp,
	"Button5": ButtonScrollDown,
}

// ParseMousebind parses a binding string of the form "MOD-MOD-ButtonN"
// (e.g. "M-Button1") into a Mousebind. The Kind is always MousePress: a
// mousebind only needs registering for the press that starts a drag, per
// MousebindRegistry.BeginDrag/EndDrag tracking Release/Motion
// structurally rather than by a second lookup.
func ParseMousebind(s string) (Mousebind, error) {
	var mask ModMask
	var button ButtonIndex
	found := false

	for _, tok := range strings.Split(s, "-") {
		switch tok {
		case "C":
			mask |= ModCtrl.mask()
		case "S":
			mask |= ModShift.mask()
		case "A":
			mask |= ModAlt.mask()
		case "M":
			mask |= ModMeta.mask()
		default:
			if b, ok := buttonByName[tok]; ok {
				button = b
				found = true
			}
		}
	}

	if !found {
		return Mousebind{}, fmt.Errorf("bindings: %w: could not parse mousebind %q", errs.ErrBindingError, s)
	}
	return Mousebind{Mask: mask, Button: button, Kind: MousePress}, nil
}
