package bindings

// keysymByName maps the key names accepted by ParseKeybind to their X11
// keysym values, a hand-picked subset of the X11 keysymdef.h constants
// covering the keys a window manager binds in practice (without
// vendoring the full table).
var keysymByName = map[string]KeySym{
	"a": 0x0061, "b": 0x0062, "c": 0x0063, "d": 0x0064, "e": 0x0065,
	"f": 0x0066, "g": 0x0067, "h": 0x0068, "i": 0x0069, "j": 0x006a,
	"k": 0x006b, "l": 0x006c, "m": 0x006d, "n": 0x006e, "o": 0x006f,
	"p": 0x0070, "q": 0x0071, "r": 0x0072, "s": 0x0073, "t": 0x0074,
	"u": 0x0075, "v": 0x0076, "w": 0x0077, "x": 0x0078, "y": 0x0079,
	"z": 0x007a,

	"0": 0x0030, "1": 0x0031, "2": 0x0032, "3": 0x0033, "4": 0x0034,
	"5": 0x0035, "6": 0x0036, "7": 0x0037, "8": 0x0038, "9": 0x0039,

	"Return":    0xff0d,
	"Escape":    0xff1b,
	"Tab":       0xff09,
	"space":     0x0020,
	"BackSpace": 0xff08,
	"Delete":    0xffff,

	"Up":    0xff52,
	"Down":  0xff54,
	"Left":  0xff51,
	"Right": 0xff53,

	"F1": 0xffbe, "F2": 0xffbf, "F3": 0xffc0, "F4": 0xffc1,
	"F5": 0xffc2, "F6": 0xffc3, "F7": 0xffc4, "F8": 0xffc5,
	"F9": 0xffc6, "F10": 0xffc7, "F11": 0xffc8, "F12": 0xffc9,

	"Shift_L":   0xffe1,
	"Shift_R":   0xffe2,
	"Control_L": 0xffe3,
	"Control_R": 0xffe4,
	"Alt_L":     0xffe9,
	"Alt_R":     0xffea,
	"Super_L":   0xffeb,
	"Super_R":   0xffec,
}
