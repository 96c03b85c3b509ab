package x11

import "errors"

// ErrAlreadyManaged is returned by Connect when another window manager
// already holds SubstructureRedirect on the root window.
var ErrAlreadyManaged = errors.New("x11: another window manager is already running")
