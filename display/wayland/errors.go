package wayland

import "errors"

// ErrUnsupported is returned by Connector operations this backend cannot
// perform, since niri owns window placement and layout itself rather
// than delegating it to the window manager the way an X11 server does.
var ErrUnsupported = errors.New("wayland: not supported by the niri backend")
