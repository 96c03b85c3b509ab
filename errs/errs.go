// Package errs collects the sentinel errors shared across package
// boundaries, so callers can branch with errors.Is regardless of which
// package actually produced the error. Errors that never cross a package
// boundary (e.g. desktop.ErrUnknownWorkspace, consumed only by desktop's
// own callers) stay local instead of moving here.
package errs

import "errors"

// ErrConnectorDisconnect means the display connector's underlying
// connection is gone. Fatal: the event loop exits rather than continuing
// to poll a dead connector.
var ErrConnectorDisconnect = errors.New("display connector disconnected")

// ErrProtocolError wraps a malformed or unexpected reply from the display
// server that doesn't indicate the connection itself is gone. Non-fatal.
var ErrProtocolError = errors.New("display protocol error")

// ErrLayoutConflict means two layouts in a ring share a name, or a
// workspace was configured with no layouts at all.
var ErrLayoutConflict = errors.New("layout conflict")

// ErrInvalidConfig means boot or runtime configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrBindingError means a keybind or mousebind string could not be
// parsed, or grabbing/ungrabbing the pointer for a mousebind drag failed.
var ErrBindingError = errors.New("binding error")

// ErrSpawnError means launching an external command from a binding failed.
var ErrSpawnError = errors.New("spawn error")
