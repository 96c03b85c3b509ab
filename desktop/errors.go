package desktop

import (
	"errors"
	"fmt"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/workspace"
)

// ErrUnknownWorkspace is wrapped into the error returned by any Desktop
// operation that references a workspace name with no corresponding
// workspace. Per the error taxonomy, this is non-fatal: the operation is a
// no-op and state is left unchanged.
var ErrUnknownWorkspace = errors.New("unknown workspace")

// ErrInvalidPoint is wrapped into the error returned when a point doesn't
// fall inside any screen's geometry.
var ErrInvalidPoint = errors.New("point not contained in any output")

// ErrUnknownClient is wrapped into the error returned by any Desktop
// operation that references a window id not managed by any workspace.
var ErrUnknownClient = errors.New("unknown client")

// PointToScreen resolves pt to the screen whose true geometry contains it,
// if any, returning its MonitorHandle.
func PointToScreen(screens []*Screen, pt geometry.Point[int, geometry.Logical]) (workspace.MonitorHandle, error) {
	for i, scr := range screens {
		if scr.TrueGeom().ContainsPoint(pt) {
			return workspace.MonitorHandle(i), nil
		}
	}
	return 0, fmt.Errorf("desktop: %w: (%d, %d)", ErrInvalidPoint, pt.X, pt.Y)
}
