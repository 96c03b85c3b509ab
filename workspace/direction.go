package workspace

import "github.com/patrislav/marwind/ring"

// Direction is the direction to cycle focus or layouts in.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) toRingDirection() ring.Direction { return d.ToRing() }

// ToRing converts d to the equivalent ring.Direction, for callers outside
// this package that need to drive a ring.Ring directly (e.g. desktop's
// workspace-to-workspace cycling).
func (d Direction) ToRing() ring.Direction {
	if d == Forward {
		return ring.Forward
	}
	return ring.Backward
}
