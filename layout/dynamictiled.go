package layout

import (
	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// DynamicTiled is a main-and-stack tiling layout: one window takes up
// Ratio of the usable area, the rest split the remainder evenly.
type DynamicTiled struct {
	log logrus.FieldLogger

	ratio  float32
	bwidth uint32
	gap    uint32

	main    window.ID
	hasMain bool
}

// NewDynamicTiled constructs a DynamicTiled layout with the given initial
// main/stack ratio and border width.
func NewDynamicTiled(log logrus.FieldLogger, ratio float32, bwidth uint32) *DynamicTiled {
	return &DynamicTiled{log: log, ratio: ratio, bwidth: bwidth}
}

func (d *DynamicTiled) Name() string { return "tiled" }

func (d *DynamicTiled) Style() Style { return Tiled }

func (d *DynamicTiled) ReceiveUpdate(msg any) {
	switch u := msg.(type) {
	case ResizeMain:
		d.ratio += u.Delta
	case SetBorderPx:
		d.bwidth = u.Width
	case SetGapPx:
		d.gap = u.Width
	}
}

func (d *DynamicTiled) Generate(ctxt Ctxt) []Action {
	if d.hasMain {
		return d.layoutWithMain(d.main, ctxt)
	}

	if ctxt.Workspace.ManagedCount() == 0 {
		return nil
	}

	first, ok := ctxt.Workspace.FirstInLayout()
	if !ok {
		return nil
	}
	d.main = first
	d.hasMain = true
	return d.Generate(ctxt)
}

func (d *DynamicTiled) layoutWithMain(mainID window.ID, ctxt Ctxt) []Action {
	ws := ctxt.Workspace
	bwidth := int(d.bwidth)
	gap := int(d.gap)

	// the X server counts window borders on both sides of the usable
	// area, so trim double the border width; the outer gap is trimmed
	// once per edge, same as a screen margin.
	usable := ctxt.ScreenGeom.Trim(bwidth*2, geometry.Right).Trim(bwidth*2, geometry.Down)
	usable = usable.Trim(gap, geometry.Right).Trim(gap, geometry.Down).Trim(gap, geometry.Left).Trim(gap, geometry.Up)

	if ws.ManagedCount() == 0 {
		// the main window just closed and the workspace is now empty.
		d.hasMain = false
		return nil
	}

	if !ws.HasWindowInLayout(mainID) {
		newMain, ok := ws.FirstInLayout()
		if !ok {
			return nil
		}
		mainID = newMain
		d.main = newMain
	}
	currentMain := d.main

	if ws.ManagedCount() == 1 {
		return []Action{ResizeAction(currentMain, usable)}
	}

	mainGeom, secGeom := geometry.SplitVertRatio[geometry.Logical](usable, d.ratio)

	// round half-border width up so odd border widths still cover the
	// gap, even border widths are unaffected; the inter-window gap is
	// split the same way across the main/stack boundary.
	halfBwidth := (bwidth + 1) / 2
	halfGap := (gap + 1) / 2

	ret := []Action{
		ResizeAction(currentMain, mainGeom.Trim(halfBwidth+halfGap, geometry.Right)),
	}

	secCount := ws.ManagedCount() - 1
	secGeoms := geometry.SplitHorzN(secGeom, secCount)

	i := 0
	for _, id := range ws.InLayoutIDs() {
		if id == currentMain {
			continue
		}
		if i >= len(secGeoms) {
			break
		}
		geom := secGeoms[i]
		if i > 0 {
			geom = geom.Trim(halfGap, geometry.Up)
		}
		if i < len(secGeoms)-1 {
			geom = geom.Trim(halfGap, geometry.Down)
		}
		ret = append(ret, ResizeAction(id, geom))
		i++
	}

	return ret
}
