package window

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/geometry"
)

func zeroGeom() geometry.Rectangle[int, geometry.Logical] {
	return geometry.NewRectangle[int, geometry.Logical](0, 0, 0, 0)
}

func TestWindowMapUnmapIdempotent(t *testing.T) {
	w := New(1, ClassNormal, zeroGeom())
	assert.False(t, w.IsMapped())

	w.Map()
	assert.True(t, w.IsMapped())
	w.Map()
	assert.True(t, w.IsMapped())

	w.Unmap()
	assert.False(t, w.IsMapped())
	w.Unmap()
	assert.False(t, w.IsMapped())
}

func TestWindowLayoutFlags(t *testing.T) {
	w := New(1, ClassNormal, zeroGeom())
	assert.False(t, w.IsOffLayout())

	w.SetOffLayout()
	assert.True(t, w.IsOffLayout())

	w.SetOnLayout()
	assert.False(t, w.IsOffLayout())
}

func TestOutsideLayoutConstructor(t *testing.T) {
	w := OutsideLayout(1, ClassDialog, zeroGeom())
	assert.True(t, w.IsOffLayout())
}

func TestClassShouldFloat(t *testing.T) {
	assert.False(t, ClassNormal.ShouldFloat())
	assert.False(t, ClassDock.ShouldFloat())
	assert.True(t, ClassDialog.ShouldFloat())
	assert.True(t, ClassToolbar.ShouldFloat())
	assert.True(t, ClassNotification.ShouldFloat())
}

func TestWindowToggles(t *testing.T) {
	w := New(1, ClassNormal, zeroGeom())
	assert.False(t, w.IsUrgent())
	w.ToggleUrgent()
	assert.True(t, w.IsUrgent())

	assert.False(t, w.IsFullscreen())
	w.ToggleFullscreen()
	assert.True(t, w.IsFullscreen())
}

func TestWindowSetGeometry(t *testing.T) {
	w := New(1, ClassNormal, zeroGeom())
	g := geometry.NewRectangle[int, geometry.Logical](1, 2, 30, 40)
	w.SetGeometry(g)
	assert.Equal(t, g, w.Geometry())
	assert.Equal(t, zeroGeom(), w.InitialGeometry())
	assert.Equal(t, 1, w.X())
	assert.Equal(t, 2, w.Y())
	assert.Equal(t, 30, w.Height())
	assert.Equal(t, 40, w.Width())
}

func TestWindowRingLookupAndRemove(t *testing.T) {
	wr := NewWindowRing()
	wr.Append(New(1, ClassNormal, zeroGeom()))
	wr.Append(New(2, ClassNormal, zeroGeom()))
	wr.Append(New(3, ClassNormal, zeroGeom()))

	assert.True(t, wr.Contains(2))
	assert.False(t, wr.Contains(99))

	w := wr.Lookup(2)
	require.NotNil(t, w)
	assert.Equal(t, ID(2), w.ID())

	removed, ok := wr.RemoveByID(2)
	require.True(t, ok)
	assert.Equal(t, ID(2), removed.ID())
	assert.False(t, wr.Contains(2))
}

func TestWindowRingFocus(t *testing.T) {
	log := logrus.New()
	wr := NewWindowRing()
	wr.Append(New(1, ClassNormal, zeroGeom()))
	wr.Append(New(2, ClassNormal, zeroGeom()))

	wr.SetFocusedByID(log, 2)
	assert.True(t, wr.IsFocused(2))
	assert.False(t, wr.IsFocused(1))

	// focusing a missing id is a no-op, not a panic
	wr.SetFocusedByID(log, 99)
	assert.True(t, wr.IsFocused(2))
}

func TestFocusStackPartitioning(t *testing.T) {
	log := logrus.New()
	wr := NewWindowRing()

	tiled1 := New(1, ClassNormal, zeroGeom())
	tiled2 := New(2, ClassNormal, zeroGeom())
	floating := New(3, ClassDialog, zeroGeom())
	floating.SetOffLayout()

	wr.Append(tiled1)
	wr.Append(tiled2)
	wr.Append(floating)

	fs := NewFocusStack()
	fs.AddByLayoutStatus(log, 1, wr)
	fs.AddByLayoutStatus(log, 2, wr)
	fs.AddByLayoutStatus(log, 3, wr)

	// floating window pushed to front, tiled windows after
	assert.Equal(t, []ID{3, 2, 1}, fs.Ring().Items())

	onLayout := fs.OnLayout(wr)
	assert.ElementsMatch(t, []ID{1, 2}, onLayout)

	offLayout := fs.OffLayout(wr)
	assert.Equal(t, []ID{3}, offLayout)
}

func TestFocusStackBubbleToTop(t *testing.T) {
	log := logrus.New()
	wr := NewWindowRing()
	w1 := New(1, ClassNormal, zeroGeom())
	w2 := New(2, ClassNormal, zeroGeom())
	w3 := New(3, ClassNormal, zeroGeom())
	wr.Append(w1)
	wr.Append(w2)
	wr.Append(w3)

	fs := NewFocusStack()
	fs.AddByLayoutStatus(log, 1, wr)
	fs.AddByLayoutStatus(log, 2, wr)
	fs.AddByLayoutStatus(log, 3, wr)
	// all on-layout, each enters at the front of the on-layout partition: [3, 2, 1]
	assert.Equal(t, []ID{3, 2, 1}, fs.Ring().Items())

	fs.BubbleToTop(log, 3, wr)
	assert.Equal(t, []ID{3, 2, 1}, fs.Ring().Items())

	w1.SetOffLayout()
	fs.BubbleToTop(log, 1, wr)
	// off-layout window bubbles to the absolute front
	assert.Equal(t, []ID{1, 3, 2}, fs.Ring().Items())
}

func TestFocusStackRemoveByID(t *testing.T) {
	log := logrus.New()
	wr := NewWindowRing()
	wr.Append(New(1, ClassNormal, zeroGeom()))
	wr.Append(New(2, ClassNormal, zeroGeom()))

	fs := NewFocusStack()
	fs.AddByLayoutStatus(log, 1, wr)
	fs.AddByLayoutStatus(log, 2, wr)

	removed, ok := fs.RemoveByID(1)
	require.True(t, ok)
	assert.Equal(t, ID(1), removed)
	assert.Equal(t, []ID{2}, fs.Ring().Items())
}
