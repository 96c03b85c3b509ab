package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingFocusAfterPush(t *testing.T) {
	r := New[int]()
	assert.Nil(t, r.Focused())

	r.Push(1)
	require.NotNil(t, r.Focused())
	assert.Equal(t, 1, *r.Focused())

	r.Push(2)
	assert.Equal(t, 1, *r.Focused())

	r.Push(3)
	// [3, 2, 1], focus on 1
	assert.Equal(t, []int{3, 2, 1}, r.Items())
	assert.Equal(t, 1, *r.Focused())

	r.CycleFocus(Forward)
	assert.Equal(t, 3, *r.Focused())

	r.Append(4)
	assert.Equal(t, 3, *r.Focused())

	r.CycleFocus(Backward)
	assert.Equal(t, 4, *r.Focused())
}

func TestRingInsert(t *testing.T) {
	r := New[int]()
	for i := 1; i < 10; i++ {
		r.Append(i)
	}

	r.Insert(BeforeFocused(), 10)
	assert.Equal(t, 10, r.Items()[0])
	assert.Equal(t, 1, *r.Focused())

	r.Insert(Focused(), 69)
	assert.Equal(t, 69, r.Items()[1])
	assert.Equal(t, 69, *r.Focused())

	r.Insert(AfterFocused(), 15)
	assert.Equal(t, 15, r.Items()[2])
	assert.Equal(t, 69, *r.Focused())

	r.Insert(AtIndex(1), 20)
	assert.Equal(t, 20, r.Items()[1])
	assert.Equal(t, 69, *r.Focused())
}

func TestRingRemoval(t *testing.T) {
	r := New[int]()
	for i := 1; i < 10; i++ {
		r.Append(i)
	}

	r.Remove(0)
	assert.Equal(t, 2, r.Items()[0])
	assert.Equal(t, 2, *r.Focused())

	r.SetFocused(3)
	assert.Equal(t, 5, *r.Focused())

	r.Remove(1)
	assert.Equal(t, 4, r.Items()[1])
	assert.Equal(t, 5, *r.Focused())

	for i := 0; i < 7; i++ {
		r.Remove(0)
	}

	assert.Nil(t, r.Focused())
}

func TestRingMove(t *testing.T) {
	r := New[int]()
	for i := 1; i < 10; i++ {
		r.Append(i)
	}

	r.MoveTo(7, 3)
	assert.Equal(t, 1, *r.Focused())
	assert.Equal(t, 8, r.Items()[3])
}

func TestRingRotatePreservesFocusedIdentity(t *testing.T) {
	r := New[int]()
	for i := 1; i <= 5; i++ {
		r.Append(i)
	}
	r.SetFocused(2)
	focused := *r.Focused()

	r.Rotate(Forward)
	assert.Equal(t, focused, *r.Focused())

	r.Rotate(Backward)
	assert.Equal(t, focused, *r.Focused())
}

func TestCycleFocusForwardThenBackwardReturnsToOrigin(t *testing.T) {
	r := New[int]()
	for i := 1; i <= 4; i++ {
		r.Append(i)
	}
	r.SetFocused(1)
	idx, _ := r.FocusedIdx()

	r.CycleFocus(Forward)
	r.CycleFocus(Backward)

	newIdx, ok := r.FocusedIdx()
	require.True(t, ok)
	assert.Equal(t, idx, newIdx)
}

func TestCycleFocusSingleElementNoop(t *testing.T) {
	r := New[int]()
	r.Append(1)
	r.CycleFocus(Forward)
	assert.Equal(t, 1, *r.Focused())
}

func TestEmptyIffNoFocus(t *testing.T) {
	r := New[string]()
	assert.True(t, r.IsEmpty())
	_, ok := r.FocusedIdx()
	assert.False(t, ok)

	r.Append("a")
	assert.False(t, r.IsEmpty())
	_, ok = r.FocusedIdx()
	assert.True(t, ok)

	r.Remove(0)
	assert.True(t, r.IsEmpty())
	_, ok = r.FocusedIdx()
	assert.False(t, ok)
}
