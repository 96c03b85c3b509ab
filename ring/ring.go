// Package ring implements the ordered-with-focus collection that underpins
// window tiling order, stacking order, and the layout ring of a workspace.
package ring

// Direction is the direction in which a Ring's focus or contents rotate.
type Direction int

const (
	// Forward cycles toward the back of the Ring.
	Forward Direction = iota
	// Backward cycles toward the front of the Ring.
	Backward
)

// InsertPoint describes where a new element is inserted relative to a Ring's
// current contents and focus.
type InsertPoint struct {
	kind insertKind
	idx  int
}

type insertKind int

const (
	atIndex insertKind = iota
	atFocused
	afterFocused
	beforeFocused
	atFirst
	atLast
)

// AtIndex inserts at a specific index. Silently ignored if out of bounds.
func AtIndex(idx int) InsertPoint { return InsertPoint{kind: atIndex, idx: idx} }

// Focused replaces the focused slot; the inserted element becomes the focus.
func Focused() InsertPoint { return InsertPoint{kind: atFocused} }

// AfterFocused inserts immediately after the focused element, without
// changing which element is focused.
func AfterFocused() InsertPoint { return InsertPoint{kind: afterFocused} }

// BeforeFocused inserts immediately before the focused element, without
// changing which element is focused.
func BeforeFocused() InsertPoint { return InsertPoint{kind: beforeFocused} }

// First inserts at the front of the Ring.
func First() InsertPoint { return InsertPoint{kind: atFirst} }

// Last inserts at the back of the Ring.
func Last() InsertPoint { return InsertPoint{kind: atLast} }

// Selector describes how a single element is chosen from a Ring.
type Selector[T any] struct {
	kind      selectorKind
	idx       int
	condition func(T) bool
}

type selectorKind int

const (
	selAny selectorKind = iota
	selFocused
	selIndex
	selCondition
)

// Any selects any element (implemented as the focused element).
func Any[T any]() Selector[T] { return Selector[T]{kind: selAny} }

// SelFocused selects the focused element.
func SelFocused[T any]() Selector[T] { return Selector[T]{kind: selFocused} }

// SelIndex selects the element at a specific index.
func SelIndex[T any](idx int) Selector[T] { return Selector[T]{kind: selIndex, idx: idx} }

// Condition selects the first element matching the predicate.
func Condition[T any](pred func(T) bool) Selector[T] {
	return Selector[T]{kind: selCondition, condition: pred}
}

// Ring is an ordered sequence of T with an optional focus index.
//
// Guarantees upheld by every operation:
//  1. There is no focused element iff the Ring is empty; focus is set to 0
//     on the first insert and cleared when the last element is removed.
//  2. The focus refers to the same element until explicitly changed, or
//     until that element is removed, in which case focus slides to the
//     next-in-line (wrapping to 0 if it would run off the end).
//  3. The focus, if present, is always a valid in-bounds index.
type Ring[T any] struct {
	items   []T
	focused int
	hasFocus bool
}

// New constructs an empty Ring.
func New[T any]() *Ring[T] {
	return &Ring[T]{}
}

// NewWithCapacity constructs an empty Ring with preallocated storage.
func NewWithCapacity[T any](cap int) *Ring[T] {
	return &Ring[T]{items: make([]T, 0, cap)}
}

// FromSlice builds a Ring from existing items, front to back, with no focus
// set (callers should call SetFocused afterward if needed).
func FromSlice[T any](items []T) *Ring[T] {
	r := &Ring[T]{items: append([]T(nil), items...)}
	return r
}

// Len returns the number of items in the Ring.
func (r *Ring[T]) Len() int { return len(r.items) }

// IsEmpty reports whether the Ring holds no items.
func (r *Ring[T]) IsEmpty() bool { return len(r.items) == 0 }

func (r *Ring[T]) isInBounds(idx int) bool {
	return idx >= 0 && idx < len(r.items)
}

func (r *Ring[T]) wouldWrap(dir Direction) bool {
	if !r.hasFocus {
		return false
	}
	switch dir {
	case Forward:
		return r.focused == len(r.items)-1
	default:
		return r.focused == 0
	}
}

// FocusedIdx returns the index of the focused element, if any.
func (r *Ring[T]) FocusedIdx() (int, bool) {
	if !r.hasFocus {
		return 0, false
	}
	return r.focused, true
}

// SetFocused sets the focus to idx. If idx is out of bounds, focus falls
// back to 0. No-op on an empty Ring.
func (r *Ring[T]) SetFocused(idx int) {
	if r.IsEmpty() {
		return
	}
	if r.isInBounds(idx) {
		r.focused = idx
	} else {
		r.focused = 0
	}
	r.hasFocus = true
}

func (r *Ring[T]) unsetFocused() {
	r.hasFocus = false
	r.focused = 0
}

// Focused returns a pointer to the focused element, or nil if unset.
func (r *Ring[T]) Focused() *T {
	if !r.hasFocus {
		return nil
	}
	return &r.items[r.focused]
}

// Push inserts item at the front of the Ring.
func (r *Ring[T]) Push(item T) {
	r.items = append([]T{item}, r.items...)
	if r.hasFocus {
		r.SetFocused(r.focused + 1)
	} else {
		r.SetFocused(0)
	}
}

// Append inserts item at the back of the Ring.
func (r *Ring[T]) Append(item T) {
	r.items = append(r.items, item)
	if !r.hasFocus {
		r.SetFocused(0)
	}
}

// Get returns a pointer to the item at idx, or nil if out of bounds.
func (r *Ring[T]) Get(idx int) *T {
	if !r.isInBounds(idx) {
		return nil
	}
	return &r.items[idx]
}

// Items returns the Ring's contents in order. The slice must not be
// mutated by callers that don't own the Ring.
func (r *Ring[T]) Items() []T { return r.items }

// Remove deletes the element at idx, returning it. Focus slides according
// to the Ring's guarantees.
func (r *Ring[T]) Remove(idx int) (T, bool) {
	var zero T
	if !r.isInBounds(idx) {
		return zero, false
	}
	ret := r.items[idx]
	r.items = append(r.items[:idx], r.items[idx+1:]...)

	if r.IsEmpty() {
		r.unsetFocused()
		return ret, true
	}

	if r.hasFocus {
		fIdx := r.focused
		if idx < fIdx {
			r.SetFocused(fIdx - 1)
		}
		if !r.isInBounds(r.focused) {
			r.SetFocused(0)
		}
	}
	return ret, true
}

// Insert places item according to point.
func (r *Ring[T]) Insert(point InsertPoint, item T) {
	if r.IsEmpty() {
		r.Push(item)
		return
	}

	fIdx := r.focused

	switch point.kind {
	case atIndex:
		idx := point.idx
		if !r.isInBounds(idx) {
			return
		}
		r.insertAt(idx, item)
		if idx <= fIdx {
			r.SetFocused(fIdx + 1)
		}
	case atFocused:
		r.insertAt(fIdx, item)
		// focus index unchanged; it now points at the newly inserted item
	case afterFocused:
		if r.wouldWrap(Forward) {
			r.Append(item)
		} else {
			r.Insert(AtIndex(fIdx+1), item)
		}
	case beforeFocused:
		if r.wouldWrap(Backward) {
			r.Push(item)
		} else {
			r.Insert(AtIndex(fIdx-1), item)
		}
	case atFirst:
		r.Push(item)
	case atLast:
		r.Append(item)
	}
}

func (r *Ring[T]) insertAt(idx int, item T) {
	r.items = append(r.items, item)
	copy(r.items[idx+1:], r.items[idx:])
	r.items[idx] = item
}

// MoveTo moves the element at from to index to. No-op if from is out of
// bounds.
func (r *Ring[T]) MoveTo(from, to int) {
	item, ok := r.Remove(from)
	if !ok {
		return
	}
	if to >= r.Len() {
		r.Append(item)
		return
	}
	r.Insert(AtIndex(to), item)
}

// MoveFront moves the element at idx to the front of the Ring.
func (r *Ring[T]) MoveFront(idx int) {
	r.MoveTo(idx, 0)
}

// Rotate rotates the buffer by one in dir, moving the focus along with it
// so it continues to point at the same element.
func (r *Ring[T]) Rotate(dir Direction) {
	r.rotateBy(1, dir)
	r.CycleFocus(dir)
}

func (r *Ring[T]) rotateBy(step int, dir Direction) {
	n := len(r.items)
	if n == 0 {
		return
	}
	step %= n
	switch dir {
	case Forward:
		r.items = append(r.items[n-step:], r.items[:n-step]...)
	default:
		r.items = append(r.items[step:], r.items[:step]...)
	}
}

// CycleFocus moves the focus by one in dir, wrapping around. No-op if the
// Ring is empty or has a single element.
func (r *Ring[T]) CycleFocus(dir Direction) {
	if r.Len() <= 1 {
		return
	}
	if !r.hasFocus {
		return
	}
	switch dir {
	case Forward:
		if r.wouldWrap(Forward) {
			r.focused = 0
		} else {
			r.focused++
		}
	default:
		if r.wouldWrap(Backward) {
			r.focused = r.Len() - 1
		} else {
			r.focused--
		}
	}
}

// ElementBy returns the index and a pointer to the first element matching
// cond.
func (r *Ring[T]) ElementBy(cond func(T) bool) (int, *T) {
	for i := range r.items {
		if cond(r.items[i]) {
			return i, &r.items[i]
		}
	}
	return -1, nil
}

// Index resolves a Selector to a concrete index.
func (r *Ring[T]) Index(s Selector[T]) (int, bool) {
	switch s.kind {
	case selAny, selFocused:
		return r.FocusedIdx()
	case selIndex:
		if r.isInBounds(s.idx) {
			return s.idx, true
		}
		return 0, false
	case selCondition:
		idx, e := r.ElementBy(s.condition)
		return idx, e != nil
	}
	return 0, false
}

// ApplyTo mutates the element selected by s in place, if found.
func (r *Ring[T]) ApplyTo(s Selector[T], f func(*T)) {
	if idx, ok := r.Index(s); ok {
		f(&r.items[idx])
	}
}

// Iter calls f for each item in order. Stops early if f returns false.
func (r *Ring[T]) Iter(f func(int, T) bool) {
	for i, it := range r.items {
		if !f(i, it) {
			return
		}
	}
}
