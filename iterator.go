package gridmap

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// cursor walks the cells of a snapshot of resident chunks: chunks in
// unspecified order, cells of each chunk in row-major order.
type cursor[A any, Ic constraints.Signed] struct {
	ct     CellType[A]
	chunks []*Chunk[A, Ic]
	next   int

	cur   *Chunk[A, Ic]
	pos   int
	local []int

	// off is the offset of the cell last yielded in cur.
	off     int
	index   Index
	scratch Index

	withNulls bool
	indexed   bool
	bounds    *BoundingBox
	culled    int
	started   bool
	done      bool
}

func newCursor[A any, Ic constraints.Signed](m *GridMap[A, Ic], indexed bool, bounds *BoundingBox) cursor[A, Ic] {
	c := cursor[A, Ic]{
		ct:      m.ct,
		chunks:  m.chunks(),
		local:   make([]int, m.Dims()),
		indexed: indexed || bounds != nil,
		bounds:  bounds,
	}
	if c.indexed {
		c.scratch = make(Index, m.Dims())
	}
	return c
}

func (c *cursor[A, Ic]) includeNulls() {
	if c.started {
		panic("gridmap: WithNulls called after Next")
	}
	c.withNulls = true
}

func (c *cursor[A, Ic]) advance() bool {
	if c.done {
		return false
	}
	c.started = true

	for {
		if c.cur != nil {
			for c.pos < len(c.cur.cells) {
				off := c.pos
				c.pos++
				ok := c.withNulls || !c.ct.IsNull(c.cur.cells[off])
				if ok && c.indexed {
					for d, l := range c.local {
						c.scratch[d] = c.cur.base[d] + int64(l)
					}
					if c.bounds != nil && !c.bounds.Contains(c.scratch) {
						ok = false
					}
				}
				advance(c.local, c.cur.shape)
				if ok {
					c.off = off
					if c.indexed {
						c.index = append(Index(nil), c.scratch...)
					}
					return true
				}
			}
			c.cur = nil
		}

		if c.next >= len(c.chunks) {
			c.done = true
			c.index = nil
			return false
		}
		ch := c.chunks[c.next]
		c.next++
		if c.bounds != nil && !overlapsChunk(*c.bounds, ch) {
			c.culled++
			continue
		}
		c.cur = ch
		c.pos = 0
		clear(c.local)
	}
}

func (c *cursor[A, Ic]) value() A {
	if c.cur == nil {
		var zero A
		return zero
	}
	return c.cur.cells[c.off]
}

func (c *cursor[A, Ic]) ptr() *A {
	if c.cur == nil {
		return nil
	}
	return &c.cur.cells[c.off]
}

// boxFor checks box against the map dimensions, widening the zero box to
// an unbounded one.
func (m *GridMap[A, Ic]) boxFor(box BoundingBox) BoundingBox {
	if box.Dims() == 0 {
		return Unbounded(m.Dims())
	}
	m.checkDims(box.Dims())
	return box
}

// overlapsChunk tests b against the extent of ch without building a box.
func overlapsChunk[A any, Ic constraints.Signed](b BoundingBox, ch *Chunk[A, Ic]) bool {
	for d, s := range ch.base {
		e := s + int64(ch.shape[d])
		if !(b.Start[d] <= e && s <= b.End[d]) {
			return false
		}
	}
	return true
}

// Iter iterates over the non-null cell values of a GridMap.
//
// An Iter is single pass: once Next returns false it stays exhausted. The
// map must not be written while the iterator is in use.
type Iter[A any, Ic constraints.Signed] struct {
	c cursor[A, Ic]
}

// Iter returns an iterator over the non-null cells of the map.
func (m *GridMap[A, Ic]) Iter() *Iter[A, Ic] {
	return &Iter[A, Ic]{c: newCursor(m, false, nil)}
}

// WithNulls makes the iterator yield null cells of resident chunks too.
// It must be called before the first call to Next.
func (it *Iter[A, Ic]) WithNulls() *Iter[A, Ic] {
	it.c.includeNulls()
	return it
}

// Next moves the iterator to the next cell. It returns false if the
// iterator is exhausted.
func (it *Iter[A, Ic]) Next() bool { return it.c.advance() }

// Value returns the current cell.
func (it *Iter[A, Ic]) Value() A { return it.c.value() }

// IterMut iterates over the non-null cells of a GridMap, exposing them
// for in-place modification. Cells nulled through it are not evicted;
// call Prune afterwards.
type IterMut[A any, Ic constraints.Signed] struct {
	c cursor[A, Ic]
}

// IterMut returns a mutable iterator over the non-null cells of the map.
// No other iterator or write may be active on the map while it is used.
func (m *GridMap[A, Ic]) IterMut() *IterMut[A, Ic] {
	return &IterMut[A, Ic]{c: newCursor(m, false, nil)}
}

// WithNulls makes the iterator yield null cells of resident chunks too.
// It must be called before the first call to Next.
func (it *IterMut[A, Ic]) WithNulls() *IterMut[A, Ic] {
	it.c.includeNulls()
	return it
}

// Next moves the iterator to the next cell.
func (it *IterMut[A, Ic]) Next() bool { return it.c.advance() }

// Value returns a pointer to the current cell, or nil once exhausted.
func (it *IterMut[A, Ic]) Value() *A { return it.c.ptr() }

// IndexedIter iterates over the non-null cells of a GridMap together with
// their global coordinates, optionally restricted to a bounding box.
type IndexedIter[A any, Ic constraints.Signed] struct {
	c cursor[A, Ic]
}

// IndexedIter returns an iterator over the non-null cells of the map and
// their coordinates.
func (m *GridMap[A, Ic]) IndexedIter() *IndexedIter[A, Ic] {
	return &IndexedIter[A, Ic]{c: newCursor(m, true, nil)}
}

// BoundedIter returns an iterator over the non-null cells inside box and
// their coordinates. Chunks whose extent does not overlap box are skipped
// without looking at their cells. The zero BoundingBox bounds nothing.
func (m *GridMap[A, Ic]) BoundedIter(box BoundingBox) *IndexedIter[A, Ic] {
	box = m.boxFor(box)
	return &IndexedIter[A, Ic]{c: newCursor(m, true, &box)}
}

// WithNulls makes the iterator yield null cells of resident chunks too.
// It must be called before the first call to Next.
func (it *IndexedIter[A, Ic]) WithNulls() *IndexedIter[A, Ic] {
	it.c.includeNulls()
	return it
}

// Next moves the iterator to the next cell.
func (it *IndexedIter[A, Ic]) Next() bool { return it.c.advance() }

// Value returns the current cell.
func (it *IndexedIter[A, Ic]) Value() A { return it.c.value() }

// Index returns the global coordinate of the current cell. The slice is
// owned by the caller.
func (it *IndexedIter[A, Ic]) Index() Index { return it.c.index }

// Culled returns the number of chunks skipped so far because they lie
// outside the bounding box.
func (it *IndexedIter[A, Ic]) Culled() int { return it.c.culled }

// IndexedIterMut is the mutable counterpart of IndexedIter.
type IndexedIterMut[A any, Ic constraints.Signed] struct {
	c cursor[A, Ic]
}

// IndexedIterMut returns a mutable iterator over the non-null cells of the
// map and their coordinates.
func (m *GridMap[A, Ic]) IndexedIterMut() *IndexedIterMut[A, Ic] {
	return &IndexedIterMut[A, Ic]{c: newCursor(m, true, nil)}
}

// BoundedIterMut returns a mutable iterator over the non-null cells inside
// box and their coordinates.
func (m *GridMap[A, Ic]) BoundedIterMut(box BoundingBox) *IndexedIterMut[A, Ic] {
	box = m.boxFor(box)
	return &IndexedIterMut[A, Ic]{c: newCursor(m, true, &box)}
}

// WithNulls makes the iterator yield null cells of resident chunks too.
// It must be called before the first call to Next.
func (it *IndexedIterMut[A, Ic]) WithNulls() *IndexedIterMut[A, Ic] {
	it.c.includeNulls()
	return it
}

// Next moves the iterator to the next cell.
func (it *IndexedIterMut[A, Ic]) Next() bool { return it.c.advance() }

// Value returns a pointer to the current cell, or nil once exhausted.
func (it *IndexedIterMut[A, Ic]) Value() *A { return it.c.ptr() }

// Index returns the global coordinate of the current cell.
func (it *IndexedIterMut[A, Ic]) Index() Index { return it.c.index }

// Culled returns the number of chunks skipped so far.
func (it *IndexedIterMut[A, Ic]) Culled() int { return it.c.culled }

// Values returns a sequence of the non-null cells of the map.
func (m *GridMap[A, Ic]) Values() iter.Seq[A] {
	return func(yield func(A) bool) {
		it := m.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// All returns a sequence of the non-null cells of the map keyed by their
// coordinates.
func (m *GridMap[A, Ic]) All() iter.Seq2[Index, A] {
	return func(yield func(Index, A) bool) {
		it := m.IndexedIter()
		for it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// Within returns a sequence of the non-null cells inside box keyed by
// their coordinates.
func (m *GridMap[A, Ic]) Within(box BoundingBox) iter.Seq2[Index, A] {
	return func(yield func(Index, A) bool) {
		it := m.BoundedIter(box)
		for it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}
