package gridmap

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned region of the grid, half-open on every
// axis: [Start[d], End[d]).
//
// Boxes returned by GridMap.Boundaries are the exception: their End is
// the last occupied coordinate, inclusive. Use HalfOpen to turn such a box
// into one suitable for Contains, OverlapsWith or bounded iteration.
//
// The zero BoundingBox has no axes and is unbounded: it contains every
// index and overlaps every box, whatever their dimensions. Any other box
// panics when tested against an index or box of a different dimension.
type BoundingBox struct {
	Start Index
	End   Index
}

// Unbounded returns a box of dims dimensions spanning every representable
// coordinate.
func Unbounded(dims int) BoundingBox {
	b := BoundingBox{Start: make(Index, dims), End: make(Index, dims)}
	for d := 0; d < dims; d++ {
		b.Start[d] = math.MinInt64
		b.End[d] = math.MaxInt64
	}
	return b
}

// NewBoundingBox returns the half-open box [start, end).
func NewBoundingBox(start, end Index) (BoundingBox, error) {
	if len(start) != len(end) {
		return BoundingBox{}, fmt.Errorf("%w: start has %d dimensions, end has %d", ErrDimensionMismatch, len(start), len(end))
	}
	return BoundingBox{
		Start: append(Index(nil), start...),
		End:   append(Index(nil), end...),
	}, nil
}

// Dims returns the number of dimensions of the box.
func (b BoundingBox) Dims() int { return len(b.Start) }

// Contains reports whether Start[d] <= index[d] < End[d] on every axis.
func (b BoundingBox) Contains(index Index) bool {
	if b.Dims() == 0 {
		return true
	}
	b.checkDims(len(index))
	for d, i := range index {
		if !(b.Start[d] <= i && i < b.End[d]) {
			return false
		}
	}
	return true
}

// OverlapsWith reports whether the two boxes intersect on every axis.
// Boxes that merely touch count as overlapping, which keeps chunk culling
// conservative.
func (b BoundingBox) OverlapsWith(other BoundingBox) bool {
	if b.Dims() == 0 || other.Dims() == 0 {
		return true
	}
	b.checkDims(other.Dims())
	for d := range b.Start {
		if !(b.Start[d] <= other.End[d] && other.Start[d] <= b.End[d]) {
			return false
		}
	}
	return true
}

// HalfOpen returns a copy of b with End moved one past on every axis,
// saturating at math.MaxInt64.
func (b BoundingBox) HalfOpen() BoundingBox {
	out := BoundingBox{
		Start: append(Index(nil), b.Start...),
		End:   make(Index, len(b.End)),
	}
	for d, e := range b.End {
		if e == math.MaxInt64 {
			out.End[d] = e
			continue
		}
		out.End[d] = e + 1
	}
	return out
}

func (b BoundingBox) checkDims(n int) {
	if n != b.Dims() {
		panic(fmt.Sprintf("gridmap: index has %d dimensions, box has %d", n, b.Dims()))
	}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%v, %v)", []int64(b.Start), []int64(b.End))
}

// Boundaries returns the tightest box around the occupied cells of the
// map, with an inclusive End. ok is false when no chunk is resident.
//
// Boundaries assumes no fully-null chunk is resident; call Prune first
// after raw chunk edits or mutable iteration. Only chunks lying on the
// chunk-space boundary in some direction are scanned cell by cell.
func (m *GridMap[A, Ic]) Boundaries() (box BoundingBox, ok bool) {
	if m.store.Len() == 0 {
		return BoundingBox{}, false
	}
	dims := m.Dims()

	chunkMin := make([]Ic, dims)
	chunkMax := make([]Ic, dims)
	first := true
	m.store.Range(func(_ string, ch *Chunk[A, Ic]) bool {
		for d, c := range ch.coord {
			if first || c < chunkMin[d] {
				chunkMin[d] = c
			}
			if first || c > chunkMax[d] {
				chunkMax[d] = c
			}
		}
		first = false
		return true
	})

	start := make(Index, dims)
	end := make(Index, dims)
	for d := 0; d < dims; d++ {
		start[d] = math.MaxInt64
		end[d] = math.MinInt64
	}

	local := make([]int, dims)
	m.store.Range(func(key string, ch *Chunk[A, Ic]) bool {
		var lo, hi []bool
		for d, c := range ch.coord {
			if c == chunkMin[d] {
				if lo == nil {
					lo = make([]bool, dims)
				}
				lo[d] = true
			}
			if c == chunkMax[d] {
				if hi == nil {
					hi = make([]bool, dims)
				}
				hi[d] = true
			}
		}
		if lo == nil && hi == nil {
			return true
		}

		found := false
		clear(local)
		for _, v := range ch.cells {
			if !m.ct.IsNull(v) {
				found = true
				for d, l := range local {
					i := ch.base[d] + int64(l)
					if lo != nil && lo[d] && i < start[d] {
						start[d] = i
					}
					if hi != nil && hi[d] && i > end[d] {
						end[d] = i
					}
				}
			}
			advance(local, ch.shape)
		}
		if !found {
			m.log.Warn("boundaries found a fully null extremal chunk; call Prune first", "chunk", key)
		}
		return true
	})

	return BoundingBox{Start: start, End: end}, true
}
