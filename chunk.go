package gridmap

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Chunk is a dense, fixed-size tile of cells stored in row-major order:
// the last axis varies fastest. It is the unit of allocation and eviction
// of a GridMap.
//
// Writing through a Chunk bypasses the eviction check of GridMap.Set. A
// chunk emptied this way stays resident until GridMap.TryFreeChunk or
// GridMap.Prune is called.
type Chunk[A any, Ic constraints.Signed] struct {
	coord   []Ic
	base    Index
	shape   []int
	strides []int
	cells   []A
	ct      CellType[A]
}

func (m *GridMap[A, Ic]) newChunk(coord []Ic) *Chunk[A, Ic] {
	base := make(Index, len(coord))
	for d, c := range coord {
		base[d] = m.mulBase(int64(c), m.chunkDim[d])
	}
	return &Chunk[A, Ic]{
		coord:   coord,
		base:    base,
		shape:   m.chunkDim,
		strides: m.strides,
		cells:   make([]A, m.volume),
		ct:      m.ct,
	}
}

// Coord returns the chunk coordinate.
func (c *Chunk[A, Ic]) Coord() []Ic {
	return append([]Ic(nil), c.coord...)
}

// Shape returns the size of the chunk on every axis.
func (c *Chunk[A, Ic]) Shape() []int {
	return append([]int(nil), c.shape...)
}

// Len returns the number of cells in the chunk, occupied or not.
func (c *Chunk[A, Ic]) Len() int { return len(c.cells) }

// Base returns the global coordinate of the chunk's local origin.
func (c *Chunk[A, Ic]) Base() Index {
	return append(Index(nil), c.base...)
}

// Bounds returns the half-open extent covered by the chunk.
func (c *Chunk[A, Ic]) Bounds() BoundingBox {
	end := make(Index, len(c.base))
	for d, b := range c.base {
		end[d] = b + int64(c.shape[d])
	}
	return BoundingBox{Start: c.Base(), End: end}
}

// At returns the cell at local coordinate local.
func (c *Chunk[A, Ic]) At(local []int) A {
	return c.cells[c.offset(local)]
}

// Set writes v at local coordinate local. Writing a null value does not
// evict the chunk.
func (c *Chunk[A, Ic]) Set(local []int, v A) {
	c.cells[c.offset(local)] = v
}

// Cells returns the backing row-major slice for bulk edits.
func (c *Chunk[A, Ic]) Cells() []A { return c.cells }

// IsEmpty reports whether every cell of the chunk is null. It scans the
// whole chunk.
func (c *Chunk[A, Ic]) IsEmpty() bool {
	for _, v := range c.cells {
		if !c.ct.IsNull(v) {
			return false
		}
	}
	return true
}

// Occupied returns the number of non-null cells.
func (c *Chunk[A, Ic]) Occupied() int {
	n := 0
	for _, v := range c.cells {
		if !c.ct.IsNull(v) {
			n++
		}
	}
	return n
}

func (c *Chunk[A, Ic]) String() string {
	return fmt.Sprintf("<gridmap.Chunk %s>", chunkKey(c.coord))
}

func (c *Chunk[A, Ic]) offset(local []int) int {
	if len(local) != len(c.shape) {
		panic(fmt.Sprintf("gridmap: local coordinate has %d dimensions, chunk has %d", len(local), len(c.shape)))
	}
	off := 0
	for d, l := range local {
		if l < 0 || l >= c.shape[d] {
			panic(fmt.Sprintf("gridmap: local coordinate %v out of chunk shape %v", local, c.shape))
		}
		off += l * c.strides[d]
	}
	return off
}

// rowMajorStrides returns the element strides of a row-major array of
// the given shape.
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	strides[len(shape)-1] = 1
	for d := len(shape) - 2; d >= 0; d-- {
		strides[d] = strides[d+1] * shape[d+1]
	}
	return strides
}

// advance steps local to the next coordinate in row-major order.
func advance(local, shape []int) {
	for d := len(local) - 1; d >= 0; d-- {
		local[d]++
		if local[d] < shape[d] {
			return
		}
		local[d] = 0
	}
}
