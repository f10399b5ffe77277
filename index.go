package gridmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SplitIndex splits a global coordinate into the coordinate of the chunk
// holding it and the local coordinate inside that chunk. Both use floor
// division, so local coordinates are always in [0, chunk size) even for
// negative global coordinates: with chunk size 12, -1 splits into chunk
// -1, local 11.
func (m *GridMap[A, Ic]) SplitIndex(index Index) (chunk []Ic, local []int) {
	m.checkDims(len(index))
	chunk = make([]Ic, len(index))
	local = make([]int, len(index))
	for d, i := range index {
		q, r := floorDivMod(i, int64(m.chunkDim[d]))
		chunk[d] = m.toChunkCoord(q)
		local[d] = int(r)
	}
	return chunk, local
}

// ChunkOf returns the coordinate of the chunk holding index.
func (m *GridMap[A, Ic]) ChunkOf(index Index) []Ic {
	chunk, _ := m.SplitIndex(index)
	return chunk
}

// JoinIndex rebuilds a global coordinate from a chunk coordinate and a
// local coordinate. It is the inverse of SplitIndex.
func (m *GridMap[A, Ic]) JoinIndex(chunk []Ic, local []int) Index {
	m.checkDims(len(chunk))
	m.checkDims(len(local))
	index := make(Index, len(chunk))
	for d, c := range chunk {
		index[d] = m.addBase(m.mulBase(int64(c), m.chunkDim[d]), int64(local[d]))
	}
	return index
}

// locate returns the store key of the chunk holding index and the
// row-major offset of the cell inside it, without allocating the chunk
// coordinate.
func (m *GridMap[A, Ic]) locate(index Index) (key string, offset int) {
	m.checkDims(len(index))
	var sb strings.Builder
	for d, i := range index {
		q, r := floorDivMod(i, int64(m.chunkDim[d]))
		if d > 0 {
			sb.WriteString(keySeparator)
		}
		sb.WriteString(strconv.FormatInt(int64(m.toChunkCoord(q)), 10))
		offset += int(r) * m.strides[d]
	}
	return sb.String(), offset
}

// floorDivMod returns the floor quotient of a by b and the matching
// remainder in [0, b). b must be positive.
func floorDivMod(a, b int64) (q, r int64) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

func (m *GridMap[A, Ic]) toChunkCoord(q int64) Ic {
	c := Ic(q)
	if m.checked && int64(c) != q {
		panic(fmt.Errorf("%w: chunk coordinate %d does not fit %T", ErrOverflow, q, c))
	}
	return c
}

// mulBase returns c*size, the global coordinate of a chunk's origin.
func (m *GridMap[A, Ic]) mulBase(c int64, size int) int64 {
	s := int64(size)
	if m.checked && c != 0 && (c > math.MaxInt64/s || c < math.MinInt64/s) {
		panic(fmt.Errorf("%w: chunk coordinate %d times chunk size %d", ErrOverflow, c, s))
	}
	return c * s
}

func (m *GridMap[A, Ic]) addBase(base, off int64) int64 {
	if m.checked && off > 0 && base > math.MaxInt64-off {
		panic(fmt.Errorf("%w: %d + %d", ErrOverflow, base, off))
	}
	return base + off
}

func (m *GridMap[A, Ic]) checkDims(n int) {
	if n != len(m.chunkDim) {
		panic(fmt.Sprintf("gridmap: index has %d dimensions, map has %d", n, len(m.chunkDim)))
	}
}
