// Package gridmap implements a sparse, chunked, N-dimensional grid: a
// mapping from integer coordinates to cell values backed by dense
// fixed-size chunks that are allocated on first write and reclaimed once
// every cell in them is null.
//
// A GridMap is not safe for concurrent use. Readers may share a map only
// while no writer or mutable iterator is active.
package gridmap

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/exp/constraints"
)

// Index is a global cell coordinate, one element per axis.
type Index []int64

// IndexOf builds an Index from any integer coordinate type.
func IndexOf[I constraints.Integer](xs ...I) Index {
	idx := make(Index, len(xs))
	for i, x := range xs {
		idx[i] = int64(x)
	}
	return idx
}

// GridMap stores cells of type A in chunks addressed by coordinates of
// the signed integer type Ic.
//
// Chunk coordinates that do not fit Ic wrap around, so an index far
// enough out aliases a cell of another chunk: with Ic int8 and chunk size
// 2, Index{256} and Index{-256} name the same cell. Use
// WithCheckedArithmetic to panic instead.
type GridMap[A any, Ic constraints.Signed] struct {
	ct       CellType[A]
	chunkDim []int
	strides  []int
	volume   int
	store    chunkStore[A, Ic]
	// empty is returned for reads that miss every resident chunk.
	empty   A
	log     *slog.Logger
	checked bool
}

// Map is a GridMap with machine-word chunk coordinates.
type Map[A any] = GridMap[A, int]

// New creates an empty GridMap whose chunks have size chunkDim[d] on axis
// d. The number of dimensions of the map is len(chunkDim). No chunk is
// allocated until the first non-null write.
func New[A any, Ic constraints.Signed](ct CellType[A], chunkDim []int, opts ...Option) (*GridMap[A, Ic], error) {
	if len(chunkDim) == 0 {
		return nil, ErrNoDimensions
	}
	volume := 1
	for d, s := range chunkDim {
		if s <= 0 {
			return nil, fmt.Errorf("%w: axis %d has size %d", ErrInvalidChunkDim, d, s)
		}
		volume *= s
	}
	if err := checkCellType(ct); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}

	dims := append([]int(nil), chunkDim...)
	return &GridMap[A, Ic]{
		ct:       ct,
		chunkDim: dims,
		strides:  rowMajorStrides(dims),
		volume:   volume,
		store:    newMemoryStore[A, Ic](o.capacity),
		empty:    ct.Null(),
		log:      o.log.With("component", "gridmap"),
		checked:  o.checked,
	}, nil
}

// Default creates an empty GridMap of dims dimensions with chunks of
// DefaultChunkSize on every axis.
func Default[A any, Ic constraints.Signed](ct CellType[A], dims int, opts ...Option) (*GridMap[A, Ic], error) {
	chunkDim := make([]int, dims)
	for d := range chunkDim {
		chunkDim[d] = DefaultChunkSize
	}
	return New[A, Ic](ct, chunkDim, opts...)
}

// NewNumeric creates an empty Map of numbers, where zero is the null cell.
func NewNumeric[N Number](chunkDim ...int) (*Map[N], error) {
	return New[N, int](Numeric[N]{}, chunkDim)
}

// Dims returns the number of dimensions of the map.
func (m *GridMap[A, Ic]) Dims() int { return len(m.chunkDim) }

// ChunkDim returns the chunk size on every axis.
func (m *GridMap[A, Ic]) ChunkDim() []int {
	return append([]int(nil), m.chunkDim...)
}

// ChunkVolume returns the number of cells in one chunk.
func (m *GridMap[A, Ic]) ChunkVolume() int { return m.volume }

// CellType returns the cell capability of the map.
func (m *GridMap[A, Ic]) CellType() CellType[A] { return m.ct }

// Len returns the number of resident chunks.
func (m *GridMap[A, Ic]) Len() int { return m.store.Len() }

func (m *GridMap[A, Ic]) Info() string {
	return fmt.Sprintf("<gridmap.GridMap dims=%d chunk=%v chunks=%d>", m.Dims(), m.chunkDim, m.Len())
}

// Get returns the cell at index, or the null cell if no chunk holds it.
// Get never allocates a chunk.
func (m *GridMap[A, Ic]) Get(index Index) A {
	key, off := m.locate(index)
	if ch, ok := m.store.Get(key); ok {
		return ch.cells[off]
	}
	return m.empty
}

// Set writes cell at index. A non-null cell allocates its chunk on demand.
// A null cell clears the slot if its chunk is resident, and evicts the
// chunk if that left it fully null; setting null where no chunk exists is
// a no-op. Each null write scans the whole chunk, so bulk clears are
// cheaper done through IterMut or Chunk.Cells followed by Prune.
func (m *GridMap[A, Ic]) Set(index Index, cell A) {
	key, off := m.locate(index)
	ch, ok := m.store.Get(key)

	if m.ct.IsNull(cell) {
		if !ok {
			return
		}
		ch.cells[off] = cell
		if ch.IsEmpty() {
			m.store.Delete(key)
			m.debug("evicted chunk", "chunk", key)
		}
		return
	}

	if !ok {
		ch = m.newChunk(m.ChunkOf(index))
		m.store.Put(key, ch)
	}
	ch.cells[off] = cell
}

// Ptr returns a pointer to the cell at index, allocating its chunk if it
// is not resident. Writing a null value through the pointer does not
// evict the chunk; call TryFreeChunk or Prune afterwards.
func (m *GridMap[A, Ic]) Ptr(index Index) *A {
	key, off := m.locate(index)
	ch, ok := m.store.Get(key)
	if !ok {
		ch = m.newChunk(m.ChunkOf(index))
		m.store.Put(key, ch)
	}
	return &ch.cells[off]
}

// Chunk returns the resident chunk at chunk coordinate coord, or nil.
// Edits made through the chunk are not checked for eviction.
func (m *GridMap[A, Ic]) Chunk(coord []Ic) *Chunk[A, Ic] {
	m.checkDims(len(coord))
	ch, _ := m.store.Get(chunkKey(coord))
	return ch
}

// TryFreeChunk evicts the chunk at coord if every cell in it is null and
// reports whether it did.
func (m *GridMap[A, Ic]) TryFreeChunk(coord []Ic) bool {
	m.checkDims(len(coord))
	key := chunkKey(coord)
	ch, ok := m.store.Get(key)
	if !ok || !ch.IsEmpty() {
		return false
	}
	m.store.Delete(key)
	m.debug("evicted chunk", "chunk", key)
	return true
}

// Prune evicts every resident chunk that is fully null and returns how
// many were evicted.
func (m *GridMap[A, Ic]) Prune() int {
	n := 0
	m.store.Range(func(key string, ch *Chunk[A, Ic]) bool {
		if ch.IsEmpty() {
			m.store.Delete(key)
			n++
		}
		return true
	})
	if n > 0 {
		m.debug("pruned chunks", "evicted", n, "resident", m.store.Len())
	}
	return n
}

// Clear drops every resident chunk.
func (m *GridMap[A, Ic]) Clear() {
	m.store.Range(func(key string, _ *Chunk[A, Ic]) bool {
		m.store.Delete(key)
		return true
	})
}

// ChunkCoords returns the coordinates of the resident chunks in
// unspecified order.
func (m *GridMap[A, Ic]) ChunkCoords() [][]Ic {
	coords := make([][]Ic, 0, m.store.Len())
	m.store.Range(func(_ string, ch *Chunk[A, Ic]) bool {
		coords = append(coords, ch.Coord())
		return true
	})
	return coords
}

// chunks snapshots the resident chunks.
func (m *GridMap[A, Ic]) chunks() []*Chunk[A, Ic] {
	chs := make([]*Chunk[A, Ic], 0, m.store.Len())
	m.store.Range(func(_ string, ch *Chunk[A, Ic]) bool {
		chs = append(chs, ch)
		return true
	})
	return chs
}

func (m *GridMap[A, Ic]) debug(msg string, args ...any) {
	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug(msg, args...)
	}
}
