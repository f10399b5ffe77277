package gridmap

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	// memoryStoreType is reported by the in-memory chunk store.
	memoryStoreType = "MemoryStore"

	// keySeparator is placed between chunk coordinates in a chunk key,
	// giving keys of the form "-1.0.3".
	keySeparator = "."
)

// chunkStore holds the resident chunks of a GridMap keyed by chunk key.
type chunkStore[A any, Ic constraints.Signed] interface {
	Get(key string) (*Chunk[A, Ic], bool)
	Put(key string, ch *Chunk[A, Ic])
	Delete(key string)
	Len() int
	// Range calls fn for every resident chunk in unspecified order until fn
	// returns false. fn may delete the chunk it is given.
	Range(fn func(key string, ch *Chunk[A, Ic]) bool)
	// Type names the store implementation.
	Type() string
}

type memoryStore[A any, Ic constraints.Signed] struct {
	data map[string]*Chunk[A, Ic]
}

var _ chunkStore[int, int] = (*memoryStore[int, int])(nil)

func newMemoryStore[A any, Ic constraints.Signed](capacity int) *memoryStore[A, Ic] {
	return &memoryStore[A, Ic]{
		data: make(map[string]*Chunk[A, Ic], capacity),
	}
}

func (s *memoryStore[A, Ic]) Type() string { return memoryStoreType }

func (s *memoryStore[A, Ic]) Get(key string) (*Chunk[A, Ic], bool) {
	ch, ok := s.data[key]
	return ch, ok
}

func (s *memoryStore[A, Ic]) Put(key string, ch *Chunk[A, Ic]) {
	s.data[key] = ch
}

func (s *memoryStore[A, Ic]) Delete(key string) {
	delete(s.data, key)
}

func (s *memoryStore[A, Ic]) Len() int { return len(s.data) }

func (s *memoryStore[A, Ic]) Range(fn func(key string, ch *Chunk[A, Ic]) bool) {
	for k, ch := range s.data {
		if !fn(k, ch) {
			return
		}
	}
}

// chunkKey builds the store key of a chunk coordinate.
func chunkKey[Ic constraints.Signed](coord []Ic) string {
	if len(coord) == 1 {
		return strconv.FormatInt(int64(coord[0]), 10)
	}

	var sb strings.Builder
	for i, c := range coord {
		if i > 0 {
			sb.WriteString(keySeparator)
		}
		sb.WriteString(strconv.FormatInt(int64(c), 10))
	}
	return sb.String()
}
