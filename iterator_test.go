package gridmap

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains an indexed iterator into a coordinate-keyed map.
func collect[A any](it *IndexedIter[A, int]) map[string]A {
	out := map[string]A{}
	for it.Next() {
		out[fmt.Sprint(it.Index())] = it.Value()
	}
	return out
}

func fill(m *Map[int], cells map[string]int, idx Index, v int) {
	m.Set(idx, v)
	cells[fmt.Sprint(idx)] = v
}

func TestIter_Values(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{0, 0}, 3)
	m.Set(Index{1, 0}, 1)
	m.Set(Index{-9, 20}, 2)

	var got []int
	it := m.Iter()
	for it.Next() {
		got = append(got, it.Value())
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 2, 3}, got)

	assert.False(t, it.Next())
	assert.False(t, it.Next(), "exhausted iterator stays exhausted")
	assert.Equal(t, 0, it.Value())
}

func TestIter_Empty(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4)
	assert.False(t, m.Iter().Next())
	assert.False(t, m.IndexedIter().Next())
	assert.Nil(t, m.IterMut().Value())
}

func TestIter_WithNulls(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{1, 2}, 7)

	n, nulls := 0, 0
	it := m.Iter().WithNulls()
	for it.Next() {
		n++
		if it.Value() == 0 {
			nulls++
		}
	}
	assert.Equal(t, 16, n)
	assert.Equal(t, 15, nulls)

	started := m.Iter()
	started.Next()
	assert.Panics(t, func() { started.WithNulls() })
}

func TestIndexedIter_RowMajorOrder(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 2, 2)
	m.Set(Index{-1, -1}, 4)
	m.Set(Index{-2, -1}, 2)
	m.Set(Index{-1, -2}, 3)
	m.Set(Index{-2, -2}, 1)

	var order []Index
	var vals []int
	it := m.IndexedIter()
	for it.Next() {
		order = append(order, it.Index())
		vals = append(vals, it.Value())
	}
	want := []Index{{-2, -2}, {-2, -1}, {-1, -2}, {-1, -1}}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, vals)
}

func TestIndexedIter_Coordinates(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 3, 5)
	want := map[string]int{}
	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 300; i++ {
		idx := Index{r.Int64N(80) - 40, r.Int64N(80) - 40}
		fill(m, want, idx, r.IntN(9)+1)
	}

	got := collect(m.IndexedIter())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("indexed cells mismatch (-want +got):\n%s", diff)
	}
}

func TestIterMut_InPlace(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{0, 0}, 1)
	m.Set(Index{5, 5}, 2)

	it := m.IterMut()
	for it.Next() {
		*it.Value() *= 10
	}
	assert.Equal(t, 10, m.Get(Index{0, 0}))
	assert.Equal(t, 20, m.Get(Index{5, 5}))
	assert.Nil(t, it.Value())

	// nulling through a mutable iterator leaves the chunks resident
	it = m.IterMut()
	for it.Next() {
		*it.Value() = 0
	}
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, m.Prune())
	assert.Equal(t, 0, m.Len())
}

func TestIndexedIterMut(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{1, 1}, 1)
	m.Set(Index{-3, 6}, 1)

	it := m.IndexedIterMut()
	for it.Next() {
		idx := it.Index()
		*it.Value() = int(idx[0]*100 + idx[1])
	}
	assert.Equal(t, 101, m.Get(Index{1, 1}))
	assert.Equal(t, -294, m.Get(Index{-3, 6}))
}

func TestBoundedIter_Culling(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{1, 1}, 1)
	m.Set(Index{100, 100}, 2)
	m.Set(Index{-50, 3}, 3)

	box, err := NewBoundingBox(Index{0, 0}, Index{4, 4})
	require.NoError(t, err)

	it := m.BoundedIter(box)
	got := collect(it)
	assert.Equal(t, map[string]int{"[1 1]": 1}, got)
	assert.Equal(t, 2, it.Culled())
}

func TestBoundedIter_PartialChunk(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	for _, idx := range []Index{{1, 1}, {3, 3}, {5, 5}, {6, 6}, {2, 6}} {
		m.Set(idx, 1)
	}

	box, err := NewBoundingBox(Index{2, 2}, Index{6, 6})
	require.NoError(t, err)

	got := collect(m.BoundedIter(box))
	assert.Equal(t, map[string]int{"[3 3]": 1, "[5 5]": 1}, got)
}

func TestBoundedIter_MatchesFilteredIndexed(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(3, 9))
	m := newTestMap(t, 4, 6)
	for i := 0; i < 400; i++ {
		m.Set(Index{r.Int64N(100) - 50, r.Int64N(100) - 50}, r.IntN(5)+1)
	}
	all := collect(m.IndexedIter())

	for i := 0; i < 50; i++ {
		x0, y0 := r.Int64N(120)-60, r.Int64N(120)-60
		box := BoundingBox{
			Start: Index{x0, y0},
			End:   Index{x0 + r.Int64N(40), y0 + r.Int64N(40)},
		}

		want := map[string]int{}
		it := m.IndexedIter()
		for it.Next() {
			if box.Contains(it.Index()) {
				want[fmt.Sprint(it.Index())] = it.Value()
			}
		}

		got := collect(m.BoundedIter(box))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("box %v (-want +got):\n%s", box, diff)
		}
		for k := range got {
			require.Contains(t, all, k)
		}
	}
}

func TestBoundedIter_Unbounded(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{-1000, 1000}, 1)
	m.Set(Index{0, 0}, 2)

	got := collect(m.BoundedIter(Unbounded(2)))
	assert.Equal(t, collect(m.IndexedIter()), got)
}

func TestBoundedIterMut(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{0, 0}, 1)
	m.Set(Index{10, 10}, 1)

	box, err := NewBoundingBox(Index{-5, -5}, Index{5, 5})
	require.NoError(t, err)

	it := m.BoundedIterMut(box)
	for it.Next() {
		*it.Value() = 9
	}
	assert.Equal(t, 9, m.Get(Index{0, 0}))
	assert.Equal(t, 1, m.Get(Index{10, 10}))
	assert.Equal(t, 1, it.Culled())
}

func TestRangeFuncs(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{0, 0}, 1)
	m.Set(Index{2, 9}, 2)
	m.Set(Index{-7, -7}, 3)

	sum := 0
	for v := range m.Values() {
		sum += v
	}
	assert.Equal(t, 6, sum)

	got := map[string]int{}
	for idx, v := range m.All() {
		got[fmt.Sprint(idx)] = v
	}
	assert.Equal(t, map[string]int{"[0 0]": 1, "[2 9]": 2, "[-7 -7]": 3}, got)

	box, err := NewBoundingBox(Index{-8, -8}, Index{1, 1})
	require.NoError(t, err)
	got = map[string]int{}
	for idx, v := range m.Within(box) {
		got[fmt.Sprint(idx)] = v
	}
	assert.Equal(t, map[string]int{"[0 0]": 1, "[-7 -7]": 3}, got)

	n := 0
	for range m.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
