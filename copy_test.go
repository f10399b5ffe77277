package gridmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oschijns/gridmap/transform"
)

func cellsOf(m *Map[int]) map[string]int {
	out := map[string]int{}
	for idx, v := range m.All() {
		out[fmt.Sprint(idx)] = v
	}
	return out
}

func TestCopyTo_Translate(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4)
	dst := newTestMap(t, 4, 4)
	src.Set(Index{0, 0}, 1)

	src.CopyTo(dst, transform.Translate{5, 0})

	assert.Equal(t, map[string]int{"[5 0]": 1}, cellsOf(dst))
	assert.Equal(t, map[string]int{"[0 0]": 1}, cellsOf(src), "source unchanged")
}

func TestCopyTo_Overlay(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4)
	dst := newTestMap(t, 8, 2)
	src.Set(Index{0, 0}, 1)
	src.Set(Index{1, 0}, 2)
	dst.Set(Index{9, 9}, 7)
	dst.Set(Index{1, 0}, 5)

	src.CopyTo(dst)

	assert.Equal(t, map[string]int{"[0 0]": 1, "[1 0]": 2, "[9 9]": 7}, cellsOf(dst))
}

func TestCopyTo_Rotate(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4)
	dst := newTestMap(t, 4, 4)
	src.Set(Index{1, 2}, 3)

	src.CopyTo(dst, transform.Rotate2{Rotation: transform.Quarter})
	assert.Equal(t, map[string]int{"[-2 1]": 3}, cellsOf(dst))
}

func TestCopyTo_OrderMatters(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4)
	src.Set(Index{1, 0}, 1)

	rot := transform.Rotate2{Rotation: transform.Quarter}
	move := transform.Translate{10, 0}

	a := newTestMap(t, 4, 4)
	src.CopyTo(a, rot, move)
	assert.Equal(t, map[string]int{"[10 1]": 1}, cellsOf(a))

	b := newTestMap(t, 4, 4)
	src.CopyTo(b, move, rot)
	assert.Equal(t, map[string]int{"[0 11]": 1}, cellsOf(b))
}

func TestCopyToWithin(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4)
	dst := newTestMap(t, 4, 4)
	src.Set(Index{0, 0}, 1)
	src.Set(Index{3, 3}, 2)
	src.Set(Index{20, 20}, 3)

	box, err := NewBoundingBox(Index{0, 0}, Index{3, 4})
	require.NoError(t, err)

	src.CopyToWithin(dst, box, transform.Mirror{true, false})
	assert.Equal(t, map[string]int{"[0 0]": 1}, cellsOf(dst))

	src.CopyToWithin(dst, box.HalfOpen())
	assert.Equal(t, map[string]int{"[0 0]": 1, "[3 3]": 2}, cellsOf(dst))
}

func TestCopyTo_Self(t *testing.T) {
	t.Parallel()

	m := newTestMap(t, 4, 4)
	m.Set(Index{0, 0}, 1)
	m.Set(Index{1, 0}, 2)

	m.CopyTo(m, transform.Translate{1, 0})

	assert.Equal(t, map[string]int{"[0 0]": 1, "[1 0]": 1, "[2 0]": 2}, cellsOf(m))
}

func TestCopyTo_3D(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4, 4)
	dst := newTestMap(t, 4, 4, 4)
	src.Set(Index{1, 2, 3}, 1)

	src.CopyTo(dst,
		transform.Rotate3{Axis: transform.Z, Rotation: transform.Quarter},
		transform.Translate{0, 0, -3},
	)
	assert.Equal(t, map[string]int{"[-2 1 0]": 1}, cellsOf(dst))
}

func TestCopyTo_DimensionMismatch(t *testing.T) {
	t.Parallel()

	src := newTestMap(t, 4, 4)
	dst := newTestMap(t, 4, 4, 4)
	src.Set(Index{0, 0}, 1)
	assert.Panics(t, func() { src.CopyTo(dst) })
}
