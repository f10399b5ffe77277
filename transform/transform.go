// Package transform provides pure coordinate-space maps used to move
// cells between grids: translation, mirroring and quarter-turn rotations.
//
// Transforms mutate a coordinate in place and hold no reference to it.
// Composition is ordered: rotating then translating is not the same as
// translating then rotating.
package transform

import "fmt"

// Transform maps a coordinate to another coordinate of the same length.
type Transform interface {
	// Apply transforms index in place.
	Apply(index []int64)
}

// Of returns a transformed copy of index, leaving index untouched.
func Of(t Transform, index []int64) []int64 {
	out := append([]int64(nil), index...)
	t.Apply(out)
	return out
}

// Sequence applies its transforms in order.
type Sequence []Transform

var _ Transform = Sequence(nil)

func (s Sequence) Apply(index []int64) {
	for _, t := range s {
		t.Apply(index)
	}
}

// Translate adds a constant offset on every axis.
type Translate []int64

func (t Translate) Apply(index []int64) {
	checkLen("Translate", len(t), len(index))
	for d, o := range t {
		index[d] += o
	}
}

// Mirror negates the coordinate on every axis whose flag is set.
type Mirror []bool

func (m Mirror) Apply(index []int64) {
	checkLen("Mirror", len(m), len(index))
	for d, flip := range m {
		if flip {
			index[d] = -index[d]
		}
	}
}

func checkLen(name string, want, got int) {
	if want != got {
		panic(fmt.Sprintf("transform: %s has %d dimensions, index has %d", name, want, got))
	}
}
