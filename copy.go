package gridmap

import "github.com/oschijns/gridmap/transform"

// CopyTo writes every occupied cell of m into target at its coordinate
// transformed by ts, applied in order. Cells of target that no transformed
// coordinate lands on are left untouched. The copy only adds non-null
// cells, so neither map needs pruning afterwards.
//
// target may be m itself; the source cells are then collected before the
// first write.
func (m *GridMap[A, Ic]) CopyTo(target *GridMap[A, Ic], ts ...transform.Transform) {
	m.copyFrom(target, m.IndexedIter(), ts)
}

// CopyToWithin is CopyTo restricted to the source cells inside box.
func (m *GridMap[A, Ic]) CopyToWithin(target *GridMap[A, Ic], box BoundingBox, ts ...transform.Transform) {
	m.copyFrom(target, m.BoundedIter(box), ts)
}

type cellAt[A any] struct {
	index Index
	cell  A
}

func (m *GridMap[A, Ic]) copyFrom(target *GridMap[A, Ic], it *IndexedIter[A, Ic], ts []transform.Transform) {
	target.checkDims(m.Dims())
	seq := transform.Sequence(ts)

	if target == m {
		var pending []cellAt[A]
		for it.Next() {
			pending = append(pending, cellAt[A]{index: it.Index(), cell: it.Value()})
		}
		m.debug("copying map onto itself", "cells", len(pending))
		for _, p := range pending {
			seq.Apply(p.index)
			m.Set(p.index, p.cell)
		}
		return
	}

	for it.Next() {
		index := it.Index()
		seq.Apply(index)
		target.Set(index, it.Value())
	}
}
