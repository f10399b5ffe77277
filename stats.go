package gridmap

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises chunk occupancy of a GridMap.
type Stats struct {
	// Chunks is the number of resident chunks.
	Chunks int
	// EmptyChunks counts resident chunks holding no occupied cell. It is
	// zero unless raw edits or mutable iteration nulled cells without a
	// following Prune.
	EmptyChunks int
	// ChunkVolume is the number of cells per chunk.
	ChunkVolume int
	// Occupied is the number of non-null cells.
	Occupied int
	// MeanFill and StdDevFill are the mean and standard deviation of the
	// per-chunk fraction of occupied cells. MaxFill is its maximum.
	MeanFill   float64
	StdDevFill float64
	MaxFill    float64
}

// Stats scans every resident chunk and reports occupancy figures.
func (m *GridMap[A, Ic]) Stats() Stats {
	s := Stats{Chunks: m.store.Len(), ChunkVolume: m.volume}
	if s.Chunks == 0 {
		return s
	}

	fill := make([]float64, 0, s.Chunks)
	m.store.Range(func(_ string, ch *Chunk[A, Ic]) bool {
		n := ch.Occupied()
		if n == 0 {
			s.EmptyChunks++
		}
		s.Occupied += n
		fill = append(fill, float64(n)/float64(m.volume))
		return true
	})

	if len(fill) > 1 {
		s.MeanFill, s.StdDevFill = stat.MeanStdDev(fill, nil)
	} else {
		s.MeanFill = fill[0]
	}
	s.MaxFill = floats.Max(fill)
	return s
}
