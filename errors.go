package gridmap

import "errors"

// Construction errors. Reads and writes on a GridMap never fail; only
// building a map or a bounding box can.
var (
	ErrNoDimensions      = errors.New("grid needs at least one dimension")
	ErrInvalidChunkDim   = errors.New("chunk size must be positive")
	ErrNullMismatch      = errors.New("cell type null and zero value disagree")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrOverflow          = errors.New("coordinate overflow")
)

// DefaultChunkSize is the per-axis chunk size used by Default.
const DefaultChunkSize = 12
