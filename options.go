package gridmap

import "log/slog"

// Option configures a GridMap at construction.
type Option func(*options)

type options struct {
	capacity int
	log      *slog.Logger
	checked  bool
}

func defaultOptions() *options {
	return &options{}
}

// WithCapacity reserves room for n resident chunks without allocating them.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
// If nil or unset, defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithCheckedArithmetic makes coordinate arithmetic panic with ErrOverflow
// instead of silently wrapping when a chunk coordinate does not fit the
// chunk coordinate type or a chunk base offset overflows int64.
func WithCheckedArithmetic() Option {
	return func(o *options) {
		o.checked = true
	}
}
