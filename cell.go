package gridmap

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// CellType describes how values of type A represent an empty cell.
// A GridMap never inspects cell contents beyond this predicate.
//
// The Go zero value of A is what a freshly allocated chunk holds, so
// IsNull must report true for it as well as for Null().
type CellType[A any] interface {
	// Null returns the sentinel used for cells that hold nothing.
	Null() A
	// IsNull reports whether a is an empty cell.
	IsNull(a A) bool
}

// Number is the set of value types whose additive zero is the null cell.
type Number interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// Numeric is the cell type of plain numbers: zero is null.
type Numeric[N Number] struct{}

var _ CellType[float64] = Numeric[float64]{}

func (Numeric[N]) Null() N { return 0 }

func (Numeric[N]) IsNull(n N) bool { return n == 0 }

// Opt wraps a value that may be absent. The zero Opt is absent.
type Opt[T any] struct {
	value T
	valid bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] { return Opt[T]{value: v, valid: true} }

// None returns an absent Opt.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the wrapped value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.value, o.valid }

// Valid reports whether a value is present.
func (o Opt[T]) Valid() bool { return o.valid }

func (o Opt[T]) String() string {
	if !o.valid {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Optional is the cell type of Opt values: an absent value is null.
type Optional[T any] struct{}

var _ CellType[Opt[int]] = Optional[int]{}

func (Optional[T]) Null() Opt[T] { return Opt[T]{} }

func (Optional[T]) IsNull(o Opt[T]) bool { return !o.valid }

// Nullable is implemented by value types that know their own emptiness.
type Nullable interface {
	IsNull() bool
}

// Self is the cell type of values implementing Nullable. Null is the zero
// value of A.
type Self[A Nullable] struct{}

func (Self[A]) Null() A {
	var a A
	return a
}

func (Self[A]) IsNull(a A) bool { return a.IsNull() }

// checkCellType verifies the null sentinel and the zero value agree.
func checkCellType[A any](ct CellType[A]) error {
	if ct == nil {
		return fmt.Errorf("%w: nil cell type", ErrNullMismatch)
	}
	if !ct.IsNull(ct.Null()) {
		return fmt.Errorf("%w: Null() is not null", ErrNullMismatch)
	}
	var zero A
	if !ct.IsNull(zero) {
		return fmt.Errorf("%w: zero value %v is not null", ErrNullMismatch, zero)
	}
	return nil
}
