package transform

import "fmt"

// Rotation is a multiple of a quarter turn.
type Rotation uint8

const (
	// None leaves the coordinate unchanged.
	None Rotation = iota
	// Quarter rotates by 90°.
	Quarter
	// Half rotates by 180°.
	Half
	// ThreeQuarters rotates by 270°, that is -90°.
	ThreeQuarters
)

// Turns returns the rotation of k quarter turns, k taken modulo 4.
func Turns(k int) Rotation {
	return Rotation(((k % 4) + 4) % 4)
}

func (r Rotation) String() string {
	switch r {
	case None:
		return "0°"
	case Quarter:
		return "90°"
	case Half:
		return "180°"
	case ThreeQuarters:
		return "270°"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Axis is one of the three cardinal axes of a 3D grid.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// Rotate2 rotates a 2D coordinate about the origin.
//
//	90°:  (x, y) -> (-y, x)
//	180°: (x, y) -> (-x, -y)
//	270°: (x, y) -> (y, -x)
type Rotate2 struct {
	Rotation Rotation
}

func (r Rotate2) Apply(index []int64) {
	checkLen("Rotate2", 2, len(index))
	x, y := index[0], index[1]

	switch r.Rotation {
	case Half:
		index[0], index[1] = -x, -y
	case Quarter:
		index[0], index[1] = -y, x
	case ThreeQuarters:
		index[0], index[1] = y, -x
	}
}

// Rotate3 rotates a 3D coordinate by a quarter-turn multiple about one
// cardinal axis. LeftHanded flips the direction of the 90° and 270°
// turns to match a left-handed coordinate system. Compose several
// Rotate3 values for rotations about more than one axis.
type Rotate3 struct {
	Axis       Axis
	Rotation   Rotation
	LeftHanded bool
}

func (r Rotate3) Apply(index []int64) {
	checkLen("Rotate3", 3, len(index))
	x, y, z := index[0], index[1], index[2]

	rot := r.Rotation
	if r.LeftHanded {
		switch rot {
		case Quarter:
			rot = ThreeQuarters
		case ThreeQuarters:
			rot = Quarter
		}
	}

	switch r.Axis {
	case X:
		switch rot {
		case Half:
			index[1], index[2] = -y, -z
		case Quarter:
			index[1], index[2] = -z, y
		case ThreeQuarters:
			index[1], index[2] = z, -y
		}
	case Y:
		switch rot {
		case Half:
			index[0], index[2] = -x, -z
		case Quarter:
			index[0], index[2] = z, -x
		case ThreeQuarters:
			index[0], index[2] = -z, x
		}
	case Z:
		switch rot {
		case Half:
			index[0], index[1] = -x, -y
		case Quarter:
			index[0], index[1] = -y, x
		case ThreeQuarters:
			index[0], index[1] = y, -x
		}
	}
}
