package race

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a position or direction on the XZ ground plane.
type Vec2 struct {
	X, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Z - o.Z} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Z * s} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Z * o.Z} }
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Z} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Z*o.Z }

// Length returns the squared length. Use Magnitude for the true length.
func (v Vec2) Length() float64 { return v.X*v.X + v.Z*v.Z }

func (v Vec2) Magnitude() float64 { return math.Sqrt(v.Length()) }

// Normal returns the unit vector, or the zero vector when v has no length.
func (v Vec2) Normal() Vec2 {
	l := v.Magnitude()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Z / l}
}

// Less and Greater compare squared lengths.
func (v Vec2) Less(o Vec2) bool { return v.Length() < o.Length() }
func (v Vec2) Greater(o Vec2) bool { return v.Length() > o.Length() }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Z == 0 }

func (v Vec2) Vec3(y float64) Vec3 { return Vec3{v.X, y, v.Z} }

// Vec3 is a world-space vector, Y up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Length returns the squared length.
func (v Vec3) Length() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Normal() Vec3 {
	l := math.Sqrt(v.Length())
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vec3) Less(o Vec3) bool { return v.Length() < o.Length() }
func (v Vec3) Greater(o Vec3) bool { return v.Length() > o.Length() }
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// XZ drops the height component.
func (v Vec3) XZ() Vec2 { return Vec2{v.X, v.Z} }

// FacingVector returns the ground-plane forward axis of a model rotated by
// yaw degrees about Y.
func FacingVector(yaw float64) Vec2 {
	fwd := mgl64.HomogRotate3DY(mgl64.DegToRad(yaw)).Col(2)
	return Vec2{fwd.X(), fwd.Z()}
}

// LookAt returns the yaw in degrees that points from from to to. When the
// points coincide the current yaw is kept.
func LookAt(from, to Vec2, current float64) float64 {
	d := to.Sub(from)
	if d.IsZero() {
		return current
	}
	return mgl64.RadToDeg(math.Atan2(d.X, d.Z))
}
