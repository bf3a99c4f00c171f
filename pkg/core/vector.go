package core

import "github.com/chewxy/math32"

// Vector3 is a world-space vector in engine units (centimeters, Z up).
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the euclidean length of v.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalized returns v with unit length. The zero vector is returned unchanged.
func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Quat is a rotation quaternion.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a quaternion rotating angle radians around axis.
// The axis must be unit length.
func QuatFromAxisAngle(axis Vector3, angle float32) Quat {
	s := math32.Sin(angle / 2)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(angle / 2),
	}
}

// QuatFromYaw builds a rotation of yaw radians around the Z axis.
func QuatFromYaw(yaw float32) Quat {
	return QuatFromAxisAngle(Vector3{Z: 1}, yaw)
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vector3) Vector3 {
	u := Vector3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Forward returns the rotated +X axis.
func (q Quat) Forward() Vector3 {
	return q.Rotate(Vector3{X: 1})
}

// Right returns the rotated +Y axis.
func (q Quat) Right() Vector3 {
	return q.Rotate(Vector3{Y: 1})
}

// Up returns the rotated +Z axis.
func (q Quat) Up() Vector3 {
	return q.Rotate(Vector3{Z: 1})
}

// Transform is a rigid world transform (no scale).
type Transform struct {
	Location Vector3
	Rotation Quat
}

// Apply rotates v and translates it by the transform location.
func (t Transform) Apply(v Vector3) Vector3 {
	return t.Rotation.Rotate(v).Add(t.Location)
}

// BoundingBox is an axis-extent box derived per object per tick. Origin is the
// box center, Extent the half-size on each axis. Never persisted across ticks.
type BoundingBox struct {
	Origin Vector3
	Extent Vector3
}
