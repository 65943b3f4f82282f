package gounwrap

import "math"

// Vector2 is a 2D point, used for UV coordinates throughout the package.
type Vector2 struct {
	X float64
	Y float64
}

func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// mult by scalar
func (v Vector2) Mult(scalar float64) Vector2 {
	return Vector2{
		X: v.X * scalar,
		Y: v.Y * scalar,
	}
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2) Normalize() Vector2 {
	magnitude := math.Sqrt(v.X*v.X + v.Y*v.Y)

	if magnitude == 0 {
		return Vector2{X: 0, Y: 0}
	}

	return Vector2{X: v.X / magnitude, Y: v.Y / magnitude}
}
