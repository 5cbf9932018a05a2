// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec2 is a point or displacement in simulation space.
// Simulation space uses screen orientation: +X right, +Y down.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Bounds is the visible play area, anchored at the origin.
type Bounds struct {
	W, H float64
}

// B is shorthand for constructing Bounds.
func B(w, h float64) Bounds {
	return Bounds{W: w, H: h}
}

// Valid reports whether both extents are positive and finite.
func (b Bounds) Valid() bool {
	return b.W > 0 && b.H > 0 && !math.IsInf(b.W, 0) && !math.IsInf(b.H, 0)
}

// Contains reports whether p lies inside the closed rectangle [0,W]x[0,H].
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}

// Center returns the middle of the area.
func (b Bounds) Center() Vec2 {
	return Vec2{X: b.W / 2, Y: b.H / 2}
}

// Box is a float axis-aligned box; Min is the top-left corner.
type Box struct {
	Min  Vec2
	W, H float64
}

// Max returns the bottom-right corner.
func (b Box) Max() Vec2 {
	return Vec2{X: b.Min.X + b.W, Y: b.Min.Y + b.H}
}

// Intersects uses the same half-open AABB rule as Rect.Intersects.
func (b Box) Intersects(o Box) bool {
	bm, om := b.Max(), o.Max()
	if b.Min.X >= om.X || o.Min.X >= bm.X {
		return false
	}
	if b.Min.Y >= om.Y || o.Min.Y >= bm.Y {
		return false
	}
	return true
}

// Rect represents an integer cell rectangle used for drawing and paddle hit tests.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
