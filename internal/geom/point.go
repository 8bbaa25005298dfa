package geom

import (
	"fmt"
	"math"
)

// Point is a 2D vector.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Div returns the zero vector when f is zero.
func (p Point) Div(f float64) Point {
	if f == 0 {
		return Point{}
	}
	return Point{p.X / f, p.Y / f}
}

// Lerp interpolates from p (t=0) to q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return p.Mul(1 - t).Add(q.Mul(t))
}

func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }
func (p Point) LenSq() float64 { return p.X*p.X + p.Y*p.Y }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }
func (p Point) Perp() Point { return Point{-p.Y, p.X} }
func (p Point) AngleRad() float64 { return math.Atan2(p.Y, p.X) }
func (p Point) AngleDeg() float64 { return p.AngleRad() * 180 / math.Pi }
func (p Point) RotateDeg(a float64) Point { return p.RotateRad(a * math.Pi / 180) }

func (p Point) RotateRad(a float64) Point {
	sin, cos := math.Sincos(a)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// Project returns the component of p along onto.
func (p Point) Project(onto Point) Point {
	l := onto.LenSq()
	if l == 0 {
		return Point{}
	}
	return onto.Mul(p.Dot(onto) / l)
}

// Normalize returns the unit vector of p, or (1, 0) for the zero vector.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{1, 0}
	}
	return p.Div(l)
}

// LimitLength scales p down so that its length does not exceed limit.
func (p Point) LimitLength(limit float64) Point {
	l := p.Len()
	if l <= limit || l == 0 {
		return p
	}
	if limit <= 0 {
		return Point{}
	}
	return p.Mul(limit / l)
}

// NearEqual reports whether p and q are closer than tol.
func (p Point) NearEqual(q Point, tol float64) bool {
	return p.Sub(q).LenSq() < tol*tol
}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// WrapDeg normalizes an angle in degrees into (-180, 180].
func WrapDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
