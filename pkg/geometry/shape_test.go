package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func vecNear(a, b math3d.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestSphereDistanceAlongAxis(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		dist   float64
		axis   math3d.Vec3
	}{
		{"unit from 5 on +Z", 1, 5, math3d.UnitZ()},
		{"r2 from 10 on -X", 2, 10, math3d.UnitX().Negate()},
		{"r0.5 from 0.75 on +Y", 0.5, 0.75, math3d.UnitY()},
		{"r3 from 100 diagonal", 3, 100, math3d.V3(1, 1, 1).Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSphere(math3d.Zero3(), tt.radius)
			ray := math3d.NewRay(tt.axis.Scale(tt.dist), tt.axis.Negate())
			hit, ok := s.Intersect(ray)
			if !ok {
				t.Fatal("expected hit")
			}
			if math.Abs(hit.Dist-(tt.dist-tt.radius)) > 1e-9 {
				t.Errorf("Dist = %v, want %v", hit.Dist, tt.dist-tt.radius)
			}
			if !vecNear(hit.Normal, tt.axis) {
				t.Errorf("Normal = %v, want %v", hit.Normal, tt.axis)
			}
		})
	}
}

func TestSphereFromInside(t *testing.T) {
	s := NewSphere(math3d.Zero3(), 2)
	hit, ok := s.Intersect(math3d.NewRay(math3d.Zero3(), math3d.UnitX()))
	if !ok {
		t.Fatal("expected hit from inside")
	}
	if !near(hit.Dist, 2) {
		t.Errorf("Dist = %v, want 2", hit.Dist)
	}
	// Outward normal: the glass material relies on d·n > 0 from inside.
	if hit.Normal.Dot(math3d.UnitX()) <= 0 {
		t.Errorf("Normal = %v, want outward", hit.Normal)
	}
}

func TestSphereMiss(t *testing.T) {
	s := NewSphere(math3d.V3(0, 0, 5), 1)
	tests := []struct {
		name string
		ray  math3d.Ray
	}{
		{"pointing away", math3d.NewRay(math3d.Zero3(), math3d.UnitZ().Negate())},
		{"offset past", math3d.NewRay(math3d.V3(0, 2, 0), math3d.UnitZ())},
		{"behind origin", math3d.NewRay(math3d.V3(0, 0, 10), math3d.UnitZ())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := s.Intersect(tt.ray); ok {
				t.Errorf("unexpected hit %+v", hit)
			}
		})
	}
}

func TestPlaneHitAtHeight(t *testing.T) {
	p := NewPlane(math3d.UnitY(), math3d.Zero3())
	for _, h := range []float64{0.1, 1, 3.5, 1000} {
		hit, ok := p.Intersect(math3d.NewRay(math3d.V3(0.3, h, -2), math3d.UnitY().Negate()))
		if !ok {
			t.Fatalf("height %v: expected hit", h)
		}
		if math.Abs(hit.Dist-h) > 1e-9 {
			t.Errorf("height %v: Dist = %v", h, hit.Dist)
		}
		if !vecNear(hit.Point, math3d.V3(0.3, 0, -2)) {
			t.Errorf("height %v: Point = %v", h, hit.Point)
		}
	}
}

func TestPlaneBothSides(t *testing.T) {
	p := NewPlane(math3d.UnitY(), math3d.Zero3())
	hit, ok := p.Intersect(math3d.NewRay(math3d.V3(0, -2, 0), math3d.UnitY()))
	if !ok {
		t.Fatal("expected hit from below")
	}
	if !near(hit.Dist, 2) {
		t.Errorf("Dist = %v, want 2", hit.Dist)
	}
	if !vecNear(hit.Normal, math3d.UnitY()) {
		t.Errorf("Normal = %v, want stored normal", hit.Normal)
	}
}

func TestPlaneParallelNeverHits(t *testing.T) {
	p := NewPlane(math3d.UnitY(), math3d.Zero3())
	dirs := []math3d.Vec3{math3d.UnitX(), math3d.UnitZ(), math3d.V3(1, 0, 1).Normalize()}
	for _, d := range dirs {
		for _, h := range []float64{1, 0, -1} {
			if _, ok := p.Intersect(math3d.NewRay(math3d.V3(0, h, 0), d)); ok {
				t.Errorf("parallel ray at height %v dir %v hit", h, d)
			}
		}
	}
}

func TestPlaneOffset(t *testing.T) {
	a := NewPlane(math3d.UnitY(), math3d.V3(5, -1, 3))
	b := NewPlaneOffset(math3d.UnitY(), -1)
	if !near(a.Offset, b.Offset) {
		t.Errorf("Offset = %v, want %v", a.Offset, b.Offset)
	}
}

func TestTriangle(t *testing.T) {
	tri := NewTriangle(math3d.V3(-1, -1, 5), math3d.V3(1, -1, 5), math3d.V3(0, 1, 5))
	if !vecNear(tri.Normal, math3d.UnitZ()) {
		t.Fatalf("Normal = %v, want +Z", tri.Normal)
	}

	tests := []struct {
		name    string
		ray     math3d.Ray
		wantHit bool
		dist    float64
	}{
		{"front centre", math3d.NewRay(math3d.V3(0, 0, 10), math3d.UnitZ().Negate()), true, 5},
		{"front on edge", math3d.NewRay(math3d.V3(0, -1, 10), math3d.UnitZ().Negate()), true, 5},
		{"front outside", math3d.NewRay(math3d.V3(2, 0, 10), math3d.UnitZ().Negate()), false, 0},
		{"back face", math3d.NewRay(math3d.Zero3(), math3d.UnitZ()), false, 0},
		{"parallel", math3d.NewRay(math3d.V3(0, 0, 10), math3d.UnitX()), false, 0},
		{"behind origin", math3d.NewRay(math3d.V3(0, 0, 2), math3d.UnitZ().Negate()), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tri.Intersect(tt.ray)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && !near(hit.Dist, tt.dist) {
				t.Errorf("Dist = %v, want %v", hit.Dist, tt.dist)
			}
		})
	}
}

func TestTriangleSharedEdge(t *testing.T) {
	// Two triangles of a square: a ray through the diagonal must hit one.
	a := math3d.V3(-1, 1, 0)
	b := math3d.V3(1, 1, 0)
	c := math3d.V3(1, -1, 0)
	d := math3d.V3(-1, -1, 0)
	t1 := NewTriangle(a, d, b)
	t2 := NewTriangle(b, d, c)
	for i := range 21 {
		f := -0.95 + 0.095*float64(i)
		ray := math3d.NewRay(math3d.V3(f, f, 1), math3d.UnitZ().Negate())
		_, ok1 := t1.Intersect(ray)
		_, ok2 := t2.Intersect(ray)
		if !ok1 && !ok2 {
			t.Errorf("diagonal ray at %v missed both triangles", f)
		}
	}
}

func TestGrazingRaysNeverNaN(t *testing.T) {
	shapes := []Shape{
		NewSphere(math3d.Zero3(), 1),
		NewPlane(math3d.UnitY(), math3d.Zero3()),
		NewTriangle(math3d.V3(-1, 0, -1), math3d.V3(0, 0, 1), math3d.V3(1, 0, -1)),
	}
	rays := []math3d.Ray{
		math3d.NewRay(math3d.V3(-5, 1, 0), math3d.UnitX()),
		math3d.NewRay(math3d.V3(-5, 1e-12, 0), math3d.V3(1, -1e-13, 0)),
		math3d.NewRay(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0)),
	}
	for _, s := range shapes {
		for _, r := range rays {
			if hit, ok := s.Intersect(r); ok {
				if math.IsNaN(hit.Dist) || !hit.Point.IsFinite() || !hit.Normal.IsFinite() {
					t.Errorf("%v: non-finite hit %+v for ray %+v", s.Kind, hit, r)
				}
			}
		}
	}
}

func BenchmarkSphereIntersect(b *testing.B) {
	s := NewSphere(math3d.V3(0, 0, 5), 1)
	r := math3d.NewRay(math3d.Zero3(), math3d.UnitZ())
	for b.Loop() {
		_, _ = s.Intersect(r)
	}
}

func BenchmarkTriangleIntersect(b *testing.B) {
	tri := NewTriangle(math3d.V3(-1, -1, 5), math3d.V3(1, -1, 5), math3d.V3(0, 1, 5))
	r := math3d.NewRay(math3d.V3(0, 0, 10), math3d.UnitZ().Negate())
	for b.Loop() {
		_, _ = tri.Intersect(r)
	}
}
