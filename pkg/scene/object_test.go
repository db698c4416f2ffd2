package scene

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

func TestEmptyListNeverHits(t *testing.T) {
	rng := math3d.NewRand(1, 0)
	list := NewList()
	if _, ok := list.Intersect(math3d.NewRay(math3d.Zero3(), math3d.UnitZ()), rng); ok {
		t.Error("empty list reported a hit")
	}
}

func TestListNearestWins(t *testing.T) {
	rng := math3d.NewRand(1, 0)
	far := NewObject(geometry.NewSphere(math3d.V3(0, 0, 10), 1), material.Lambert(1), math3d.V3(1, 0, 0))
	near := NewObject(geometry.NewSphere(math3d.V3(0, 0, 5), 1), material.Mirror(1), math3d.V3(0, 1, 0))
	list := NewList(far, near)

	h, ok := list.Intersect(math3d.NewRay(math3d.Zero3(), math3d.UnitZ()), rng)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(h.Dist-4) > 1e-9 {
		t.Errorf("Dist = %v, want 4", h.Dist)
	}
	if h.Material != material.Mirror(1) {
		t.Errorf("Material = %v, want mirror", h.Material)
	}
	if h.Color != math3d.V3(0, 1, 0) {
		t.Errorf("Color = %v, want green", h.Color)
	}
}

func TestListTieKeepsFirst(t *testing.T) {
	rng := math3d.NewRand(1, 0)
	s := geometry.NewSphere(math3d.V3(0, 0, 5), 1)
	first := NewObject(s, material.Lambert(1), math3d.V3(1, 0, 0))
	second := NewObject(s, material.Lambert(1), math3d.V3(0, 0, 1))

	h, ok := NewList(first, second).Intersect(math3d.NewRay(math3d.Zero3(), math3d.UnitZ()), rng)
	if !ok {
		t.Fatal("expected hit")
	}
	if h.Color != first.Color {
		t.Errorf("Color = %v, want first object's %v", h.Color, first.Color)
	}
}

func TestCollectionNearestShape(t *testing.T) {
	rng := math3d.NewRand(1, 0)
	c := NewCollection([]geometry.Shape{
		geometry.NewSphere(math3d.V3(0, 0, 8), 1),
		geometry.NewSphere(math3d.V3(0, 0, 3), 1),
	}, material.Lambert(1), math3d.One3())

	h, ok := c.Intersect(math3d.NewRay(math3d.Zero3(), math3d.UnitZ()), rng)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(h.Dist-2) > 1e-9 {
		t.Errorf("Dist = %v, want 2", h.Dist)
	}
}

func TestMediumFreePath(t *testing.T) {
	tests := []struct {
		name    string
		density float64
	}{
		{"thin", 0.5},
		{"unit", 1},
		{"dense", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := math3d.NewRand(7, 3)
			m := NewMedium(tt.density, material.Scatter(0), math3d.One3())
			ray := math3d.NewRay(math3d.Zero3(), math3d.UnitX())

			const n = 50000
			sum := 0.0
			for range n {
				h, ok := m.Intersect(ray, rng)
				if !ok {
					t.Fatal("medium must always hit")
				}
				if h.Dist < 0 {
					t.Fatalf("Dist = %v, want >= 0", h.Dist)
				}
				if h.Normal != ray.Direction {
					t.Fatalf("Normal = %v, want ray direction", h.Normal)
				}
				sum += h.Dist
			}
			mean := sum / n
			want := 1 / tt.density
			if math.Abs(mean-want) > 0.03*want {
				t.Errorf("mean free path = %v, want %v", mean, want)
			}
		})
	}
}

func TestPrimitives(t *testing.T) {
	list := NewList(
		NewObject(geometry.NewSphere(math3d.Zero3(), 1), material.Lambert(1), math3d.One3()),
		Cuboid(math3d.Zero3(), math3d.UnitY(), math3d.UnitX(), math3d.UnitZ(), material.Lambert(1), math3d.One3()),
		NewMedium(1, material.Scatter(0), math3d.One3()),
	)
	if got := list.Primitives(); got != 14 {
		t.Errorf("Primitives() = %d, want 14", got)
	}
}

func BenchmarkListIntersect(b *testing.B) {
	sc := Cornell()
	rng := math3d.NewRand(1, 0)
	ray := math3d.NewRay(sc.View.Position, sc.View.Forward())
	for b.Loop() {
		sc.Root.Intersect(ray, rng)
	}
}
