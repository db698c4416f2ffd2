package material

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want Material
	}{
		{"glass:1.54", Glass(1.54)},
		{"LambertCos:0.8", LambertCos(0.8)},
		{"light", Light(1)},
		{" scatter:-0.3 ", Scatter(-0.3)},
		{"test", Material{Kind: KindTest, Param: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("plastic:1"); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Parse(plastic) error = %v, want ErrUnknownMaterial", err)
	}
	if _, err := Parse("glass:abc"); err == nil {
		t.Error("Parse(glass:abc) should fail")
	}
}

func TestTerminal(t *testing.T) {
	terminal := map[Kind]bool{
		KindLight: true, KindLightUni: true, KindLightCos: true, KindTest: true,
	}
	for k := KindLambert; k <= KindTest; k++ {
		m := Material{Kind: k}
		if got := m.Terminal(); got != terminal[k] {
			t.Errorf("%v.Terminal() = %v, want %v", k, got, terminal[k])
		}
	}
}

func TestSchlick(t *testing.T) {
	tests := []struct {
		cos, n, want float64
	}{
		{1, 1.5, 0.04},
		{0, 1.5, 1},
		{1, 1, 0},
		{0.5, 1, 1.0 / 32},
	}
	for _, tt := range tests {
		if got := Schlick(tt.cos, tt.n); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Schlick(%v, %v) = %v, want %v", tt.cos, tt.n, got, tt.want)
		}
	}
}

func TestRefractIndexOneIsIdentity(t *testing.T) {
	n := math3d.UnitY()
	dirs := []math3d.Vec3{
		math3d.V3(0, -1, 0),
		math3d.V3(1, -1, 0).Normalize(),
		math3d.V3(0.3, -0.2, 0.9).Normalize(),
	}
	for _, d := range dirs {
		got, ok := Refract(d, n, 1)
		if !ok {
			t.Fatalf("Refract(%v) failed at ratio 1", d)
		}
		if got.Sub(d).Len() > 1e-12 {
			t.Errorf("Refract(%v, ratio 1) = %v, want unchanged", d, got)
		}
	}
}

func TestRefractSnell(t *testing.T) {
	// 45° into glass of index 1.5: sinθt = sin45/1.5.
	d := math3d.V3(1, -1, 0).Normalize()
	got, ok := Refract(d, math3d.UnitY(), 1/1.5)
	if !ok {
		t.Fatal("unexpected total internal reflection")
	}
	if math.Abs(got.Len()-1) > 1e-12 {
		t.Errorf("|refracted| = %v, want 1", got.Len())
	}
	if want := math.Sin(math.Pi/4) / 1.5; math.Abs(got.X-want) > 1e-12 {
		t.Errorf("sinθt = %v, want %v", got.X, want)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	// Leaving glass at 60° exceeds the ~41.8° critical angle.
	d := math3d.V3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	if _, ok := Refract(d, math3d.UnitY(), 1.5); ok {
		t.Error("expected total internal reflection")
	}
}

func TestHenyeyGreensteinIntegral(t *testing.T) {
	// ∫ HG dΩ = 2π ∫ HG(μ) dμ over [-1, 1] should equal 2π.
	for _, g := range []float64{0, 0.3, 0.65, -0.5} {
		const steps = 200000
		var sum float64
		h := 2.0 / steps
		for i := range steps {
			mu := -1 + (float64(i)+0.5)*h
			sum += HenyeyGreenstein(mu, g) * h
		}
		if got := 2 * math.Pi * sum; math.Abs(got-2*math.Pi) > 1e-3 {
			t.Errorf("g=%v: ∫HG dΩ = %v, want 2π", g, got)
		}
	}
}
