package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	red := color.RGBA{255, 0, 0, 255}
	fb.Pixels[1*3+2] = red

	if got := fb.GetPixel(2, 1); got != red {
		t.Errorf("GetPixel(2,1) = %v, want %v", got, red)
	}
	if got := fb.GetPixel(-1, 0); got != (color.RGBA{}) {
		t.Errorf("GetPixel(-1,0) = %v, want transparent", got)
	}
	if got := fb.GetPixel(3, 0); got != (color.RGBA{}) {
		t.Errorf("GetPixel(3,0) = %v, want transparent", got)
	}
	if got := fb.ToImage().RGBAAt(2, 1); got != red {
		t.Errorf("ToImage pixel = %v, want %v", got, red)
	}
}

func TestDownsample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	out := Downsample(img, 4, 3)
	if b := out.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 4x3", b)
	}
	if same := Downsample(img, 8, 6); same != image.Image(img) {
		t.Error("Downsample to the same size should return the input")
	}
}

func TestSave(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	for i := range fb.Pixels {
		fb.Pixels[i] = color.RGBA{10, 20, 30, 255}
	}
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg"} {
		path := filepath.Join(dir, name)
		if err := Save(fb.ToImage(), path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("Save(%s) wrote nothing: %v", name, err)
		}
	}

	if err := Save(fb.ToImage(), filepath.Join(dir, "out.xyz")); err == nil {
		t.Error("Save with unknown extension should fail")
	}
}
