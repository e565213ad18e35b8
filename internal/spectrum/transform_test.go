package spectrum

import (
	"errors"
	"image"
	"math/cmplx"
	"testing"
)

// makeGradient builds a deterministic test image with distinct channels.
func makeGradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := y*img.Stride + x*4
			img.Pix[off+0] = uint8((x*255 + w/2) / max(w-1, 1) % 256)
			img.Pix[off+1] = uint8((y*255 + h/2) / max(h-1, 1) % 256)
			img.Pix[off+2] = uint8((x*7 + y*13) % 256)
			img.Pix[off+3] = 0xFF
		}
	}
	return img
}

// makeSolid builds a solid-color image.
func makeSolid(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 0xFF
	}
	return img
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// maxRoundTripError returns the largest per-sample difference between two
// images of the same size.
func maxRoundTripError(a, b *image.RGBA) int {
	worst := 0
	for y := 0; y < a.Rect.Dy(); y++ {
		for x := 0; x < a.Rect.Dx(); x++ {
			off := y*a.Stride + x*4
			for c := 0; c < 3; c++ {
				d := int(a.Pix[off+c]) - int(b.Pix[off+c])
				if d < 0 {
					d = -d
				}
				if d > worst {
					worst = d
				}
			}
		}
	}
	return worst
}

func TestForwardRejectsBadInput(t *testing.T) {
	if _, err := Forward(nil); !errors.Is(err, ErrBadInput) {
		t.Errorf("nil image: expected ErrBadInput, got %v", err)
	}
	if _, err := Forward(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrBadInput) {
		t.Errorf("zero-area image: expected ErrBadInput, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		img  *image.RGBA
	}{
		{"gradient 8x6", makeGradient(8, 6)},
		{"gradient 7x5 odd dims", makeGradient(7, 5)},
		{"solid gray 4x4", makeSolid(4, 4, 128, 128, 128)},
		{"solid black 4x4", makeSolid(4, 4, 0, 0, 0)},
		{"single pixel", makeSolid(1, 1, 200, 100, 50)},
		{"single row", makeGradient(16, 1)},
		{"single column", makeGradient(1, 16)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Forward(tc.img)
			if err != nil {
				t.Fatalf("Forward failed: %v", err)
			}
			back := Inverse(spec)
			if got := maxRoundTripError(tc.img, back); got > 1 {
				t.Errorf("round trip error %d, want <= 1", got)
			}
		})
	}
}

func TestForwardDCAtCenter(t *testing.T) {
	img := makeSolid(4, 4, 100, 100, 100)
	spec, err := Forward(img)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	// For a solid image the entire signal sits in the DC bin, which the
	// shift must place at the geometric center.
	want := 100.0 * 16
	got := cmplx.Abs(spec.At(ChannelR, 2, 2))
	if got < want-1e-6 || got > want+1e-6 {
		t.Errorf("DC magnitude at center = %f, want %f", got, want)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 2 && y == 2 {
				continue
			}
			if m := cmplx.Abs(spec.At(ChannelR, x, y)); m > 1e-6 {
				t.Errorf("non-DC bin (%d,%d) magnitude = %g, want ~0", x, y, m)
			}
		}
	}
}

func TestInverseClipsOverflow(t *testing.T) {
	img := makeSolid(4, 4, 200, 200, 200)
	spec, err := Forward(img)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	// Doubling the DC drives the reconstruction past the 8-bit ceiling;
	// the inverse must clip rather than wrap.
	spec.Set(ChannelR, 2, 2, spec.At(ChannelR, 2, 2)*2)
	back := Inverse(spec)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v := back.Pix[y*back.Stride+x*4]; v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want clipped 255", x, y, v)
			}
		}
	}
}
