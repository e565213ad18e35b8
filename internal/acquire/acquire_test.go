package acquire

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 99, A: 255})
		}
	}
	return img
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	want := testImage(6, 4)

	if err := SavePNG(path, want); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !bytes.Equal(want.Pix, got.Pix) {
		t.Error("PNG round trip altered pixel data")
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file: expected error")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(garbage); err == nil {
		t.Error("garbage file: expected error")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	// Subimages carry non-zero bounds; conversion must rebase to (0,0).
	src := testImage(8, 8).SubImage(image.Rect(2, 2, 6, 6))
	got := ToRGBA(src)
	if got.Rect.Min != image.Pt(0, 0) || got.Rect.Dx() != 4 || got.Rect.Dy() != 4 {
		t.Fatalf("unexpected bounds %v", got.Rect)
	}
	want := testImage(8, 8).RGBAAt(2, 2)
	if got.RGBAAt(0, 0) != want {
		t.Errorf("pixel (0,0) = %v, want %v", got.RGBAAt(0, 0), want)
	}
}

func TestDecodeBytesRejectsEmpty(t *testing.T) {
	if _, err := DecodeBytes(nil); err == nil {
		t.Error("empty buffer: expected error")
	}
}

func TestPicsumURL(t *testing.T) {
	cases := []struct {
		name string
		opts PicsumOptions
		want string
	}{
		{"plain", PicsumOptions{Width: 256, Height: 128}, "https://picsum.photos/256/128"},
		{"grayscale", PicsumOptions{Width: 64, Height: 64, Grayscale: true}, "https://picsum.photos/64/64?grayscale="},
		{"blur", PicsumOptions{Width: 64, Height: 64, Blur: 3}, "https://picsum.photos/64/64?blur=3"},
		{"seed", PicsumOptions{Width: 64, Height: 64, Seed: "lena"}, "https://picsum.photos/seed/lena/64/64"},
		{"id wins over seed", PicsumOptions{Width: 64, Height: 64, ID: "237", Seed: "x"}, "https://picsum.photos/id/237/64/64"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.opts.URL(); got != tc.want {
				t.Errorf("URL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPicsumValidate(t *testing.T) {
	if err := (PicsumOptions{Width: 100, Height: 100}).Validate(); err != nil {
		t.Errorf("valid options rejected: %v", err)
	}
	bad := []PicsumOptions{
		{Width: 0, Height: 100},
		{Width: 100, Height: -1},
		{Width: 100, Height: 100, Blur: 11},
	}
	for _, opts := range bad {
		if err := opts.Validate(); err == nil {
			t.Errorf("options %+v: expected error", opts)
		}
	}
}

func TestIsSupportedFormat(t *testing.T) {
	for _, path := range []string{"a.png", "B.JPG", "scan.tiff", "x.jpeg", "y.tif"} {
		if !IsSupportedFormat(path) {
			t.Errorf("%s should be supported", path)
		}
	}
	for _, path := range []string{"a.bmp", "b.gif", "c.txt", "noext"} {
		if IsSupportedFormat(path) {
			t.Errorf("%s should not be supported", path)
		}
	}
}
