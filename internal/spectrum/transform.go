package spectrum

import (
	"fmt"
	"image"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Forward computes the center-shifted 2D DFT of each color channel.
// The input must be a non-empty RGBA image; alpha is ignored.
func Forward(img *image.RGBA) (*Spectrum, error) {
	if img == nil {
		return nil, fmt.Errorf("forward transform: nil image: %w", ErrBadInput)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("forward transform: %dx%d image: %w", w, h, ErrBadInput)
	}

	rowFFT := fourier.NewFFT(w)
	colFFT := fourier.NewCmplxFFT(h)

	out := NewSpectrum(w, h)
	row := make([]float64, w)
	rowCoeff := make([]complex128, w/2+1)
	col := make([]complex128, h)

	for c := 0; c < 3; c++ {
		data := out.Data[c]

		// Row pass: real FFT, expanded to the full spectrum by
		// conjugate symmetry.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				row[x] = float64(img.Pix[y*img.Stride+x*4+c])
			}
			rowFFT.Coefficients(rowCoeff, row)
			for x := 0; x < len(rowCoeff); x++ {
				data[y*w+x] = rowCoeff[x]
			}
			for x := len(rowCoeff); x < w; x++ {
				data[y*w+x] = cmplx.Conj(rowCoeff[w-x])
			}
		}

		// Column pass on the now-complex rows.
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				col[y] = data[y*w+x]
			}
			colFFT.Coefficients(col, col)
			for y := 0; y < h; y++ {
				data[y*w+x] = col[y]
			}
		}

		shift(data, w, h, w/2, h/2)
	}

	return out, nil
}

// Inverse reconstructs a spatial image from a center-shifted spectrum.
// The residual imaginary component left by edits is discarded by taking
// the magnitude, then samples are clipped to [0, 255] and truncated.
func Inverse(s *Spectrum) *image.RGBA {
	w, h := s.W, s.H
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)

	buf := make([]complex128, w*h)
	col := make([]complex128, h)
	norm := 1.0 / float64(w*h)

	for c := 0; c < 3; c++ {
		copy(buf, s.Data[c])
		shift(buf, w, h, w-w/2, h-h/2)

		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				col[y] = buf[y*w+x]
			}
			colFFT.Sequence(col, col)
			for y := 0; y < h; y++ {
				buf[y*w+x] = col[y]
			}
		}
		for y := 0; y < h; y++ {
			rowFFT.Sequence(buf[y*w:(y+1)*w], buf[y*w:(y+1)*w])
		}

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := cmplx.Abs(buf[y*w+x]) * norm
				if v > 255 {
					v = 255
				}
				img.Pix[y*img.Stride+x*4+c] = uint8(v)
			}
		}
	}

	// Opaque alpha
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}

	return img
}

// shift cyclically moves element (x, y) to ((x+dx)%w, (y+dy)%h) in place.
// dx=w/2, dy=h/2 moves the zero-frequency bin to the geometric center;
// dx=w-w/2, dy=h-h/2 undoes it for odd dimensions as well as even.
func shift(data []complex128, w, h, dx, dy int) {
	tmp := make([]complex128, len(data))
	for y := 0; y < h; y++ {
		ty := (y + dy) % h
		for x := 0; x < w; x++ {
			tx := (x + dx) % w
			tmp[ty*w+tx] = data[y*w+x]
		}
	}
	copy(data, tmp)
}
