package spectrum

import (
	"fmt"
	"image"
	"math"
	"math/cmplx"

	"fourier-paint/pkg/colorutil"
)

const (
	// changeTolerance bounds reconciliation to pixels that actually moved:
	// an 8-bit delta at or below this is treated as untouched.
	changeTolerance = 10

	// blackTolerance marks the zeroing sentinel: a painted pixel with all
	// channels below this zeroes the unlocked spectrum entries outright.
	blackTolerance = 5
)

// ReconcileMagnitude maps a finalized edit of the magnitude visualization
// back into exact complex spectrum values. Only pixels whose display value
// moved beyond the change tolerance are rewritten, and only on unlocked
// channels; each rewritten entry keeps the original phase. Near-black
// paint zeroes the entry instead.
//
// The input spectrum is never mutated. When nothing crossed the tolerance
// the input spectrum itself is returned with a zero summary.
func ReconcileMagnitude(s *Spectrum, rng Range, baseline, edited *image.RGBA, locks [3]bool) (*Spectrum, ChangeSummary, error) {
	var summary ChangeSummary
	if err := checkShapes(s, baseline, edited); err != nil {
		return nil, summary, err
	}
	if rng.Width() < logEpsilon {
		return nil, summary, fmt.Errorf("magnitude reconcile: zero log range: %w", ErrNotLoaded)
	}

	out := s
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			off := y*edited.Stride + x*4
			if !pixelChanged(baseline.Pix[off:off+3], edited.Pix[off:off+3]) {
				continue
			}
			summary.Pixels++
			if out == s {
				out = s.Clone()
			}

			r := edited.Pix[off+0]
			g := edited.Pix[off+1]
			b := edited.Pix[off+2]
			isBlack := r < blackTolerance && g < blackTolerance && b < blackTolerance

			for c, painted := range [3]uint8{r, g, b} {
				if locks[c] {
					continue
				}
				i := y*s.W + x
				if isBlack {
					out.Data[c][i] = 0
				} else {
					targetLog := float64(painted)/255.0*rng.Width() + rng.Min
					mag := math.Expm1(targetLog)
					if mag < 0 {
						mag = 0
					}
					phase := cmplx.Phase(s.Data[c][i])
					out.Data[c][i] = cmplx.Rect(mag, phase)
				}
				summary.Channels[c]++
			}
		}
	}
	return out, summary, nil
}

// ReconcilePhase maps a finalized edit of one channel's phase
// visualization back into the spectrum: the painted hue becomes the new
// phase angle while the original magnitude is preserved exactly.
func ReconcilePhase(s *Spectrum, ch Channel, baseline, edited *image.RGBA) (*Spectrum, ChangeSummary, error) {
	var summary ChangeSummary
	if err := checkShapes(s, baseline, edited); err != nil {
		return nil, summary, err
	}

	out := s
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			off := y*edited.Stride + x*4
			if !pixelChanged(baseline.Pix[off:off+3], edited.Pix[off:off+3]) {
				continue
			}
			summary.Pixels++
			if out == s {
				out = s.Clone()
			}

			h, _, _ := colorutil.RGBToHSV(
				float64(edited.Pix[off+0]),
				float64(edited.Pix[off+1]),
				float64(edited.Pix[off+2]))
			phase := HueToPhase(uint8(math.Round(h)))

			i := y*s.W + x
			mag := cmplx.Abs(s.Data[ch][i])
			out.Data[ch][i] = cmplx.Rect(mag, phase)
			summary.Channels[ch]++
		}
	}
	return out, summary, nil
}

// pixelChanged reports whether any channel moved beyond the tolerance.
func pixelChanged(baseline, edited []uint8) bool {
	for c := 0; c < 3; c++ {
		d := int(edited[c]) - int(baseline[c])
		if d < 0 {
			d = -d
		}
		if d > changeTolerance {
			return true
		}
	}
	return false
}

func checkShapes(s *Spectrum, baseline, edited *image.RGBA) error {
	if baseline == nil || edited == nil {
		return fmt.Errorf("reconcile: missing visualization state: %w", ErrNotLoaded)
	}
	if baseline.Rect.Dx() != s.W || baseline.Rect.Dy() != s.H ||
		edited.Rect.Dx() != s.W || edited.Rect.Dy() != s.H {
		return fmt.Errorf("reconcile: visualization size does not match %dx%d spectrum: %w",
			s.W, s.H, ErrBadInput)
	}
	return nil
}
