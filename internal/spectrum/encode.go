package spectrum

import (
	"image"
	"math"
	"math/cmplx"

	"fourier-paint/pkg/colorutil"
)

const (
	// logEpsilon keeps log1p defined and stable at zero magnitude.
	logEpsilon = 1e-9

	// hueMax is the top of the 8-bit hue scale (OpenCV convention).
	hueMax = 179.0
)

// LogMagnitude computes log1p(|z|+eps) for every channel.
func LogMagnitude(s *Spectrum) [3][]float64 {
	var out [3][]float64
	for c := range s.Data {
		out[c] = channelLogMag(s, Channel(c))
	}
	return out
}

func channelLogMag(s *Spectrum, ch Channel) []float64 {
	data := s.Data[ch]
	out := make([]float64, len(data))
	for i, z := range data {
		out[i] = math.Log1p(cmplx.Abs(z) + logEpsilon)
	}
	return out
}

// GlobalRange returns the min/max log-magnitude across all three channels.
// A collapsed range (solid-color image) is widened to Min+1 so downstream
// normalization never divides by zero.
func GlobalRange(logMag [3][]float64) Range {
	min := math.Inf(1)
	max := math.Inf(-1)
	for c := range logMag {
		for _, v := range logMag[c] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if max-min < logEpsilon {
		max = min + 1.0
	}
	return Range{Min: min, Max: max}
}

// Normalize affinely rescales values into [0, 255] against the shared
// range. A degenerate range yields all zeros.
func Normalize(values []float64, rng Range) []uint8 {
	out := make([]uint8, len(values))
	width := rng.Width()
	if width < logEpsilon {
		return out
	}
	for i, v := range values {
		if v < rng.Min {
			v = rng.Min
		} else if v > rng.Max {
			v = rng.Max
		}
		out[i] = uint8((v - rng.Min) / width * 255.0)
	}
	return out
}

// EncodeMagnitude renders the paintable magnitude visualization: each
// channel's log-magnitude normalized with the shared range. Pure in the
// spectrum and range; identical inputs produce identical bytes.
func EncodeMagnitude(s *Spectrum, rng Range) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.W, s.H))
	for c := 0; c < 3; c++ {
		norm := Normalize(channelLogMag(s, Channel(c)), rng)
		for i, v := range norm {
			img.Pix[i*4+c] = v
		}
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img
}

// EncodePhase renders one channel's phase visualization: phase as hue at
// full saturation, normalized log-magnitude as value. Value is floored at
// 1 so hue stays recoverable where the magnitude is zero.
func EncodePhase(s *Spectrum, ch Channel, rng Range) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.W, s.H))
	norm := Normalize(channelLogMag(s, ch), rng)
	data := s.Data[ch]
	for i, z := range data {
		hue := (cmplx.Phase(z) + math.Pi) / (2 * math.Pi) * hueMax
		value := norm[i]
		if value < 1 {
			value = 1
		}
		r, g, b := colorutil.HSVToRGB(float64(uint8(hue)), 255, float64(value))
		img.Pix[i*4+0] = uint8(r)
		img.Pix[i*4+1] = uint8(g)
		img.Pix[i*4+2] = uint8(b)
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

// PhaseToHue converts a phase angle in (-pi, pi] to the 8-bit hue scale.
func PhaseToHue(phase float64) uint8 {
	return uint8((phase + math.Pi) / (2 * math.Pi) * hueMax)
}

// HueToPhase converts an 8-bit hue back to a phase angle.
func HueToPhase(hue uint8) float64 {
	return float64(hue)/hueMax*2*math.Pi - math.Pi
}
