package spectrum

import (
	"fmt"
	"math"
)

// FilterKind selects one of the frequency-domain filters.
type FilterKind int

const (
	FilterRadial FilterKind = iota
	FilterMagnitudeThreshold
	FilterGaussian
)

func (k FilterKind) String() string {
	switch k {
	case FilterRadial:
		return "Radial Low-Pass"
	case FilterMagnitudeThreshold:
		return "Magnitude Threshold"
	case FilterGaussian:
		return "Gaussian Low-Pass"
	default:
		return "Unknown"
	}
}

// ParseFilterKind maps the short names used in config files to a kind.
func ParseFilterKind(name string) (FilterKind, error) {
	switch name {
	case "radial":
		return FilterRadial, nil
	case "threshold":
		return FilterMagnitudeThreshold, nil
	case "gaussian":
		return FilterGaussian, nil
	default:
		return 0, fmt.Errorf("filter kind %q: %w", name, ErrDegenerateParam)
	}
}

// ApplyFilter dispatches to the filter identified by kind. The input
// spectrum is never mutated; a new spectrum is returned.
func ApplyFilter(s *Spectrum, rng Range, kind FilterKind, param float64) (*Spectrum, error) {
	switch kind {
	case FilterRadial:
		return RadialLowPass(s, param)
	case FilterMagnitudeThreshold:
		return MagnitudeThreshold(s, rng, param)
	case FilterGaussian:
		return GaussianLowPass(s, param)
	default:
		return nil, fmt.Errorf("filter kind %d: %w", kind, ErrDegenerateParam)
	}
}

// maxRadius is the distance from the spectrum center to a corner bin.
func maxRadius(w, h int) float64 {
	cx, cy := float64(w/2), float64(h/2)
	return math.Sqrt(cx*cx + cy*cy)
}

// RadialLowPass zeroes every bin (all three channels) whose distance from
// the spectrum center exceeds fraction of the maximum radius. fraction=1
// keeps the whole spectrum.
func RadialLowPass(s *Spectrum, fraction float64) (*Spectrum, error) {
	if fraction <= 0 {
		return nil, fmt.Errorf("radial filter: keep fraction %g: %w", fraction, ErrDegenerateParam)
	}
	keep := fraction * maxRadius(s.W, s.H)
	cy, cx := s.H/2, s.W/2

	out := s.Clone()
	for y := 0; y < s.H; y++ {
		dy := float64(y - cy)
		for x := 0; x < s.W; x++ {
			dx := float64(x - cx)
			if math.Sqrt(dy*dy+dx*dx) > keep {
				i := y*s.W + x
				out.Data[ChannelR][i] = 0
				out.Data[ChannelG][i] = 0
				out.Data[ChannelB][i] = 0
			}
		}
	}
	return out, nil
}

// MagnitudeThreshold zeroes per-channel bins whose log-magnitude falls
// below fraction of the shared range. Unlike the radial filter this is
// per channel, not radius-based.
func MagnitudeThreshold(s *Spectrum, rng Range, fraction float64) (*Spectrum, error) {
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("magnitude filter: threshold fraction %g: %w", fraction, ErrDegenerateParam)
	}
	if rng.Width() < logEpsilon {
		return nil, fmt.Errorf("magnitude filter: zero log range: %w", ErrDegenerateParam)
	}
	threshold := rng.Min + fraction*rng.Width()

	out := s.Clone()
	for c := range out.Data {
		logMag := channelLogMag(s, Channel(c))
		for i, v := range logMag {
			if v < threshold {
				out.Data[c][i] = 0
			}
		}
	}
	return out, nil
}

// GaussianLowPass multiplies every bin by exp(-d^2/(2*sigma^2)) where d is
// the distance from the spectrum center and sigma is sigmaFraction of the
// maximum radius. Filters scale magnitude only; phase is untouched because
// the weight is real.
func GaussianLowPass(s *Spectrum, sigmaFraction float64) (*Spectrum, error) {
	sigma := sigmaFraction * maxRadius(s.W, s.H)
	if sigma < 1e-6 {
		return nil, fmt.Errorf("gaussian filter: sigma %g: %w", sigma, ErrDegenerateParam)
	}
	cy, cx := s.H/2, s.W/2
	twoSigmaSq := 2 * sigma * sigma

	out := s.Clone()
	for y := 0; y < s.H; y++ {
		dy := float64(y - cy)
		for x := 0; x < s.W; x++ {
			dx := float64(x - cx)
			weight := complex(math.Exp(-(dy*dy+dx*dx)/twoSigmaSq), 0)
			i := y*s.W + x
			out.Data[ChannelR][i] *= weight
			out.Data[ChannelG][i] *= weight
			out.Data[ChannelB][i] *= weight
		}
	}
	return out, nil
}
