// Package spectrum implements the frequency-domain editing engine: the
// forward/inverse Fourier pipeline, the magnitude and phase visual
// encodings, the filter bank, and the reconciliation of user edits back
// into complex spectrum values.
package spectrum

import (
	"errors"
	"image"
)

// Channel identifies one color channel of the image and its spectrum.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "Red"
	case ChannelG:
		return "Green"
	case ChannelB:
		return "Blue"
	default:
		return "Unknown"
	}
}

// Canvas identifies one of the paintable visualizations.
type Canvas int

const (
	CanvasMagnitude Canvas = iota
	CanvasPhaseR
	CanvasPhaseG
	CanvasPhaseB
)

// PhaseChannel returns the channel a phase canvas displays.
// Returns false for the magnitude canvas.
func (c Canvas) PhaseChannel() (Channel, bool) {
	switch c {
	case CanvasPhaseR:
		return ChannelR, true
	case CanvasPhaseG:
		return ChannelG, true
	case CanvasPhaseB:
		return ChannelB, true
	default:
		return 0, false
	}
}

func (c Canvas) String() string {
	switch c {
	case CanvasMagnitude:
		return "Magnitude"
	case CanvasPhaseR:
		return "Phase Red"
	case CanvasPhaseG:
		return "Phase Green"
	case CanvasPhaseB:
		return "Phase Blue"
	default:
		return "Unknown"
	}
}

// Error taxonomy. Operations wrap these with context via fmt.Errorf so
// callers can classify with errors.Is.
var (
	// ErrBadInput reports a malformed or empty input image.
	ErrBadInput = errors.New("spectrum: invalid input image")

	// ErrDegenerateParam reports a filter parameter that collapses the
	// filter into a numerically meaningless operation.
	ErrDegenerateParam = errors.New("spectrum: degenerate filter parameter")

	// ErrNotLoaded reports an operation that needs spectrum state before
	// any image has been loaded.
	ErrNotLoaded = errors.New("spectrum: no image loaded")
)

// Spectrum holds one center-shifted 2D DFT per color channel.
// Data is row-major, indexed by Channel.
type Spectrum struct {
	W, H int
	Data [3][]complex128
}

// NewSpectrum allocates a zero spectrum of the given size.
func NewSpectrum(w, h int) *Spectrum {
	s := &Spectrum{W: w, H: h}
	for c := range s.Data {
		s.Data[c] = make([]complex128, w*h)
	}
	return s
}

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	out := &Spectrum{W: s.W, H: s.H}
	for c := range s.Data {
		out.Data[c] = make([]complex128, len(s.Data[c]))
		copy(out.Data[c], s.Data[c])
	}
	return out
}

// At returns the complex value for a channel at (x, y).
func (s *Spectrum) At(ch Channel, x, y int) complex128 {
	return s.Data[ch][y*s.W+x]
}

// Set stores the complex value for a channel at (x, y).
func (s *Spectrum) Set(ch Channel, x, y int, v complex128) {
	s.Data[ch][y*s.W+x] = v
}

// Range is the shared log-magnitude normalization range. A single range
// spans all three channels so cross-channel edits stay comparable.
type Range struct {
	Min, Max float64
}

// Width returns Max-Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// ChangeSummary reports what a reconciliation pass rewrote.
type ChangeSummary struct {
	Pixels   int    // pixels exceeding the change-mask tolerance
	Channels [3]int // per-channel spectrum entries rewritten
}

// Changed reports whether any pixel crossed the change threshold.
func (cs ChangeSummary) Changed() bool {
	return cs.Pixels > 0
}

// PixelEdit is one painted pixel: a new 8-bit visual value at (X, Y) on
// some visualization canvas.
type PixelEdit struct {
	X, Y    int
	R, G, B uint8
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}
