package spectrum

import (
	"fmt"
	"image"

	"fourier-paint/pkg/colorutil"
)

// FrequencyState aggregates everything derived from one spectrum: the
// spatial source, the shared normalization range, baseline and working
// visualization copies, and the inverse reconstruction. The spectrum is
// the single source of truth; every image here is derived from it.
type FrequencyState struct {
	Spatial  *image.RGBA
	Spec     *Spectrum
	Rng      Range
	Baseline [4]*image.RGBA // indexed by Canvas, freshly derived, read-only
	Working  [4]*image.RGBA // mutated live by paint strokes
	Result   *image.RGBA
}

// Session sequences the transform pipeline: load, paint, commit, filter,
// apply-result. Every transition is copy-then-commit: a failure leaves the
// previously published state intact. Session is not safe for concurrent
// use; callers serialize access (the app layer holds the lock).
type Session struct {
	state *FrequencyState
	locks [3]bool
}

// NewSession returns an empty session. Operations other than Load return
// ErrNotLoaded until an image has been loaded.
func NewSession() *Session {
	return &Session{}
}

// Loaded reports whether the session holds a spectrum.
func (ss *Session) Loaded() bool {
	return ss.state != nil
}

// SetLock gates magnitude edits for one channel.
func (ss *Session) SetLock(ch Channel, locked bool) {
	ss.locks[ch] = locked
}

// Lock reports the lock flag for one channel.
func (ss *Session) Lock(ch Channel) bool {
	return ss.locks[ch]
}

// Load replaces the session state with a fresh pipeline run over img:
// forward transform, shared range, all visualizations, and the inverse
// sanity reconstruction.
func (ss *Session) Load(img *image.RGBA) error {
	st, err := derive(img)
	if err != nil {
		return err
	}
	ss.state = st
	return nil
}

// Reset discards every committed frequency edit and filter by rerunning
// the whole pipeline on the current spatial image.
func (ss *Session) Reset() error {
	if ss.state == nil {
		return fmt.Errorf("reset: %w", ErrNotLoaded)
	}
	return ss.Load(cloneRGBA(ss.state.Spatial))
}

// derive runs the full pipeline for a spatial image.
func derive(img *image.RGBA) (*FrequencyState, error) {
	spec, err := Forward(img)
	if err != nil {
		return nil, err
	}
	st := &FrequencyState{
		Spatial: cloneRGBA(img),
		Spec:    spec,
	}
	rebuildVisualizations(st)
	st.Result = Inverse(spec)
	return st, nil
}

// rebuildVisualizations recomputes the shared range, the baselines, and
// fresh working copies from the current spectrum.
func rebuildVisualizations(st *FrequencyState) {
	st.Rng = GlobalRange(LogMagnitude(st.Spec))
	st.Baseline[CanvasMagnitude] = EncodeMagnitude(st.Spec, st.Rng)
	st.Baseline[CanvasPhaseR] = EncodePhase(st.Spec, ChannelR, st.Rng)
	st.Baseline[CanvasPhaseG] = EncodePhase(st.Spec, ChannelG, st.Rng)
	st.Baseline[CanvasPhaseB] = EncodePhase(st.Spec, ChannelB, st.Rng)
	for i := range st.Working {
		st.Working[i] = cloneRGBA(st.Baseline[i])
	}
}

// PaintStroke applies intermediate paint feedback to the working copy of
// one visualization. It never touches the spectrum and is cheap enough to
// call many times per stroke. Paint lands on every channel; locks gate the
// reconciliation at commit, not the live feedback, so a black stroke stays
// fully black and the zeroing sentinel survives a locked channel. Phase
// paint keeps the working magnitude as the HSV value so the stroke shows
// the hue the commit will decode.
func (ss *Session) PaintStroke(canvas Canvas, edits []PixelEdit) {
	if ss.state == nil {
		return
	}
	working := ss.state.Working[canvas]
	if ch, ok := canvas.PhaseChannel(); ok {
		magWorking := ss.state.Working[CanvasMagnitude]
		for _, e := range edits {
			if !inBounds(working, e.X, e.Y) {
				continue
			}
			h, _, _ := colorutil.RGBToHSV(float64(e.R), float64(e.G), float64(e.B))
			value := magWorking.Pix[e.Y*magWorking.Stride+e.X*4+int(ch)]
			if value < 1 {
				value = 1
			}
			r, g, b := colorutil.HSVToRGB(h, 255, float64(value))
			off := e.Y*working.Stride + e.X*4
			working.Pix[off+0] = uint8(r)
			working.Pix[off+1] = uint8(g)
			working.Pix[off+2] = uint8(b)
		}
		return
	}

	for _, e := range edits {
		if !inBounds(working, e.X, e.Y) {
			continue
		}
		off := e.Y*working.Stride + e.X*4
		working.Pix[off+0] = e.R
		working.Pix[off+1] = e.G
		working.Pix[off+2] = e.B
	}
}

// PaintSpatial writes pen values straight into the spatial image. Spatial
// paint bypasses the frequency domain entirely, so locks do not apply and
// nothing downstream is refreshed until CommitSpatial.
func (ss *Session) PaintSpatial(edits []PixelEdit) {
	if ss.state == nil {
		return
	}
	spatial := ss.state.Spatial
	for _, e := range edits {
		if !inBounds(spatial, e.X, e.Y) {
			continue
		}
		off := e.Y*spatial.Stride + e.X*4
		spatial.Pix[off+0] = e.R
		spatial.Pix[off+1] = e.G
		spatial.Pix[off+2] = e.B
	}
}

// CommitSpatial reruns the full load pipeline on the painted spatial image.
func (ss *Session) CommitSpatial() error {
	if ss.state == nil {
		return fmt.Errorf("commit spatial: %w", ErrNotLoaded)
	}
	return ss.Load(cloneRGBA(ss.state.Spatial))
}

// CommitStroke finalizes the working copy of one visualization: the diff
// against the baseline is reconciled into the spectrum and the spatial
// reconstruction is refreshed. An edit that moved nothing is a no-op.
func (ss *Session) CommitStroke(canvas Canvas) (ChangeSummary, error) {
	if ss.state == nil {
		return ChangeSummary{}, fmt.Errorf("commit stroke: %w", ErrNotLoaded)
	}
	st := ss.state

	if ch, ok := canvas.PhaseChannel(); ok {
		spec, summary, err := ReconcilePhase(st.Spec, ch, st.Baseline[canvas], st.Working[canvas])
		if err != nil || !summary.Changed() {
			return summary, err
		}
		st.Spec = spec
		st.Result = Inverse(spec)
		return summary, nil
	}

	spec, summary, err := ReconcileMagnitude(st.Spec, st.Rng,
		st.Baseline[CanvasMagnitude], st.Working[CanvasMagnitude], ss.locks)
	if err != nil || !summary.Changed() {
		return summary, err
	}
	st.Spec = spec
	st.Result = Inverse(spec)
	ss.refreshPhaseValues()
	return summary, nil
}

// refreshPhaseValues re-derives only the HSV value of the phase working
// copies from the new magnitudes. Hue and saturation are independent of
// magnitude and are carried over unchanged.
func (ss *Session) refreshPhaseValues() {
	st := ss.state
	for _, canvas := range []Canvas{CanvasPhaseR, CanvasPhaseG, CanvasPhaseB} {
		ch, _ := canvas.PhaseChannel()
		norm := Normalize(channelLogMag(st.Spec, ch), st.Rng)
		working := st.Working[canvas]
		for i := 0; i < len(norm); i++ {
			off := i * 4
			h, s, _ := colorutil.RGBToHSV(
				float64(working.Pix[off+0]),
				float64(working.Pix[off+1]),
				float64(working.Pix[off+2]))
			value := norm[i]
			if value < 1 {
				value = 1
			}
			r, g, b := colorutil.HSVToRGB(h, s, float64(value))
			working.Pix[off+0] = uint8(r)
			working.Pix[off+1] = uint8(g)
			working.Pix[off+2] = uint8(b)
		}
	}
}

// ApplyFilter runs one filter over the spectrum and republishes all
// derived state. Filters can change every bin, so unlike stroke commits
// the range and every visualization are recomputed.
func (ss *Session) ApplyFilter(kind FilterKind, param float64) error {
	if ss.state == nil {
		return fmt.Errorf("apply filter: %w", ErrNotLoaded)
	}
	st := ss.state
	spec, err := ApplyFilter(st.Spec, st.Rng, kind, param)
	if err != nil {
		return err
	}
	st.Spec = spec
	rebuildVisualizations(st)
	st.Result = Inverse(spec)
	return nil
}

// ApplyResult promotes the current reconstruction to be the new spatial
// baseline and reruns the load pipeline on it.
func (ss *Session) ApplyResult() error {
	if ss.state == nil || ss.state.Result == nil {
		return fmt.Errorf("apply result: %w", ErrNotLoaded)
	}
	return ss.Load(cloneRGBA(ss.state.Result))
}

// Visualization returns a snapshot of one working visualization.
func (ss *Session) Visualization(canvas Canvas) *image.RGBA {
	if ss.state == nil {
		return nil
	}
	return cloneRGBA(ss.state.Working[canvas])
}

// BaselineVisualization returns a snapshot of one baseline visualization.
func (ss *Session) BaselineVisualization(canvas Canvas) *image.RGBA {
	if ss.state == nil {
		return nil
	}
	return cloneRGBA(ss.state.Baseline[canvas])
}

// Result returns a snapshot of the spatial reconstruction.
func (ss *Session) Result() *image.RGBA {
	if ss.state == nil {
		return nil
	}
	return cloneRGBA(ss.state.Result)
}

// Spatial returns a snapshot of the loaded spatial image.
func (ss *Session) Spatial() *image.RGBA {
	if ss.state == nil {
		return nil
	}
	return cloneRGBA(ss.state.Spatial)
}

// GlobalRange returns the shared normalization range.
func (ss *Session) GlobalRange() (Range, bool) {
	if ss.state == nil {
		return Range{}, false
	}
	return ss.state.Rng, true
}

// SpectrumAt returns one complex spectrum value.
func (ss *Session) SpectrumAt(ch Channel, x, y int) complex128 {
	if ss.state == nil {
		return 0
	}
	return ss.state.Spec.At(ch, x, y)
}

func inBounds(img *image.RGBA, x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Rect.Dx() && y < img.Rect.Dy()
}
