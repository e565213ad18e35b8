// Package app provides application lifecycle management, state, and events.
package app

import (
	"context"
	"fmt"
	"image"
	"sync"

	"fourier-paint/internal/acquire"
	"fourier-paint/internal/brush"
	"fourier-paint/internal/spectrum"
)

// State holds the application state: the frequency-domain session, the
// current pen, and the event listeners the UI hangs off. All session access
// goes through the mutex; fyne callbacks arrive from the event loop but
// strokes can also be committed from menu actions.
type State struct {
	mu sync.RWMutex

	session *spectrum.Session

	// Source of the loaded image, empty for downloads.
	ImagePath string
	Modified  bool

	pen        brush.Pen
	pencilMode bool

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventSpectrumChanged
	EventVisualizationChanged
	EventResultUpdated
	EventLocksChanged
	EventPenChanged
	EventStatus
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		session:   spectrum.NewSession(),
		pen:       brush.Pen{R: 255, G: 255, B: 255, Diameter: 1},
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Status emits a status bar message.
func (s *State) Status(format string, args ...interface{}) {
	s.Emit(EventStatus, fmt.Sprintf(format, args...))
}

// Loaded reports whether an image has been loaded.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Loaded()
}

// LoadImage loads an image file and runs the transform pipeline.
func (s *State) LoadImage(path string) error {
	img, err := acquire.LoadFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.session.Load(img); err != nil {
		s.mu.Unlock()
		return err
	}
	s.ImagePath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventImageLoaded, path)
	s.Emit(EventSpectrumChanged, nil)
	s.Emit(EventResultUpdated, nil)
	s.Status("Loaded %s", path)
	return nil
}

// LoadRandom downloads a random image and runs the transform pipeline.
func (s *State) LoadRandom(ctx context.Context, opts acquire.PicsumOptions) error {
	img, err := acquire.FetchRandom(ctx, opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.session.Load(img); err != nil {
		s.mu.Unlock()
		return err
	}
	s.ImagePath = ""
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventImageLoaded, "")
	s.Emit(EventSpectrumChanged, nil)
	s.Emit(EventResultUpdated, nil)
	s.Status("Loaded random %dx%d image", opts.Width, opts.Height)
	return nil
}

// SaveResult writes the current reconstruction to disk as PNG.
func (s *State) SaveResult(path string) error {
	s.mu.RLock()
	result := s.session.Result()
	s.mu.RUnlock()

	if result == nil {
		return fmt.Errorf("save result: %w", spectrum.ErrNotLoaded)
	}
	if err := acquire.SavePNG(path, result); err != nil {
		return err
	}
	s.Status("Saved %s", path)
	return nil
}

// Pen returns the current pen.
func (s *State) Pen() brush.Pen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pen
}

// SetPen replaces the current pen.
func (s *State) SetPen(pen brush.Pen) {
	s.mu.Lock()
	s.pen = pen
	s.mu.Unlock()
	s.Emit(EventPenChanged, pen)
}

// PencilMode reports whether painting is enabled.
func (s *State) PencilMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pencilMode
}

// SetPencilMode toggles painting on the canvases.
func (s *State) SetPencilMode(on bool) {
	s.mu.Lock()
	s.pencilMode = on
	s.mu.Unlock()
	s.Emit(EventPenChanged, nil)
}

// Lock reports the magnitude-edit lock for one channel.
func (s *State) Lock(ch spectrum.Channel) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Lock(ch)
}

// SetLock gates magnitude edits for one channel.
func (s *State) SetLock(ch spectrum.Channel, locked bool) {
	s.mu.Lock()
	s.session.SetLock(ch, locked)
	s.mu.Unlock()
	s.Emit(EventLocksChanged, ch)
}

// PaintStroke feeds stroke edits into the working visualization.
func (s *State) PaintStroke(canvas spectrum.Canvas, edits []spectrum.PixelEdit) {
	s.mu.Lock()
	s.session.PaintStroke(canvas, edits)
	s.mu.Unlock()
	s.Emit(EventVisualizationChanged, canvas)
}

// CommitStroke reconciles the finished stroke into the spectrum.
func (s *State) CommitStroke(canvas spectrum.Canvas) error {
	s.mu.Lock()
	summary, err := s.session.CommitStroke(canvas)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if !summary.Changed() {
		return nil
	}

	s.mu.Lock()
	s.Modified = true
	s.mu.Unlock()
	s.Emit(EventSpectrumChanged, canvas)
	s.Emit(EventResultUpdated, nil)
	s.Status("Committed %d pixels on %s", summary.Pixels, canvas)
	return nil
}

// PaintSpatial feeds stroke edits into the spatial image.
func (s *State) PaintSpatial(edits []spectrum.PixelEdit) {
	s.mu.Lock()
	s.session.PaintSpatial(edits)
	s.mu.Unlock()
	s.Emit(EventVisualizationChanged, nil)
}

// CommitSpatial reruns the pipeline on the painted spatial image.
func (s *State) CommitSpatial() error {
	s.mu.Lock()
	err := s.session.CommitSpatial()
	if err == nil {
		s.Modified = true
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventSpectrumChanged, nil)
	s.Emit(EventResultUpdated, nil)
	return nil
}

// ApplyFilter runs one frequency-domain filter.
func (s *State) ApplyFilter(kind spectrum.FilterKind, param float64) error {
	s.mu.Lock()
	err := s.session.ApplyFilter(kind, param)
	if err == nil {
		s.Modified = true
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventSpectrumChanged, nil)
	s.Emit(EventResultUpdated, nil)
	s.Status("Applied %s filter (%.3f)", kind, param)
	return nil
}

// ApplyResult promotes the reconstruction to be the new source image.
func (s *State) ApplyResult() error {
	s.mu.Lock()
	err := s.session.ApplyResult()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventImageLoaded, "")
	s.Emit(EventSpectrumChanged, nil)
	s.Emit(EventResultUpdated, nil)
	s.Status("Applied result to original")
	return nil
}

// ResetFrequency discards every frequency-domain edit and recomputes the
// pipeline from the current source image.
func (s *State) ResetFrequency() error {
	s.mu.Lock()
	err := s.session.Reset()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventSpectrumChanged, nil)
	s.Emit(EventResultUpdated, nil)
	s.Status("Reset frequency domain")
	return nil
}

// Visualization returns a snapshot of one working visualization.
func (s *State) Visualization(canvas spectrum.Canvas) *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Visualization(canvas)
}

// Spatial returns a snapshot of the source image.
func (s *State) Spatial() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Spatial()
}

// Result returns a snapshot of the reconstruction.
func (s *State) Result() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Result()
}
