// Package canvas provides a paintable image canvas with pan and zoom.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 16.0
	zoomStep = 1.25
)

// PaintCanvas displays one image buffer and reports paint strokes on it in
// image coordinates. The owning window decides what a stroke means for the
// canvas it is attached to.
type PaintCanvas struct {
	widget.BaseWidget

	img *image.RGBA

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Interaction state
	painting     bool
	lastX, lastY int

	// Container
	scroll  *zoomScroll
	content *paintableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onStroke     func(x1, y1, x2, y2 int) // segment between drag samples, image coords
	onStrokeEnd  func()
	onTap        func(x, y int)
	paintEnabled func() bool
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PaintCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PaintCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// paintableContent wraps the raster to handle mouse events.
type paintableContent struct {
	widget.BaseWidget
	canvas *PaintCanvas
	raster *fynecanvas.Raster
}

func newPaintableContent(pc *PaintCanvas, raster *fynecanvas.Raster) *paintableContent {
	c := &paintableContent{
		canvas: pc,
		raster: raster,
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *paintableContent) CreateRenderer() fyne.WidgetRenderer {
	return &paintableContentRenderer{content: c}
}

func (c *paintableContent) MinSize() fyne.Size {
	return c.raster.MinSize()
}

func (c *paintableContent) Dragged(ev *fyne.DragEvent) {
	pc := c.canvas
	if pc.onStroke == nil || (pc.paintEnabled != nil && !pc.paintEnabled()) {
		return
	}

	// ev.Position is relative to the viewport; add the scroll offset.
	scrollOffset := pc.scroll.Offset()
	x := int(float64(ev.Position.X+scrollOffset.X) / pc.zoom)
	y := int(float64(ev.Position.Y+scrollOffset.Y) / pc.zoom)

	if !pc.painting {
		pc.painting = true
		pc.lastX, pc.lastY = x, y
	}
	pc.onStroke(pc.lastX, pc.lastY, x, y)
	pc.lastX, pc.lastY = x, y
	pc.Refresh()
}

func (c *paintableContent) DragEnd() {
	pc := c.canvas
	if !pc.painting {
		return
	}
	pc.painting = false
	if pc.onStrokeEnd != nil {
		pc.onStrokeEnd()
	}
	pc.Refresh()
}

func (c *paintableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.canvas.ZoomOut()
	}
}

// Tapped handles left-click events as single dots.
func (c *paintableContent) Tapped(ev *fyne.PointEvent) {
	pc := c.canvas
	if pc.onTap == nil || (pc.paintEnabled != nil && !pc.paintEnabled()) {
		return
	}

	// Reject clicks outside widget bounds; fyne can deliver them during
	// focus changes.
	size := c.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	scrollOffset := pc.scroll.Offset()
	x := int(float64(ev.Position.X+scrollOffset.X) / pc.zoom)
	y := int(float64(ev.Position.Y+scrollOffset.Y) / pc.zoom)
	pc.onTap(x, y)
	pc.Refresh()
}

type paintableContentRenderer struct {
	content *paintableContent
}

func (r *paintableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *paintableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *paintableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *paintableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *paintableContentRenderer) Destroy() {}

// NewPaintCanvas creates a new paintable canvas.
func NewPaintCanvas() *PaintCanvas {
	pc := &PaintCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(256, 256),
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.raster.SetMinSize(pc.imgSize)

	pc.content = newPaintableContent(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.content, pc)

	pc.ExtendBaseWidget(pc)
	return pc
}

// Container returns the canvas container for embedding in layouts.
func (pc *PaintCanvas) Container() fyne.CanvasObject {
	return pc.scroll
}

// SetImage replaces the displayed buffer.
func (pc *PaintCanvas) SetImage(img *image.RGBA) {
	pc.img = img
	pc.updateContentSize()
}

// Image returns the displayed buffer.
func (pc *PaintCanvas) Image() *image.RGBA {
	return pc.img
}

// SetZoom sets the zoom level.
func (pc *PaintCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	pc.zoom = zoom
	pc.updateContentSize()

	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (pc *PaintCanvas) Zoom() float64 {
	return pc.zoom
}

// ZoomIn increases the zoom level.
func (pc *PaintCanvas) ZoomIn() {
	pc.SetZoom(pc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (pc *PaintCanvas) ZoomOut() {
	pc.SetZoom(pc.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the image in the visible area.
func (pc *PaintCanvas) FitToWindow() {
	if pc.img == nil {
		return
	}
	w, h := pc.img.Rect.Dx(), pc.img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	viewSize := pc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(w)
	zoomY := float64(viewSize.Height) / float64(h)
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	pc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (pc *PaintCanvas) SetFitToWindow(fit bool) {
	pc.fitToWindow = fit
	if fit {
		pc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PaintCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// OnStroke sets the callback for drag segments, in image coordinates.
func (pc *PaintCanvas) OnStroke(callback func(x1, y1, x2, y2 int)) {
	pc.onStroke = callback
}

// OnStrokeEnd sets the callback for drag completion.
func (pc *PaintCanvas) OnStrokeEnd(callback func()) {
	pc.onStrokeEnd = callback
}

// OnTap sets the callback for single clicks, in image coordinates.
func (pc *PaintCanvas) OnTap(callback func(x, y int)) {
	pc.onTap = callback
}

// SetPaintEnabled gates painting behind a predicate, usually the pencil
// toggle in the toolbar.
func (pc *PaintCanvas) SetPaintEnabled(predicate func() bool) {
	pc.paintEnabled = predicate
}

// Refresh refreshes the canvas display.
func (pc *PaintCanvas) Refresh() {
	pc.raster.Refresh()
}

// updateContentSize updates the content size based on image and zoom.
func (pc *PaintCanvas) updateContentSize() {
	if pc.img == nil || pc.img.Rect.Dx() == 0 || pc.img.Rect.Dy() == 0 {
		pc.imgSize = fyne.NewSize(256, 256)
	} else {
		width := float32(float64(pc.img.Rect.Dx()) * pc.zoom)
		height := float32(float64(pc.img.Rect.Dy()) * pc.zoom)
		pc.imgSize = fyne.NewSize(width, height)
	}

	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.content != nil {
		pc.content.Resize(pc.imgSize)
		pc.content.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// draw is the raster drawing function: nearest-neighbor scale by zoom over
// a black background.
func (pc *PaintCanvas) draw(w, h int) image.Image {
	currentSize := fyne.NewSize(float32(w), float32(h))
	if pc.fitToWindow && currentSize != pc.lastScrollSize && w > 0 && h > 0 {
		pc.lastScrollSize = currentSize
		go func() {
			pc.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}
	if pc.img == nil {
		return output
	}

	src := pc.img
	srcW, srcH := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		sy := int(float64(y) / pc.zoom)
		if sy < 0 || sy >= srcH {
			continue
		}
		srcRow := sy * src.Stride
		dstRow := y * output.Stride
		for x := 0; x < w; x++ {
			sx := int(float64(x) / pc.zoom)
			if sx < 0 || sx >= srcW {
				continue
			}
			so := srcRow + sx*4
			do := dstRow + x*4
			output.Pix[do+0] = src.Pix[so+0]
			output.Pix[do+1] = src.Pix[so+1]
			output.Pix[do+2] = src.Pix[so+2]
		}
	}
	return output
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (pc *PaintCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	imgX = canvasX / pc.zoom
	imgY = canvasY / pc.zoom
	return
}

// CreateRenderer implements fyne.Widget.
func (pc *PaintCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &paintCanvasRenderer{canvas: pc}
}

type paintCanvasRenderer struct {
	canvas *PaintCanvas
}

func (r *paintCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
}

func (r *paintCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *paintCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *paintCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *paintCanvasRenderer) Destroy() {}
