// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"path/filepath"

	"fourier-paint/internal/acquire"
	"fourier-paint/internal/app"
	"fourier-paint/internal/brush"
	"fourier-paint/internal/spectrum"
	"fourier-paint/internal/version"
	"fourier-paint/ui/canvas"
	"fourier-paint/ui/dialogs"
	"fourier-paint/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir = "lastDirectory"

	prefKeyPenWidth  = "penWidth"
	prefKeyPenColor  = "penColor"
	prefKeyLockR     = "lockR"
	prefKeyLockG     = "lockG"
	prefKeyLockB     = "lockB"
	prefKeyPicWidth  = "picsumWidth"
	prefKeyPicHeight = "picsumHeight"
	prefKeyPicGray   = "picsumGrayscale"
	prefKeyPicBlur   = "picsumBlur"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	spatial *canvas.PaintCanvas
	result  *canvas.PaintCanvas
	freq    map[spectrum.Canvas]*canvas.PaintCanvas

	statusBar *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Fourier Paint")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		freq:   make(map[spectrum.Canvas]*canvas.PaintCanvas),
	}

	mw.restorePrefs()
	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// restorePrefs applies stored pen and lock settings before the UI exists.
func (mw *MainWindow) restorePrefs() {
	pen := mw.state.Pen()
	pen.Diameter = mw.prefs.Int(prefKeyPenWidth, 1)
	if c, ok := penColors[mw.prefs.String(prefKeyPenColor)]; ok {
		pen.R, pen.G, pen.B = c.R, c.G, c.B
	}
	mw.state.SetPen(pen)

	mw.state.SetLock(spectrum.ChannelR, mw.prefs.Bool(prefKeyLockR, false))
	mw.state.SetLock(spectrum.ChannelG, mw.prefs.Bool(prefKeyLockG, false))
	mw.state.SetLock(spectrum.ChannelB, mw.prefs.Bool(prefKeyLockB, false))
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.spatial = canvas.NewPaintCanvas()
	mw.result = canvas.NewPaintCanvas()
	for _, c := range []spectrum.Canvas{
		spectrum.CanvasMagnitude,
		spectrum.CanvasPhaseR,
		spectrum.CanvasPhaseG,
		spectrum.CanvasPhaseB,
	} {
		mw.freq[c] = canvas.NewPaintCanvas()
	}

	mw.wireSpatialCanvas()
	for target, cv := range mw.freq {
		mw.wireFrequencyCanvas(cv, target)
	}

	mw.statusBar = widget.NewLabel("Ready")
	toolbar := mw.createToolbar()

	topRow := container.NewGridWithColumns(3,
		labeled("Image", mw.spatial.Container()),
		labeled("Magnitude", mw.freq[spectrum.CanvasMagnitude].Container()),
		labeled("Result", mw.result.Container()),
	)
	bottomRow := container.NewGridWithColumns(3,
		labeled("Phase R", mw.freq[spectrum.CanvasPhaseR].Container()),
		labeled("Phase G", mw.freq[spectrum.CanvasPhaseG].Container()),
		labeled("Phase B", mw.freq[spectrum.CanvasPhaseB].Container()),
	)
	grid := container.NewGridWithRows(2, topRow, bottomRow)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		grid,                              // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

func labeled(title string, content fyne.CanvasObject) fyne.CanvasObject {
	return container.NewBorder(
		widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		content,
	)
}

// wireFrequencyCanvas connects paint events on one visualization to the
// session: segments paint the working copy live, drag end commits.
func (mw *MainWindow) wireFrequencyCanvas(cv *canvas.PaintCanvas, target spectrum.Canvas) {
	cv.SetPaintEnabled(mw.state.PencilMode)
	cv.OnStroke(func(x1, y1, x2, y2 int) {
		img := cv.Image()
		if img == nil {
			return
		}
		edits := brush.Segment(img.Rect.Dx(), img.Rect.Dy(), x1, y1, x2, y2, mw.state.Pen())
		mw.state.PaintStroke(target, edits)
	})
	cv.OnStrokeEnd(func() {
		if err := mw.state.CommitStroke(target); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	})
	cv.OnTap(func(x, y int) {
		img := cv.Image()
		if img == nil {
			return
		}
		edits := brush.Dot(img.Rect.Dx(), img.Rect.Dy(), x, y, mw.state.Pen())
		mw.state.PaintStroke(target, edits)
		if err := mw.state.CommitStroke(target); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	})
}

// wireSpatialCanvas connects paint events on the source image; the whole
// pipeline reruns when the stroke ends.
func (mw *MainWindow) wireSpatialCanvas() {
	cv := mw.spatial
	cv.SetPaintEnabled(mw.state.PencilMode)
	cv.OnStroke(func(x1, y1, x2, y2 int) {
		img := cv.Image()
		if img == nil {
			return
		}
		edits := brush.Segment(img.Rect.Dx(), img.Rect.Dy(), x1, y1, x2, y2, mw.state.Pen())
		mw.state.PaintSpatial(edits)
	})
	cv.OnStrokeEnd(func() {
		if err := mw.state.CommitSpatial(); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	})
	cv.OnTap(func(x, y int) {
		img := cv.Image()
		if img == nil {
			return
		}
		edits := brush.Dot(img.Rect.Dx(), img.Rect.Dy(), x, y, mw.state.Pen())
		mw.state.PaintSpatial(edits)
		if err := mw.state.CommitSpatial(); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	})
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Random Image...", mw.onRandomImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Result...", mw.onSaveResult),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Apply Result to Original", mw.onApplyResult),
		fyne.NewMenuItem("Reset Frequency Domain", mw.onResetFrequency),
	)

	filtersMenu := fyne.NewMenu("Filters",
		fyne.NewMenuItem("Radial Low-Pass...", func() { mw.onFilter(spectrum.FilterRadial) }),
		fyne.NewMenuItem("Magnitude Threshold...", func() { mw.onFilter(spectrum.FilterMagnitudeThreshold) }),
		fyne.NewMenuItem("Gaussian Low-Pass...", func() { mw.onFilter(spectrum.FilterGaussian) }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, filtersMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle("Fourier Paint - " + filepath.Base(path))
		}
		mw.refreshAll()
	})

	mw.state.On(app.EventSpectrumChanged, func(data interface{}) {
		mw.refreshAll()
	})

	mw.state.On(app.EventVisualizationChanged, func(data interface{}) {
		if target, ok := data.(spectrum.Canvas); ok {
			mw.freq[target].SetImage(mw.state.Visualization(target))
			return
		}
		// Spatial paint or reset: refresh everything visible.
		mw.spatial.SetImage(mw.state.Spatial())
		for target, cv := range mw.freq {
			cv.SetImage(mw.state.Visualization(target))
		}
	})

	mw.state.On(app.EventResultUpdated, func(data interface{}) {
		mw.result.SetImage(mw.state.Result())
	})

	mw.state.On(app.EventStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			mw.statusBar.SetText(text)
		}
	})
}

// refreshAll pushes fresh snapshots to every canvas.
func (mw *MainWindow) refreshAll() {
	mw.spatial.SetImage(mw.state.Spatial())
	for target, cv := range mw.freq {
		cv.SetImage(mw.state.Visualization(target))
	}
	mw.result.SetImage(mw.state.Result())
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(acquire.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onRandomImage() {
	defaults := acquire.PicsumOptions{
		Width:     mw.prefs.Int(prefKeyPicWidth, 256),
		Height:    mw.prefs.Int(prefKeyPicHeight, 256),
		Grayscale: mw.prefs.Bool(prefKeyPicGray, false),
		Blur:      mw.prefs.Int(prefKeyPicBlur, 0),
	}
	dialogs.NewRandomImageDialog(mw.Window, defaults, func(opts acquire.PicsumOptions) {
		mw.prefs.SetInt(prefKeyPicWidth, opts.Width)
		mw.prefs.SetInt(prefKeyPicHeight, opts.Height)
		mw.prefs.SetBool(prefKeyPicGray, opts.Grayscale)
		mw.prefs.SetInt(prefKeyPicBlur, opts.Blur)
		mw.savePrefs()

		mw.statusBar.SetText("Downloading random image...")
		go func() {
			if err := mw.state.LoadRandom(context.Background(), opts); err != nil {
				dialog.ShowError(err, mw.Window)
			}
		}()
	}).Show()
}

func (mw *MainWindow) onSaveResult() {
	if !mw.state.Loaded() {
		mw.statusBar.SetText("Nothing to save")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveResult(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("result.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onApplyResult() {
	if err := mw.state.ApplyResult(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onResetFrequency() {
	if err := mw.state.ResetFrequency(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onFilter(kind spectrum.FilterKind) {
	if !mw.state.Loaded() {
		mw.statusBar.SetText("Load an image first")
		return
	}
	dialogs.NewFilterDialog(kind, mw.Window, func(kind spectrum.FilterKind, param float64) {
		if err := mw.state.ApplyFilter(kind, param); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}).Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.forEachCanvas(func(cv *canvas.PaintCanvas) { cv.ZoomIn() })
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.forEachCanvas(func(cv *canvas.PaintCanvas) { cv.ZoomOut() })
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := mw.fitToWindowItem.Label != "✓ Fit to Window"
	mw.forEachCanvas(func(cv *canvas.PaintCanvas) { cv.SetFitToWindow(enabled) })

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.forEachCanvas(func(cv *canvas.PaintCanvas) { cv.SetZoom(1.0) })
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.fitToWindowItem.Label == "✓ Fit to Window" {
		mw.forEachCanvas(func(cv *canvas.PaintCanvas) { cv.SetFitToWindow(false) })
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) forEachCanvas(fn func(*canvas.PaintCanvas)) {
	fn(mw.spatial)
	fn(mw.result)
	for _, cv := range mw.freq {
		fn(cv)
	}
}

func (mw *MainWindow) savePrefs() {
	if err := mw.prefs.Save(); err != nil {
		mw.statusBar.SetText("Failed to save preferences: " + err.Error())
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Fourier Paint",
		fmt.Sprintf("Fourier Paint v%s\n\n"+
			"Paint on the Fourier spectrum of an image and watch\n"+
			"the inverse transform update live.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
