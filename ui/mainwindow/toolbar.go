package mainwindow

import (
	"fmt"
	"image/color"

	"fourier-paint/internal/spectrum"
	"fourier-paint/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// penColors maps the selector names to pen colors. Black is the zeroing
// pen on the magnitude canvas.
var penColors = map[string]color.RGBA{
	"White":   colorutil.White,
	"Black":   colorutil.Black,
	"Red":     colorutil.Red,
	"Green":   colorutil.Green,
	"Blue":    colorutil.Blue,
	"Cyan":    colorutil.Cyan,
	"Magenta": colorutil.Magenta,
	"Yellow":  colorutil.Yellow,
}

var penColorNames = []string{"White", "Black", "Red", "Green", "Blue", "Cyan", "Magenta", "Yellow"}

// createToolbar creates the toolbar with pen, lock, and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	pencilChk := widget.NewCheck("Pencil", func(on bool) {
		mw.state.SetPencilMode(on)
	})
	pencilChk.SetChecked(mw.state.PencilMode())

	colorSelect := widget.NewSelect(penColorNames, func(name string) {
		c, ok := penColors[name]
		if !ok {
			return
		}
		pen := mw.state.Pen()
		pen.R, pen.G, pen.B = c.R, c.G, c.B
		mw.state.SetPen(pen)
		mw.prefs.SetString(prefKeyPenColor, name)
		mw.savePrefs()
	})
	if name := mw.prefs.String(prefKeyPenColor); name != "" {
		colorSelect.SetSelected(name)
	} else {
		colorSelect.SetSelected("White")
	}

	widthLabel := widget.NewLabel(fmt.Sprintf("%d px", mw.state.Pen().Diameter))
	widthSlider := widget.NewSlider(1, 25)
	widthSlider.Step = 2
	widthSlider.SetValue(float64(mw.state.Pen().Diameter))
	widthSlider.OnChanged = func(v float64) {
		pen := mw.state.Pen()
		pen.Diameter = int(v)
		mw.state.SetPen(pen)
		widthLabel.SetText(fmt.Sprintf("%d px", pen.Diameter))
		mw.prefs.SetInt(prefKeyPenWidth, pen.Diameter)
		mw.savePrefs()
	}

	lockR := mw.lockCheck("Lock R", spectrum.ChannelR, prefKeyLockR)
	lockG := mw.lockCheck("Lock G", spectrum.ChannelG, prefKeyLockG)
	lockB := mw.lockCheck("Lock B", spectrum.ChannelB, prefKeyLockB)

	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onToggleFitToWindow)
	actualBtn := widget.NewButton("1:1", mw.onActualSize)

	widthSlider.Resize(fyne.NewSize(120, widthSlider.MinSize().Height))
	widthBox := container.NewGridWrap(fyne.NewSize(120, widthSlider.MinSize().Height), widthSlider)

	return container.NewHBox(
		pencilChk,
		widget.NewSeparator(),
		widget.NewLabel("Pen:"),
		colorSelect,
		widthBox,
		widthLabel,
		widget.NewSeparator(),
		lockR, lockG, lockB,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

func (mw *MainWindow) lockCheck(label string, ch spectrum.Channel, prefKey string) *widget.Check {
	chk := widget.NewCheck(label, func(locked bool) {
		mw.state.SetLock(ch, locked)
		mw.prefs.SetBool(prefKey, locked)
		mw.savePrefs()
	})
	chk.SetChecked(mw.state.Lock(ch))
	return chk
}
