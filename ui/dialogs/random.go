package dialogs

import (
	"fmt"
	"strconv"

	"fourier-paint/internal/acquire"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// RandomImageDialog collects picsum.photos download options.
type RandomImageDialog struct {
	window   fyne.Window
	defaults acquire.PicsumOptions

	widthEntry    *widget.Entry
	heightEntry   *widget.Entry
	seedEntry     *widget.Entry
	idEntry       *widget.Entry
	grayscaleChk  *widget.Check
	blurSlider    *widget.Slider
	blurValueText *widget.Label

	onFetch func(acquire.PicsumOptions)
}

// NewRandomImageDialog creates a new random image dialog.
func NewRandomImageDialog(window fyne.Window, defaults acquire.PicsumOptions, onFetch func(acquire.PicsumOptions)) *RandomImageDialog {
	return &RandomImageDialog{
		window:   window,
		defaults: defaults,
		onFetch:  onFetch,
	}
}

// Show displays the dialog.
func (d *RandomImageDialog) Show() {
	d.widthEntry = widget.NewEntry()
	d.widthEntry.SetText(strconv.Itoa(d.defaults.Width))
	d.heightEntry = widget.NewEntry()
	d.heightEntry.SetText(strconv.Itoa(d.defaults.Height))

	d.seedEntry = widget.NewEntry()
	d.seedEntry.SetPlaceHolder("random")
	d.idEntry = widget.NewEntry()
	d.idEntry.SetPlaceHolder("any")

	d.grayscaleChk = widget.NewCheck("", nil)
	d.grayscaleChk.SetChecked(d.defaults.Grayscale)

	d.blurValueText = widget.NewLabel(blurText(d.defaults.Blur))
	d.blurSlider = widget.NewSlider(0, 10)
	d.blurSlider.Step = 1
	d.blurSlider.SetValue(float64(d.defaults.Blur))
	d.blurSlider.OnChanged = func(v float64) {
		d.blurValueText.SetText(blurText(int(v)))
	}

	form := widget.NewForm(
		widget.NewFormItem("Width", d.widthEntry),
		widget.NewFormItem("Height", d.heightEntry),
		widget.NewFormItem("Seed", d.seedEntry),
		widget.NewFormItem("Image ID", d.idEntry),
		widget.NewFormItem("Grayscale", d.grayscaleChk),
		widget.NewFormItem("Blur", d.blurSlider),
		widget.NewFormItem("", d.blurValueText),
	)

	dlg := dialog.NewCustomConfirm(
		"Random Image",
		"Fetch",
		"Cancel",
		form,
		func(fetch bool) {
			if !fetch {
				return
			}
			opts, err := d.collect()
			if err != nil {
				dialog.ShowError(err, d.window)
				return
			}
			if d.onFetch != nil {
				d.onFetch(opts)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(380, 380))
	dlg.Show()
}

func (d *RandomImageDialog) collect() (acquire.PicsumOptions, error) {
	width, err := strconv.Atoi(d.widthEntry.Text)
	if err != nil {
		return acquire.PicsumOptions{}, fmt.Errorf("invalid width %q", d.widthEntry.Text)
	}
	height, err := strconv.Atoi(d.heightEntry.Text)
	if err != nil {
		return acquire.PicsumOptions{}, fmt.Errorf("invalid height %q", d.heightEntry.Text)
	}

	opts := acquire.PicsumOptions{
		Width:     width,
		Height:    height,
		Grayscale: d.grayscaleChk.Checked,
		Blur:      int(d.blurSlider.Value),
		Seed:      d.seedEntry.Text,
		ID:        d.idEntry.Text,
	}
	return opts, opts.Validate()
}

func blurText(n int) string {
	if n == 0 {
		return "off"
	}
	return strconv.Itoa(n)
}
