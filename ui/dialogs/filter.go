// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"fourier-paint/internal/spectrum"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// FilterDialog collects the single numeric parameter of a frequency filter.
type FilterDialog struct {
	kind   spectrum.FilterKind
	window fyne.Window

	paramEntry *widget.Entry

	onApply func(kind spectrum.FilterKind, param float64)
}

// paramSpec describes the parameter of one filter kind.
type paramSpec struct {
	label    string
	fallback float64
	min, max float64
}

func specFor(kind spectrum.FilterKind) paramSpec {
	switch kind {
	case spectrum.FilterRadial:
		return paramSpec{label: "Radius fraction (0-1]", fallback: 0.25, min: 0, max: 1}
	case spectrum.FilterMagnitudeThreshold:
		return paramSpec{label: "Threshold fraction [0-1]", fallback: 0.5, min: 0, max: 1}
	default:
		return paramSpec{label: "Sigma fraction (0-1]", fallback: 0.15, min: 0, max: 1}
	}
}

// NewFilterDialog creates a new filter parameter dialog.
func NewFilterDialog(kind spectrum.FilterKind, window fyne.Window, onApply func(spectrum.FilterKind, float64)) *FilterDialog {
	return &FilterDialog{
		kind:    kind,
		window:  window,
		onApply: onApply,
	}
}

// Show displays the dialog.
func (d *FilterDialog) Show() {
	spec := specFor(d.kind)

	d.paramEntry = widget.NewEntry()
	d.paramEntry.SetText(strconv.FormatFloat(spec.fallback, 'f', -1, 64))

	form := widget.NewForm(
		widget.NewFormItem(spec.label, d.paramEntry),
	)

	dlg := dialog.NewCustomConfirm(
		fmt.Sprintf("%s filter", d.kind),
		"Apply",
		"Cancel",
		form,
		func(apply bool) {
			if !apply {
				return
			}
			param, err := strconv.ParseFloat(d.paramEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid parameter %q: %w", d.paramEntry.Text, err), d.window)
				return
			}
			if param < spec.min || param > spec.max {
				dialog.ShowError(fmt.Errorf("parameter %g outside [%g, %g]", param, spec.min, spec.max), d.window)
				return
			}
			if d.onApply != nil {
				d.onApply(d.kind, param)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(360, 160))
	dlg.Show()
}
