package components

import (
	"image/color"

	"project-creator/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ColorPicker pairs a palette dropdown with a hue dropdown and shows a
// swatch of the resulting color
type ColorPicker struct {
	container     *fyne.Container
	label         *widget.Label
	paletteSelect *widget.Select
	hueSelect     *widget.Select
	swatch        *canvas.Rectangle

	changeHandler func(palette, hue string)
}

// NewColorPicker creates a new color picker component
func NewColorPicker(title, palette, hue string) *ColorPicker {
	cp := &ColorPicker{}
	cp.createComponents(title)
	cp.buildLayout()
	cp.SetSelection(palette, hue)
	return cp
}

// createComponents initializes the dropdowns and swatch
func (cp *ColorPicker) createComponents(title string) {
	cp.label = widget.NewLabel(title)

	cp.swatch = canvas.NewRectangle(color.Transparent)
	cp.swatch.SetMinSize(fyne.NewSize(32, 32))
	cp.swatch.CornerRadius = 4

	cp.paletteSelect = widget.NewSelect(models.Palettes, func(string) { cp.onChanged() })
	cp.hueSelect = widget.NewSelect(models.Hues, func(string) { cp.onChanged() })
}

// buildLayout constructs the picker row
func (cp *ColorPicker) buildLayout() {
	cp.container = container.NewBorder(
		nil, nil,
		cp.label,
		cp.swatch,
		container.NewGridWithColumns(2, cp.paletteSelect, cp.hueSelect),
	)
}

func (cp *ColorPicker) onChanged() {
	palette, hue := cp.Selection()
	if c, err := models.PaletteColor(palette, hue); err == nil {
		cp.swatch.FillColor = c
	} else {
		cp.swatch.FillColor = color.Transparent
	}
	cp.swatch.Refresh()

	if cp.changeHandler != nil && palette != "" && hue != "" {
		cp.changeHandler(palette, hue)
	}
}

// SetChangeHandler sets the handler called after either dropdown changes
func (cp *ColorPicker) SetChangeHandler(handler func(palette, hue string)) {
	cp.changeHandler = handler
}

// SetSelection selects a palette and hue
func (cp *ColorPicker) SetSelection(palette, hue string) {
	cp.paletteSelect.SetSelected(palette)
	cp.hueSelect.SetSelected(hue)
}

// Selection returns the selected palette and hue
func (cp *ColorPicker) Selection() (string, string) {
	return cp.paletteSelect.Selected, cp.hueSelect.Selected
}

// SwatchColor returns the color currently shown
func (cp *ColorPicker) SwatchColor() color.Color {
	return cp.swatch.FillColor
}

// SetEnabled enables or disables both dropdowns
func (cp *ColorPicker) SetEnabled(enabled bool) {
	if enabled {
		cp.paletteSelect.Enable()
		cp.hueSelect.Enable()
	} else {
		cp.paletteSelect.Disable()
		cp.hueSelect.Disable()
	}
}

// GetContainer returns the picker container
func (cp *ColorPicker) GetContainer() *fyne.Container {
	return cp.container
}
