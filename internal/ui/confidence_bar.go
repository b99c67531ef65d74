package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ConfidenceBar draws a horizontal bar filled in proportion to a confidence
type ConfidenceBar struct {
	widget.BaseWidget

	fraction float64
}

// NewConfidenceBar creates a bar for the given fraction (1.0 = full width)
func NewConfidenceBar(fraction float64) *ConfidenceBar {
	b := &ConfidenceBar{fraction: fraction}
	b.ExtendBaseWidget(b)
	return b
}

// SetFraction updates the bar value
func (b *ConfidenceBar) SetFraction(fraction float64) {
	b.fraction = fraction
	b.Refresh()
}

// Fraction returns the value as given, unclamped
func (b *ConfidenceBar) Fraction() float64 {
	return b.fraction
}

// FillFraction returns the drawn share of the track, limited to [0, 1]
func (b *ConfidenceBar) FillFraction() float64 {
	switch {
	case b.fraction < 0:
		return 0
	case b.fraction > 1:
		return 1
	default:
		return b.fraction
	}
}

// CreateRenderer creates the widget renderer
func (b *ConfidenceBar) CreateRenderer() fyne.WidgetRenderer {
	track := canvas.NewRectangle(trackColor())
	track.CornerRadius = BarCornerRadius
	fill := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	fill.CornerRadius = BarCornerRadius

	return &confidenceBarRenderer{bar: b, track: track, fill: fill}
}

// confidenceBarRenderer renders the confidence bar widget
type confidenceBarRenderer struct {
	bar   *ConfidenceBar
	track *canvas.Rectangle
	fill  *canvas.Rectangle
}

// Layout sizes the fill relative to the track
func (r *confidenceBarRenderer) Layout(size fyne.Size) {
	r.track.Move(fyne.NewPos(0, 0))
	r.track.Resize(size)

	r.fill.Move(fyne.NewPos(0, 0))
	r.fill.Resize(fyne.NewSize(size.Width*float32(r.bar.FillFraction()), size.Height))
}

// MinSize returns the minimum size
func (r *confidenceBarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(BarHeight*4, BarHeight)
}

// Refresh picks up theme and value changes
func (r *confidenceBarRenderer) Refresh() {
	r.track.FillColor = trackColor()
	r.fill.FillColor = theme.Color(theme.ColorNamePrimary)
	r.Layout(r.bar.Size())
	r.track.Refresh()
	r.fill.Refresh()
}

// Objects returns the drawn rectangles
func (r *confidenceBarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.track, r.fill}
}

// Destroy is a no-op
func (r *confidenceBarRenderer) Destroy() {}

func trackColor() color.Color {
	app := fyne.CurrentApp()
	if app == nil {
		return ColorBarTrackLight
	}
	return BarTrackColor(app.Settings().ThemeVariant())
}
