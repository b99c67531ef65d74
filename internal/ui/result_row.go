package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/image-predictor/internal/model"
)

// ResultRow shows one ranked prediction: rank and label, percentage, bar
type ResultRow struct {
	widget.BaseWidget

	row      model.RankedRow
	minWidth float32

	// UI components
	headingLabel *widget.Label
	percentLabel *widget.Label
	bar          *ConfidenceBar
}

// NewResultRow creates a new result row widget
func NewResultRow(row model.RankedRow) *ResultRow {
	rr := &ResultRow{row: row, minWidth: RowMinWidth}
	rr.ExtendBaseWidget(rr)
	rr.createUI()
	rr.updateFromRow()
	return rr
}

// SetMinWidth overrides the minimum row width
func (rr *ResultRow) SetMinWidth(width float32) {
	rr.minWidth = width
	rr.Refresh()
}

// SetRow replaces the displayed prediction
func (rr *ResultRow) SetRow(row model.RankedRow) {
	rr.row = row
	rr.updateFromRow()
	rr.Refresh()
}

// Row returns the displayed prediction
func (rr *ResultRow) Row() model.RankedRow {
	return rr.row
}

// HeadingText returns the "<rank>. <label>" text
func (rr *ResultRow) HeadingText() string {
	return rr.headingLabel.Text
}

// PercentText returns the percentage text
func (rr *ResultRow) PercentText() string {
	return rr.percentLabel.Text
}

// Bar returns the confidence bar
func (rr *ResultRow) Bar() *ConfidenceBar {
	return rr.bar
}

// createUI creates the row components
func (rr *ResultRow) createUI() {
	rr.headingLabel = widget.NewLabel("")
	rr.headingLabel.Truncation = fyne.TextTruncateEllipsis
	rr.headingLabel.TextStyle = fyne.TextStyle{Bold: true}

	rr.percentLabel = widget.NewLabel("")
	rr.percentLabel.Alignment = fyne.TextAlignTrailing

	rr.bar = NewConfidenceBar(0)
}

// updateFromRow copies the prediction into the components
func (rr *ResultRow) updateFromRow() {
	rr.headingLabel.SetText(rr.row.Heading())
	rr.percentLabel.SetText(rr.row.PercentText())
	rr.bar.SetFraction(rr.row.BarFraction())
}

// CreateRenderer creates the widget renderer
func (rr *ResultRow) CreateRenderer() fyne.WidgetRenderer {
	return &resultRowRenderer{resultRow: rr}
}

// resultRowRenderer renders the result row widget
type resultRowRenderer struct {
	resultRow *ResultRow
	layout    *fyne.Container
}

// Layout arranges the components
func (r *resultRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *resultRowRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	minSize := r.layout.MinSize()
	if minSize.Width < r.resultRow.minWidth {
		minSize.Width = r.resultRow.minWidth
	}
	if minSize.Height < RowMinHeight {
		minSize.Height = RowMinHeight
	}
	return minSize
}

// Refresh refreshes the renderer
func (r *resultRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the child objects
func (r *resultRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up resources
func (r *resultRowRenderer) Destroy() {}

// createLayout builds heading and percent on one line with the bar below
func (r *resultRowRenderer) createLayout() {
	rr := r.resultRow

	// Fixed width for the percentage so bars line up across rows
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(PercentLabelWidth, rr.percentLabel.MinSize().Height))
	percent := container.NewStack(spacer, rr.percentLabel)

	r.layout = container.NewVBox(
		container.NewBorder(nil, nil, nil, percent, rr.headingLabel),
		rr.bar,
	)
}
