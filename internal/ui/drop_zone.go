package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DropZone is the area that invites a drop or a click to browse.
// Files dropped anywhere on the window are accepted; the zone is the visual target.
type DropZone struct {
	widget.BaseWidget

	hint     string
	subHint  string
	onTapped func()
	hovered  bool
}

// NewDropZone creates a drop zone with the given texts
func NewDropZone(hint, subHint string, onTapped func()) *DropZone {
	dz := &DropZone{hint: hint, subHint: subHint, onTapped: onTapped}
	dz.ExtendBaseWidget(dz)
	return dz
}

// SetTexts updates the hint texts
func (dz *DropZone) SetTexts(hint, subHint string) {
	dz.hint = hint
	dz.subHint = subHint
	dz.Refresh()
}

// Hint returns the main hint text
func (dz *DropZone) Hint() string {
	return dz.hint
}

// Tapped opens the picker
func (dz *DropZone) Tapped(*fyne.PointEvent) {
	if dz.onTapped != nil {
		dz.onTapped()
	}
}

// MouseIn highlights the zone
func (dz *DropZone) MouseIn(*desktop.MouseEvent) {
	dz.hovered = true
	dz.Refresh()
}

// MouseMoved is required by desktop.Hoverable
func (dz *DropZone) MouseMoved(*desktop.MouseEvent) {}

// MouseOut removes the highlight
func (dz *DropZone) MouseOut() {
	dz.hovered = false
	dz.Refresh()
}

// Cursor shows a pointer over the zone
func (dz *DropZone) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// CreateRenderer creates the widget renderer
func (dz *DropZone) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 2
	border.CornerRadius = theme.Size(theme.SizeNameInputRadius) * 2

	icon := widget.NewIcon(theme.FileImageIcon())
	hint := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subHint := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	r := &dropZoneRenderer{
		zone:    dz,
		border:  border,
		hint:    hint,
		subHint: subHint,
		content: container.NewCenter(container.NewVBox(icon, hint, subHint)),
	}
	r.Refresh()
	return r
}

// dropZoneRenderer renders the drop zone widget
type dropZoneRenderer struct {
	zone    *DropZone
	border  *canvas.Rectangle
	hint    *widget.Label
	subHint *widget.Label
	content *fyne.Container
}

// Layout arranges the components
func (r *dropZoneRenderer) Layout(size fyne.Size) {
	r.border.Resize(size)
	r.content.Resize(size)
}

// MinSize returns the minimum size
func (r *dropZoneRenderer) MinSize() fyne.Size {
	contentMin := r.content.MinSize()
	return fyne.NewSize(
		fyne.Max(DropZoneMinWidth, contentMin.Width),
		fyne.Max(DropZoneMinHeight, contentMin.Height),
	)
}

// Refresh refreshes the renderer
func (r *dropZoneRenderer) Refresh() {
	r.hint.SetText(r.zone.hint)
	r.subHint.SetText(r.zone.subHint)

	r.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
	if r.zone.hovered {
		r.border.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.border.FillColor = color.Transparent
	}
	r.border.Refresh()
}

// Objects returns the child objects
func (r *dropZoneRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.border, r.content}
}

// Destroy cleans up resources
func (r *dropZoneRenderer) Destroy() {}
