package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// MobileUI provides mobile-specific layout decisions
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// CreateMainLayout places the intake column and the result column side by
// side on desktop and stacks them on mobile
func (m *MobileUI) CreateMainLayout(intakeColumn, resultColumn fyne.CanvasObject) fyne.CanvasObject {
	if m.IsMobileDevice() {
		return container.NewVScroll(container.NewVBox(intakeColumn, resultColumn))
	}
	split := container.NewHSplit(intakeColumn, resultColumn)
	split.Offset = 0.45
	return split
}

// RowMinWidth returns the minimum width of a result row
func (m *MobileUI) RowMinWidth() float32 {
	if m.IsMobileDevice() {
		return MobileRowMinWidth
	}
	return RowMinWidth
}
