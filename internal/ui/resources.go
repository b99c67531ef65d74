package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "image-predictor.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// LogoResource returns the logo, or the stock image icon when the file is missing
func LogoResource() fyne.Resource {
	if logo, err := LoadLogoResource(); err == nil {
		return logo
	}
	return theme.FileImageIcon()
}
