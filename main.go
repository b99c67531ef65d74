package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/image-predictor/internal/config"
	"github.com/ytget/image-predictor/internal/predict"
	"github.com/ytget/image-predictor/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.image-predictor"
	AppName = "Image Predictor"
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Environment overrides (.env is optional)
	env, err := config.LoadEnv(config.DefaultEnvFile)
	if err != nil {
		fmt.Printf("ignoring environment overrides: %v\n", err)
	}

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettingsWithEnv(myApp, env)
	fmt.Printf("Prediction endpoint: %s (models: %s)\n", settings.GetEndpoint(), settings.GetWireMap())

	predictSvc := predict.NewService(settings.GetEndpoint(), settings.GetWireMap())

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, settings, predictSvc)

	// Show and run
	myWindow.ShowAndRun()
}
