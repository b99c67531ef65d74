package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires drag-drop, the file picker and model selection to the prediction
// service and renders ranked results, notifications, and settings. All UI
// strings are localized via Localization.
