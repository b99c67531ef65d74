package platform

// Package platform contains OS integration: the picker start directory and
// opening a chosen image with the system viewer.
