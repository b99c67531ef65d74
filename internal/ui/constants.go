package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconImage    = "🖼"
	IconFolder   = "📁"
	IconLanguage = "🌐"
)

// Text fragments
const (
	DashPlaceholder = "—"
)

// Window sizing
const (
	WindowWidth  float32 = 880
	WindowHeight float32 = 640
)

// Layout sizing (intake column)
const (
	DropZoneMinWidth  float32 = 320
	DropZoneMinHeight float32 = 140
	PreviewMaxEdge    float32 = 280
	PreviewDecodeEdge uint    = 560 // decoded at 2x for HiDPI screens
)

// Layout sizing (ResultRow / lists)
const (
	RowMinWidth       float32 = 320
	RowMinHeight      float32 = 44
	PercentLabelWidth float32 = 64
	BarHeight         float32 = 10
	BarCornerRadius   float32 = 5

	// Mobile-specific sizing
	MobileRowMinWidth float32 = 260
)

// Notification behavior
const (
	NotificationAutoHide = 5 * time.Second
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 320
)
