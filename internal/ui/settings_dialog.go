package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/image-predictor/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	baseURLEntry     *widget.Entry
	predictPathEntry *widget.Entry
	endpointLabel    *widget.Label
	languageSelect   *widget.Select
	languageCodes    map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.baseURLEntry = widget.NewEntry()
	sd.baseURLEntry.SetPlaceHolder(config.DefaultBaseURL)
	sd.baseURLEntry.OnChanged = func(string) { sd.updateEndpointPreview() }

	sd.predictPathEntry = widget.NewEntry()
	sd.predictPathEntry.SetPlaceHolder(config.DefaultPredictPath)
	sd.predictPathEntry.OnChanged = func(string) { sd.updateEndpointPreview() }

	sd.endpointLabel = widget.NewLabel("")
	sd.endpointLabel.Wrapping = fyne.TextWrapBreak

	// Language selection shows display names, stores codes
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	items := []*widget.FormItem{
		widget.NewFormItem(l.GetText(KeyBaseURL), sd.baseURLEntry),
		widget.NewFormItem(l.GetText(KeyPredictPath), sd.predictPathEntry),
		widget.NewFormItem(l.GetText(KeyEndpoint), sd.endpointLabel),
	}
	if sd.settings.IsEndpointOverridden() {
		sd.baseURLEntry.Disable()
		sd.predictPathEntry.Disable()
		items = append(items, widget.NewFormItem("", widget.NewLabel(l.GetText(KeyEndpointPinned))))
	}
	items = append(items, widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect))

	form := container.NewVBox(widget.NewForm(items...))

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.baseURLEntry.SetText(sd.settings.GetBaseURL())
	sd.predictPathEntry.SetText(sd.settings.GetPredictPath())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
	sd.updateEndpointPreview()
}

// updateEndpointPreview shows the URL requests will be sent to
func (sd *SettingsDialog) updateEndpointPreview() {
	if sd.endpointLabel == nil {
		return
	}
	sd.endpointLabel.SetText(config.JoinEndpoint(sd.baseURLEntry.Text, sd.predictPathEntry.Text))
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()

	// Show confirmation
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes the form values to the settings
func (sd *SettingsDialog) save() {
	if !sd.settings.IsEndpointOverridden() {
		sd.settings.SetBaseURL(sd.baseURLEntry.Text)
		sd.settings.SetPredictPath(sd.predictPathEntry.Text)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
