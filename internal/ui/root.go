package ui

import (
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/image-predictor/internal/config"
	"github.com/ytget/image-predictor/internal/intake"
	"github.com/ytget/image-predictor/internal/model"
	"github.com/ytget/image-predictor/internal/platform"
	"github.com/ytget/image-predictor/internal/predict"
)

// ImageFileFilter limits the picker to image files
var ImageFileFilter = []string{"image/*"}

// RootUI represents the main UI structure. All methods run on the UI
// goroutine; background work reports back through fyne.Do.
type RootUI struct {
	window       fyne.Window
	session      *model.Session
	predictSvc   predict.Submitter
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI

	// Intake column
	dropZone     *DropZone
	chooseBtn    *widget.Button
	detailsLabel *widget.Label
	openBtn      *widget.Button
	detailsBox   *fyne.Container
	preview      *canvas.Image
	modelLabel   *widget.Label
	modelRadio   *widget.RadioGroup
	predictBtn   *widget.Button

	// Result column
	resultHeading   *widget.Label
	resultRows      *fyne.Container
	resultContainer *fyne.Container

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationMutex     sync.Mutex
	notificationSeq       int

	lastNotice string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, predictSvc predict.Submitter) *RootUI {
	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	session := model.NewSession()
	if err := session.SelectModel(settings.GetLastModel()); err != nil {
		log.Printf("Ignoring stored model: %v", err)
	}

	ui := &RootUI{
		window:       window,
		session:      session,
		predictSvc:   predictSvc,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for prediction outcomes
	ui.predictSvc.SetUpdateCallback(ui.onPredictionOutcome)

	ui.setupUI()

	log.Printf("RootUI initialized: endpoint=%s model=%s", predictSvc.Endpoint(), session.Model)
	return ui
}

// Session returns the state record the UI operates on
func (ui *RootUI) Session() *model.Session {
	return ui.session
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.createMenu()

	// Header with logo and settings button
	logo := canvas.NewImageFromResource(LogoResource())
	logo.SetMinSize(fyne.NewSize(32, 32))
	logo.FillMode = canvas.ImageFillContain
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	header := container.NewBorder(nil, nil, logo, settingsBtn,
		widget.NewLabelWithStyle(l.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

	// Intake: drop zone, picker button, details, preview
	ui.dropZone = NewDropZone(l.GetText(KeyDropHint), l.GetText(KeyDropSubHint), ui.onChooseFile)
	ui.chooseBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyChooseImage), ui.onChooseFile)

	ui.detailsLabel = widget.NewLabel("")
	ui.detailsLabel.Wrapping = fyne.TextWrapBreak
	ui.openBtn = widget.NewButton(IconImage+" "+l.GetText(KeyOpenImage), ui.onOpenImage)
	ui.openBtn.Importance = widget.LowImportance
	ui.detailsBox = container.NewBorder(nil, nil, nil, ui.openBtn, ui.detailsLabel)
	ui.detailsBox.Hide()

	ui.preview = canvas.NewImageFromImage(nil)
	ui.preview.FillMode = canvas.ImageFillContain
	ui.preview.SetMinSize(fyne.NewSize(PreviewMaxEdge, PreviewMaxEdge))
	ui.preview.Hide()

	// Model selection: exactly one option is always chosen
	ui.modelLabel = widget.NewLabelWithStyle(l.GetText(KeyChooseModel), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.modelRadio = widget.NewRadioGroup(model.ModelLabels(), nil)
	ui.modelRadio.Horizontal = true
	ui.modelRadio.Required = true
	if option, ok := model.LookupModel(string(ui.session.Model)); ok {
		ui.modelRadio.SetSelected(option.Label)
	}
	ui.modelRadio.OnChanged = ui.onModelChanged

	// Submit
	ui.predictBtn = widget.NewButton(l.GetText(KeyPredict), ui.onPredict)
	ui.predictBtn.Importance = widget.HighImportance

	// Notification panel (hidden by default); also the loading indicator
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewVBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	intakeColumn := container.NewVBox(
		ui.dropZone,
		ui.chooseBtn,
		ui.detailsBox,
		container.NewCenter(ui.preview),
		widget.NewSeparator(),
		ui.modelLabel,
		ui.modelRadio,
		ui.predictBtn,
		ui.notificationContainer,
	)

	// Results (hidden until a prediction succeeds)
	ui.resultHeading = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.resultRows = container.NewVBox()
	ui.resultContainer = container.NewBorder(ui.resultHeading, nil, nil, nil, container.NewVScroll(ui.resultRows))
	ui.resultContainer.Hide()

	content := container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()), // top
		nil, // bottom
		nil, // left
		nil, // right
		ui.mobile.CreateMainLayout(container.NewPadded(intakeColumn), container.NewPadded(ui.resultContainer)),
	)

	ui.window.SetContent(content)
	ui.window.SetOnDropped(ui.onDropped)

	ui.refreshControls()

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	chooseItem := fyne.NewMenuItem(ui.localization.GetText(KeyChooseImage), ui.onChooseFile)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(IconLanguage + " " + ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), chooseItem, fyne.NewMenuItemSeparator(), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.dropZone.SetTexts(l.GetText(KeyDropHint), l.GetText(KeyDropSubHint))
	ui.chooseBtn.SetText(IconFolder + " " + l.GetText(KeyChooseImage))
	ui.openBtn.SetText(IconImage + " " + l.GetText(KeyOpenImage))
	ui.modelLabel.SetText(l.GetText(KeyChooseModel))
	ui.predictBtn.SetText(l.GetText(KeyPredict))

	ui.updateDetails()
	// Only re-render results that are on screen; intake clears them
	if ui.resultContainer.Visible() && ui.session.State == model.RequestSucceeded {
		ui.renderResults()
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved applies changed settings
func (ui *RootUI) onSettingsSaved() {
	endpoint := ui.settings.GetEndpoint()
	if endpoint != ui.predictSvc.Endpoint() {
		log.Printf("Prediction endpoint changed to %s", endpoint)
		ui.predictSvc.SetEndpoint(endpoint)
	}

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.localization.SetLanguage(lang)
		ui.refreshUITexts()
		ui.createMenu()
	}
}

// onDropped handles files dropped on the window; only the first is used
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	if len(uris) > 1 {
		log.Printf("Dropped %d files, using the first: %s", len(uris), uris[0].Name())
	}

	candidate, err := intake.FromURI(uris[0])
	if err != nil {
		log.Printf("Failed to read dropped file %s: %v", uris[0], err)
		ui.showFailure(err)
		return
	}
	ui.acceptCandidate(candidate)
}

// onChooseFile opens the file picker
func (ui *RootUI) onChooseFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.Printf("File picker failed: %v", err)
			ui.showFailure(err)
			return
		}
		if reader == nil {
			return // cancelled
		}

		candidate, err := intake.FromURIReadCloser(reader)
		if err != nil {
			log.Printf("Failed to read picked file: %v", err)
			ui.showFailure(err)
			return
		}
		ui.acceptCandidate(candidate)
	}, ui.window)

	fd.SetFilter(storage.NewMimeTypeFileFilter(ImageFileFilter))
	if dir := platform.PickerStartDir(ui.settings.GetLastDirectory()); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// acceptCandidate validates an offered file and makes it the selected image.
// On rejection nothing but the notice changes.
func (ui *RootUI) acceptCandidate(candidate intake.Candidate) {
	img, err := intake.Accept(candidate)
	if err != nil {
		log.Printf("Rejected %s (%s, %d bytes): %v", candidate.Name, candidate.MediaType, candidate.Size, err)
		ui.showFailure(err)
		return
	}

	ui.session.AcceptImage(img)
	log.Printf("Accepted %s (%s, %s)", img.Name, img.MediaType, img.SizeText())

	if img.HasLocalPath() {
		ui.settings.SetLastDirectory(filepath.Dir(img.Path))
	}

	ui.hideResults()
	if !ui.session.State.IsActive() {
		ui.hideNotification()
	}
	ui.updateDetails()
	ui.preview.Hide()
	ui.refreshControls()

	go ui.loadPreview(img)
}

// loadPreview decodes the thumbnail off the UI goroutine
func (ui *RootUI) loadPreview(img *model.SelectedImage) {
	decoded, err := intake.DecodePreview(img, PreviewDecodeEdge)
	fyne.Do(func() {
		ui.applyPreview(img, decoded, err)
	})
}

// applyPreview shows a decoded thumbnail unless a newer image was accepted meanwhile
func (ui *RootUI) applyPreview(img *model.SelectedImage, decoded image.Image, err error) {
	if ui.session.Image != img {
		log.Printf("Discarding stale preview for %s", img.Name)
		return
	}
	if err != nil {
		log.Printf("Preview unavailable for %s: %v", img.Name, err)
		ui.preview.Hide()
		return
	}

	ui.preview.Image = decoded
	ui.preview.Refresh()
	ui.preview.Show()
}

// updateDetails shows the metadata of the selected image
func (ui *RootUI) updateDetails() {
	img := ui.session.Image
	if img == nil {
		ui.detailsBox.Hide()
		return
	}

	l := ui.localization
	ui.detailsLabel.SetText(intake.Details(img).Lines(
		l.GetText(KeyFileName), l.GetText(KeyFileSize), l.GetText(KeyFileType)))
	if img.HasLocalPath() {
		ui.openBtn.Show()
	} else {
		ui.openBtn.Hide()
	}
	ui.detailsBox.Show()
}

// onOpenImage opens the selected image in the system viewer
func (ui *RootUI) onOpenImage() {
	img := ui.session.Image
	if img == nil || !img.HasLocalPath() {
		return
	}
	if err := platform.OpenFileWithDefaultApp(img.Path); err != nil {
		log.Printf("Error opening file %s: %v", img.Path, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onModelChanged records the chosen classifier
func (ui *RootUI) onModelChanged(label string) {
	option, ok := model.LookupModelByLabel(label)
	if !ok {
		return
	}
	if err := ui.session.SelectModel(option.ID); err != nil {
		log.Printf("Model selection rejected: %v", err)
		return
	}
	ui.settings.SetLastModel(option.ID)
	log.Printf("Model selected: %s", option.ID)
}

// onPredict submits the selected image
func (ui *RootUI) onPredict() {
	submission, err := ui.predictSvc.Submit(ui.session)
	if err != nil {
		log.Printf("Submit rejected: %v", err)
		ui.showFailure(err)
		ui.refreshControls()
		return
	}

	log.Printf("Prediction %s started with model %s", submission.ID, submission.Model)
	ui.hideResults()
	ui.refreshControls()
	ui.showNotification(ui.localization.GetText(KeyPredicting), true)
}

// onPredictionOutcome receives outcomes on the service goroutine
func (ui *RootUI) onPredictionOutcome(outcome predict.Outcome) {
	fyne.Do(func() {
		ui.applyOutcome(outcome)
	})
}

// applyOutcome moves the session to its completed state and renders it
func (ui *RootUI) applyOutcome(outcome predict.Outcome) {
	if ui.session.Current != outcome.Submission {
		log.Printf("Ignoring outcome of superseded submission %s", outcome.Submission.ID)
		return
	}

	if outcome.Err != nil {
		ui.session.Fail(outcome.Err)
		ui.showFailure(outcome.Err)
	} else {
		ui.session.Complete(outcome.Results)
		ui.hideNotification()
		ui.renderResults()
	}
	ui.refreshControls()
}

// renderResults fills the result panel from the session
func (ui *RootUI) renderResults() {
	heading := DashPlaceholder
	if ui.session.Current != nil {
		heading = ui.session.Current.Model.Heading()
	}
	ui.resultHeading.SetText(ui.localization.Format(KeyResultHeading, heading))

	ui.resultRows.RemoveAll()
	rows := ui.session.Rows()
	if len(rows) == 0 {
		ui.resultRows.Add(widget.NewLabel(ui.localization.GetText(KeyNoPredictions)))
	}
	for _, row := range rows {
		resultRow := NewResultRow(row)
		resultRow.SetMinWidth(ui.mobile.RowMinWidth())
		ui.resultRows.Add(resultRow)
	}

	ui.resultContainer.Show()
	ui.resultContainer.Refresh()
}

// hideResults hides and clears the result panel
func (ui *RootUI) hideResults() {
	ui.resultContainer.Hide()
	ui.resultRows.RemoveAll()
}

// refreshControls enables submit only with an image and nothing in flight
func (ui *RootUI) refreshControls() {
	if ui.session.CanSubmit() {
		ui.predictBtn.Enable()
	} else {
		ui.predictBtn.Disable()
	}
}

// showFailure reports an error in the notification panel and a dialog
func (ui *RootUI) showFailure(err error) {
	message := FailureMessage(ui.localization, err)
	ui.showNotification(message, false)
	dialog.ShowInformation(ui.localization.GetText(KeyErrorTitle), message, ui.window)
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity;
// otherwise the panel hides itself after NotificationAutoHide.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.lastNotice = message

	ui.notificationMutex.Lock()
	ui.notificationSeq++
	seq := ui.notificationSeq
	ui.notificationMutex.Unlock()

	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()

	if !spinning {
		time.AfterFunc(NotificationAutoHide, func() {
			fyne.Do(func() {
				ui.notificationMutex.Lock()
				current := ui.notificationSeq
				ui.notificationMutex.Unlock()
				if current == seq {
					ui.hideNotification()
				}
			})
		})
	}
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// LastNotice returns the most recent notification text
func (ui *RootUI) LastNotice() string {
	return ui.lastNotice
}
