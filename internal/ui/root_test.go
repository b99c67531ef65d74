package ui

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/image-predictor/internal/config"
	"github.com/ytget/image-predictor/internal/intake"
	"github.com/ytget/image-predictor/internal/model"
	"github.com/ytget/image-predictor/internal/predict"
)

// fakeSubmitter records submissions without any network activity
type fakeSubmitter struct {
	mutex       sync.Mutex
	endpoint    string
	onUpdate    func(predict.Outcome)
	submissions []*model.Submission
}

func (f *fakeSubmitter) SetUpdateCallback(callback func(predict.Outcome)) { f.onUpdate = callback }
func (f *fakeSubmitter) SetEndpoint(endpoint string)                      { f.endpoint = endpoint }
func (f *fakeSubmitter) Endpoint() string                                 { return f.endpoint }
func (f *fakeSubmitter) SetWireResolver(predict.WireResolver)             {}
func (f *fakeSubmitter) IsBusy() bool                                     { return false }

func (f *fakeSubmitter) Submit(session *model.Session) (*model.Submission, error) {
	submission, err := session.BeginSubmission()
	if err != nil {
		return nil, err
	}
	f.mutex.Lock()
	f.submissions = append(f.submissions, submission)
	f.mutex.Unlock()
	return submission, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func newTestRoot(t *testing.T) (*RootUI, *fakeSubmitter, *config.Settings) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	window := app.NewWindow("test")
	settings := config.NewSettingsWithEnv(app, config.Env{})
	submitter := &fakeSubmitter{endpoint: settings.GetEndpoint()}
	return NewRootUI(window, app, settings, submitter), submitter, settings
}

func acceptPNG(t *testing.T, ui *RootUI, name string) {
	t.Helper()
	ui.acceptCandidate(intake.FromBytes(name, "image/png", pngBytes(t)))
	if ui.session.Image == nil || ui.session.Image.Name != name {
		t.Fatalf("Expected %s to be accepted", name)
	}
}

func TestRootUI_InitialState(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)

	if submitter.onUpdate == nil {
		t.Error("Outcome callback should be registered")
	}
	if !ui.predictBtn.Disabled() {
		t.Error("Predict must be disabled without an image")
	}
	if ui.modelRadio.Selected != "ResNet50" {
		t.Errorf("Expected the default model selected, got %q", ui.modelRadio.Selected)
	}
	if ui.resultContainer.Visible() {
		t.Error("Results should start hidden")
	}
	if ui.detailsBox.Visible() {
		t.Error("Details should start hidden")
	}
}

func TestRootUI_RestoresLastModel(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettingsWithEnv(app, config.Env{})
	settings.SetLastModel(model.ModelEfficientNet)

	ui := NewRootUI(app.NewWindow("test"), app, settings, &fakeSubmitter{})
	if ui.session.Model != model.ModelEfficientNet {
		t.Errorf("Expected stored model, got %s", ui.session.Model)
	}
	if ui.modelRadio.Selected != "EfficientNet" {
		t.Errorf("Expected EfficientNet selected, got %q", ui.modelRadio.Selected)
	}
}

func TestRootUI_AcceptImage(t *testing.T) {
	ui, _, _ := newTestRoot(t)

	acceptPNG(t, ui, "cat.png")

	if ui.predictBtn.Disabled() {
		t.Error("Predict should be enabled after intake")
	}
	if !ui.detailsBox.Visible() {
		t.Error("Details should be shown")
	}
	if ui.openBtn.Visible() {
		t.Error("Open is only offered for local files")
	}
}

func TestRootUI_RejectedIntakeKeepsState(t *testing.T) {
	ui, _, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	previous := ui.session.Image

	tests := []struct {
		name      string
		candidate intake.Candidate
		category  model.FailureCategory
	}{
		{"text file", intake.FromBytes("notes.txt", "text/plain", []byte("hello")), model.FailureInvalidType},
		{"too large", intake.NewCandidate("huge.png", "image/png", model.MaxImageBytes+1, nil), model.FailureTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui.acceptCandidate(tt.candidate)

			if ui.session.Image != previous {
				t.Error("A rejected file must not replace the selected image")
			}
			_, err := intake.Accept(tt.candidate)
			if model.CategoryOf(err) != tt.category {
				t.Fatalf("Unexpected category %s", model.CategoryOf(err))
			}
			if ui.LastNotice() != FailureMessage(ui.localization, err) {
				t.Errorf("Unexpected notice %q", ui.LastNotice())
			}
		})
	}
}

func TestRootUI_PredictWithoutImage(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)

	ui.onPredict()

	if len(submitter.submissions) != 0 {
		t.Error("Nothing should be submitted without an image")
	}
	if ui.session.State != model.RequestIdle {
		t.Errorf("State should stay idle, got %s", ui.session.State)
	}
	if ui.LastNotice() != ui.localization.GetText(KeyNoImageSelected) {
		t.Errorf("Unexpected notice %q", ui.LastNotice())
	}
}

func TestRootUI_PredictSuccess(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")

	ui.onPredict()

	if len(submitter.submissions) != 1 {
		t.Fatalf("Expected one submission, got %d", len(submitter.submissions))
	}
	if !ui.predictBtn.Disabled() {
		t.Error("Predict must be disabled while in flight")
	}
	if !ui.notificationContainer.Visible() || ui.LastNotice() != ui.localization.GetText(KeyPredicting) {
		t.Errorf("Loading indicator not shown (notice %q)", ui.LastNotice())
	}

	ui.applyOutcome(predict.Outcome{
		Submission: submitter.submissions[0],
		Results: []model.PredictionResult{
			{Label: "cat", Confidence: 0.97},
			{Label: "dog", Confidence: 0.02},
		},
	})

	if ui.session.State != model.RequestSucceeded {
		t.Errorf("Expected succeeded, got %s", ui.session.State)
	}
	if ui.predictBtn.Disabled() {
		t.Error("Predict should be re-enabled")
	}
	if ui.notificationContainer.Visible() {
		t.Error("Loading indicator should be hidden")
	}
	if !ui.resultContainer.Visible() {
		t.Error("Results should be shown")
	}
	if ui.resultHeading.Text != "Prediction results (RESNET50)" {
		t.Errorf("Unexpected heading %q", ui.resultHeading.Text)
	}
	if len(ui.resultRows.Objects) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(ui.resultRows.Objects))
	}
	first, ok := ui.resultRows.Objects[0].(*ResultRow)
	if !ok {
		t.Fatalf("Unexpected row type %T", ui.resultRows.Objects[0])
	}
	if first.HeadingText() != "1. cat" || first.PercentText() != "97.0%" {
		t.Errorf("Unexpected first row %s %s", first.HeadingText(), first.PercentText())
	}
}

func TestRootUI_PredictEmptyResults(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	ui.onPredict()

	ui.applyOutcome(predict.Outcome{Submission: submitter.submissions[0]})

	if len(ui.resultRows.Objects) != 1 {
		t.Fatalf("Expected a single placeholder, got %d objects", len(ui.resultRows.Objects))
	}
	label, ok := ui.resultRows.Objects[0].(*widget.Label)
	if !ok || label.Text != ui.localization.GetText(KeyNoPredictions) {
		t.Errorf("Expected the no-predictions label, got %T", ui.resultRows.Objects[0])
	}
}

func TestRootUI_PredictFailure(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	ui.onPredict()

	failure := &model.HTTPStatusError{StatusCode: 500, Body: "boom"}
	ui.applyOutcome(predict.Outcome{Submission: submitter.submissions[0], Err: failure})

	if ui.session.State != model.RequestFailed {
		t.Errorf("Expected failed, got %s", ui.session.State)
	}
	if ui.predictBtn.Disabled() {
		t.Error("Predict should be re-enabled after a failure")
	}
	if ui.resultContainer.Visible() {
		t.Error("Results must stay hidden after a failure")
	}
	if ui.LastNotice() != "Prediction server returned HTTP 500: boom" {
		t.Errorf("Unexpected notice %q", ui.LastNotice())
	}
	if ui.notificationSpinner.Visible() {
		t.Error("Spinner should stop on failure")
	}
}

func TestRootUI_IntakeDuringFlight(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	ui.onPredict()
	captured := submitter.submissions[0].Image

	acceptPNG(t, ui, "dog.png")

	if !ui.predictBtn.Disabled() {
		t.Error("Predict must stay disabled while a request is in flight")
	}
	if !ui.notificationContainer.Visible() {
		t.Error("Loading indicator must stay while a request is in flight")
	}
	if submitter.submissions[0].Image != captured || captured.Name != "cat.png" {
		t.Error("The in-flight submission must keep its captured image")
	}

	ui.applyOutcome(predict.Outcome{
		Submission: submitter.submissions[0],
		Results:    []model.PredictionResult{{Label: "cat", Confidence: 0.9}},
	})
	if ui.predictBtn.Disabled() {
		t.Error("Predict should be enabled once the request completes")
	}
}

func TestRootUI_IgnoresSupersededOutcome(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	ui.onPredict()

	stale := &model.Submission{ID: "predict-stale", Model: model.ModelResNet50}
	ui.applyOutcome(predict.Outcome{Submission: stale, Err: &model.ServerReportedError{Message: "late"}})

	if ui.session.State != model.RequestInFlight {
		t.Errorf("A foreign outcome must not change the state, got %s", ui.session.State)
	}
	if ui.session.Current != submitter.submissions[0] {
		t.Error("Current submission replaced")
	}
}

func TestRootUI_ModelChange(t *testing.T) {
	ui, _, settings := newTestRoot(t)

	ui.modelRadio.SetSelected("EfficientNet")

	if ui.session.Model != model.ModelEfficientNet {
		t.Errorf("Expected efficientnet, got %s", ui.session.Model)
	}
	if settings.GetLastModel() != model.ModelEfficientNet {
		t.Errorf("Model choice not persisted, got %s", settings.GetLastModel())
	}

	ui.onModelChanged("Unknown")
	if ui.session.Model != model.ModelEfficientNet {
		t.Error("Unknown labels must be ignored")
	}
}

func TestRootUI_StalePreviewDiscarded(t *testing.T) {
	ui, _, _ := newTestRoot(t)
	ui.session.AcceptImage(&model.SelectedImage{Name: "cat.png", MediaType: "image/png"})

	other := &model.SelectedImage{Name: "old.png"}
	ui.applyPreview(other, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil)
	if ui.preview.Visible() {
		t.Error("A preview for a replaced image must be discarded")
	}

	decoded := image.NewRGBA(image.Rect(0, 0, 2, 2))
	ui.applyPreview(ui.session.Image, decoded, nil)
	if !ui.preview.Visible() || ui.preview.Image != decoded {
		t.Error("The current preview should be shown")
	}
}

func TestRootUI_DroppedFile(t *testing.T) {
	ui, _, settings := newTestRoot(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "dropped.png")
	if err := os.WriteFile(path, pngBytes(t), 0o600); err != nil {
		t.Fatal(err)
	}
	ignored := filepath.Join(dir, "second.png")

	ui.onDropped(fyne.NewPos(0, 0), []fyne.URI{storage.NewFileURI(path), storage.NewFileURI(ignored)})

	if ui.session.Image == nil || ui.session.Image.Name != "dropped.png" {
		t.Fatalf("Expected the first dropped file, got %+v", ui.session.Image)
	}
	if ui.session.Image.Path != path {
		t.Errorf("Expected local path %s, got %s", path, ui.session.Image.Path)
	}
	if !ui.openBtn.Visible() {
		t.Error("Open should be offered for local files")
	}
	if settings.GetLastDirectory() != dir {
		t.Errorf("Expected last directory %s, got %s", dir, settings.GetLastDirectory())
	}
}

func TestRootUI_SettingsSaved(t *testing.T) {
	ui, submitter, settings := newTestRoot(t)

	settings.SetBaseURL("http://inference.local:8080")
	settings.SetPredictPath("/api/predict")
	settings.SetLanguage("pt")
	ui.onSettingsSaved()

	if submitter.Endpoint() != "http://inference.local:8080/api/predict" {
		t.Errorf("Endpoint not applied, got %s", submitter.Endpoint())
	}
	if ui.localization.GetCurrentLanguage() != "pt" {
		t.Errorf("Language not applied, got %s", ui.localization.GetCurrentLanguage())
	}
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, _, settings := newTestRoot(t)

	ui.onLanguageChange("ru")

	if settings.GetLanguage() != "ru" {
		t.Errorf("Language not persisted, got %s", settings.GetLanguage())
	}
	if ui.predictBtn.Text != ui.localization.GetText(KeyPredict) || ui.predictBtn.Text == "Predict" {
		t.Errorf("Button text not refreshed: %s", ui.predictBtn.Text)
	}
	if ui.dropZone.Hint() != ui.localization.GetText(KeyDropHint) {
		t.Errorf("Drop hint not refreshed: %s", ui.dropZone.Hint())
	}
	if ui.openBtn.Text != IconImage+" "+ui.localization.GetText(KeyOpenImage) {
		t.Errorf("Open button not refreshed: %s", ui.openBtn.Text)
	}

	menu := ui.window.MainMenu()
	if menu == nil || len(menu.Items) != 2 {
		t.Fatalf("Expected File and Language menus, got %v", menu)
	}
	if menu.Items[1].Label != IconLanguage+" "+ui.localization.GetText(KeyLanguage) {
		t.Errorf("Language menu not refreshed: %s", menu.Items[1].Label)
	}
	for _, item := range menu.Items[1].Items {
		if item.Checked != (item.Label == "Русский") {
			t.Errorf("Unexpected check mark on %s", item.Label)
		}
	}
}

func TestRootUI_LanguageChangeKeepsClearedResults(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	ui.onPredict()
	ui.applyOutcome(predict.Outcome{
		Submission: submitter.submissions[0],
		Results:    []model.PredictionResult{{Label: "cat", Confidence: 0.97}},
	})
	if !ui.resultContainer.Visible() {
		t.Fatal("Results should be shown after success")
	}

	acceptPNG(t, ui, "dog.png")
	ui.onLanguageChange("id")

	if ui.resultContainer.Visible() {
		t.Error("A language change must not bring back results cleared by intake")
	}
	if len(ui.resultRows.Objects) != 0 {
		t.Errorf("Expected no rows, got %d", len(ui.resultRows.Objects))
	}
}

func TestRootUI_LanguageChangeRerendersVisibleResults(t *testing.T) {
	ui, submitter, _ := newTestRoot(t)
	acceptPNG(t, ui, "cat.png")
	ui.onPredict()
	ui.applyOutcome(predict.Outcome{
		Submission: submitter.submissions[0],
		Results:    []model.PredictionResult{{Label: "cat", Confidence: 0.97}},
	})

	ui.onLanguageChange("id")

	if !ui.resultContainer.Visible() {
		t.Error("Visible results should stay visible")
	}
	if ui.resultHeading.Text != "Hasil prediksi (RESNET50)" {
		t.Errorf("Heading not translated: %q", ui.resultHeading.Text)
	}
}
