package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ytget/image-predictor/internal/model"
)

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language en, got %s", l.GetCurrentLanguage())
	}
	if l.GetText(KeyPredict) != "Predict" {
		t.Errorf("Unexpected English text %s", l.GetText(KeyPredict))
	}

	l.SetLanguage("id")
	if l.GetText(KeyPredict) != "Prediksi" {
		t.Errorf("Unexpected Indonesian text %s", l.GetText(KeyPredict))
	}

	// Unknown languages are ignored
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "id" {
		t.Errorf("Unknown language should be ignored, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("System language should resolve to en, got %s", l.GetCurrentLanguage())
	}

	if l.GetText("missing_key") != "missing_key" {
		t.Error("Missing keys should fall back to the key itself")
	}
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("Language %s has no texts", code)
			continue
		}
		for key := range l.texts["en"] {
			if texts[key] == "" {
				t.Errorf("Language %s misses %s", code, key)
			}
		}
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()
	if got := l.Format(KeyResultHeading, "RESNET50"); got != "Prediction results (RESNET50)" {
		t.Errorf("Unexpected heading %s", got)
	}
}

func TestFailureMessage(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid type", &model.ValidationError{Reason: model.ReasonInvalidType, Detail: "text/plain"},
			"Please choose an image file (got text/plain)"},
		{"too large", &model.ValidationError{Reason: model.ReasonTooLarge, Detail: "x"},
			"The image is too large. Maximum size is 10 MB"},
		{"no image", model.ErrNoImage, "Please choose an image first"},
		{"busy", model.ErrRequestInFlight, "A prediction is already running"},
		{"network", &model.NetworkError{Endpoint: "http://x", Err: errors.New("connection refused")},
			"Could not reach the prediction server: connection refused"},
		{"http status", &model.HTTPStatusError{StatusCode: 503, Body: "down"},
			"Prediction server returned HTTP 503: down"},
		{"http status without body", &model.HTTPStatusError{StatusCode: 404},
			"Prediction server returned HTTP 404: " + DashPlaceholder},
		{"server reported", &model.ServerReportedError{Message: "bad model"}, "Prediction failed: bad model"},
		{"malformed", &model.MalformedResponseError{Payload: `{"a":1}`},
			`Unexpected response from server: {"a":1}`},
		{"wrapped", fmt.Errorf("submit: %w", &model.ServerReportedError{Message: "oops"}), "Prediction failed: oops"},
		{"unknown", errors.New("boom"), "An error occurred: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailureMessage(l, tt.err); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
