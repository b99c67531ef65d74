package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/image-predictor/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyBaseURL       = "predict_base_url"
	KeyPredictPath   = "predict_path"
	KeyLanguage      = "app_language"
	KeyLastModel     = "last_model"
	KeyLastDirectory = "last_picker_directory"
)

// Default values
const (
	DefaultBaseURL     = "http://localhost:5000"
	DefaultPredictPath = "/predict"
	DefaultLanguage    = "system"
)

// Settings manages application configuration. Values from the
// environment take precedence over stored preferences.
type Settings struct {
	app fyne.App
	env Env
}

// NewSettings creates a new settings manager without environment overrides
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// NewSettingsWithEnv creates a settings manager with environment overrides
func NewSettingsWithEnv(app fyne.App, env Env) *Settings {
	return &Settings{app: app, env: env}
}

// Env returns the environment overrides in effect
func (s *Settings) Env() Env {
	return s.env
}

// GetBaseURL returns the inference server base URL
func (s *Settings) GetBaseURL() string {
	if s.env.BaseURL != "" {
		return NormalizeBaseURL(s.env.BaseURL)
	}
	base := s.app.Preferences().String(KeyBaseURL)
	if base == "" {
		s.SetBaseURL(DefaultBaseURL)
		return DefaultBaseURL
	}
	return base
}

// SetBaseURL sets the inference server base URL
func (s *Settings) SetBaseURL(base string) {
	s.app.Preferences().SetString(KeyBaseURL, NormalizeBaseURL(base))
}

// GetPredictPath returns the path of the prediction route
func (s *Settings) GetPredictPath() string {
	if s.env.PredictPath != "" {
		return NormalizePredictPath(s.env.PredictPath)
	}
	path := s.app.Preferences().String(KeyPredictPath)
	if path == "" {
		s.SetPredictPath(DefaultPredictPath)
		return DefaultPredictPath
	}
	return path
}

// SetPredictPath sets the path of the prediction route
func (s *Settings) SetPredictPath(path string) {
	s.app.Preferences().SetString(KeyPredictPath, NormalizePredictPath(path))
}

// GetEndpoint returns the full prediction endpoint URL
func (s *Settings) GetEndpoint() string {
	return JoinEndpoint(s.GetBaseURL(), s.GetPredictPath())
}

// IsEndpointOverridden reports whether the environment pins the endpoint
func (s *Settings) IsEndpointOverridden() bool {
	return s.env.BaseURL != "" || s.env.PredictPath != ""
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	if s.env.Language != "" {
		return s.env.Language
	}
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastModel returns the model selected in the previous run,
// or the catalog default when none or an unknown one is stored
func (s *Settings) GetLastModel() model.ModelID {
	id := model.ModelID(s.app.Preferences().String(KeyLastModel))
	if !id.Valid() {
		return model.DefaultModel()
	}
	return id
}

// SetLastModel remembers the selected model
func (s *Settings) SetLastModel(id model.ModelID) {
	if !id.Valid() {
		return
	}
	s.app.Preferences().SetString(KeyLastModel, string(id))
}

// GetLastDirectory returns the directory of the last picked file
func (s *Settings) GetLastDirectory() string {
	return s.app.Preferences().String(KeyLastDirectory)
}

// SetLastDirectory remembers the directory of the last picked file
func (s *Settings) SetLastDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastDirectory, dir)
}

// GetWireMap returns the internal to wire model table in effect
func (s *Settings) GetWireMap() WireMap {
	return DefaultWireMap().Merge(s.env.ModelMap)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"id":     "Bahasa Indonesia",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// NormalizeBaseURL trims whitespace and trailing slashes; empty means default
func NormalizeBaseURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

// NormalizePredictPath ensures a single leading slash; empty means default
func NormalizePredictPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return DefaultPredictPath
	}
	return "/" + strings.TrimLeft(path, "/")
}

// JoinEndpoint combines a base URL and a route path
func JoinEndpoint(base, path string) string {
	return NormalizeBaseURL(base) + NormalizePredictPath(path)
}
