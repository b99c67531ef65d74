package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvBaseURL     = "PREDICT_BASE_URL"
	EnvPredictPath = "PREDICT_PATH"
	EnvModelMap    = "PREDICT_MODEL_MAP"
	EnvLanguage    = "PREDICT_LANGUAGE"
)

// DefaultEnvFile is loaded from the working directory when present
const DefaultEnvFile = ".env"

// Env holds overrides read from the process environment
type Env struct {
	BaseURL     string
	PredictPath string
	Language    string
	ModelMap    WireMap
}

// LoadEnv loads the given .env files (DefaultEnvFile when none are given)
// into the process environment and reads the overrides. Missing files are
// skipped; variables already set in the environment are not replaced.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Env{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
		log.Printf("Loaded environment overrides from %s", file)
	}

	return FromEnv(os.Getenv)
}

// FromEnv reads the overrides through lookup
func FromEnv(lookup func(string) string) (Env, error) {
	env := Env{
		BaseURL:     lookup(EnvBaseURL),
		PredictPath: lookup(EnvPredictPath),
		Language:    lookup(EnvLanguage),
	}

	modelMap, err := ParseWireMap(lookup(EnvModelMap))
	if err != nil {
		return Env{}, fmt.Errorf("%s: %w", EnvModelMap, err)
	}
	env.ModelMap = modelMap
	return env, nil
}
