// Package config stores user settings in Fyne preferences and applies
// environment overrides, including the table that maps internal model ids
// to the identifiers the inference server expects.
package config
