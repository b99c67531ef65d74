package model

import (
	"fmt"
	"strings"
	"time"
)

// Image intake limits
const (
	ImageMediaPrefix = "image/"
	MaxImageBytes    = 10 * 1024 * 1024
	BytesPerMiB      = 1024 * 1024
)

// SelectedImage is the image currently chosen for prediction.
// Data is owned by the session and never mutated after intake.
type SelectedImage struct {
	Name      string    // display name (base file name)
	Path      string    // local path, empty when the source had none
	MediaType string    // declared media type, e.g. "image/png"
	Size      int64     // declared size in bytes
	Data      []byte    // raw payload
	LoadedAt  time.Time // when the intake succeeded
}

// IsImageMediaType reports whether the media type names the image category
func IsImageMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, ImageMediaPrefix)
}

// SizeMiB returns the size in mebibytes
func (si *SelectedImage) SizeMiB() float64 {
	return float64(si.Size) / BytesPerMiB
}

// HasLocalPath reports whether the image came from a local file
func (si *SelectedImage) HasLocalPath() bool {
	return si.Path != ""
}

// SizeText returns the size formatted with two decimals, e.g. "1.25 MB"
func (si *SelectedImage) SizeText() string {
	return fmt.Sprintf("%.2f MB", si.SizeMiB())
}
