package intake

import (
	"fmt"

	"github.com/ytget/image-predictor/internal/model"
)

// FileDetails is the human-readable metadata shown after intake
type FileDetails struct {
	Name      string
	SizeText  string
	MediaType string
}

// Details returns display metadata for a selected image
func Details(img *model.SelectedImage) FileDetails {
	if img == nil {
		return FileDetails{}
	}
	return FileDetails{
		Name:      img.Name,
		SizeText:  img.SizeText(),
		MediaType: img.MediaType,
	}
}

// Lines formats the details with the given field labels
func (d FileDetails) Lines(nameLabel, sizeLabel, typeLabel string) string {
	return fmt.Sprintf("%s: %s\n%s: %s\n%s: %s",
		nameLabel, d.Name,
		sizeLabel, d.SizeText,
		typeLabel, d.MediaType)
}
