package predict

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/ytget/image-predictor/internal/model"
)

// Multipart field names understood by the inference server
const (
	FormFieldModel = "model"
	FormFieldImage = "image"
)

// Request is everything one prediction call needs
type Request struct {
	Endpoint string
	Model    string // wire identifier
	Image    *model.SelectedImage
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// EncodeMultipart builds the request body: the model field first, then the
// image part carrying the display name and declared media type.
func EncodeMultipart(wireModel string, img *model.SelectedImage) (*bytes.Buffer, string, error) {
	if img == nil {
		return nil, "", model.ErrNoImage
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField(FormFieldModel, wireModel); err != nil {
		return nil, "", fmt.Errorf("failed to write model field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FormFieldImage, quoteEscaper.Replace(img.Name)))
	header.Set("Content-Type", img.MediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
