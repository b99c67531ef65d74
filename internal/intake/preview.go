package intake

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/ytget/image-predictor/internal/model"
)

// DefaultPreviewEdge bounds the longest side of a preview thumbnail
const DefaultPreviewEdge = 320

// DecodePreview decodes the payload and shrinks it to fit maxEdge.
// Images already smaller than maxEdge are returned unscaled.
func DecodePreview(img *model.SelectedImage, maxEdge uint) (image.Image, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("no image data")
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", img.Name, err)
	}

	if maxEdge == 0 {
		return decoded, nil
	}
	return resize.Thumbnail(maxEdge, maxEdge, decoded, resize.Lanczos3), nil
}

// DataURI encodes the payload as a data: URI with the declared media type
func DataURI(img *model.SelectedImage) string {
	if img == nil {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", img.MediaType, base64.StdEncoding.EncodeToString(img.Data))
}
