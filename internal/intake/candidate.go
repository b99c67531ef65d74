package intake

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/gabriel-vasile/mimetype"

	"github.com/ytget/image-predictor/internal/model"
)

// Media type detection constants
const (
	SniffLength     = 512
	FileURIScheme   = "file"
	UnknownSize     = -1
	FallbackTypeRaw = "application/octet-stream"
)

// Candidate is a file offered by drag-drop, the picker or the CLI,
// not yet validated.
type Candidate struct {
	Name      string
	MediaType string
	Size      int64 // UnknownSize when the source cannot report it up front
	Path      string
	open      func() (io.ReadCloser, error)
}

// NewCandidate creates a candidate from already-known metadata
func NewCandidate(name, mediaType string, size int64, open func() (io.ReadCloser, error)) Candidate {
	return Candidate{
		Name:      name,
		MediaType: mediaType,
		Size:      size,
		open:      open,
	}
}

// FromBytes creates a candidate around an in-memory payload
func FromBytes(name, mediaType string, data []byte) Candidate {
	return NewCandidate(name, mediaType, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FromPath creates a candidate for a local file. The size comes from the
// file system, so oversize files are rejected without reading them.
func FromPath(path string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s is a directory", path)
	}

	mediaType := DetectMediaType(path, func() []byte {
		return readHead(path)
	})

	candidate := NewCandidate(filepath.Base(path), mediaType, info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path) //nolint:gosec // path chosen by the user
	})
	candidate.Path = path
	return candidate, nil
}

// FromURI creates a candidate for a Fyne URI (drag-drop or picker)
func FromURI(u fyne.URI) (Candidate, error) {
	if u == nil {
		return Candidate{}, fmt.Errorf("no file provided")
	}
	if u.Scheme() == FileURIScheme {
		return FromPath(u.Path())
	}

	reader, err := storage.Reader(u)
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to open %s: %w", u.String(), err)
	}
	return FromReadCloser(u.Name(), reader)
}

// FromURIReadCloser creates a candidate from a picker result
func FromURIReadCloser(reader fyne.URIReadCloser) (Candidate, error) {
	if reader == nil {
		return Candidate{}, fmt.Errorf("no file provided")
	}
	u := reader.URI()
	if u != nil && u.Scheme() == FileURIScheme {
		_ = reader.Close()
		return FromPath(u.Path())
	}

	name := ""
	if u != nil {
		name = u.Name()
	}
	return FromReadCloser(name, reader)
}

// FromReadCloser buffers a stream of unknown size into a candidate.
// At most MaxImageBytes+1 bytes are read so the size check still fires.
func FromReadCloser(name string, reader io.ReadCloser) (Candidate, error) {
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, model.MaxImageBytes+1))
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	mediaType := DetectMediaType(name, func() []byte { return data })
	return FromBytes(name, mediaType, data), nil
}

// First returns the first offered candidate; later ones are ignored
func First(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// Validate checks the media type, then the size
func Validate(c Candidate) error {
	if !model.IsImageMediaType(c.MediaType) {
		return &model.ValidationError{Reason: model.ReasonInvalidType, Detail: c.MediaType}
	}
	if c.Size > model.MaxImageBytes {
		return &model.ValidationError{
			Reason: model.ReasonTooLarge,
			Detail: fmt.Sprintf("%d bytes exceeds %d", c.Size, model.MaxImageBytes),
		}
	}
	return nil
}

// Accept validates the candidate and loads its payload
func Accept(c Candidate) (*model.SelectedImage, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	if c.open == nil {
		return nil, fmt.Errorf("candidate %s has no content", c.Name)
	}

	reader, err := c.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.Name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, model.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Name, err)
	}

	// The file may have grown since it was stat'ed
	size := int64(len(data))
	if size > model.MaxImageBytes {
		return nil, &model.ValidationError{
			Reason: model.ReasonTooLarge,
			Detail: fmt.Sprintf("%d bytes exceeds %d", size, model.MaxImageBytes),
		}
	}

	return &model.SelectedImage{
		Name:      c.Name,
		Path:      c.Path,
		MediaType: c.MediaType,
		Size:      size,
		Data:      data,
		LoadedAt:  time.Now(),
	}, nil
}

// DetectMediaType returns the declared media type of a file: the extension
// mapping first, content sniffing when the extension is unknown.
func DetectMediaType(name string, head func() []byte) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return baseMediaType(byExt)
		}
	}

	if head == nil {
		return FallbackTypeRaw
	}
	data := head()
	if len(data) > SniffLength {
		data = data[:SniffLength]
	}
	return baseMediaType(mimetype.Detect(data).String())
}

// baseMediaType strips parameters such as "; charset=utf-8"
func baseMediaType(mediaType string) string {
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(mediaType, ";", 2)[0])
	}
	return parsed
}

// readHead reads the first bytes of a file for sniffing
func readHead(path string) []byte {
	file, err := os.Open(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return nil
	}
	defer file.Close()

	buf := make([]byte, SniffLength)
	n, _ := io.ReadFull(file, buf)
	return buf[:n]
}
