package intake

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"github.com/ytget/image-predictor/internal/model"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		reason    model.ValidationReason
	}{
		{"png accepted", NewCandidate("a.png", "image/png", 1024, nil), ""},
		{"exact ceiling accepted", NewCandidate("a.png", "image/png", model.MaxImageBytes, nil), ""},
		{"one byte over rejected", NewCandidate("a.png", "image/png", model.MaxImageBytes+1, nil), model.ReasonTooLarge},
		{"text rejected", NewCandidate("a.txt", "text/plain", 10, nil), model.ReasonInvalidType},
		{"empty type rejected", NewCandidate("a", "", 10, nil), model.ReasonInvalidType},
		{"type checked before size", NewCandidate("a.pdf", "application/pdf", model.MaxImageBytes+1, nil), model.ReasonInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.candidate)
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			validationErr, ok := err.(*model.ValidationError)
			if !ok {
				t.Fatalf("Expected *model.ValidationError, got %T (%v)", err, err)
			}
			if validationErr.Reason != tt.reason {
				t.Errorf("Expected reason %s, got %s", tt.reason, validationErr.Reason)
			}
		})
	}
}

func TestAccept_FromBytes(t *testing.T) {
	data := encodePNG(t, 4, 4)

	img, err := Accept(FromBytes("cat.png", "image/png", data))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if img.Name != "cat.png" {
		t.Errorf("Expected name cat.png, got %s", img.Name)
	}
	if img.Size != int64(len(data)) {
		t.Errorf("Expected size %d, got %d", len(data), img.Size)
	}
	if !bytes.Equal(img.Data, data) {
		t.Error("Payload should match the candidate bytes")
	}
	if img.LoadedAt.IsZero() {
		t.Error("LoadedAt should be set")
	}
}

func TestAccept_RejectsWithoutOpening(t *testing.T) {
	opened := false
	candidate := NewCandidate("big.png", "image/png", model.MaxImageBytes+1, func() (io.ReadCloser, error) {
		opened = true
		return io.NopCloser(strings.NewReader("")), nil
	})

	if _, err := Accept(candidate); err == nil {
		t.Fatal("Expected error for oversize candidate")
	}
	if opened {
		t.Error("Rejected candidate should not be read")
	}
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	data := encodePNG(t, 2, 2)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	candidate, err := FromPath(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if candidate.Name != "photo.png" {
		t.Errorf("Expected name photo.png, got %s", candidate.Name)
	}
	if candidate.MediaType != "image/png" {
		t.Errorf("Expected image/png, got %s", candidate.MediaType)
	}
	if candidate.Size != int64(len(data)) {
		t.Errorf("Expected size %d, got %d", len(data), candidate.Size)
	}

	img, err := Accept(candidate)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.Equal(img.Data, data) {
		t.Error("Payload should match file contents")
	}
}

func TestFromPath_Missing(t *testing.T) {
	if _, err := FromPath(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFromPath_TextFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just some notes"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	candidate, err := FromPath(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if model.CategoryOf(Validate(candidate)) != model.FailureInvalidType {
		t.Errorf("Expected invalid type for %s", candidate.MediaType)
	}
}

func TestDetectMediaType_SniffsUnknownExtension(t *testing.T) {
	data := encodePNG(t, 2, 2)

	mediaType := DetectMediaType("upload", func() []byte { return data })
	if mediaType != "image/png" {
		t.Errorf("Expected image/png from sniffing, got %s", mediaType)
	}

	textType := DetectMediaType("README", func() []byte { return []byte("hello world") })
	if textType != "text/plain" {
		t.Errorf("Expected text/plain without parameters, got %s", textType)
	}
}

func TestDetectMediaType_Extension(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"a.png", "image/png"},
		{"a.JPG", "image/jpeg"},
		{"a.gif", "image/gif"},
		{"a.webp", "image/webp"},
	}

	for _, test := range tests {
		if got := DetectMediaType(test.name, nil); got != test.expected {
			t.Errorf("DetectMediaType(%s) = %s, expected %s", test.name, got, test.expected)
		}
	}
}

func TestFromReadCloser_CapsRead(t *testing.T) {
	payload := bytes.Repeat([]byte{0}, model.MaxImageBytes+10)
	candidate, err := FromReadCloser("huge.png", io.NopCloser(bytes.NewReader(payload)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if candidate.Size != model.MaxImageBytes+1 {
		t.Errorf("Expected capped size %d, got %d", model.MaxImageBytes+1, candidate.Size)
	}
	if model.CategoryOf(Validate(candidate)) != model.FailureTooLarge {
		t.Error("Expected too-large rejection")
	}
}

// pickedFile is a picker result backed by an in-memory reader
type pickedFile struct {
	io.Reader
	uri    fyne.URI
	closed bool
}

func (p *pickedFile) URI() fyne.URI { return p.uri }

func (p *pickedFile) Close() error {
	p.closed = true
	return nil
}

func TestFromURIReadCloser_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	data := encodePNG(t, 2, 2)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	// The reader content is ignored: local files are stat'ed and reopened
	reader := &pickedFile{Reader: strings.NewReader("stale"), uri: storage.NewFileURI(path)}
	candidate, err := FromURIReadCloser(reader)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reader.closed {
		t.Error("Picker reader should be closed")
	}
	if candidate.Path != path || candidate.Name != "photo.png" {
		t.Errorf("Unexpected candidate %+v", candidate)
	}
	if candidate.Size != int64(len(data)) || candidate.MediaType != "image/png" {
		t.Errorf("Expected stat'ed size %d and image/png, got %d %s", len(data), candidate.Size, candidate.MediaType)
	}

	img, err := Accept(candidate)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.Equal(img.Data, data) || !img.HasLocalPath() {
		t.Error("Accepted image should carry the file contents and its path")
	}
}

func TestFromURIReadCloser_Stream(t *testing.T) {
	uri, err := storage.ParseURI("content://picker/shots/cat.png")
	if err != nil {
		t.Fatalf("Failed to parse URI: %v", err)
	}
	data := encodePNG(t, 2, 2)
	reader := &pickedFile{Reader: bytes.NewReader(data), uri: uri}

	candidate, err := FromURIReadCloser(reader)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reader.closed {
		t.Error("Picker reader should be closed")
	}
	if candidate.Name != "cat.png" || candidate.Path != "" {
		t.Errorf("Unexpected candidate %+v", candidate)
	}
	if candidate.Size != int64(len(data)) || candidate.MediaType != "image/png" {
		t.Errorf("Expected buffered size %d and image/png, got %d %s", len(data), candidate.Size, candidate.MediaType)
	}

	img, err := Accept(candidate)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if img.HasLocalPath() {
		t.Error("Streamed images have no local path")
	}
}

func TestFromURIReadCloser_Nil(t *testing.T) {
	if _, err := FromURIReadCloser(nil); err == nil {
		t.Error("Expected error for a nil reader")
	}
}

func TestFirst(t *testing.T) {
	if _, ok := First(nil); ok {
		t.Error("Expected no candidate from empty input")
	}

	first := NewCandidate("first.png", "image/png", 1, nil)
	second := NewCandidate("second.txt", "text/plain", 1, nil)
	got, ok := First([]Candidate{first, second})
	if !ok || got.Name != "first.png" {
		t.Errorf("Expected first.png, got %+v", got)
	}
}
