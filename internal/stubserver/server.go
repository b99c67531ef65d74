package stubserver

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// Mode selects the response shape the stub returns
type Mode string

const (
	ModeRanked    Mode = "ranked"    // {"predictions":[{"class","confidence"},...]}
	ModeSingle    Mode = "single"    // {"prediction","confidence"}
	ModeClass     Mode = "class"     // {"class","confidence"}
	ModeError     Mode = "error"     // {"error"} with status 200
	ModeMalformed Mode = "malformed" // valid JSON matching no shape
	ModeStatus    Mode = "status"    // non-2xx with a JSON error body
)

// Modes lists the supported modes
var Modes = []Mode{ModeRanked, ModeSingle, ModeClass, ModeError, ModeMalformed, ModeStatus}

// Defaults
const (
	DefaultPredictPath = "/predict"
	DefaultStatusCode  = http.StatusInternalServerError
	HealthPath         = "/health"
	JSONContentType    = "application/json; charset=utf-8"
)

// DefaultLabels are returned in ranked mode
var DefaultLabels = []string{"tabby cat", "tiger cat", "egyptian cat", "lynx", "red fox"}

// DefaultWireModels are the model identifiers the stub accepts
var DefaultWireModels = []string{"resnet", "efficientnet"}

// Config configures the stub server
type Config struct {
	PredictPath string
	Mode        Mode
	Labels      []string
	WireModels  []string // empty accepts any model
	StatusCode  int      // used by ModeStatus
	Delay       time.Duration
	GinMode     string
}

// ReceivedRequest records what one prediction call carried
type ReceivedRequest struct {
	Model       string
	Filename    string
	ContentType string
	Size        int64
	FieldOrder  []string
	ReceivedAt  time.Time
}

// Server is a stand-in inference server
type Server struct {
	config   Config
	router   *gin.Engine
	mutex    sync.RWMutex
	mode     Mode
	received []ReceivedRequest
}

// ParseMode validates a mode name
func ParseMode(name string) (Mode, error) {
	for _, mode := range Modes {
		if string(mode) == strings.ToLower(strings.TrimSpace(name)) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode: %s", name)
}

// New creates a stub server with routes installed
func New(config Config) *Server {
	if config.PredictPath == "" {
		config.PredictPath = DefaultPredictPath
	}
	if config.Mode == "" {
		config.Mode = ModeRanked
	}
	if len(config.Labels) == 0 {
		config.Labels = DefaultLabels
	}
	if config.StatusCode == 0 {
		config.StatusCode = DefaultStatusCode
	}
	if config.GinMode == "" {
		config.GinMode = gin.ReleaseMode
	}

	s := &Server{config: config, mode: config.Mode}
	s.setupRoutes()
	return s
}

// setupRoutes installs the prediction and health routes
func (s *Server) setupRoutes() {
	gin.SetMode(s.config.GinMode)
	s.router = gin.New()

	s.router.Use(gin.Recovery())
	if s.config.GinMode != gin.TestMode {
		s.router.Use(gin.Logger())
	}

	s.router.GET(HealthPath, s.healthCheck)
	s.router.POST(s.config.PredictPath, s.predict)
}

// Handler returns the HTTP handler of the stub
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until the listener fails
func (s *Server) Run(addr string) error {
	log.Printf("Stub inference server listening on %s%s (mode %s)", addr, s.config.PredictPath, s.Mode())
	return s.router.Run(addr)
}

// Mode returns the current response mode
func (s *Server) Mode() Mode {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.mode
}

// SetMode switches the response mode for later requests
func (s *Server) SetMode(mode Mode) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mode = mode
}

// Received returns a copy of the recorded requests
func (s *Server) Received() []ReceivedRequest {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	received := make([]ReceivedRequest, len(s.received))
	copy(received, s.received)
	return received
}

// LastReceived returns the most recent request
func (s *Server) LastReceived() (ReceivedRequest, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.received) == 0 {
		return ReceivedRequest{}, false
	}
	return s.received[len(s.received)-1], true
}

// healthCheck reports the stub configuration
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"mode":   s.Mode(),
		"path":   s.config.PredictPath,
	})
}

// predict handles one multipart prediction request
func (s *Server) predict(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respond(c, http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	order := partOrder(c.GetHeader("Content-Type"), body)

	wireModel := c.PostForm("model")
	header, err := c.FormFile("image")
	if err != nil {
		s.respond(c, http.StatusBadRequest, gin.H{"error": "no image provided"})
		return
	}

	request := ReceivedRequest{
		Model:       wireModel,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		FieldOrder:  order,
		ReceivedAt:  time.Now(),
	}

	s.mutex.Lock()
	s.received = append(s.received, request)
	s.mutex.Unlock()

	if !s.acceptsModel(wireModel) {
		s.respond(c, http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown model: %s", wireModel)})
		return
	}

	if s.config.Delay > 0 {
		select {
		case <-time.After(s.config.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	switch s.Mode() {
	case ModeSingle:
		s.respond(c, http.StatusOK, gin.H{"prediction": s.config.Labels[0], "confidence": 0.91})
	case ModeClass:
		s.respond(c, http.StatusOK, gin.H{"class": s.config.Labels[0], "confidence": 0.91})
	case ModeError:
		s.respond(c, http.StatusOK, gin.H{"error": "model failed to load"})
	case ModeMalformed:
		s.respond(c, http.StatusOK, gin.H{"status": "ok", "result": []string{s.config.Labels[0]}})
	case ModeStatus:
		s.respond(c, s.config.StatusCode, gin.H{"error": "inference backend unavailable"})
	default:
		s.respond(c, http.StatusOK, gin.H{"predictions": RankedPredictions(s.config.Labels)})
	}
}

// partOrder lists the multipart field names in the order they were sent
func partOrder(contentType string, body []byte) []string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["boundary"] == "" {
		return nil
	}

	var names []string
	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err != nil {
			return names
		}
		names = append(names, part.FormName())
		_ = part.Close()
	}
}

// respond encodes the body with sonic
func (s *Server) respond(c *gin.Context, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to encode response: %v", err)
		return
	}
	c.Data(status, JSONContentType, data)
}

// acceptsModel checks the wire identifier against the configured list
func (s *Server) acceptsModel(wireModel string) bool {
	if len(s.config.WireModels) == 0 {
		return wireModel != ""
	}
	for _, accepted := range s.config.WireModels {
		if accepted == wireModel {
			return true
		}
	}
	return false
}

// Prediction is one entry of a ranked response
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// RankedPredictions assigns descending confidences that sum to one
func RankedPredictions(labels []string) []Prediction {
	predictions := make([]Prediction, 0, len(labels))
	remaining := 1.0
	for i, label := range labels {
		confidence := remaining * 0.8
		if i == len(labels)-1 {
			confidence = remaining
		}
		remaining -= confidence
		predictions = append(predictions, Prediction{Class: label, Confidence: confidence})
	}
	return predictions
}
