package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubmissionIDPrefix prefixes generated submission ids
const SubmissionIDPrefix = "predict-"

// Submission captures what one submit sent. It is never mutated afterwards,
// so a later intake cannot change an in-flight payload.
type Submission struct {
	ID        string
	Image     *SelectedImage
	Model     ModelID
	StartedAt time.Time
}

// Session owns all mutable client state: the image, the model choice,
// the request phase and the last outcome. Only the UI goroutine mutates it.
type Session struct {
	Image     *SelectedImage
	Model     ModelID
	State     RequestState
	Results   []PredictionResult
	LastError error
	Current   *Submission
}

// NewSession creates a session with the default model and no image
func NewSession() *Session {
	return &Session{
		Model: DefaultModel(),
		State: RequestIdle,
	}
}

// AcceptImage replaces the selected image and clears rendered results.
// An outstanding request keeps the image it captured.
func (s *Session) AcceptImage(image *SelectedImage) {
	s.Image = image
	s.Results = nil
}

// SelectModel records the chosen classifier
func (s *Session) SelectModel(id ModelID) error {
	if !id.Valid() {
		return fmt.Errorf("unknown model: %s", id)
	}
	s.Model = id
	return nil
}

// CanSubmit reports whether the submit action should be enabled
func (s *Session) CanSubmit() bool {
	return s.Image != nil && !s.State.IsActive()
}

// BeginSubmission moves the session to InFlight and captures the payload
func (s *Session) BeginSubmission() (*Submission, error) {
	if s.Image == nil {
		return nil, ErrNoImage
	}
	if s.State.IsActive() {
		return nil, ErrRequestInFlight
	}

	submission := &Submission{
		ID:        generateSubmissionID(),
		Image:     s.Image,
		Model:     s.Model,
		StartedAt: time.Now(),
	}

	s.State = RequestInFlight
	s.Results = nil
	s.LastError = nil
	s.Current = submission
	return submission, nil
}

// Complete records a successful outcome
func (s *Session) Complete(results []PredictionResult) {
	s.State = RequestSucceeded
	s.Results = results
	s.LastError = nil
}

// Fail records a failed outcome
func (s *Session) Fail(err error) {
	s.State = RequestFailed
	s.Results = nil
	s.LastError = err
}

// Rows returns the ranked presentation of the last results
func (s *Session) Rows() []RankedRow {
	return Rank(s.Results)
}

// generateSubmissionID generates a unique, time-ordered submission id
func generateSubmissionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(SubmissionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SubmissionIDPrefix + id.String()
}
