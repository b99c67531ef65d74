package predict

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mdobak/go-xerrors"

	"github.com/ytget/image-predictor/internal/model"
)

// Outcome is delivered once per submission when the round-trip ends
type Outcome struct {
	Submission *model.Submission
	Endpoint   string
	WireModel  string
	Results    []model.PredictionResult
	Err        error
	Duration   time.Duration
}

// Succeeded reports whether the submission produced results
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Service runs submissions one at a time in the background
type Service struct {
	predictor Predictor
	resolver  WireResolver
	endpoint  string
	busy      bool
	mutex     sync.RWMutex
	onUpdate  func(Outcome) // callback for UI updates
}

// NewService creates a submission service backed by an HTTP client
func NewService(endpoint string, resolver WireResolver) *Service {
	return NewServiceWithPredictor(endpoint, resolver, NewClient(nil))
}

// NewServiceWithPredictor creates a submission service with a custom predictor
func NewServiceWithPredictor(endpoint string, resolver WireResolver, predictor Predictor) *Service {
	return &Service{
		predictor: predictor,
		resolver:  resolver,
		endpoint:  endpoint,
	}
}

// SetUpdateCallback sets the callback invoked with every finished submission.
// It runs on the service goroutine, not the UI goroutine.
func (s *Service) SetUpdateCallback(callback func(Outcome)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.onUpdate = callback
}

// SetEndpoint changes the endpoint used by later submissions
func (s *Service) SetEndpoint(endpoint string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.endpoint = endpoint
}

// Endpoint returns the endpoint used for new submissions
func (s *Service) Endpoint() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.endpoint
}

// SetWireResolver changes the model id table used by later submissions
func (s *Service) SetWireResolver(resolver WireResolver) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.resolver = resolver
}

// IsBusy reports whether a submission is outstanding
func (s *Service) IsBusy() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.busy
}

// Submit captures the session's image and model, moves the session to
// InFlight and starts the round-trip. The outcome arrives through the
// update callback. Only one submission may be outstanding.
func (s *Service) Submit(session *model.Session) (*model.Submission, error) {
	s.mutex.Lock()
	if s.busy {
		s.mutex.Unlock()
		return nil, model.ErrRequestInFlight
	}

	submission, err := session.BeginSubmission()
	if err != nil {
		s.mutex.Unlock()
		return nil, err
	}

	s.busy = true
	req := s.requestFor(submission)
	s.mutex.Unlock()

	log.Printf("Submitting %s (%s, %s) to %s as model %s",
		submission.ID, submission.Image.Name, submission.Image.SizeText(), req.Endpoint, req.Model)

	go func() {
		outcome := s.Execute(context.Background(), submission, req)

		s.mutex.Lock()
		s.busy = false
		s.mutex.Unlock()

		s.notifyUpdate(outcome)
	}()

	return submission, nil
}

// Execute performs one round-trip synchronously
func (s *Service) Execute(ctx context.Context, submission *model.Submission, req Request) Outcome {
	started := time.Now()
	results, err := s.predictor.Predict(ctx, req)

	outcome := Outcome{
		Submission: submission,
		Endpoint:   req.Endpoint,
		WireModel:  req.Model,
		Results:    results,
		Err:        err,
		Duration:   time.Since(started),
	}

	if err != nil {
		log.Printf("Submission %s failed after %s (%s): %v",
			submission.ID, outcome.Duration.Round(time.Millisecond), model.CategoryOf(err), err)
		if xerrors.StackTrace(err) != nil {
			log.Print(xerrors.Sprint(err))
		}
	} else {
		log.Printf("Submission %s completed in %s with %d predictions",
			submission.ID, outcome.Duration.Round(time.Millisecond), len(results))
	}
	return outcome
}

// RequestFor builds the request a submission would send with the current settings
func (s *Service) RequestFor(submission *model.Submission) Request {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.requestFor(submission)
}

// requestFor resolves the wire identifier once; callers hold the mutex
func (s *Service) requestFor(submission *model.Submission) Request {
	wireModel := string(submission.Model)
	if s.resolver != nil {
		wireModel = s.resolver.WireIdentifier(submission.Model)
	}
	return Request{
		Endpoint: s.endpoint,
		Model:    wireModel,
		Image:    submission.Image,
	}
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(outcome Outcome) {
	s.mutex.RLock()
	callback := s.onUpdate
	s.mutex.RUnlock()

	if callback != nil {
		callback(outcome)
	}
}
