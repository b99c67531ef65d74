package predict

import (
	"context"

	"github.com/ytget/image-predictor/internal/model"
)

// Predictor sends one image to an inference endpoint and returns the
// normalized results.
type Predictor interface {
	Predict(ctx context.Context, req Request) ([]model.PredictionResult, error)
}

// WireResolver maps an internal model id to the identifier sent on the wire.
type WireResolver interface {
	WireIdentifier(id model.ModelID) string
}

// Submitter defines the interface for the submission service.
type Submitter interface {
	SetUpdateCallback(func(Outcome))
	SetEndpoint(endpoint string)
	Endpoint() string
	SetWireResolver(resolver WireResolver)
	Submit(session *model.Session) (*model.Submission, error)
	IsBusy() bool
}
