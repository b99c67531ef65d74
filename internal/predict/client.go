package predict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mdobak/go-xerrors"

	"github.com/ytget/image-predictor/internal/model"
)

// Response limits
const (
	MaxResponseBytes  = 1 << 20
	MaxErrorBodyChars = 512
)

// ErrResponseTooLarge means a successful response exceeded MaxResponseBytes
var ErrResponseTooLarge = errors.New("response too large")

// Client posts images to an inference endpoint over HTTP
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient uses a client without a
// timeout, so a request lasts as long as the server takes to answer.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Predict performs exactly one POST and normalizes the reply
func (c *Client) Predict(ctx context.Context, req Request) ([]model.PredictionResult, error) {
	body, contentType, err := EncodeMultipart(req.Model, req.Image)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, body)
	if err != nil {
		return nil, &model.NetworkError{Endpoint: req.Endpoint, Err: xerrors.New(err)}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &model.NetworkError{Endpoint: req.Endpoint, Err: xerrors.New(err)}
	}
	defer resp.Body.Close()

	// One byte over the limit tells an oversize body from one that fits exactly
	payload, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, &model.NetworkError{Endpoint: req.Endpoint, Err: xerrors.New(err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &model.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(payload)), MaxErrorBodyChars),
		}
	}

	if len(payload) > MaxResponseBytes {
		return nil, &model.MalformedResponseError{
			Payload: fmt.Sprintf("response exceeds %d bytes", MaxResponseBytes),
			Err:     ErrResponseTooLarge,
		}
	}

	return Normalize(payload)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
