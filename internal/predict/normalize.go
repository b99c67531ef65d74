package predict

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ytget/image-predictor/internal/model"
)

// Response field names
const (
	FieldError       = "error"
	FieldPredictions = "predictions"
	FieldPrediction  = "prediction"
	FieldClass       = "class"
	FieldLabel       = "label"
	FieldConfidence  = "confidence"
)

// Shape identifies which accepted response form a payload matched
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeError
	ShapeRanked
	ShapeSinglePrediction
	ShapeSingleClass
)

// String returns a readable name for the shape
func (s Shape) String() string {
	switch s {
	case ShapeError:
		return "error"
	case ShapeRanked:
		return "ranked"
	case ShapeSinglePrediction:
		return "single_prediction"
	case ShapeSingleClass:
		return "single_class"
	default:
		return "unknown"
	}
}

// Decoded is the tagged result of matching a payload against the accepted shapes
type Decoded struct {
	Shape   Shape
	Results []model.PredictionResult
	Message string // server-reported error text, ShapeError only
}

// matcher recognizes one response shape
type matcher struct {
	shape Shape
	match func(obj map[string]any) (Decoded, bool)
}

// matchers are tried in priority order; the first match wins
var matchers = []matcher{
	{ShapeError, matchError},
	{ShapeRanked, matchRanked},
	{ShapeSinglePrediction, matchSingle(FieldPrediction)},
	{ShapeSingleClass, matchSingle(FieldClass)},
}

// Decode parses a response body and matches it against the accepted shapes.
// Bodies that are not a JSON object or match no shape yield a MalformedResponseError.
func Decode(payload []byte) (Decoded, error) {
	var raw any
	if err := sonic.Unmarshal(payload, &raw); err != nil {
		return Decoded{}, &model.MalformedResponseError{Payload: string(payload), Err: err}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return Decoded{}, &model.MalformedResponseError{
			Payload: string(payload),
			Err:     fmt.Errorf("expected a JSON object, got %s", jsonKind(raw)),
		}
	}

	for _, m := range matchers {
		if decoded, ok := m.match(obj); ok {
			decoded.Shape = m.shape
			return decoded, nil
		}
	}

	return Decoded{}, &model.MalformedResponseError{Payload: string(payload)}
}

// Normalize turns a response body into the ranked result sequence.
// Order and confidence values are kept exactly as received.
func Normalize(payload []byte) ([]model.PredictionResult, error) {
	decoded, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	if decoded.Shape == ShapeError {
		return nil, &model.ServerReportedError{Message: decoded.Message}
	}
	return decoded.Results, nil
}

// matchError accepts any non-empty error field, whatever else the payload holds
func matchError(obj map[string]any) (Decoded, bool) {
	value, ok := obj[FieldError]
	if !ok {
		return Decoded{}, false
	}

	switch v := value.(type) {
	case nil:
		return Decoded{}, false
	case bool:
		if !v {
			return Decoded{}, false
		}
		return Decoded{Message: "true"}, true
	case string:
		if strings.TrimSpace(v) == "" {
			return Decoded{}, false
		}
		return Decoded{Message: v}, true
	default:
		text, err := sonic.MarshalString(v)
		if err != nil {
			text = fmt.Sprint(v)
		}
		return Decoded{Message: text}, true
	}
}

// matchRanked accepts a predictions array whose every entry is a label/confidence object
func matchRanked(obj map[string]any) (Decoded, bool) {
	entries, ok := obj[FieldPredictions].([]any)
	if !ok {
		return Decoded{}, false
	}

	results := make([]model.PredictionResult, 0, len(entries))
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			return Decoded{}, false
		}

		label, ok := labelOf(item, FieldClass, FieldLabel)
		if !ok {
			return Decoded{}, false
		}
		confidence, ok := item[FieldConfidence].(float64)
		if !ok {
			return Decoded{}, false
		}

		results = append(results, model.PredictionResult{Label: label, Confidence: confidence})
	}
	return Decoded{Results: results}, true
}

// matchSingle accepts a top-level label field plus a confidence
func matchSingle(labelField string) func(obj map[string]any) (Decoded, bool) {
	return func(obj map[string]any) (Decoded, bool) {
		label, ok := labelOf(obj, labelField)
		if !ok {
			return Decoded{}, false
		}
		confidence, ok := obj[FieldConfidence].(float64)
		if !ok {
			return Decoded{}, false
		}
		return Decoded{Results: []model.PredictionResult{{Label: label, Confidence: confidence}}}, true
	}
}

// labelOf returns the first string field found among names
func labelOf(obj map[string]any, names ...string) (string, bool) {
	for _, name := range names {
		if label, ok := obj[name].(string); ok {
			return label, true
		}
	}
	return "", false
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
