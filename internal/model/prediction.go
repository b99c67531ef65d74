package model

import "fmt"

// Text fragments for ranked rows
const (
	RankSeparator = " — "
	PercentFormat = "%.1f%%"
)

// PredictionResult is one class/confidence pair in server rank order
type PredictionResult struct {
	Label      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// RankedRow is the presentation form of a PredictionResult
type RankedRow struct {
	Rank       int // 1-based
	Label      string
	Confidence float64
}

// Rank numbers results in the order given; nothing is sorted or dropped
func Rank(results []PredictionResult) []RankedRow {
	rows := make([]RankedRow, 0, len(results))
	for i, result := range results {
		rows = append(rows, RankedRow{
			Rank:       i + 1,
			Label:      result.Label,
			Confidence: result.Confidence,
		})
	}
	return rows
}

// Percent returns the confidence as a percentage, unclamped
func (r RankedRow) Percent() float64 {
	return r.Confidence * 100
}

// PercentText returns the percentage with one decimal place, e.g. "97.0%"
func (r RankedRow) PercentText() string {
	return fmt.Sprintf(PercentFormat, r.Percent())
}

// Heading returns "<rank>. <label>"
func (r RankedRow) Heading() string {
	return fmt.Sprintf("%d. %s", r.Rank, r.Label)
}

// String returns the full row text, e.g. "1. cat — 97.0%"
func (r RankedRow) String() string {
	return r.Heading() + RankSeparator + r.PercentText()
}

// BarFraction returns the filled share of a confidence bar (Percent / 100)
func (r RankedRow) BarFraction() float64 {
	return r.Confidence
}
