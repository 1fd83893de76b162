// Package types contains common types used across the application
package types

// AnalysisResult is the outcome of analysing one uploaded call recording.
// Fields mirror the OpenAPI schema for /analyze.
type AnalysisResult struct {
	ID              string         `json:"id"`
	Transcript      string         `json:"transcript"`
	Scores          map[string]int `json:"scores"`
	OverallFeedback string         `json:"overallFeedback"`
	Observation     string         `json:"observation"`
	Total           int            `json:"total"`
	MaxTotal        int            `json:"maxTotal"`
}
