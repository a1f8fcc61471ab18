// Package models contains data types and constants for the reading-assistant backend.
package models

// Backend defaults
const (
	DefaultEndpoint = "http://127.0.0.1:8000"
	DefaultCourseID = "demo-course"
	DefaultTenantID = "demo-tenant"
)

// Backend routes, relative to the endpoint
const (
	PathChat   = "/chat"
	PathHealth = "/health"
)

// Transcript text
const (
	LabelUser      = "You"
	LabelAssistant = "Assistant"

	// NoAnswerPlaceholder is shown when the backend omits the answer field
	NoAnswerPlaceholder = "(no answer)"

	// ErrorPrefix starts every transcript line produced by a failed request
	ErrorPrefix = "Error calling backend: "

	CitationsPrefix   = "Citations: "
	CitationSeparator = " | "
	MissingPageMarker = "?"
)

// DefaultHeaders returns the headers sent with every backend request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}
