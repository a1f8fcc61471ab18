package models

// ChatRequest is the JSON body posted to the chat route
type ChatRequest struct {
	Message  string `json:"message"`
	CourseID string `json:"courseId"`
	TenantID string `json:"tenantId"`
}

// ChatResponse is the parsed backend answer. Both fields are optional on
// the wire.
type ChatResponse struct {
	Answer    string
	HasAnswer bool
	Citations []Citation
}

// Text returns the answer or the placeholder when it was absent
func (r *ChatResponse) Text() string {
	if r == nil || !r.HasAnswer {
		return NoAnswerPlaceholder
	}
	return r.Answer
}

// HealthStatus is the parsed response of the health route
type HealthStatus struct {
	OK bool `json:"ok"`
}
