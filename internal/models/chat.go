package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the general chat endpoint.
type ChatRequest struct {
	Message  string        `json:"message"`
	Language string        `json:"language"`
	History  []ChatMessage `json:"history,omitempty"`
}

// Attachment is an inline file (medical report) sent with a pregnancy chat
// message. Base64 carries the raw file bytes; they are forwarded to the model
// unchanged.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Base64   string `json:"base64"`
}

// PregnancyChatRequest is the payload for the pregnancy-specialized endpoint.
// UserContext is an opaque pre-assembled context block; PatientContext is the
// structured alternative that the server renders itself when UserContext is
// empty.
type PregnancyChatRequest struct {
	Message        string           `json:"message"`
	Language       string           `json:"language"`
	SystemPrompt   string           `json:"systemPrompt,omitempty"`
	UserContext    string           `json:"userContext,omitempty"`
	PatientContext *PatientSnapshot `json:"patientContext,omitempty"`
	AttachedFile   *Attachment      `json:"attachedFile,omitempty"`
}

// ChatResponse is the reply from the AI assistant.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatErrorResponse mirrors the flat error contract of the original public
// chat API: {error, details?}.
type ChatErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
