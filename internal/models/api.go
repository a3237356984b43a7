package models

// WebSocket message envelope pushed to connected clients.
type WSMessage struct {
	Type    string      `json:"type"` // "reminder_alert" | "sos_ack"
	Payload interface{} `json:"payload"`
}

// API Error response used by the authenticated routes.
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
