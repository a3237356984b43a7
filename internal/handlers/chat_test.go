package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/prompt"
	"lifepulse-backend/internal/services"
)

type mockGateway struct {
	chatCalls    int
	partsCalls   int
	lastComposed prompt.Composed
	lastHistory  []models.ChatMessage
	lastParts    []prompt.Part
	reply        string
	err          error
}

func (m *mockGateway) Chat(ctx context.Context, composed prompt.Composed, history []models.ChatMessage) (string, error) {
	m.chatCalls++
	m.lastComposed = composed
	m.lastHistory = history
	return m.reply, m.err
}

func (m *mockGateway) GenerateWithParts(ctx context.Context, parts []prompt.Part) (string, error) {
	m.partsCalls++
	m.lastParts = parts
	return m.reply, m.err
}

func newTestChatHandler(gw *mockGateway) *ChatHandler {
	return NewChatHandler(gw, services.NewAttachmentValidator(10), 8000)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestAsk_RoundTrip(t *testing.T) {
	gw := &mockGateway{reply: "बुखार के लिए आराम करें और पानी पिएं।"}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.Ask, "/api/v1/chat", models.ChatRequest{
		Message:  "I have a fever",
		Language: "hi",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Reply != gw.reply {
		t.Errorf("Expected reply %q, got %q", gw.reply, resp.Reply)
	}

	if gw.chatCalls != 1 {
		t.Errorf("Expected 1 gateway call, got %d", gw.chatCalls)
	}
	if !strings.Contains(gw.lastComposed.SystemText, "Dr. Sanjeevani") {
		t.Error("Expected general persona in system text")
	}
	if !strings.Contains(gw.lastComposed.SystemText, "Respond in Hindi") {
		t.Error("Expected Hindi language directive in system text")
	}
	if !strings.Contains(gw.lastComposed.UserText, "Response Language: Hindi") {
		t.Errorf("Expected response-language tag, got %q", gw.lastComposed.UserText)
	}
}

func TestAsk_EmptyMessageRejectedBeforeUpstream(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{reply: "should not be reached"}
			h := newTestChatHandler(gw)

			rr := postJSON(t, h.Ask, "/api/v1/chat", models.ChatRequest{Message: tc.message, Language: "en"})

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
			if gw.chatCalls != 0 {
				t.Errorf("Gateway must not be called on validation failure, got %d calls", gw.chatCalls)
			}

			var errResp models.ChatErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if errResp.Error == "" {
				t.Error("Expected non-empty error field")
			}
		})
	}
}

func TestAsk_MessageTooLong(t *testing.T) {
	gw := &mockGateway{}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.Ask, "/api/v1/chat", models.ChatRequest{
		Message:  strings.Repeat("a", 8001),
		Language: "en",
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
	if gw.chatCalls != 0 {
		t.Errorf("Gateway must not be called, got %d calls", gw.chatCalls)
	}
}

func TestAsk_UpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"rate limit", &services.RateLimitError{Message: "Service is busy. Please try again in a moment."}, http.StatusTooManyRequests},
		{"configuration", &services.ConfigurationError{Message: "Invalid API Key. Please check the server environment configuration."}, http.StatusInternalServerError},
		{"model unavailable", &services.ModelUnavailableError{Message: "AI Model not found."}, http.StatusInternalServerError},
		{"upstream", &services.UpstreamError{Message: "Failed to process request", Details: "boom"}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{err: tc.err}
			h := newTestChatHandler(gw)

			rr := postJSON(t, h.Ask, "/api/v1/chat", models.ChatRequest{Message: "hello", Language: "en"})

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected %d, got %d", tc.wantStatus, rr.Code)
			}

			var errResp models.ChatErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if errResp.Error == "" {
				t.Error("Expected non-empty error field")
			}
		})
	}
}

func TestAsk_UpstreamErrorCarriesDetails(t *testing.T) {
	gw := &mockGateway{err: &services.UpstreamError{Message: "Failed to process request", Details: "rpc error: code = Internal"}}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.Ask, "/api/v1/chat", models.ChatRequest{Message: "hello", Language: "en"})

	var errResp models.ChatErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Details != "rpc error: code = Internal" {
		t.Errorf("Expected upstream details passthrough, got %q", errResp.Details)
	}
}

func TestAskPregnancy_DefaultPersonaAndContext(t *testing.T) {
	gw := &mockGateway{reply: "**🍎 Nutrition**\n- Eat iron-rich foods."}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.AskPregnancy, "/api/v1/chat/pregnancy", models.PregnancyChatRequest{
		Message:  "What should I eat this week?",
		Language: "en",
		PatientContext: &models.PatientSnapshot{
			Week:      22,
			Trimester: 2,
			Name:      "Asha",
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if gw.chatCalls != 1 {
		t.Fatalf("Expected 1 chat call, got %d", gw.chatCalls)
	}

	sys := gw.lastComposed.SystemText
	if !strings.Contains(sys, "--- PATIENT CONTEXT START ---") {
		t.Error("Expected assembled patient context block")
	}
	if !strings.Contains(sys, "Pregnancy Week: 22") {
		t.Error("Expected pregnancy week in context block")
	}
	if !strings.Contains(sys, "specialized AI Pregnancy Expert") {
		t.Error("Expected default pregnancy persona when systemPrompt omitted")
	}
	if strings.Index(sys, "--- PATIENT CONTEXT START ---") > strings.Index(sys, "specialized AI Pregnancy Expert") {
		t.Error("Context block must precede the persona")
	}
}

func TestAskPregnancy_OpaqueUserContextWins(t *testing.T) {
	gw := &mockGateway{reply: "ok"}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.AskPregnancy, "/api/v1/chat/pregnancy", models.PregnancyChatRequest{
		Message:        "hello",
		Language:       "en",
		UserContext:    "PRE-RENDERED CONTEXT\n",
		PatientContext: &models.PatientSnapshot{Week: 10},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(gw.lastComposed.SystemText, "PRE-RENDERED CONTEXT") {
		t.Error("Expected opaque userContext in the system text")
	}
	if strings.Contains(gw.lastComposed.SystemText, "--- PATIENT CONTEXT START ---") {
		t.Error("Server must not assemble a block when userContext is present")
	}
}

func TestAskPregnancy_UserContextCarriesPersonalizationInstruction(t *testing.T) {
	gw := &mockGateway{reply: "ok"}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.AskPregnancy, "/api/v1/chat/pregnancy", models.PregnancyChatRequest{
		Message:     "How is my blood pressure?",
		Language:    "en",
		UserContext: "Week: 22\nBP: 140/90",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	sys := gw.lastComposed.SystemText
	if !strings.Contains(sys, "Week: 22\nBP: 140/90") {
		t.Error("Expected the caller's context block in the system text")
	}
	if !strings.Contains(sys, "Instructions for AI: You MUST use the patient context above") {
		t.Error("Expected the personalization instruction appended to userContext")
	}
	if strings.Index(sys, "BP: 140/90") > strings.Index(sys, "Instructions for AI:") {
		t.Error("Instruction must follow the context block")
	}
}

func TestAskPregnancy_AttachmentUsesMultimodalPath(t *testing.T) {
	gw := &mockGateway{reply: "Your report looks normal."}
	h := newTestChatHandler(gw)

	rr := postJSON(t, h.AskPregnancy, "/api/v1/chat/pregnancy", models.PregnancyChatRequest{
		Message:  "Please check my report",
		Language: "en",
		AttachedFile: &models.Attachment{
			Name:     "scan.png",
			MimeType: "image/png",
			Base64:   "QQ==",
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if gw.partsCalls != 1 {
		t.Fatalf("Expected 1 multimodal call, got %d", gw.partsCalls)
	}
	if gw.chatCalls != 0 {
		t.Errorf("Chat path must not be used with an attachment, got %d calls", gw.chatCalls)
	}

	if len(gw.lastParts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(gw.lastParts))
	}
	if gw.lastParts[1].Data != "QQ==" {
		t.Errorf("Attachment payload must pass through byte-exact, got %q", gw.lastParts[1].Data)
	}
}

func TestAskPregnancy_BadAttachmentRejectedBeforeUpstream(t *testing.T) {
	tests := []struct {
		name string
		att  models.Attachment
	}{
		{"unsupported mime", models.Attachment{Name: "x.gif", MimeType: "image/gif", Base64: "QQ=="}},
		{"empty payload", models.Attachment{Name: "x.png", MimeType: "image/png", Base64: ""}},
		{"invalid base64", models.Attachment{Name: "x.png", MimeType: "image/png", Base64: "not base64!!"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{}
			h := newTestChatHandler(gw)

			att := tc.att
			rr := postJSON(t, h.AskPregnancy, "/api/v1/chat/pregnancy", models.PregnancyChatRequest{
				Message:      "check this",
				Language:     "en",
				AttachedFile: &att,
			})

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
			if gw.chatCalls != 0 || gw.partsCalls != 0 {
				t.Error("Gateway must not be called for an invalid attachment")
			}
		})
	}
}

func TestAsk_HistoryForwarded(t *testing.T) {
	gw := &mockGateway{reply: "ok"}
	h := newTestChatHandler(gw)

	history := []models.ChatMessage{
		{Role: "user", Content: "I have a headache"},
		{Role: "model", Content: "How long has it lasted?"},
	}
	rr := postJSON(t, h.Ask, "/api/v1/chat", models.ChatRequest{
		Message:  "Two days now",
		Language: "en",
		History:  history,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if len(gw.lastHistory) != 2 {
		t.Fatalf("Expected 2 history turns forwarded, got %d", len(gw.lastHistory))
	}
	if gw.lastHistory[0].Content != "I have a headache" {
		t.Errorf("History order changed: %q", gw.lastHistory[0].Content)
	}
}
