package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/prompt"
	"lifepulse-backend/internal/services"
)

// chatGateway is the slice of the Gemini service the chat handlers need.
type chatGateway interface {
	Chat(ctx context.Context, composed prompt.Composed, history []models.ChatMessage) (string, error)
	GenerateWithParts(ctx context.Context, parts []prompt.Part) (string, error)
}

type ChatHandler struct {
	gateway         chatGateway
	attachments     *services.AttachmentValidator
	maxMessageChars int
}

func NewChatHandler(gateway chatGateway, attachments *services.AttachmentValidator, maxMessageChars int) *ChatHandler {
	return &ChatHandler{
		gateway:         gateway,
		attachments:     attachments,
		maxMessageChars: maxMessageChars,
	}
}

// Ask serves the general health chat. Stateless: the caller carries the
// conversation history.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChatError(w, &services.ValidationError{Message: "Invalid request body"})
		return
	}

	if err := h.validateMessage(req.Message); err != nil {
		writeChatError(w, err)
		return
	}

	composed := prompt.Compose(prompt.GeneralPersona, "", strings.TrimSpace(req.Message), req.Language, nil)

	reply, err := h.gateway.Chat(r.Context(), composed, req.History)
	if err != nil {
		writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// AskPregnancy serves the pregnancy companion chat. The caller may send a
// pre-rendered context block (userContext) or a structured snapshot
// (patientContext); when only the snapshot is present the block is assembled
// server-side. An attached report switches the request to the single-shot
// multimodal path.
func (h *ChatHandler) AskPregnancy(w http.ResponseWriter, r *http.Request) {
	var req models.PregnancyChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChatError(w, &services.ValidationError{Message: "Invalid request body"})
		return
	}

	if err := h.validateMessage(req.Message); err != nil {
		writeChatError(w, err)
		return
	}
	if err := h.attachments.Validate(req.AttachedFile); err != nil {
		writeChatError(w, err)
		return
	}

	contextBlock := prompt.WrapUserContext(req.UserContext)
	if contextBlock == "" && req.PatientContext != nil {
		contextBlock = prompt.AssembleContext(*req.PatientContext)
	}

	composed := prompt.Compose(req.SystemPrompt, contextBlock, strings.TrimSpace(req.Message), req.Language, req.AttachedFile)

	var reply string
	var err error
	if req.AttachedFile != nil {
		reply, err = h.gateway.GenerateWithParts(r.Context(), prompt.BuildParts(composed))
	} else {
		reply, err = h.gateway.Chat(r.Context(), composed, nil)
	}
	if err != nil {
		writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

func (h *ChatHandler) validateMessage(message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return &services.ValidationError{Message: "Message is required"}
	}
	if len(trimmed) > h.maxMessageChars {
		return &services.ValidationError{Message: "Message is too long"}
	}
	return nil
}

// writeChatError maps the typed error taxonomy onto the flat {error, details?}
// contract the public chat endpoints keep for client compatibility.
func writeChatError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, models.ChatErrorResponse{Error: e.Error()})
	case *services.ConfigurationError:
		writeJSON(w, http.StatusInternalServerError, models.ChatErrorResponse{Error: e.Message})
	case *services.ModelUnavailableError:
		writeJSON(w, http.StatusInternalServerError, models.ChatErrorResponse{Error: e.Message})
	case *services.RateLimitError:
		writeJSON(w, http.StatusTooManyRequests, models.ChatErrorResponse{Error: e.Message})
	case *services.UpstreamError:
		writeJSON(w, http.StatusInternalServerError, models.ChatErrorResponse{Error: e.Message, Details: e.Details})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ChatErrorResponse{Error: "Failed to process request"})
	}
}
