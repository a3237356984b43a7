package handlers

import (
	"encoding/json"
	"net/http"

	"lifepulse-backend/internal/middleware"
	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/services"
)

type SOSHandler struct {
	sosService *services.SOSService
}

func NewSOSHandler(sosService *services.SOSService) *SOSHandler {
	return &SOSHandler{sosService: sosService}
}

// Trigger records an emergency button press and returns the helpline number
// plus nearby facilities immediately.
func (h *SOSHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.SOSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp, err := h.sosService.Trigger(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if resp.Hospitals == nil {
		resp.Hospitals = []models.Hospital{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *SOSHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	events, err := h.sosService.History(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []models.SOSEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
