package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lifepulse-backend/internal/middleware"
	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/services"
)

type PregnancyHandler struct {
	pregnancyService *services.PregnancyService
}

func NewPregnancyHandler(pregnancyService *services.PregnancyService) *PregnancyHandler {
	return &PregnancyHandler{pregnancyService: pregnancyService}
}

// SetLMP stores the last-menstrual-period date and returns the derived status.
func (h *PregnancyHandler) SetLMP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.SetPregnancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	status, err := h.pregnancyService.SetLMP(r.Context(), userID, req.LMPDate)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *PregnancyHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.pregnancyService.Status(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *PregnancyHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.LogHealthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	log, err := h.pregnancyService.AddLog(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, log)
}

func (h *PregnancyHandler) Logs(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	logs, err := h.pregnancyService.Logs(r.Context(), userID, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if logs == nil {
		logs = []models.HealthLog{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
