package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"lifepulse-backend/internal/middleware"
	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/repository"
)

type ProfileHandler struct {
	profileRepo *repository.ProfileRepo
}

func NewProfileHandler(profileRepo *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileRepo.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if profile == nil {
		// No profile yet: return an empty one so the client can render the
		// form without a special case.
		profile = &models.Profile{UserID: userID}
	}

	writeJSON(w, http.StatusOK, profile)
}

// Save merges the submitted fields into the stored profile. Omitted fields
// keep their previous values.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateProfile(req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	if err := h.profileRepo.Upsert(r.Context(), userID, req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	profile, err := h.profileRepo.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func validateProfile(req models.SaveProfileRequest) map[string]string {
	fields := make(map[string]string)

	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		fields["full_name"] = "Full name cannot be blank"
	}
	if req.Age != nil && (*req.Age < 1 || *req.Age > 120) {
		fields["age"] = "Age must be between 1 and 120"
	}
	if req.EmergencyEmail != nil && *req.EmergencyEmail != "" && !strings.Contains(*req.EmergencyEmail, "@") {
		fields["emergency_email"] = "Invalid email format"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
