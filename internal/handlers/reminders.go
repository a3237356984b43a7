package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lifepulse-backend/internal/middleware"
	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/repository"
)

type ReminderHandler struct {
	reminderRepo *repository.ReminderRepo
}

func NewReminderHandler(reminderRepo *repository.ReminderRepo) *ReminderHandler {
	return &ReminderHandler{reminderRepo: reminderRepo}
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateReminder(req.Medicine, req.TimeOfDay, req.Days); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	reminder := models.Reminder{
		UserID:    userID,
		Medicine:  strings.TrimSpace(req.Medicine),
		Dosage:    strings.TrimSpace(req.Dosage),
		TimeOfDay: req.TimeOfDay,
		Days:      req.Days,
	}

	if err := h.reminderRepo.Create(r.Context(), &reminder); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reminder)
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reminders, err := h.reminderRepo.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"reminders": reminders})
}

// Update applies partial changes to one reminder. Only fields present in the
// body are changed.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reminderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid reminder ID", r))
		return
	}

	var req models.UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	reminder, err := h.reminderRepo.GetByID(r.Context(), reminderID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if reminder == nil || reminder.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Reminder not found", r))
		return
	}

	if req.Medicine != nil {
		reminder.Medicine = strings.TrimSpace(*req.Medicine)
	}
	if req.Dosage != nil {
		reminder.Dosage = strings.TrimSpace(*req.Dosage)
	}
	if req.TimeOfDay != nil {
		reminder.TimeOfDay = *req.TimeOfDay
	}
	if req.Days != nil {
		reminder.Days = *req.Days
	}
	if req.Active != nil {
		reminder.Active = *req.Active
	}

	if fields := validateReminder(reminder.Medicine, reminder.TimeOfDay, reminder.Days); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	if err := h.reminderRepo.Update(r.Context(), reminder); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reminder)
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reminderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid reminder ID", r))
		return
	}

	deleted, err := h.reminderRepo.Delete(r.Context(), reminderID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Reminder not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Reminder deleted"})
}

func validateReminder(medicine string, timeOfDay, days int) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(medicine) == "" {
		fields["medicine"] = "Medicine name is required"
	}
	if timeOfDay < 0 || timeOfDay > 1439 {
		fields["time_of_day"] = "time_of_day must be minutes after midnight (0-1439)"
	}
	if days < 0 || days > 127 {
		fields["days"] = "days must be a Sunday-to-Saturday bitmask (0-127)"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
