package handlers

import (
	"context"
	"net/http"
	"strconv"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/services"
)

// hospitalFinder is the slice of the hospital service this handler needs.
type hospitalFinder interface {
	FindNearby(ctx context.Context, lat, lon float64, radius int) ([]models.Hospital, error)
}

type HospitalHandler struct {
	finder hospitalFinder
}

func NewHospitalHandler(finder hospitalFinder) *HospitalHandler {
	return &HospitalHandler{finder: finder}
}

// Nearby serves GET /api/v1/hospitals/nearby?lat=..&lon=..&radius=..
// Public endpoint; the flat error contract matches the chat routes.
func (h *HospitalHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeChatError(w, &services.ValidationError{Message: "Valid lat and lon query parameters are required"})
		return
	}

	radius := 0
	if raw := r.URL.Query().Get("radius"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeChatError(w, &services.ValidationError{Message: "radius must be a positive integer (meters)"})
			return
		}
		radius = n
	}

	hospitals, err := h.finder.FindNearby(r.Context(), lat, lon, radius)
	if err != nil {
		writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.HospitalsResponse{
		Count:     len(hospitals),
		Hospitals: hospitals,
	})
}
