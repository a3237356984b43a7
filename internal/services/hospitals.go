package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lifepulse-backend/internal/models"
)

const (
	overpassPrimary  = "https://overpass-api.de/api/interpreter"
	overpassFallback = "https://overpass.kumi.systems/api/interpreter"

	defaultSearchRadius = 5000
	maxSearchRadius     = 50000
)

// HospitalService looks up nearby medical facilities via the OpenStreetMap
// Overpass API, falling back to a mirror when the primary is down.
type HospitalService struct {
	httpClient *http.Client
	primary    string
	fallback   string
}

func NewHospitalService() *HospitalService {
	return &HospitalService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		primary:    overpassPrimary,
		fallback:   overpassFallback,
	}
}

type overpassElement struct {
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// FindNearby returns hospitals, clinics and doctors within radius meters of
// the given point.
func (s *HospitalService) FindNearby(ctx context.Context, lat, lon float64, radius int) ([]models.Hospital, error) {
	if radius <= 0 {
		radius = defaultSearchRadius
	}
	if radius > maxSearchRadius {
		radius = maxSearchRadius
	}

	query := buildOverpassQuery(lat, lon, radius)

	data, err := s.query(ctx, s.primary, query)
	if err != nil {
		data, err = s.query(ctx, s.fallback, query)
	}
	if err != nil {
		return nil, &UpstreamError{Message: "Failed to fetch hospitals", Details: err.Error()}
	}

	hospitals := make([]models.Hospital, 0, len(data.Elements))
	for _, el := range data.Elements {
		if el.Tags == nil {
			continue
		}
		h := models.Hospital{
			ID:      el.ID,
			Name:    tagOrDefault(el.Tags, "name", "Unnamed Hospital"),
			Lat:     el.Lat,
			Lon:     el.Lon,
			Address: addressFromTags(el.Tags),
			Phone:   phoneFromTags(el.Tags),
			Type:    tagOrDefault(el.Tags, "amenity", "hospital"),
		}
		// Ways carry their coordinates in the computed center.
		if h.Lat == 0 && h.Lon == 0 && el.Center != nil {
			h.Lat = el.Center.Lat
			h.Lon = el.Center.Lon
		}
		if h.Lat == 0 && h.Lon == 0 {
			continue
		}
		hospitals = append(hospitals, h)
	}

	return hospitals, nil
}

func (s *HospitalService) query(ctx context.Context, endpoint, query string) (*overpassResponse, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass API service unavailable (%d)", resp.StatusCode)
	}

	var data overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}
	return &data, nil
}

func buildOverpassQuery(lat, lon float64, radius int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, selector := range []string{
		`["amenity"="hospital"]`,
		`["healthcare"="hospital"]`,
		`["amenity"="clinic"]`,
		`["amenity"="doctors"]`,
	} {
		for _, kind := range []string{"node", "way"} {
			b.WriteString(fmt.Sprintf("%s%s(around:%d,%f,%f);", kind, selector, radius, lat, lon))
		}
	}
	b.WriteString(");out center;")
	return b.String()
}

func tagOrDefault(tags map[string]string, key, fallback string) string {
	if v := tags[key]; v != "" {
		return v
	}
	return fallback
}

func addressFromTags(tags map[string]string) string {
	for _, key := range []string{"addr:full", "addr:street", "addr:place"} {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return "Address not available"
}

func phoneFromTags(tags map[string]string) string {
	for _, key := range []string{"phone", "contact:phone"} {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return "Not available"
}
