package prompt

import (
	"fmt"
	"strings"
	"testing"

	"lifepulse-backend/internal/models"
)

func snapshotFixture() models.PatientSnapshot {
	return models.PatientSnapshot{
		Week:       22,
		Trimester:  2,
		DueDate:    "2026-01-15",
		FetalSize:  "a papaya",
		FetalCM:    27.8,
		FetalG:     430,
		Name:       "Asha",
		Age:        26,
		BloodGroup: "B+",
		HealthLogs: []models.HealthLog{
			{Date: "01/08/2026", Weight: "58", BP: "110/70", Sugar: "92", Hemoglobin: "11.2"},
			{Date: "08/08/2026", Weight: "58.5", BP: "112/74", Sugar: "95", Hemoglobin: "11.0"},
		},
	}
}

func TestAssembleContext_Deterministic(t *testing.T) {
	snap := snapshotFixture()
	first := AssembleContext(snap)
	second := AssembleContext(snap)
	if first != second {
		t.Error("Same snapshot must yield byte-identical context blocks")
	}
}

func TestAssembleContext_Markers(t *testing.T) {
	out := AssembleContext(snapshotFixture())

	startIdx := strings.Index(out, "--- PATIENT CONTEXT START ---")
	endIdx := strings.Index(out, "--- PATIENT CONTEXT END ---")
	if startIdx < 0 || endIdx < 0 {
		t.Fatal("Context block must carry explicit start/end markers")
	}
	if endIdx < startIdx {
		t.Error("End marker must follow start marker")
	}
	if !strings.Contains(out, "MUST use the patient context above") {
		t.Error("Context block must include the personalization instruction")
	}
}

func TestAssembleContext_MissingFieldsRenderedExplicitly(t *testing.T) {
	out := AssembleContext(models.PatientSnapshot{Week: 10})

	for _, field := range []string{"Due Date", "Patient Name", "Blood Group", "Known Conditions"} {
		if !strings.Contains(out, field+": Not available") {
			t.Errorf("Absent field %q must render as 'Not available'", field)
		}
	}
	if !strings.Contains(out, "Pregnancy Week: 10") {
		t.Error("Present fields must render their value")
	}
}

func TestAssembleContext_LogTruncationAndOrder(t *testing.T) {
	snap := models.PatientSnapshot{}
	for i := 1; i <= 7; i++ {
		snap.HealthLogs = append(snap.HealthLogs, models.HealthLog{
			Date:   fmt.Sprintf("%02d/08/2026", i),
			Weight: fmt.Sprintf("%d", 50+i),
		})
	}

	out := AssembleContext(snap)

	// Exactly 5 entries survive.
	if got := strings.Count(out, "| Weight:"); got != 5 {
		t.Fatalf("Expected exactly 5 log lines, got %d", got)
	}

	// Oldest-first input comes out newest first: days 7,6,5,4,3.
	order := []string{"07/08/2026", "06/08/2026", "05/08/2026", "04/08/2026", "03/08/2026"}
	last := -1
	for _, date := range order {
		idx := strings.Index(out, date)
		if idx < 0 {
			t.Fatalf("Expected log date %s in output", date)
		}
		if idx < last {
			t.Errorf("Log %s out of order (newest must come first)", date)
		}
		last = idx
	}
	for _, dropped := range []string{"01/08/2026", "02/08/2026"} {
		if strings.Contains(out, dropped) {
			t.Errorf("Oldest log %s should have been truncated", dropped)
		}
	}
}

func TestAssembleContext_NoLogs(t *testing.T) {
	out := AssembleContext(models.PatientSnapshot{})
	if !strings.Contains(out, "Recent Health Logs (newest first):\n  Not available") {
		t.Error("Empty log list must render an explicit placeholder")
	}
}

func TestWrapUserContext(t *testing.T) {
	out := WrapUserContext("Week: 22\nBP: 140/90")

	if !strings.HasPrefix(out, "Week: 22\nBP: 140/90\n\n") {
		t.Errorf("Block must come first, unchanged: %q", out)
	}
	if !strings.Contains(out, "Instructions for AI: You MUST use the patient context above") {
		t.Error("Wrapped block must carry the personalization instruction")
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Error("Wrapped block must end with a blank line before the persona")
	}
}

func TestWrapUserContext_EmptyStaysEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if out := WrapUserContext(in); out != "" {
			t.Errorf("WrapUserContext(%q) = %q, want empty", in, out)
		}
	}
}
