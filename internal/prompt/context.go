package prompt

import (
	"fmt"
	"strings"

	"lifepulse-backend/internal/models"
)

const (
	contextStartMarker = "--- PATIENT CONTEXT START ---"
	contextEndMarker   = "--- PATIENT CONTEXT END ---"

	// Rendered for fields the caller did not supply, so the model never
	// invents a value for them.
	notAvailable = "Not available"

	maxContextLogs = 5
)

// Instruction line appended after the context block directing the model to
// actually use the values.
const contextInstruction = "Instructions for AI: You MUST use the patient context above to personalise your answer. " +
	"Reference the user's specific pregnancy week, trimester, and health log values (weight, blood pressure, blood sugar, hemoglobin) where relevant. " +
	"Flag any concerning trends in the data (e.g., elevated BP or low hemoglobin) and recommend appropriate action. " +
	"Tailor all nutrition, exercise, and lifestyle advice to these specific values."

// AssembleContext renders a structured patient snapshot into the delimited
// text block injected ahead of the persona. Output is deterministic: the same
// snapshot always yields identical text. Health logs are expected in
// chronological order (oldest first, as stored) and are rendered newest first,
// at most five.
func AssembleContext(snap models.PatientSnapshot) string {
	var b strings.Builder

	b.WriteString(contextStartMarker)
	b.WriteString("\n")

	b.WriteString("Pregnancy Week: " + orNotAvailableInt(snap.Week) + "\n")
	b.WriteString("Trimester: " + orNotAvailableInt(snap.Trimester) + "\n")
	b.WriteString("Due Date: " + orNotAvailable(snap.DueDate) + "\n")

	if snap.FetalSize != "" || snap.FetalCM > 0 || snap.FetalG > 0 {
		b.WriteString(fmt.Sprintf("Fetal Development: size of %s, approx. %.1f cm, %.0f g\n",
			orNotAvailable(snap.FetalSize), snap.FetalCM, snap.FetalG))
	} else {
		b.WriteString("Fetal Development: " + notAvailable + "\n")
	}

	b.WriteString("Patient Name: " + orNotAvailable(snap.Name) + "\n")
	b.WriteString("Age: " + orNotAvailableInt(snap.Age) + "\n")
	b.WriteString("Blood Group: " + orNotAvailable(snap.BloodGroup) + "\n")
	b.WriteString("Known Conditions: " + orNotAvailable(snap.Conditions) + "\n")

	b.WriteString("Recent Health Logs (newest first):\n")
	logs := recentLogs(snap.HealthLogs)
	if len(logs) == 0 {
		b.WriteString("  " + notAvailable + "\n")
	}
	for _, l := range logs {
		b.WriteString(fmt.Sprintf("  - %s | Weight: %s | BP: %s | Sugar: %s | Hb: %s\n",
			orDash(l.Date), orDash(l.Weight), orDash(l.BP), orDash(l.Sugar), orDash(l.Hemoglobin)))
	}

	b.WriteString(contextEndMarker)
	b.WriteString("\n\n")
	b.WriteString(contextInstruction)
	b.WriteString("\n\n")

	return b.String()
}

// WrapUserContext attaches the same personalization instruction to a
// caller-supplied pre-rendered context block, so the opaque-context path
// carries it just like assembled snapshots do. Empty input stays empty.
func WrapUserContext(block string) string {
	if strings.TrimSpace(block) == "" {
		return ""
	}
	return block + "\n\n" + contextInstruction + "\n\n"
}

// recentLogs reverses the chronological input and truncates to the most
// recent five entries.
func recentLogs(logs []models.HealthLog) []models.HealthLog {
	out := make([]models.HealthLog, 0, maxContextLogs)
	for i := len(logs) - 1; i >= 0 && len(out) < maxContextLogs; i-- {
		out = append(out, logs[i])
	}
	return out
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func orNotAvailableInt(n int) string {
	if n <= 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d", n)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
