package prompt

import (
	"strings"
	"testing"

	"lifepulse-backend/internal/models"
)

func TestBuildParts_TextOnly(t *testing.T) {
	c := Compose(GeneralPersona, "", "hello", "en", nil)
	parts := BuildParts(c)

	if len(parts) != 1 {
		t.Fatalf("Expected 1 part without attachment, got %d", len(parts))
	}
	if parts[0].Data != "" || parts[0].MimeType != "" {
		t.Error("Text part must not carry attachment fields")
	}
	if !strings.Contains(parts[0].Text, "User Question: hello") {
		t.Error("Text part must contain the user line")
	}
}

func TestBuildParts_PDFAttachment(t *testing.T) {
	att := &models.Attachment{Name: "report.pdf", MimeType: "application/pdf", Base64: "JVBERi0="}
	c := Compose(PregnancyPersona, "", "check my report", "en", att)
	parts := BuildParts(c)

	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts with attachment, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, "medical report PDF") {
		t.Error("PDF attachments must select the PDF-specific instruction")
	}
	if parts[1].MimeType != "application/pdf" || parts[1].Data != "JVBERi0=" {
		t.Errorf("Attachment part must pass mime and payload through unchanged, got %+v", parts[1])
	}
}

func TestBuildParts_ImageAttachment(t *testing.T) {
	att := &models.Attachment{Name: "scan.png", MimeType: "image/png", Base64: "QQ=="}
	c := Compose(PregnancyPersona, "", "what does this say", "en", att)
	parts := BuildParts(c)

	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, "medical report image") {
		t.Error("Image attachments must select the image-specific instruction")
	}
	if strings.Contains(parts[0].Text, "medical report PDF") {
		t.Error("Image attachments must not get the PDF instruction")
	}
}

func TestBuildParts_WebpPassThrough(t *testing.T) {
	att := &models.Attachment{Name: "r.webp", MimeType: "image/webp", Base64: "QQ=="}
	parts := BuildParts(Compose(PregnancyPersona, "", "q", "en", att))

	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(parts))
	}
	if parts[1].MimeType != "image/webp" {
		t.Errorf("Expected image/webp, got %q", parts[1].MimeType)
	}
	if parts[1].Data != "QQ==" {
		t.Errorf("Payload must be byte-exact, got %q", parts[1].Data)
	}
}

func TestBuildParts_IgnoresUnusableAttachments(t *testing.T) {
	tests := []struct {
		name string
		att  *models.Attachment
	}{
		{"empty payload", &models.Attachment{MimeType: "image/png", Base64: ""}},
		{"unknown mime", &models.Attachment{MimeType: "image/gif", Base64: "QQ=="}},
		{"nil attachment", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parts := BuildParts(Compose(PregnancyPersona, "", "q", "en", tc.att))
			if len(parts) != 1 {
				t.Errorf("Expected fall back to text-only, got %d parts", len(parts))
			}
		})
	}
}

func TestBuildParts_DoesNotMutateInput(t *testing.T) {
	att := &models.Attachment{Name: "r.pdf", MimeType: "application/pdf", Base64: "JVBERi0="}
	c := Compose(PregnancyPersona, "ctx\n", "q", "hi", att)
	sysBefore, userBefore := c.SystemText, c.UserText

	BuildParts(c)

	if c.SystemText != sysBefore || c.UserText != userBefore || att.Base64 != "JVBERi0=" {
		t.Error("BuildParts must not mutate its inputs")
	}
}
