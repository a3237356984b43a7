package services

import (
	"encoding/base64"
	"strings"
	"testing"

	"lifepulse-backend/internal/models"
)

func TestAttachmentValidator_NilIsValid(t *testing.T) {
	v := NewAttachmentValidator(10)
	if err := v.Validate(nil); err != nil {
		t.Errorf("Expected nil attachment to pass, got %v", err)
	}
}

func TestAttachmentValidator_Rejections(t *testing.T) {
	v := NewAttachmentValidator(1)

	oversize := base64.StdEncoding.EncodeToString(make([]byte, 1024*1024+1))
	corruptPDF := base64.StdEncoding.EncodeToString([]byte("this is not a pdf at all"))

	tests := []struct {
		name string
		att  models.Attachment
	}{
		{"empty payload", models.Attachment{Name: "x.png", MimeType: "image/png", Base64: ""}},
		{"unsupported mime", models.Attachment{Name: "x.gif", MimeType: "image/gif", Base64: "QQ=="}},
		{"text mime", models.Attachment{Name: "x.txt", MimeType: "text/plain", Base64: "QQ=="}},
		{"invalid base64", models.Attachment{Name: "x.png", MimeType: "image/png", Base64: "!!not-base64!!"}},
		{"over size limit", models.Attachment{Name: "x.png", MimeType: "image/png", Base64: oversize}},
		{"corrupt pdf", models.Attachment{Name: "x.pdf", MimeType: "application/pdf", Base64: corruptPDF}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			att := tc.att
			err := v.Validate(&att)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("Expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestAttachmentValidator_AcceptsImages(t *testing.T) {
	v := NewAttachmentValidator(10)

	for _, mime := range []string{"image/jpeg", "image/png", "image/webp"} {
		t.Run(mime, func(t *testing.T) {
			att := models.Attachment{Name: "report", MimeType: mime, Base64: "QQ=="}
			if err := v.Validate(&att); err != nil {
				t.Errorf("Expected %s to pass, got %v", mime, err)
			}
		})
	}
}

func TestAttachmentValidator_SizeBoundary(t *testing.T) {
	v := NewAttachmentValidator(1)

	exact := base64.StdEncoding.EncodeToString(make([]byte, 1024*1024))
	att := models.Attachment{Name: "x.png", MimeType: "image/png", Base64: exact}
	if err := v.Validate(&att); err != nil {
		t.Errorf("Payload exactly at the limit must pass, got %v", err)
	}
}

func TestAttachmentValidator_OversizeMessageNamesLimit(t *testing.T) {
	v := NewAttachmentValidator(2)

	payload := base64.StdEncoding.EncodeToString(make([]byte, 2*1024*1024+1))
	att := models.Attachment{Name: "x.jpg", MimeType: "image/jpeg", Base64: payload}
	err := v.Validate(&att)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "2 MB") {
		t.Errorf("Expected the limit in the message, got %q", err.Error())
	}
}
