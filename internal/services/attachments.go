package services

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/ledongthuc/pdf"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/prompt"
)

// AttachmentValidator enforces the server-side attachment limits. The client
// caps uploads too, but the server no longer trusts it.
type AttachmentValidator struct {
	maxBytes int
}

func NewAttachmentValidator(maxMB int) *AttachmentValidator {
	return &AttachmentValidator{maxBytes: maxMB * 1024 * 1024}
}

// Validate checks mime type, payload size, and base64 integrity. PDF payloads
// additionally get a structural probe so a corrupt file is rejected here
// instead of surfacing as an opaque upstream failure. A nil attachment is
// valid (text-only request).
func (v *AttachmentValidator) Validate(att *models.Attachment) error {
	if att == nil {
		return nil
	}

	if att.Base64 == "" {
		return &ValidationError{Message: "Attachment payload is empty"}
	}
	if !prompt.AllowedMimeTypes[att.MimeType] {
		return &ValidationError{Message: fmt.Sprintf("Unsupported attachment type: %s", att.MimeType)}
	}

	raw, err := base64.StdEncoding.DecodeString(att.Base64)
	if err != nil {
		return &ValidationError{Message: "Attachment payload is not valid base64"}
	}
	if len(raw) > v.maxBytes {
		return &ValidationError{Message: fmt.Sprintf("Attachment exceeds the %d MB limit", v.maxBytes/(1024*1024))}
	}

	if att.MimeType == "application/pdf" {
		if err := probePDF(raw); err != nil {
			return &ValidationError{Message: "Attachment is not a readable PDF"}
		}
	}

	return nil
}

// probePDF opens the document without extracting anything. The pdf package
// panics on some malformed inputs, so the probe recovers and reports those as
// plain errors.
func probePDF(raw []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return err
	}
	if reader.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}
