package prompt

// Attachment types the model accepts. Anything else is rejected before the
// upstream call.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

const pdfInstruction = "The user has attached a medical report PDF. Carefully read ALL values in the report. " +
	"Identify any abnormal results, especially those related to pregnancy (haemoglobin, blood pressure, blood glucose, thyroid, vitamins). " +
	"Cross-reference with the patient context above and provide specific, actionable recommendations."

const imageInstruction = "The user has attached a medical report image. Carefully read ALL visible values in this image. " +
	"Identify any abnormal or unusual results related to pregnancy. " +
	"Cross-reference with the patient context above and provide specific, actionable recommendations."

// Part is one element of the ordered content list sent to the model. Exactly
// one of Text or Data is set. Data keeps the caller's base64 payload
// byte-exact; decoding happens at the gateway.
type Part struct {
	Text     string
	MimeType string
	Data     string
}

// BuildParts turns a composed prompt into the ordered content-parts list.
// With a usable attachment (non-empty payload, recognized mime type) the
// result is [instruction text, attachment]; otherwise a single text part.
// Inputs are never mutated and no I/O happens here.
func BuildParts(c Composed) []Part {
	att := c.Attachment
	if att == nil || att.Base64 == "" || !AllowedMimeTypes[att.MimeType] {
		return []Part{{Text: c.SystemText + "\n\n" + c.UserText}}
	}

	instruction := imageInstruction
	if att.MimeType == "application/pdf" {
		instruction = pdfInstruction
	}

	return []Part{
		{Text: c.SystemText + "\n\n" + instruction + "\n\n" + c.UserText},
		{MimeType: att.MimeType, Data: att.Base64},
	}
}
