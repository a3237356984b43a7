package prompt

// Display names for the languages the LifePulse client offers. Codes outside
// this set are passed through verbatim so a new locale degrades gracefully
// instead of failing.
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi (हिंदी)",
	"ta": "Tamil (தமிழ்)",
	"te": "Telugu (తెలుగు)",
	"bn": "Bengali (বাংলা)",
	"mr": "Marathi (मराठी)",
}

// DisplayName returns the human-readable name for a language code. Unknown
// codes are returned as-is.
func DisplayName(code string) string {
	if code == "" {
		return languageNames["en"]
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Directive returns the instruction appended to the prompt telling the model
// which language to answer in. English is the default and needs none.
func Directive(code string) string {
	if code == "" || code == "en" {
		return ""
	}
	return "IMPORTANT: Respond in " + DisplayName(code) + ". Use the native script and maintain the same bullet-point format.\n\n"
}
