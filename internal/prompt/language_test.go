package prompt

import (
	"strings"
	"testing"
)

func TestDirective(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		contains string
		empty    bool
	}{
		{"english is default", "en", "", true},
		{"empty code is default", "", "", true},
		{"hindi", "hi", "Hindi (हिंदी)", false},
		{"tamil", "ta", "Tamil (தமிழ்)", false},
		{"telugu", "te", "Telugu (తెలుగు)", false},
		{"bengali", "bn", "Bengali (বাংলা)", false},
		{"marathi", "mr", "Marathi (मराठी)", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Directive(tc.code)
			if tc.empty {
				if d != "" {
					t.Errorf("Expected empty directive, got %q", d)
				}
				return
			}
			if !strings.Contains(d, tc.contains) {
				t.Errorf("Expected directive to name %q, got %q", tc.contains, d)
			}
			if !strings.Contains(d, "native script") {
				t.Errorf("Directive must require native script, got %q", d)
			}
		})
	}
}

func TestDirective_UnknownCodePassesThrough(t *testing.T) {
	d := Directive("kok")
	if d == "" {
		t.Fatal("Unknown code must still produce a directive")
	}
	if !strings.Contains(d, "kok") {
		t.Errorf("Unknown code should pass through verbatim, got %q", d)
	}
	if !strings.Contains(d, "bullet-point format") {
		t.Errorf("Directive must preserve the bullet format rule, got %q", d)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != "English" {
		t.Errorf("Expected English for empty code, got %q", got)
	}
	if got := DisplayName("hi"); got != "Hindi (हिंदी)" {
		t.Errorf("Expected Hindi display name, got %q", got)
	}
	if got := DisplayName("xx"); got != "xx" {
		t.Errorf("Expected pass-through for unknown code, got %q", got)
	}
}
