package prompt

import (
	"strings"
	"testing"
)

func TestCompose_Ordering(t *testing.T) {
	contextBlock := AssembleContext(snapshotFixture())
	c := Compose(PregnancyPersona, contextBlock, "Is my weight normal?", "hi", nil)

	ctxIdx := strings.Index(c.SystemText, "--- PATIENT CONTEXT START ---")
	personaIdx := strings.Index(c.SystemText, "specialized AI Pregnancy Expert")
	langIdx := strings.Index(c.SystemText, "Respond in Hindi")

	if ctxIdx < 0 || personaIdx < 0 || langIdx < 0 {
		t.Fatalf("Composed system text missing a section:\n%s", c.SystemText)
	}
	if !(ctxIdx < personaIdx && personaIdx < langIdx) {
		t.Error("Order must be context block, then persona, then language directive")
	}
}

func TestCompose_PersonaNeverDropped(t *testing.T) {
	contextBlock := AssembleContext(snapshotFixture())
	c := Compose("", contextBlock, "hello", "en", nil)
	if !strings.Contains(c.SystemText, "specialized AI Pregnancy Expert") {
		t.Error("Default persona must be included even with a context block present")
	}
}

func TestCompose_CallerOverride(t *testing.T) {
	c := Compose("You are a test persona.", "", "hello", "en", nil)
	if !strings.Contains(c.SystemText, "You are a test persona.") {
		t.Error("Caller-supplied persona override must be used")
	}
	if strings.Contains(c.SystemText, "Pregnancy Expert") {
		t.Error("Default persona must not leak in when overridden")
	}
}

func TestCompose_UserLine(t *testing.T) {
	c := Compose(GeneralPersona, "", "I have a fever", "bn", nil)
	if c.UserText != "User Question: I have a fever\nResponse Language: Bengali (বাংলা)" {
		t.Errorf("Unexpected user line: %q", c.UserText)
	}
}

func TestCompose_Reproducible(t *testing.T) {
	a := Compose(GeneralPersona, "ctx\n", "msg", "ta", nil)
	b := Compose(GeneralPersona, "ctx\n", "msg", "ta", nil)
	if a.SystemText != b.SystemText || a.UserText != b.UserText {
		t.Error("Composition must be stable for identical inputs")
	}
}
