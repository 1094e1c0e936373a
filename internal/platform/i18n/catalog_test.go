package i18n

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestPickDefaultsToArabic(t *testing.T) {
	for _, header := range []string{"", "garbage;;;", "zz"} {
		c := Pick(header)
		if c.Tag() != language.Arabic {
			t.Fatalf("header %q: expected Arabic default, got %v", header, c.Tag())
		}
	}
}

func TestPickMatchesEnglish(t *testing.T) {
	c := Pick("en-US,en;q=0.9")
	if c.Tag() != language.English {
		t.Fatalf("expected English, got %v", c.Tag())
	}
	msg := c.T(KeyNotFound)
	if !strings.Contains(msg, "not registered") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestFormattedMessage(t *testing.T) {
	c := Pick("en")
	msg := c.T(KeyRecordedAtSite, "Check-In", "HQ")
	if !strings.Contains(msg, "Check-In") || !strings.Contains(msg, "HQ") {
		t.Fatalf("template args not applied: %q", msg)
	}
}

func TestUnknownKeyFallsBack(t *testing.T) {
	c := Pick("ar")
	if got := c.T(Key("nope")); got != "nope" {
		t.Fatalf("expected raw key fallback, got %q", got)
	}
}
