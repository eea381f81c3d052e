package cache

import "testing"

// Case-variant URLs must collapse onto one key, or a page cached via
// /JDoe/Intro-Call would survive a host-wide invalidation scanned with
// the lowercased local part.
func TestPublicKeyNormalizesSegments(t *testing.T) {
	tests := []struct {
		username string
		slug     string
		want     string
	}{
		{"jdoe", "intro-call", "public:jdoe:intro-call"},
		{"JDoe", "Intro-Call", "public:jdoe:intro-call"},
		{" jdoe ", "INTRO-CALL", "public:jdoe:intro-call"},
	}

	for _, tt := range tests {
		if got := publicKey(tt.username, tt.slug); got != tt.want {
			t.Errorf("publicKey(%q, %q) = %q, want %q", tt.username, tt.slug, got, tt.want)
		}
	}
}
