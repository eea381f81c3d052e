package validators

import "testing"

func TestIsEmailShaped(t *testing.T) {
	valid := []string{
		"jdoe@example.com",
		"j.doe+booking@sub.example.co",
	}
	for _, e := range valid {
		if !IsEmailShaped(e) {
			t.Fatalf("%q should be accepted", e)
		}
	}

	invalid := []string{
		"",
		"jdoe",
		"jdoe@",
		"@example.com",
		"jdoe@example",
		"j doe@example.com",
	}
	for _, e := range invalid {
		if IsEmailShaped(e) {
			t.Fatalf("%q should be rejected", e)
		}
	}
}
