package booking

import "strings"

// ===============================
// Public URL Normalization
// ===============================

// SlugToTitle maps a URL slug back to the stored title form: hyphens
// become spaces, matching is case-insensitive on the caller's side.
// "intro-call" resolves the title "Intro Call".
func SlugToTitle(slug string) string {
	return strings.ToLower(strings.ReplaceAll(slug, "-", " "))
}

// TitleToSlug is the inverse mapping, used when rendering public links.
func TitleToSlug(title string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "-"))
}

// NormalizeUsername lowercases the username segment of a public URL so it
// can be matched against the local part of a host's email. Collision-prone
// when two hosts share a local part across domains; first match wins.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
