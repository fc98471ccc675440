package model

import "strings"

// NormalizeEmail canonicalizes an email for identity matching: lowercase,
// trimmed, and with dots removed from the local part for Gmail addresses
// (Gmail ignores them, so a.b@gmail.com and ab@gmail.com are the same inbox).
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	}

	return local + "@" + domain
}
