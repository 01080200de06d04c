package logging

import "strings"

// MaskEmail returns email with the local part reduced to its first two
// characters plus "***", keeping the domain intact:
// "johndoe@example.com" -> "jo***@example.com".
// Addresses too short to mask (local part under two characters) are
// returned unchanged.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 2 {
		return email
	}
	return email[:2] + "***" + email[at:]
}
