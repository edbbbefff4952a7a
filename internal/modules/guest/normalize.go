package guest

import "strings"

// NormalizeEmail lower-cases and trims an email address. Empty input
// yields "".
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips everything but digits. No locale-specific parsing:
// digits-only canonicalization is the entire contract.
func NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// NormalizeName lower-cases a name and collapses internal whitespace runs
// to single spaces.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
