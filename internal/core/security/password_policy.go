package security

import "strings"

// PasswordSymbols is the set of symbols a password may contain.
const PasswordSymbols = "@$!%*?&#"

// MinPasswordLength is the shortest password the policy accepts.
const MinPasswordLength = 8

// ValidatePassword reports whether p satisfies the complexity policy: at
// least MinPasswordLength characters, one uppercase letter, one digit and one
// symbol from PasswordSymbols, with no characters outside ASCII letters,
// digits and PasswordSymbols. It does not say which rule failed.
func ValidatePassword(p string) bool {
	if strings.TrimSpace(p) == "" || len(p) < MinPasswordLength {
		return false
	}

	var upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return upper && digit && symbol
}
