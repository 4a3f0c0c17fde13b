package validate

import (
	"net/mail"
	"strconv"
	"strings"
)

// Field-format primitives shared by the orchestrator shape check, the
// vendor adapters and the offline validation CLI.

// IsDigits reports whether s is non-empty and all ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// StripNonDigits drops everything but digits from s.
func StripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsCardNumber: 13..16 digits.
func IsCardNumber(s string) bool {
	return IsDigits(s) && len(s) >= 13 && len(s) <= 16
}

// IsCVV: 3 or 4 digits.
func IsCVV(s string) bool {
	return IsDigits(s) && (len(s) == 3 || len(s) == 4)
}

// IsMMYY: 4 digits with a month in 01..12.
func IsMMYY(s string) bool {
	if !IsDigits(s) || len(s) != 4 {
		return false
	}
	m, _ := strconv.Atoi(s[:2])
	return m >= 1 && m <= 12
}

// IsExpMonth: 2 digits, 01..12.
func IsExpMonth(s string) bool {
	if !IsDigits(s) || len(s) != 2 {
		return false
	}
	m, _ := strconv.Atoi(s)
	return m >= 1 && m <= 12
}

// IsExpYear: 4 digits.
func IsExpYear(s string) bool {
	return IsDigits(s) && len(s) == 4
}

// NormalizePhone strips non-digits and returns (digits, ok) where ok
// means exactly 10 digits remained.
func NormalizePhone(s string) (string, bool) {
	d := StripNonDigits(s)
	return d, len(d) == 10
}

// IsEmail: RFC 5322 address check via net/mail.
func IsEmail(s string) bool {
	if s == "" {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// IsRoutingNumber: 9 digits (ABA).
func IsRoutingNumber(s string) bool {
	return IsDigits(s) && len(s) == 9
}

// IsStateCode: exactly 2 uppercase/lowercase letters.
func IsStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// IsDOB: optional MM/DD/YYYY; empty string is acceptable at call sites,
// this helper validates a present value only.
func IsDOB(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return false
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return false
	}
	if !IsDigits(parts[0]) || !IsDigits(parts[1]) || !IsDigits(parts[2]) {
		return false
	}
	m, _ := strconv.Atoi(parts[0])
	d, _ := strconv.Atoi(parts[1])
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}

// IsGender: optional one-letter code, M or F.
func IsGender(s string) bool {
	return s == "M" || s == "F" || s == "m" || s == "f"
}

// BIN6 returns the first 6 digits of a card number ("" when shorter).
func BIN6(cardNumber string) string {
	if len(cardNumber) < 6 {
		return ""
	}
	return cardNumber[:6]
}

// PadBIN10 returns the first 10 characters of s right-padded with '0'
// to exactly 10 characters (Radius disposition bin field).
func PadBIN10(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s + strings.Repeat("0", 10-len(s))
}
