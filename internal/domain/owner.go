package domain

import "strings"

// NormalizeEmail prepares an email for comparison: trimmed and lowercased.
// Stored emails keep their original casing; normalization happens only here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// VerifyOwner authorizes a mutation by comparing the caller-supplied email
// against the email stored on the record. The check is deliberately weak:
// it implements "verify by the same email used to post", not authentication.
// An empty email on either side fails.
func VerifyOwner(stored, supplied string) error {
	s := NormalizeEmail(stored)
	p := NormalizeEmail(supplied)
	if s == "" || p == "" || s != p {
		return ErrEmailMismatch
	}
	return nil
}
