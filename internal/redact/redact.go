// Package redact scrubs sensitive values from strings before they are
// logged. Error messages routinely carry connection strings, bearer
// tokens, or credential material from lower layers; everything passed to
// a log attribute should go through Error or String first.
package redact

import "regexp"

// Placeholders substituted for matched sensitive content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

var (
	// Connection strings with embedded credentials, e.g. postgres://user:pw@host.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`)

	// API keys, secrets, and tokens in key=value or key: value form.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|authorization|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Passwords in key=value form.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Standard three-part base64url JWT tokens.
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
)

// String returns s with all recognized sensitive patterns replaced by
// placeholders.
func String(s string) string {
	if s == "" {
		return s
	}

	s = dbConnRegex.ReplaceAllString(s, "${1}://"+RedactedCredentialPlaceholder+"@")
	s = apiKeyRegex.ReplaceAllString(s, "${1}${2}"+RedactedCredentialPlaceholder)
	s = passwordRegex.ReplaceAllString(s, "${1}${2}"+RedactedCredentialPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, RedactionPlaceholder)

	return s
}

// Error returns the redacted message of err, or an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
