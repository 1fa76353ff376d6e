// Package redact strips sensitive information from strings before they are
// logged. Error chains in this service can carry database connection strings
// and the Gemini API key; redaction keeps those out of log output.
package redact

import "regexp"

const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

var (
	// Database connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(ql)?|mysql|db|database)://[^@\s]+@`)

	// API keys and tokens that surface in wrapped client errors.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
)

// String applies all redaction patterns to the input.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, "$1://"+RedactedCredentialPlaceholder+"@")
	s = apiKeyRegex.ReplaceAllString(s, "$1$2"+RedactedKeyPlaceholder)
	return s
}

// Error redacts an error's message. Returns the empty string for nil errors.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
