// Package logging provides zerolog helpers that keep credentials out of logs.
//
// Git command lines routinely carry secrets: clone URLs with embedded
// user:token pairs, -c http.extraHeader=Authorization values, and tokens
// in environment overrides. Everything the runner logs goes through
// FilterSensitiveValue, and the CLI log file is wrapped in a FilteringWriter.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// urlCredentials matches the userinfo part of a URL (scheme://user:pass@).
var urlCredentials = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://)[^/@\s:]+:[^/@\s]+@`) //nolint:gochecknoglobals // compiled once

// sensitivePatterns match secret values that can appear anywhere in a string.
//
//nolint:gochecknoglobals // Package-level patterns for reuse
var sensitivePatterns = []*regexp.Regexp{
	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_) and fine-grained PATs
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),
	regexp.MustCompile(`github_pat_[a-zA-Z0-9_]{20,}`),

	// GitLab personal access tokens
	regexp.MustCompile(`glpat-[a-zA-Z0-9_-]{20,}`),

	// Authorization headers, e.g. -c http.extraHeader="Authorization: Basic ..."
	regexp.MustCompile(`(?i)authorization:\s*(basic|bearer|token)\s+[a-zA-Z0-9+/=._-]{8,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// key=value secrets
	regexp.MustCompile(`(?i)(secret|password|passwd|token|api[_-]?key)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// sensitiveFieldNames are field or variable names whose values are always redacted.
//
//nolint:gochecknoglobals // Package-level patterns for reuse
var sensitiveFieldNames = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"authorization",
	"askpass",
	"private_key",
	"api_key",
}

// SensitiveDataHook flags log events whose message contains sensitive data.
// Zerolog hooks cannot rewrite an event, so redaction happens at call sites
// and in FilteringWriter; the hook marks anything that slipped through.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s contains a credential pattern.
func ContainsSensitiveData(s string) bool {
	if urlCredentials.MatchString(s) {
		return true
	}
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces credentials in value with RedactedValue.
// URL credentials keep their scheme so the host stays readable.
func FilterSensitiveValue(value string) string {
	result := urlCredentials.ReplaceAllString(value, "${1}"+RedactedValue+"@")
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a field or environment variable name
// indicates sensitive data. Matching is case-insensitive.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns value with sensitive data redacted, or RedactedValue
// entirely when fieldName itself is sensitive.
//
//	log.Debug().Str("GIT_ASKPASS", logging.SafeValue("GIT_ASKPASS", v)).Msg("env override")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from output.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a FilteringWriter that wraps w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when
// redaction changed the number of bytes written.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	if _, err = fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
