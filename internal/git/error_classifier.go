package git

import (
	"strings"

	"github.com/mrz1836/gitrun/internal/command"
)

// ErrorType is the class of a failed git invocation, derived from its stderr.
type ErrorType int

const (
	// ErrorTypeUnknown indicates the error could not be classified.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuth indicates an authentication error.
	ErrorTypeAuth
	// ErrorTypeNetwork indicates a network connectivity error.
	ErrorTypeNetwork
	// ErrorTypeNotARepo indicates the directory is not inside a repository.
	ErrorTypeNotARepo
	// ErrorTypeLock indicates another git process holds a lock file.
	ErrorTypeLock
	// ErrorTypeNotFound indicates a missing ref, path or remote.
	ErrorTypeNotFound
	// ErrorTypeNonFastForward indicates a non-fast-forward push rejection.
	ErrorTypeNonFastForward
)

// String returns a snake_case name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeAuth:
		return "authentication"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeNotARepo:
		return "not_a_repo"
	case ErrorTypeLock:
		return "lock"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeNonFastForward:
		return "non_fast_forward"
	default:
		return "unknown"
	}
}

// PatternMatcher checks if a string contains any of a list of patterns.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a PatternMatcher. Patterns must be lowercase.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Matches lowercases s and reports whether it contains any pattern.
func (m *PatternMatcher) Matches(s string) bool {
	return m.MatchesLower(strings.ToLower(s))
}

// MatchesLower is Matches for input that is already lowercase.
func (m *PatternMatcher) MatchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Package-level immutable pattern matchers
var (
	authPatterns = NewPatternMatcher(
		"authentication failed",
		"could not read username",
		"could not read password",
		"permission denied (publickey)",
		"invalid username or password",
		"terminal prompts disabled",
		"authentication required",
		"host key verification failed",
	)

	networkPatterns = NewPatternMatcher(
		"could not resolve host",
		"connection refused",
		"network is unreachable",
		"connection timed out",
		"operation timed out",
		"unable to access",
		"no route to host",
		"failed to connect",
		"the remote end hung up unexpectedly",
	)

	notARepoPatterns = NewPatternMatcher(
		"not a git repository",
	)

	lockPatterns = NewPatternMatcher(
		".lock': file exists",
		"index.lock",
		"another git process seems to be running",
		"unable to create '",
	)

	notFoundPatterns = NewPatternMatcher(
		"not found",
		"no such",
		"does not exist",
		"did not match any file",
		"unknown revision",
		"bad revision",
	)

	nonFastForwardPatterns = NewPatternMatcher(
		"non-fast-forward",
		"failed to push some refs",
		"updates were rejected",
		"fetch first",
	)
)

// ErrorClassifier groups the pattern matchers used to classify stderr.
type ErrorClassifier struct {
	auth           *PatternMatcher
	network        *PatternMatcher
	notARepo       *PatternMatcher
	lock           *PatternMatcher
	notFound       *PatternMatcher
	nonFastForward *PatternMatcher
}

//nolint:gochecknoglobals // Singleton classifier for package use
var defaultClassifier = &ErrorClassifier{
	auth:           authPatterns,
	network:        networkPatterns,
	notARepo:       notARepoPatterns,
	lock:           lockPatterns,
	notFound:       notFoundPatterns,
	nonFastForward: nonFastForwardPatterns,
}

// ClassifyText classifies git's stderr text.
//
// Classification priority (first match wins):
// 1. Not a repository
// 2. Lock contention
// 3. Authentication
// 4. Network
// 5. Non-fast-forward
// 6. Not found
func ClassifyText(stderr string) ErrorType {
	return defaultClassifier.Classify(stderr)
}

// ClassifyError classifies err using the stderr captured in its command
// result, falling back to the error text. A nil error is ErrorTypeUnknown.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}
	if r, ok := command.ResultOf(err); ok && r.StderrString() != "" {
		return ClassifyText(r.StderrString())
	}
	return ClassifyText(err.Error())
}

// Classify determines the error type of s. See ClassifyText for priority.
func (c *ErrorClassifier) Classify(s string) ErrorType {
	lower := strings.ToLower(s)
	switch {
	case c.notARepo.MatchesLower(lower):
		return ErrorTypeNotARepo
	case c.lock.MatchesLower(lower):
		return ErrorTypeLock
	case c.auth.MatchesLower(lower):
		return ErrorTypeAuth
	case c.network.MatchesLower(lower):
		return ErrorTypeNetwork
	case c.nonFastForward.MatchesLower(lower):
		return ErrorTypeNonFastForward
	case c.notFound.MatchesLower(lower):
		return ErrorTypeNotFound
	default:
		return ErrorTypeUnknown
	}
}
