// Package testutil provides helpers shared by tests. It must only be
// imported from *_test.go files.
package testutil

import "errors"

// Mock errors used to simulate failures in tests.
var (
	// ErrMockWrite is returned by FailingWriter.
	ErrMockWrite = errors.New("mock write failed")
)

// FailingWriter is an io.Writer whose writes always fail.
type FailingWriter struct{}

// Write implements io.Writer.
func (FailingWriter) Write([]byte) (int, error) {
	return 0, ErrMockWrite
}
