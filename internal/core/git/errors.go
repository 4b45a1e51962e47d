// Package git wraps the system git binary for the few repository operations
// the scaffolder needs.
package git

import "errors"

// Sentinel errors for the git package.
var (
	// ErrSystemGitNotFound indicates git is not on PATH.
	ErrSystemGitNotFound = errors.New("git executable not found")
)
