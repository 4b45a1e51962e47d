// Package project scaffolds new nebulis projects and locates the root of an
// existing one. It implements the core of the "nebulis new" command:
// directory layout, embedded template deployment, repository setup and the
// frontend toolchain.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrProjectExists indicates the target already contains a non-empty backend/ directory.
	ErrProjectExists = errors.New("project already exists")

	// ErrInvalidRoot indicates the given project root path is empty or not a directory.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrInvalidProjectName indicates a project name that cannot be used as a directory.
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrFrontendFailed indicates the frontend toolchain exited with an error.
	ErrFrontendFailed = errors.New("frontend setup failed")

	// ErrNotInProject indicates no nebulis project was found in the directory or its parents.
	ErrNotInProject = errors.New("not in a nebulis project")
)
