// Package migration infers schema operations from migration names, renders
// their forward and backward SurrealQL, and writes the schema files plus the
// backend wrapper that replays them.
package migration

import "errors"

// Sentinel errors for the migration package.
var (
	// ErrInvalidMigrationName indicates a name matching none of the accepted shapes.
	ErrInvalidMigrationName = errors.New("invalid migration name format")

	// ErrNoMigrationsDir indicates backend/src/migrations does not exist.
	ErrNoMigrationsDir = errors.New("no migrations directory found")

	// ErrInvalidSteps indicates a rollback step count below one.
	ErrInvalidSteps = errors.New("rollback steps must be at least 1")
)
