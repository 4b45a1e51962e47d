package defs

import "os"

// Project layout, relative to the project root, slash-separated.
const (
	// BackendDir marks a nebulis project root.
	BackendDir = "backend"

	BackendSrcDir   = "backend/src"
	EntitiesDir     = "backend/src/entities"
	GraphQLDir      = "backend/src/graphql"
	GraphQLTypesDir = "backend/src/graphql/types"
	ResolversDir    = "backend/src/graphql/resolvers"
	MigrationsDir   = "backend/src/migrations"

	SchemaDir   = "database/schema"
	FrontendDir = "frontend"
)

// Permissions for created directories and files.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)
