package template

import (
	"github.com/nebulis-dev/nebulis/internal/naming"
)

// Defaults written into a new project's .env and docker-compose.yml.
const (
	DefaultDatabaseURL = "ws://localhost:8000"
	DefaultDBUser      = "root"
	DefaultDBPass      = "root"
	DefaultNamespace   = "test"
	DefaultDatabase    = "test"
	DefaultPort        = 3000
	DefaultHost        = "0.0.0.0"
	DefaultSchemaExt   = "surql"
)

// TemplateContext provides data for rendering the project tree.
// All fields are exported for use with Go's text/template package.
type TemplateContext struct {
	// Project
	ProjectName string
	ProjectRoot string
	CrateName   string // Cargo package name, e.g. "blog_backend"

	// Database
	DatabaseURL string
	DBUser      string
	DBPass      string
	Namespace   string
	Database    string

	// Server
	Host string
	Port int

	SchemaExt string

	// Meta
	Version   string // nebulis version that created the project
	CreatedAt string // RFC 3339 timestamp
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// NewTemplateContext creates a TemplateContext with defaults, then applies opts.
func NewTemplateContext(opts ...ContextOption) *TemplateContext {
	ctx := &TemplateContext{
		DatabaseURL: DefaultDatabaseURL,
		DBUser:      DefaultDBUser,
		DBPass:      DefaultDBPass,
		Namespace:   DefaultNamespace,
		Database:    DefaultDatabase,
		Host:        DefaultHost,
		Port:        DefaultPort,
		SchemaExt:   DefaultSchemaExt,
	}

	for _, opt := range opts {
		opt(ctx)
	}

	if ctx.CrateName == "" && ctx.ProjectName != "" {
		ctx.CrateName = naming.Snake(ctx.ProjectName) + "_backend"
	}

	return ctx
}

// WithProject sets project-related fields.
func WithProject(name, root string) ContextOption {
	return func(c *TemplateContext) {
		c.ProjectName = name
		c.ProjectRoot = root
	}
}

// WithDatabase sets the namespace and database names.
func WithDatabase(namespace, database string) ContextOption {
	return func(c *TemplateContext) {
		if namespace != "" {
			c.Namespace = namespace
		}
		if database != "" {
			c.Database = database
		}
	}
}

// WithSchemaExt sets the schema file extension recorded in nebulis.yaml.
func WithSchemaExt(ext string) ContextOption {
	return func(c *TemplateContext) {
		if ext != "" {
			c.SchemaExt = ext
		}
	}
}

// WithVersion sets the nebulis version.
func WithVersion(version string) ContextOption {
	return func(c *TemplateContext) {
		c.Version = version
	}
}

// WithCreatedAt sets the project creation timestamp.
func WithCreatedAt(timestamp string) ContextOption {
	return func(c *TemplateContext) {
		c.CreatedAt = timestamp
	}
}
