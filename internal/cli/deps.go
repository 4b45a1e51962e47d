// Package cli provides the Cobra command tree and dependency injection
// wiring for the nebulis CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nebulis-dev/nebulis/internal/cli/wizard"
	"github.com/nebulis-dev/nebulis/internal/config"
	"github.com/nebulis-dev/nebulis/internal/core/git"
	"github.com/nebulis-dev/nebulis/internal/core/project"
	"github.com/nebulis-dev/nebulis/internal/generator"
	"github.com/nebulis-dev/nebulis/internal/migration"
	"github.com/nebulis-dev/nebulis/internal/template"
	"github.com/nebulis-dev/nebulis/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config   *config.ConfigManager
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Runner   project.CommandRunner
	GitInit  func(ctx context.Context, dir string) error
	InRepo   func(ctx context.Context, dir string) bool
	Clock    func() time.Time
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// Logging stays silent until Configure sees --verbose or a log level
// above info.
func InitDependencies() {
	deps = &Dependencies{
		Config:   config.NewConfigManager(),
		Theme:    ui.NewTheme(false),
		Headless: ui.NewHeadlessManager(),
		Runner:   project.ExecRunner{},
		GitInit:  git.Init,
		InRepo:   git.IsRepository,
		Clock:    time.Now,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	deps.Headless.SetDefaults(headlessDefaults(os.Getenv))
}

// Environment variables answering prompts when no terminal is attached.
const (
	EnvProjectName = "NEBULIS_PROJECT_NAME"
	EnvEntityName  = "NEBULIS_ENTITY_NAME"
)

func headlessDefaults(getenv func(string) string) map[string]string {
	defaults := map[string]string{}
	if v := getenv(EnvProjectName); v != "" {
		defaults[wizard.IDProjectName] = v
	}
	if v := getenv(EnvEntityName); v != "" {
		defaults[wizard.IDEntityName] = v
	}
	return defaults
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// Configure applies the loaded configuration and global flags: the theme
// honors no-color, and the logger writes to stderr at debug level with
// verbose or log.level debug, at warn or error when configured so, and
// nowhere otherwise.
func (d *Dependencies) Configure(cfg *config.Config, verbose, noColor bool, stderr io.Writer) {
	d.Theme = ui.NewTheme(noColor || cfg.UI.NoColor)

	var level slog.Level
	switch {
	case verbose || cfg.Log.Level == "debug":
		level = slog.LevelDebug
	case cfg.Log.Level == "warn":
		level = slog.LevelWarn
	case cfg.Log.Level == "error":
		level = slog.LevelError
	default:
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	d.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// Interactive reports whether prompts may be shown.
func (d *Dependencies) Interactive() bool {
	return !d.Headless.IsHeadless()
}

// answer returns the headless default for a prompt, if one is set.
func (d *Dependencies) answer(id string) (string, bool) {
	return d.Headless.GetDefault(id)
}

// NewInitializer builds the project scaffolder over the embedded templates.
// progress receives the title of each long-running step and may be nil.
func (d *Dependencies) NewInitializer(progress func(step string)) (project.Initializer, error) {
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return nil, fmt.Errorf("load embedded templates: %w", err)
	}
	deployer := template.NewDeployerWithRenderer(fsys, template.NewRenderer(fsys))
	return project.NewInitializer(deployer, d.Logger.With("module", "project"),
		project.WithRunner(d.Runner),
		project.WithGitInit(d.GitInit),
		project.WithRepoCheck(d.InRepo),
		project.WithProgress(progress),
		project.WithClock(d.Clock),
	), nil
}

// NewEntities builds the entity generator for root.
func (d *Dependencies) NewEntities(root string) (*generator.Entities, error) {
	r, err := template.NewGeneratorRenderer()
	if err != nil {
		return nil, fmt.Errorf("load generator templates: %w", err)
	}
	return generator.NewEntities(root, r, d.Logger.With("module", "generator")), nil
}

// NewResolvers builds the resolver generator for root.
func (d *Dependencies) NewResolvers(root string) (*generator.Resolvers, error) {
	r, err := template.NewGeneratorRenderer()
	if err != nil {
		return nil, fmt.Errorf("load generator templates: %w", err)
	}
	return generator.NewResolvers(root, r, d.Logger.With("module", "generator")), nil
}

// NewMigrations builds the migration generator for root, using the schema
// extension from the loaded configuration.
func (d *Dependencies) NewMigrations(root string) (*migration.Generator, error) {
	r, err := template.NewGeneratorRenderer()
	if err != nil {
		return nil, fmt.Errorf("load generator templates: %w", err)
	}
	ext := config.DefaultSchemaExtension
	if cfg := d.Config.Get(); cfg != nil {
		ext = cfg.Schema.Extension
	}
	return migration.NewGenerator(root, r,
		migration.WithClock(d.Clock),
		migration.WithSchemaExt(ext),
		migration.WithLogger(d.Logger.With("module", "migration")),
	), nil
}
