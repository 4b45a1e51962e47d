package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/nebulis-dev/nebulis/internal/core/git"
	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/template"
	"github.com/nebulis-dev/nebulis/pkg/version"
)

// FrontendCommand is the toolchain invocation that creates the frontend app.
// The target directory is inserted after the package argument.
var FrontendCommand = []string{"deno", "run", "-A", "npm:create-remix@latest"}

// frontendFlags follow the target directory.
var frontendFlags = []string{"--no-install", "--no-git-init"}

// InitOptions configures the project initialization.
type InitOptions struct {
	ProjectRoot  string // Directory the project is created in.
	ProjectName  string // Name of the project. Defaults to the base name of ProjectRoot.
	SkipGit      bool   // If true, do not run git init.
	SkipFrontend bool   // If true, do not run the frontend toolchain.
}

// InitResult summarizes the outcome of project initialization.
type InitResult struct {
	CreatedDirs      []string // Scaffold directories, relative to the root.
	CreatedFiles     []string // Deployed files, relative to the root.
	Warnings         []string // Non-fatal warnings during initialization.
	GitInitialized   bool     // Whether git init succeeded.
	InsideRepository bool     // Whether git init was skipped for an enclosing work tree.
	FrontendCreated  bool     // Whether the frontend toolchain ran.
}

// Initializer handles project scaffolding and setup.
type Initializer interface {
	// Init creates a new nebulis project with the given options.
	Init(ctx context.Context, opts InitOptions) (*InitResult, error)
}

// InitializerOption configures an Initializer.
type InitializerOption func(*projectInitializer)

// WithRunner sets the runner used for the frontend toolchain.
func WithRunner(r CommandRunner) InitializerOption {
	return func(i *projectInitializer) { i.runner = r }
}

// WithGitInit replaces the repository initialization step.
func WithGitInit(fn func(ctx context.Context, dir string) error) InitializerOption {
	return func(i *projectInitializer) { i.gitInit = fn }
}

// WithRepoCheck replaces the check that skips git init when the root is
// already inside a work tree.
func WithRepoCheck(fn func(ctx context.Context, dir string) bool) InitializerOption {
	return func(i *projectInitializer) {
		if fn != nil {
			i.inRepo = fn
		}
	}
}

// WithProgress sets a callback receiving a short title before each
// long-running step.
func WithProgress(fn func(step string)) InitializerOption {
	return func(i *projectInitializer) {
		if fn != nil {
			i.progress = fn
		}
	}
}

// WithClock sets the clock used for the created_at stamp in nebulis.yaml.
func WithClock(now func() time.Time) InitializerOption {
	return func(i *projectInitializer) { i.now = now }
}

type projectInitializer struct {
	deployer template.Deployer
	runner   CommandRunner
	gitInit  func(ctx context.Context, dir string) error
	inRepo   func(ctx context.Context, dir string) bool
	progress func(step string)
	now      func() time.Time
	logger   *slog.Logger
}

// NewInitializer creates an Initializer deploying with deployer.
func NewInitializer(deployer template.Deployer, logger *slog.Logger, opts ...InitializerOption) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	i := &projectInitializer{
		deployer: deployer,
		runner:   ExecRunner{},
		gitInit:  git.Init,
		inRepo:   git.IsRepository,
		progress: func(string) {},
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// scaffoldDirs lists directories created even when no template lands in them.
var scaffoldDirs = []string{
	path.Join(defs.GraphQLDir, "mutations"),
	path.Join(defs.GraphQLDir, "queries"),
	path.Join(defs.GraphQLDir, "types"),
	path.Join(defs.GraphQLDir, "scalars"),
	defs.ResolversDir,
	defs.SchemaDir,
}

// Init creates a new nebulis project with the given options.
func (i *projectInitializer) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if strings.TrimSpace(opts.ProjectRoot) == "" {
		return nil, ErrInvalidRoot
	}
	opts.ProjectRoot = filepath.Clean(opts.ProjectRoot)
	if opts.ProjectName == "" {
		opts.ProjectName = filepath.Base(opts.ProjectRoot)
	}
	if err := ValidateProjectName(opts.ProjectName); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.logger.Info("initializing nebulis project",
		"root", opts.ProjectRoot,
		"name", opts.ProjectName,
	)

	result := &InitResult{}

	// Step 1: Refuse to overwrite an existing backend
	if err := checkNotExists(opts.ProjectRoot); err != nil {
		return nil, err
	}

	// Step 2: Create the directory layout
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := i.createDirs(opts.ProjectRoot, result); err != nil {
		return nil, fmt.Errorf("create project structure: %w", err)
	}

	// Step 3: Deploy the embedded project tree
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i.progress("Deploying project templates...")
	if err := i.deployTemplates(ctx, opts, result); err != nil {
		return nil, err
	}

	// Step 4: Initialize the repository
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case opts.SkipGit:
	case i.inRepo(ctx, opts.ProjectRoot):
		result.InsideRepository = true
		i.logger.Info("skipping git init inside an existing work tree", "root", opts.ProjectRoot)
	default:
		i.progress("Initializing git repository...")
		if err := i.gitInit(ctx, opts.ProjectRoot); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("git init: %s", err))
			i.logger.Warn("git init failed", "error", err)
		} else {
			result.GitInitialized = true
		}
	}

	// Step 5: Create the frontend app
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !opts.SkipFrontend {
		i.progress("Creating frontend app...")
		if err := i.createFrontend(ctx, opts.ProjectRoot); err != nil {
			return nil, err
		}
		result.FrontendCreated = true
	}

	i.logger.Info("project initialized",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// ValidateProjectName rejects names that would escape or collide with the
// parent directory.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidProjectName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidProjectName, name)
	}
	return nil
}

// checkNotExists fails when root already holds a non-empty backend/.
// An empty backend/ is reused.
func checkNotExists(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	entries, err := os.ReadDir(filepath.Join(root, defs.BackendDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", defs.BackendDir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrProjectExists, filepath.Join(root, defs.BackendDir))
	}
	return nil
}

// createDirs creates the scaffold directories.
func (i *projectInitializer) createDirs(root string, result *InitResult) error {
	for _, dir := range scaffoldDirs {
		dirPath := filepath.Join(root, filepath.FromSlash(dir))
		if err := os.MkdirAll(dirPath, defs.DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", dirPath, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, dir)
	}
	return nil
}

// deployTemplates writes the embedded project tree. Files ending in .tmpl
// are rendered with a TemplateContext built from opts.
func (i *projectInitializer) deployTemplates(ctx context.Context, opts InitOptions, result *InitResult) error {
	if i.deployer == nil {
		return fmt.Errorf("deploy templates: no deployer configured")
	}

	tmplCtx := template.NewTemplateContext(
		template.WithProject(opts.ProjectName, opts.ProjectRoot),
		template.WithVersion(version.GetVersion()),
		template.WithCreatedAt(i.now().UTC().Format(time.RFC3339)),
	)

	files, err := i.deployer.Deploy(ctx, opts.ProjectRoot, tmplCtx)
	if err != nil {
		return fmt.Errorf("deploy templates: %w", err)
	}
	result.CreatedFiles = append(result.CreatedFiles, files...)
	i.logger.Debug("templates deployed", "count", len(files))
	return nil
}

// createFrontend runs the frontend toolchain against <root>/frontend.
func (i *projectInitializer) createFrontend(ctx context.Context, root string) error {
	target := filepath.Join(root, defs.FrontendDir)
	args := append(append(append([]string{}, FrontendCommand[1:]...), target), frontendFlags...)

	i.logger.Debug("creating frontend", "command", FrontendCommand[0], "args", args)
	if err := i.runner.Run(ctx, root, FrontendCommand[0], args...); err != nil {
		return fmt.Errorf("%w: %w", ErrFrontendFailed, err)
	}
	return nil
}
