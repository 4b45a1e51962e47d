package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nebulis-dev/nebulis/internal/cli/wizard"
	"github.com/nebulis-dev/nebulis/internal/config"
	"github.com/nebulis-dev/nebulis/internal/core/project"
	"github.com/nebulis-dev/nebulis/internal/generator"
	"github.com/nebulis-dev/nebulis/internal/migration"
	"github.com/nebulis-dev/nebulis/internal/ui"
	"github.com/nebulis-dev/nebulis/pkg/version"
)

// --- Test doubles ---

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{dir, name}, args...))
	return f.err
}

type testEnv struct {
	deps     *Dependencies
	runner   *fakeRunner
	gitCalls int
	inRepo   bool
}

// setupDeps installs headless test dependencies for the duration of t.
func setupDeps(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("NEBULIS_LOG_LEVEL", "")
	t.Setenv("NEBULIS_NO_COLOR", "")
	t.Setenv("NO_COLOR", "1")

	env := &testEnv{runner: &fakeRunner{}}
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	env.deps = &Dependencies{
		Config:   config.NewConfigManager(),
		Theme:    ui.NewTheme(true),
		Headless: hm,
		Runner:   env.runner,
		GitInit: func(context.Context, string) error {
			env.gitCalls++
			return nil
		},
		InRepo: func(context.Context, string) bool { return env.inRepo },
		Clock:  func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	old := GetDeps()
	SetDeps(env.deps)
	t.Cleanup(func() { SetDeps(old) })
	return env
}

// resetFlags restores every flag in the tree to its default so that
// consecutive executions of the global command tree do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newProject scaffolds a backend-only project and returns its root.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := executeCmd(t, "new", "shop", "--skip-frontend", "--skip-git", "--project-dir", dir); err != nil {
		t.Fatalf("new: %v", err)
	}
	return filepath.Join(dir, "shop")
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func assertFile(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Errorf("expected %s: %v", rel, err)
	}
}

// --- new ---

func TestNew_CreatesProject(t *testing.T) {
	env := setupDeps(t)
	dir := t.TempDir()

	out, err := executeCmd(t, "new", "shop", "--skip-frontend", "--project-dir", dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	assertContains(t, out,
		"Creating Nebulis Full Stack Project",
		"Nebulis project created successfully",
		"git repository initialized",
		"cd shop",
		"cargo run",
	)
	if strings.Contains(out, "deno task dev") {
		t.Error("next steps mention the frontend although it was skipped")
	}

	root := filepath.Join(dir, "shop")
	for _, rel := range []string{"nebulis.yaml", "backend/src/main.rs", "backend/src/migrations/mod.rs", "database/schema"} {
		assertFile(t, root, rel)
	}
	if env.gitCalls != 1 {
		t.Errorf("git init calls = %d, want 1", env.gitCalls)
	}
	if len(env.runner.calls) != 0 {
		t.Errorf("runner calls = %v, want none", env.runner.calls)
	}
}

func TestNew_RunsFrontendToolchain(t *testing.T) {
	env := setupDeps(t)
	dir := t.TempDir()

	out, err := executeCmd(t, "new", "shop", "--skip-git", "--project-dir", dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(env.runner.calls) != 1 || env.runner.calls[0][1] != "deno" {
		t.Fatalf("runner calls = %v, want one deno call", env.runner.calls)
	}
	if env.gitCalls != 0 {
		t.Errorf("git init calls = %d with --skip-git", env.gitCalls)
	}
	assertContains(t, out, "deno task dev")
}

func TestNew_ShowsStepTitles(t *testing.T) {
	setupDeps(t)

	out, err := executeCmd(t, "new", "shop", "--project-dir", t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	assertContains(t, out,
		"Scaffolding shop...",
		"Deploying project templates...",
		"Initializing git repository...",
		"Creating frontend app...",
	)
}

func TestNew_InsideExistingRepository(t *testing.T) {
	env := setupDeps(t)
	env.inRepo = true

	out, err := executeCmd(t, "new", "shop", "--skip-frontend", "--project-dir", t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if env.gitCalls != 0 {
		t.Errorf("git init calls = %d inside a repository", env.gitCalls)
	}
	assertContains(t, out, "git init skipped: already inside a repository")
	if strings.Contains(out, "Initializing git repository...") {
		t.Error("git step announced although it was skipped")
	}
}

func TestNew_FrontendFailure(t *testing.T) {
	env := setupDeps(t)
	env.runner.err = errors.New("deno: not found")

	_, err := executeCmd(t, "new", "shop", "--skip-git", "--project-dir", t.TempDir())
	if !errors.Is(err, project.ErrFrontendFailed) {
		t.Fatalf("new error = %v, want ErrFrontendFailed", err)
	}
}

func TestNew_NameRequiredWithoutTerminal(t *testing.T) {
	setupDeps(t)

	_, err := executeCmd(t, "new", "--project-dir", t.TempDir())
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("new error = %v, want ErrNameRequired", err)
	}
}

func TestNew_HeadlessDefaultName(t *testing.T) {
	env := setupDeps(t)
	env.deps.Headless.SetDefaults(map[string]string{wizard.IDProjectName: "blog"})
	dir := t.TempDir()

	if _, err := executeCmd(t, "new", "--skip-frontend", "--skip-git", "--project-dir", dir); err != nil {
		t.Fatalf("new: %v", err)
	}
	assertFile(t, filepath.Join(dir, "blog"), "backend/src/main.rs")
}

func TestNew_InvalidName(t *testing.T) {
	setupDeps(t)

	_, err := executeCmd(t, "new", "..", "--project-dir", t.TempDir())
	if !errors.Is(err, project.ErrInvalidProjectName) {
		t.Fatalf("new error = %v, want ErrInvalidProjectName", err)
	}
}

func TestNew_ExistingProject(t *testing.T) {
	setupDeps(t)
	dir := t.TempDir()

	args := []string{"new", "shop", "--skip-frontend", "--skip-git", "--project-dir", dir}
	if _, err := executeCmd(t, args...); err != nil {
		t.Fatalf("first new: %v", err)
	}
	if _, err := executeCmd(t, args...); !errors.Is(err, project.ErrProjectExists) {
		t.Fatalf("second new error = %v, want ErrProjectExists", err)
	}
}

// --- generate ---

func TestGenerate_EntityMigrationResolver(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	out, err := executeCmd(t, "generate", "entity", "Post",
		"--fields", "title:String|required",
		"--fields", "views:i64|min=0",
		"--project-dir", root)
	if err != nil {
		t.Fatalf("generate entity: %v", err)
	}
	assertContains(t, out, "Generating entity: Post", "Entity files generated:", "backend/src/entities/post.rs", "Updated:")
	assertFile(t, root, "backend/src/entities/post.rs")

	out, err = executeCmd(t, "g", "migration", "create", "posts", "--project-dir", root)
	if err != nil {
		t.Fatalf("generate migration: %v", err)
	}
	assertContains(t, out,
		"Generating migration: create_posts",
		"create_table",
		"version 20250102030405",
		"backend/src/migrations/create_posts.rs",
		"database/schema/create_posts.up.surql",
	)
	up, err := os.ReadFile(filepath.Join(root, "database", "schema", "create_posts.up.surql"))
	if err != nil {
		t.Fatalf("read up migration: %v", err)
	}
	assertContains(t, string(up), "DEFINE TABLE posts", "title", "views")

	out, err = executeCmd(t, "generate", "resolver", "post", "--project-dir", root)
	if err != nil {
		t.Fatalf("generate resolver: %v", err)
	}
	assertContains(t, out, "Generating resolver: Post", "backend/src/graphql/resolvers/post.rs")
	assertFile(t, root, "backend/src/graphql/resolvers/post.rs")
}

func TestGenerate_FromNestedDirectory(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	nested := filepath.Join(root, "backend", "src")
	if _, err := executeCmd(t, "generate", "resolver", "comment", "--project-dir", nested); err != nil {
		t.Fatalf("generate resolver: %v", err)
	}
	assertFile(t, root, "backend/src/graphql/resolvers/comment.rs")
}

func TestGenerate_OutsideProject(t *testing.T) {
	setupDeps(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"entity", []string{"generate", "entity", "Post", "--fields", "title:String"}},
		{"migration", []string{"generate", "migration", "create_posts"}},
		{"resolver", []string{"generate", "resolver", "post"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, append(tt.args, "--project-dir", dir)...)
			if !errors.Is(err, generator.ErrNotInProject) {
				t.Fatalf("error = %v, want ErrNotInProject", err)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("files written outside a project: %v", entries)
	}
}

func TestGenerateEntity_NameRequiredWithoutTerminal(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	_, err := executeCmd(t, "generate", "entity", "--fields", "title:String", "--project-dir", root)
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("error = %v, want ErrNameRequired", err)
	}
}

func TestGenerateEntity_HeadlessDefaultName(t *testing.T) {
	env := setupDeps(t)
	root := newProject(t)
	env.deps.Headless.SetDefaults(map[string]string{wizard.IDEntityName: "Tag"})

	if _, err := executeCmd(t, "generate", "entity", "--fields", "label:String", "--project-dir", root); err != nil {
		t.Fatalf("generate entity: %v", err)
	}
	assertFile(t, root, "backend/src/entities/tag.rs")
}

func TestGenerateMigration_UsesConfiguredExtension(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	cfgPath := filepath.Join(root, "nebulis.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	data = bytes.Replace(data, []byte("extension: surql"), []byte("extension: sql"), 1)
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := executeCmd(t, "generate", "migration", "add_email_to_users", "--project-dir", root); err != nil {
		t.Fatalf("generate migration: %v", err)
	}
	assertFile(t, root, "database/schema/add_email_to_users.up.sql")
	assertFile(t, root, "database/schema/add_email_to_users.down.sql")
}

func TestGenerate_InvalidConfig(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	if err := os.WriteFile(filepath.Join(root, "nebulis.yaml"), []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := executeCmd(t, "generate", "resolver", "post", "--project-dir", root)
	if !errors.Is(err, config.ErrInvalidLogLevel) {
		t.Fatalf("error = %v, want ErrInvalidLogLevel", err)
	}
}

// --- db ---

func TestDB_Commands(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	for _, name := range []string{"create_posts", "add_email_to_users"} {
		if _, err := executeCmd(t, "generate", "migration", name, "--project-dir", root); err != nil {
			t.Fatalf("generate migration %s: %v", name, err)
		}
	}

	out, err := executeCmd(t, "db", "list", "--project-dir", root)
	if err != nil {
		t.Fatalf("db list: %v", err)
	}
	assertContains(t, out, "Available migrations:", "  - add_email_to_users\n", "  - create_posts\n")
	if strings.Contains(out, "  - mod\n") {
		t.Error("db list includes the aggregator")
	}

	out, err = executeCmd(t, "db", "migrate", "--project-dir", root)
	if err != nil {
		t.Fatalf("db migrate: %v", err)
	}
	assertContains(t, out, "Running migrations...", "Migrations completed")

	out, err = executeCmd(t, "db", "rollback", "--project-dir", root)
	if err != nil {
		t.Fatalf("db rollback: %v", err)
	}
	assertContains(t, out, "Rolling back 1 migration(s)...", "Rollback completed")

	out, err = executeCmd(t, "db", "rollback", "-s", "3", "--project-dir", root)
	if err != nil {
		t.Fatalf("db rollback -s 3: %v", err)
	}
	assertContains(t, out, "Rolling back 3 migration(s)...")
}

func TestDB_RollbackInvalidSteps(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	_, err := executeCmd(t, "db", "rollback", "--steps", "0", "--project-dir", root)
	if !errors.Is(err, migration.ErrInvalidSteps) {
		t.Fatalf("error = %v, want ErrInvalidSteps", err)
	}
}

func TestDB_NoMigrationsDirectory(t *testing.T) {
	setupDeps(t)
	dir := t.TempDir()

	for _, sub := range []string{"list", "migrate", "rollback"} {
		_, err := executeCmd(t, "db", sub, "--project-dir", dir)
		if !errors.Is(err, migration.ErrNoMigrationsDir) {
			t.Errorf("db %s error = %v, want ErrNoMigrationsDir", sub, err)
		}
	}
}

// --- version ---

func TestVersionCommand(t *testing.T) {
	setupDeps(t)

	out, err := executeCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	assertContains(t, out, "nebulis "+version.GetVersion())
}

func TestVersionCommand_IgnoresBrokenConfig(t *testing.T) {
	setupDeps(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "nebulis.yaml"), []byte(":\n\t- broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := executeCmd(t, "version", "--project-dir", dir); err != nil {
		t.Fatalf("version with broken config: %v", err)
	}
}

func TestConfigureRun_NoDependencies(t *testing.T) {
	old := GetDeps()
	SetDeps(nil)
	t.Cleanup(func() { SetDeps(old) })

	if err := configureRun(versionCmd, nil); err == nil {
		t.Fatal("configureRun() succeeded without dependencies")
	}
}

func TestCommandTree(t *testing.T) {
	want := map[string][]string{
		"new":      nil,
		"generate": {"entity", "migration", "resolver"},
		"db":       {"list", "migrate", "rollback"},
		"version":  nil,
	}
	for name, subs := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
			continue
		}
		for _, sub := range subs {
			if c, _, err := cmd.Find([]string{sub}); err != nil || c.Name() != sub {
				t.Errorf("subcommand %s %s not registered", name, sub)
			}
		}
	}

	if g, _, _ := rootCmd.Find([]string{"g"}); g != generateCmd {
		t.Error("alias g does not resolve to generate")
	}
}

// exampleArgs splits a "nebulis ..." help line into arguments, honoring
// double quotes.
func exampleArgs(line string) []string {
	var args []string
	var cur strings.Builder
	quoted := false
	for _, r := range strings.TrimPrefix(line, "nebulis ") {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ' ' && !quoted:
			if cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args
}

func TestGenerateEntity_HelpExamplesRun(t *testing.T) {
	setupDeps(t)
	root := newProject(t)

	var ran int
	for _, line := range strings.Split(generateEntityCmd.Long, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "nebulis ") {
			continue
		}
		args := exampleArgs(line)
		if _, err := executeCmd(t, append(args, "--project-dir", root)...); err != nil {
			t.Errorf("%s: %v", line, err)
		}
		ran++
	}
	if ran != 2 {
		t.Fatalf("ran %d examples, want 2", ran)
	}
	assertFile(t, root, "backend/src/entities/post.rs")
	assertFile(t, root, "backend/src/entities/comment.rs")
}
