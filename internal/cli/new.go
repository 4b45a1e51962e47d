package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebulis-dev/nebulis/internal/cli/wizard"
	"github.com/nebulis-dev/nebulis/internal/core/project"
	"github.com/nebulis-dev/nebulis/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new nebulis project",
	Long: `Create a new full stack project in ./<name>: a Rust GraphQL backend,
SurrealDB schema and docker-compose setup, and a Remix frontend.

Examples:
  nebulis new shop                   Create ./shop
  nebulis new shop --skip-frontend   Backend only
  nebulis new                        Prompt for the name (terminal only)`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().Bool("skip-git", false, "Do not initialize a git repository")
	newCmd.Flags().Bool("skip-frontend", false, "Do not create the frontend app")
}

// ErrNameRequired is returned when a required name was neither passed nor
// prompted for.
var ErrNameRequired = errors.New("name is required when not running in a terminal")

func runNew(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	base := getStringFlag(cmd, "project-dir")
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		base = wd
	}

	opts := project.InitOptions{
		SkipGit:      getBoolFlag(cmd, "skip-git"),
		SkipFrontend: getBoolFlag(cmd, "skip-frontend"),
	}

	if len(args) == 1 {
		opts.ProjectName = args[0]
	} else if name, ok := deps.answer(wizard.IDProjectName); ok && !deps.Interactive() {
		opts.ProjectName = name
	} else {
		if !deps.Interactive() {
			return fmt.Errorf("project %w (or set %s)", ErrNameRequired, EnvProjectName)
		}
		answers, err := wizard.Run(wizard.ProjectQuestions("my-app"))
		if err != nil {
			return err
		}
		opts.ProjectName = answers.ProjectName
		opts.SkipGit = opts.SkipGit || answers.SkipGit
		opts.SkipFrontend = opts.SkipFrontend || answers.SkipFrontend
	}

	if err := project.ValidateProjectName(opts.ProjectName); err != nil {
		return err
	}
	opts.ProjectRoot = filepath.Join(base, opts.ProjectName)

	printHeader(out, "Creating Nebulis Full Stack Project")

	var result *project.InitResult
	err := ui.WithSpinner(deps.Theme, deps.Headless, out, "Scaffolding "+opts.ProjectName+"...", func(s ui.Spinner) error {
		initializer, err := deps.NewInitializer(s.SetTitle)
		if err != nil {
			return err
		}
		result, err = initializer.Init(cmd.Context(), opts)
		return err
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printWarning(out, w)
	}

	details := []string{
		fmt.Sprintf("%d files, %d directories in %s", len(result.CreatedFiles), len(result.CreatedDirs), opts.ProjectRoot),
	}
	if result.GitInitialized {
		details = append(details, "git repository initialized")
	}
	if result.InsideRepository {
		details = append(details, "git init skipped: already inside a repository")
	}
	if result.FrontendCreated {
		details = append(details, "frontend created in "+filepath.Join(opts.ProjectName, "frontend"))
	}
	_, _ = fmt.Fprintln(out, successCard("Nebulis project created successfully", details...))
	_, _ = fmt.Fprint(out, renderMarkdown(out, nextSteps(opts.ProjectName, result.FrontendCreated)))

	return nil
}

// nextSteps returns the markdown shown after a project is created.
func nextSteps(name string, frontend bool) string {
	var b strings.Builder
	b.WriteString("\n## Next steps\n\n")
	fmt.Fprintf(&b, "- `cd %s`\n", name)
	b.WriteString("- `docker compose up -d` to start SurrealDB\n")
	b.WriteString("- `cd backend && cargo run` to start the backend server\n")
	if frontend {
		b.WriteString("- `cd frontend && deno task dev` to start the Remix dev server\n")
	}
	b.WriteString("- `nebulis generate entity Post --fields \"title:String|required\"` to add an entity\n")
	return b.String()
}
