package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nebulis-dev/nebulis/internal/config"
	"github.com/nebulis-dev/nebulis/internal/core/project"
	"github.com/nebulis-dev/nebulis/pkg/version"
)

// skipConfigAnnotation marks commands that run before or outside a project
// and must not fail on a broken nebulis.yaml.
const skipConfigAnnotation = "nebulis/skip-config"

var rootCmd = &cobra.Command{
	Use:   "nebulis",
	Short: "Nebulis: full stack scaffolding for Rust, GraphQL and SurrealDB",
	Long: `Nebulis creates full stack projects (Rust GraphQL backend, SurrealDB,
Remix frontend) and generates entities, resolvers and schema migrations
inside them.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureRun,
}

// Execute initializes dependencies and runs the root command. Errors are
// printed to stderr as "Error: <message>" and returned.
func Execute() error {
	InitDependencies()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("nebulis %s\n", version.GetVersion()))

	pf := rootCmd.PersistentFlags()
	pf.Bool("verbose", false, "Write debug logs to stderr")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("project-dir", "", "Project directory (default: current directory)")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// configureRun loads nebulis.yaml from the enclosing project, if any, and
// applies it together with the global flags.
func configureRun(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	cfg := config.NewDefaultConfig()
	if cmd.Annotations[skipConfigAnnotation] == "" {
		root, err := projectRoot(cmd)
		if err != nil {
			return err
		}
		loaded, err := deps.Config.Load(root)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	_, noColorEnv := os.LookupEnv("NO_COLOR")
	deps.Configure(cfg, getBoolFlag(cmd, "verbose"), getBoolFlag(cmd, "no-color") || noColorEnv, cmd.ErrOrStderr())
	return nil
}

// projectRoot resolves the project for generator and db commands: the
// nearest directory holding backend/ at or above --project-dir, or
// --project-dir itself when there is none.
func projectRoot(cmd *cobra.Command) (string, error) {
	return project.FindProjectRootOrCurrent(getStringFlag(cmd, "project-dir"))
}
