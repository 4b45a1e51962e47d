package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebulis-dev/nebulis/internal/cli/wizard"
	"github.com/nebulis-dev/nebulis/internal/generator"
	"github.com/nebulis-dev/nebulis/internal/naming"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g"},
	Short:   "Generate entities, migrations and resolvers",
}

var generateEntityCmd = &cobra.Command{
	Use:   "entity [name]",
	Short: "Generate a backend entity",
	Long: `Generate backend/src/entities/<name>.rs and register it in the entity
and GraphQL type aggregators.

Each --fields value is a group of comma-separated units:
  name:Type|rule rule=value   a field, e.g. title:String|required minLength=3
  hasOne->Target              a relation (hasOne, hasMany, belongsTo)

Examples:
  nebulis generate entity Post --fields "title:String|required,body:String"
  nebulis g entity Comment --fields "belongsTo->Post" --fields "body:String"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerateEntity,
}

var generateMigrationCmd = &cobra.Command{
	Use:   "migration <name...>",
	Short: "Generate a schema migration",
	Long: `Generate up and down schema files plus the backend migration wrapper.
The operation is inferred from the name:

  create <table>
  add <field> to <table>
  remove <field> from <table>
  rename <old> to <new> on <table>
  add index on <table> fields <field>...
  add relation <from> to <to>
  <entity>                           creates the pluralized table

Words may be separate arguments or joined with underscores.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerateMigration,
}

var generateResolverCmd = &cobra.Command{
	Use:   "resolver <name>",
	Short: "Generate a GraphQL resolver",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerateResolver,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateEntityCmd, generateMigrationCmd, generateResolverCmd)

	generateEntityCmd.Flags().StringArray("fields", nil, "Field group (repeatable)")
}

func runGenerateEntity(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	groups, err := cmd.Flags().GetStringArray("fields")
	if err != nil {
		return err
	}
	haveFields := cmd.Flags().Changed("fields")

	if name == "" || !haveFields {
		if deps.Interactive() {
			answers, err := wizard.Run(wizard.EntityQuestions(name, haveFields))
			if err != nil {
				return err
			}
			if name == "" {
				name = answers.EntityName
			}
			if !haveFields {
				groups = answers.FieldGroups
			}
		} else if name == "" {
			v, ok := deps.answer(wizard.IDEntityName)
			if !ok {
				return fmt.Errorf("entity %w (or set %s)", ErrNameRequired, EnvEntityName)
			}
			name = v
		}
	}

	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	g, err := deps.NewEntities(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStep(out, "Generating entity: "+naming.Pascal(name))
	result, err := g.Generate(cmd.Context(), name, groups)
	if err != nil {
		return err
	}
	printResult(out, "Entity files generated:", result)
	return nil
}

func runGenerateMigration(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	if err := generator.RequireProject(root); err != nil {
		return err
	}
	g, err := deps.NewMigrations(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStep(out, "Generating migration: "+naming.Snake(name))
	result, err := g.Generate(cmd.Context(), name)
	if err != nil {
		return err
	}
	printResult(out, fmt.Sprintf("Migration files generated (%s, version %s):", result.Operation.Kind(), result.Version),
		&generator.Result{Files: result.Files, Aggregators: result.Aggregators})
	return nil
}

func runGenerateResolver(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	g, err := deps.NewResolvers(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStep(out, "Generating resolver: "+naming.Pascal(args[0]))
	result, err := g.Generate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printResult(out, "Resolver files generated:", result)
	return nil
}

// printResult lists the written files and the aggregators that changed.
func printResult(w io.Writer, title string, r *generator.Result) {
	printSuccess(w, title)
	printPaths(w, r.Files)
	if len(r.Aggregators) > 0 {
		_, _ = fmt.Fprintln(w, theme().Muted.Render("Updated:"))
		printPaths(w, r.Aggregators)
	}
}
