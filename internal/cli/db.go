package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nebulis-dev/nebulis/internal/migration"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect project migrations",
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated migrations",
	Args:  cobra.NoArgs,
	RunE:  runDBList,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Check the migrations directory; the backend applies migrations on start",
	Args:  cobra.NoArgs,
	RunE:  runDBMigrate,
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Check the migrations directory for a rollback",
	Args:  cobra.NoArgs,
	RunE:  runDBRollback,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbListCmd, dbMigrateCmd, dbRollbackCmd)

	dbRollbackCmd.Flags().IntP("steps", "s", 1, "Number of migrations to roll back")
}

func runDBList(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	names, err := migration.List(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStep(out, "Available migrations:")
	for _, n := range names {
		_, _ = fmt.Fprintf(out, "  - %s\n", n)
	}
	return nil
}

func runDBMigrate(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStep(out, "Running migrations...")
	if err := migration.Migrate(root); err != nil {
		return err
	}
	printSuccess(out, "Migrations completed")
	return nil
}

func runDBRollback(cmd *cobra.Command, _ []string) error {
	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		return err
	}
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStep(out, fmt.Sprintf("Rolling back %d migration(s)...", steps))
	if err := migration.Rollback(root, steps); err != nil {
		return err
	}
	printSuccess(out, "Rollback completed")
	return nil
}
