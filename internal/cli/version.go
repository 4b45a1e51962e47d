package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nebulis-dev/nebulis/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "nebulis %s\n", version.GetFullVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
