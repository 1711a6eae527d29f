package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"primerset/internal/version"
)

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version and exit",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"light": "true"},
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "primerset version %s\n", version.Version)
		},
	}
}
