package version

import (
	"fmt"

	"github.com/artofest/artofest/cli/helpers"
	"github.com/artofest/artofest/pkg/version"
	"github.com/spf13/cobra"
)

// NewCommand creates the version command.
func NewCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			asJSON, err := cobraCmd.Flags().GetBool("json")
			if err != nil {
				return fmt.Errorf("failed to get json flag: %w", err)
			}
			info := version.Get()
			if asJSON {
				return helpers.WriteJSON(cobraCmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cobraCmd.OutOrStdout(), info.String())
			return nil
		},
	}
	c.Flags().Bool("json", false, "Print build information as JSON")
	return c
}
