package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the garage release version. mage build overrides it with
// -ldflags -X from the nearest git tag.
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/garage"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the garage version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "garage v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
