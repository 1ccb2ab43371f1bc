package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"dirmod.dev/pkg/dirmod/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dirs...]",
		Short: "List the modules found in a directory",
		Long:  listLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				ScanArgs: scanArgsFromConfig(args),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
