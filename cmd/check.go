package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"dirmod.dev/pkg/dirmod/internal/domain"
	m "dirmod.dev/pkg/dirmod/internal/model"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check --against FILE [dirs...]",
		Short: "Fail when a generated file is out of date",
		Long:  checkLongDescription,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindEmitFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			against, err := cmd.Flags().GetString(againstFlagName)
			if err != nil {
				return err
			}

			return workflow.Check(context.Background(), domain.CheckArgs{
				GenerateArgs: generateArgsFromConfig(args),
				Against:      m.Path(against),
			})
		},
	}

	configureEmitFlags(cmd)
	cmd.Flags().String(againstFlagName, "", "generated file to compare with")
	cobra.CheckErr(cmd.MarkFlagRequired(againstFlagName))

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
