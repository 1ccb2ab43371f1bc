package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirmod.dev/pkg/dirmod/internal/domain"
	m "dirmod.dev/pkg/dirmod/internal/model"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [dirs...]",
		Short: "Generate module declarations for a directory",
		Long:  generateLongDescription,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindEmitFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString(writeFlagName)
			if err != nil {
				return err
			}

			generateArgs := generateArgsFromConfig(args)
			generateArgs.Output = m.Path(output)

			return workflow.Generate(context.Background(), generateArgs)
		},
	}

	configureEmitFlags(cmd)
	cmd.Flags().StringP(writeFlagName, "w", "", "write declarations to this file instead of stdout")

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureEmitFlags(cmd *cobra.Command) {
	cmd.Flags().String(visibilityFlagName, defaultVisibility, "visibility qualifier for every declaration (e.g. pub, pub(crate))")
	cmd.Flags().StringP(formatFlagName, "f", defaultFormat, "output format: rust, json or yaml")
	cmd.Flags().Bool(headerFlagName, defaultHeader, "prefix rust output with a generated-code comment")
}

// bindEmitFlags binds the executing command's emit flags. generate and check
// share config keys, so binding happens at run time rather than construction.
func bindEmitFlags(cmd *cobra.Command) error {
	bindings := []struct {
		flag string
		key  string
	}{
		{visibilityFlagName, visibilityKey},
		{formatFlagName, formatKey},
		{headerFlagName, headerKey},
	}

	for _, b := range bindings {
		if err := viper.BindPFlag(b.key, cmd.Flags().Lookup(b.flag)); err != nil {
			return err
		}
	}

	return nil
}

func generateArgsFromConfig(args []string) domain.GenerateArgs {
	return domain.GenerateArgs{
		ScanArgs:   scanArgsFromConfig(args),
		Format:     m.Format(viper.GetString(formatKey)),
		Visibility: viper.GetString(visibilityKey),
		Header:     viper.GetBool(headerKey),
	}
}
