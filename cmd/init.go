package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default dirmod.yaml configuration file",
		Long: `Create a dirmod.yaml in the current working directory populated with the
current layout, base directory and emit settings so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, err := cmd.Flags().GetBool(forceFlagName)
			if err != nil {
				return err
			}

			targetPath := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if force {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().Bool(forceFlagName, false, "overwrite an existing configuration file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
