// Package cmd provides the root command and CLI setup for dirmod.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dirmod.dev/pkg/dirmod/internal/adapter"
	"dirmod.dev/pkg/dirmod/internal/controller"
	"dirmod.dev/pkg/dirmod/internal/domain"
	m "dirmod.dev/pkg/dirmod/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var envAdapter adapter.EnvAdapter
var manifestReader adapter.ManifestReader
var outputStore adapter.OutputStore
var emitter domain.Emitter
var workflow domain.Workflow
var ui controller.UI

var logFileFlag string
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	envAdapter = adapter.NewLocalEnvAdapter(viper.GetString(dotenvKey))
	manifestReader = adapter.NewManifestReader(fsAdapter)
	outputStore = adapter.NewOutputStore(fsAdapter)
	emitter = domain.NewEmitter()
	workflow = domain.NewWorkflow(
		fsAdapter,
		envAdapter,
		manifestReader,
		outputStore,
		ui,
		emitter,
	)
}

const dirsHelp = `Relative directories are resolved against the directory named by the
base environment variable (default CARGO_MANIFEST_DIR), falling back to the
current working directory when it is unset.`

const rootLongDescription = `dirmod scans a directory and generates one module declaration per source
file found, so a crate's module tree need not be maintained by hand.

A subdirectory holding mod.rs becomes a single module; other subdirectories
are descended into and their files named parent_child. lib.rs, main.rs and
mod.rs are never emitted as child modules.

` + dirsHelp

const generateLongDescription = `Generate module declarations for every source file below the given directories.

` + dirsHelp

const listLongDescription = `List the modules discovered below the given directories.

` + dirsHelp

const checkLongDescription = `Verify that a generated file matches what generate would produce now.

` + dirsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "dirmod",
		Short:        "Generate module declarations from a directory tree",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	layout := m.DefaultLayout()
	flags := cmd.PersistentFlags()

	flags.StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(extensionFlagName, layout.Extension, "extension identifying source files")
	bindFlagToConfig(flags.Lookup(extensionFlagName), extensionKey)

	flags.String(markerFlagName, layout.ModuleMarker, "file that turns a directory into a single module")
	bindFlagToConfig(flags.Lookup(markerFlagName), markerKey)

	flags.String(baseEnvFlagName, defaultBaseEnv, "environment variable naming the base directory (empty disables)")
	bindFlagToConfig(flags.Lookup(baseEnvFlagName), baseEnvKey)

	flags.Bool(findManifestFlagName, defaultFindManifest, "use the nearest directory holding Cargo.toml as base when the variable is unset")
	bindFlagToConfig(flags.Lookup(findManifestFlagName), findManifestKey)

	flags.IntP(parallelFlagName, "p", defaultParallel, "number of directories scanned concurrently")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func scanArgsFromConfig(args []string) domain.ScanArgs {
	return domain.ScanArgs{
		Dirs:   parsePaths(args),
		Layout: layoutFromConfig(),
		Base: domain.BaseArgs{
			EnvVar:       viper.GetString(baseEnvKey),
			FindManifest: viper.GetBool(findManifestKey),
		},
		Threads: viper.GetInt(parallelKey),
	}
}
