package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "dirmod"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	extensionFlagName    = "ext"
	markerFlagName       = "marker"
	baseEnvFlagName      = "base-env"
	findManifestFlagName = "find-manifest"
	parallelFlagName     = "parallel"
	visibilityFlagName   = "vis"
	formatFlagName       = "format"
	headerFlagName       = "header"
	writeFlagName        = "write"
	againstFlagName      = "against"
	logFileFlagName      = "log-file"
	verboseFlagName      = "verbose"

	extensionKey    = "layout.extension"
	markerKey       = "layout.module_marker"
	crateRootsKey   = "layout.crate_roots"
	baseEnvKey      = "base.env"
	dotenvKey       = "base.dotenv"
	findManifestKey = "base.find_manifest"
	parallelKey     = "run.parallel"
	visibilityKey   = "emit.visibility"
	formatKey       = "emit.format"
	headerKey       = "emit.header"

	defaultBaseEnv      = "CARGO_MANIFEST_DIR"
	defaultDotenv       = ".env"
	defaultFindManifest = false
	defaultParallel     = 1
	defaultVisibility   = ""
	defaultFormat       = string(m.FormatRust)
	defaultHeader       = true

	envPrefix = "DIRMOD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".dirmod.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	layout := m.DefaultLayout()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(extensionKey, layout.Extension)
	viper.SetDefault(markerKey, layout.ModuleMarker)
	viper.SetDefault(crateRootsKey, layout.CrateRoots)
	viper.SetDefault(baseEnvKey, defaultBaseEnv)
	viper.SetDefault(dotenvKey, defaultDotenv)
	viper.SetDefault(findManifestKey, defaultFindManifest)
	viper.SetDefault(parallelKey, defaultParallel)
	viper.SetDefault(visibilityKey, defaultVisibility)
	viper.SetDefault(formatKey, defaultFormat)
	viper.SetDefault(headerKey, defaultHeader)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := readConfigFile(viper.GetViper()); err != nil {
		slog.Warn("ignoring unreadable config file", "path", viper.ConfigFileUsed(), "error", err)
	}
}

// readConfigFile loads the config file into v. A missing file is not an error.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// layoutFromConfig builds the naming layout from config, env and flags.
func layoutFromConfig() m.Layout {
	return m.Layout{
		Extension:    strings.TrimPrefix(viper.GetString(extensionKey), "."),
		ModuleMarker: viper.GetString(markerKey),
		CrateRoots:   viper.GetStringSlice(crateRootsKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
