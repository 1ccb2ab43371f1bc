package adapter

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvAdapter looks up environment-style variables.
type EnvAdapter interface {
	LookupEnv(key string) (string, bool)
}

// LocalEnvAdapter reads the process environment first and falls back to
// dotenv files, in order. Missing dotenv files are ignored.
type LocalEnvAdapter struct {
	dotenvFiles []string
}

// NewLocalEnvAdapter constructs a LocalEnvAdapter consulting the given dotenv files.
func NewLocalEnvAdapter(dotenvFiles ...string) *LocalEnvAdapter {
	files := make([]string, 0, len(dotenvFiles))
	for _, f := range dotenvFiles {
		if f != "" {
			files = append(files, f)
		}
	}

	return &LocalEnvAdapter{dotenvFiles: files}
}

// LookupEnv returns the value of key and whether it was set anywhere.
func (a *LocalEnvAdapter) LookupEnv(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}

	for _, file := range a.dotenvFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to read dotenv file", "path", file, "error", err)
			}

			continue
		}

		if value, ok := values[key]; ok {
			slog.Debug("resolved variable from dotenv file", "key", key, "path", file)
			return value, true
		}
	}

	return "", false
}
