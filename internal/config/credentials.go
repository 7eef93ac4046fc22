package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile populates the process environment from the given
// .env style files. Missing files are skipped and variables already
// present in the environment are left untouched.
func LoadEnvFile(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no env file found", "path", path)
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("loaded env file", "path", path)
	}
	return nil
}

// LoadAPIKey returns the value of the environment variable name.
// The boolean is false if the variable is unset or blank, which callers
// must report before attempting any request.
func LoadAPIKey(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	key := strings.TrimSpace(os.Getenv(name))
	if key == "" {
		return "", false
	}
	return key, true
}
