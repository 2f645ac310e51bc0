// Package where resolves the filesystem locations seaplay reads from and writes to.
package where

import (
	"os"
	"path/filepath"

	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "SEAPLAY_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory.
// It honours SEAPLAY_CONFIG_PATH and otherwise follows os.UserConfigDir.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Seaplay))
}

// Cache resolves the cache directory, falling back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Seaplay))
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the watch continuity file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Settings resolves the sqlite database holding per-profile client settings.
func Settings() string {
	return filepath.Join(Config(), "settings.db")
}

// Temp resolves the directory for transient artifacts such as mpv IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Seaplay))
}
