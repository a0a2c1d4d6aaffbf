// Package where resolves the application's filesystem locations.
package where

import (
	"os"
	"path/filepath"

	"github.com/kitsufix/kitsufix/constant"
	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "KITSUFIX_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the configuration directory, honoring KITSUFIX_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache is the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs is the directory holding one log file per day.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Report is the file holding the outcome of the last fetch run.
func Report() string {
	return filepath.Join(Cache(), "report.json")
}

// Fixtures resolves the directory a resource's fixture files are written to.
func Fixtures(root, dir string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, dir)
}
