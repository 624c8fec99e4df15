package cli

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/ardnew/gpp/pkg"
)

// baseConfig is the base name of the configuration files. The YAML and JSON
// variants add their extension.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// userDir returns the per-user directory for gpp under the directory found
// by base, falling back to fallback under the home directory, and finally to
// the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, pkg.Name)
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for history and profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	return errors.Join(
		os.MkdirAll(configDir(), defaultDirMode),
		os.MkdirAll(cacheDir(), defaultDirMode),
	)
}
