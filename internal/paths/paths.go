// Package paths resolves configuration and data directory locations.
//
// A roadmap lives next to the project it describes: the config directory
// .roadmap and the data directory .roadmap-db sit side by side in the
// project root. Commands run from a subdirectory find that root by walking
// up until a .roadmap directory appears.
package paths

import (
	"os"
	"path/filepath"
)

// Project-relative directory names.
const (
	DefaultConfigDirName = ".roadmap"
	DefaultDataDirName   = ".roadmap-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ROADMAP_CONFIG_DIR"
	EnvDataDir   = "ROADMAP_DATA_DIR"
)

// getwd can be overridden in tests.
var getwd = os.Getwd

// ProjectRoot returns the nearest directory at or above start that contains
// a .roadmap directory. When none does, start itself is returned.
func ProjectRoot(start string) string {
	dir := filepath.Clean(start)
	for {
		if fi, err := os.Stat(filepath.Join(dir, DefaultConfigDirName)); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Clean(start)
		}
		dir = parent
	}
}

func projectRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return ProjectRoot(cwd), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > ROADMAP_CONFIG_DIR env > <project root>/.roadmap.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	root, err := projectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configValue > ROADMAP_DATA_DIR env > <project root>/.roadmap-db.
//
// A relative configValue is taken relative to the config directory's parent,
// so a committed config.yaml keeps working from any subdirectory.
func ResolveDataDir(flag, configValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		if filepath.IsAbs(configValue) || configDir == "" {
			return filepath.Abs(configValue)
		}
		return filepath.Join(filepath.Dir(configDir), configValue), nil
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	root, err := projectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DefaultDataDirName), nil
}
