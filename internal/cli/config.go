// Config loading for the roadmap CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyCatalog     = "catalog"
	cfgKeyStore       = "store"
	cfgKeyStorageKey  = "storage_key"
	cfgKeyRoot        = "root"
	cfgKeyFogBaseline = "fog.baseline"
	cfgKeyFogMax      = "fog.max"
	cfgKeyCanvasWidth = "canvas_width"
	cfgKeyAutoScroll  = "auto_scroll"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Roadmap configuration

# Backend for the managed catalog and the sqlite progress store
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Catalog file (YAML or JSON). Leave empty to manage checkpoints with
# "roadmap checkpoint add".
# catalog: roadmap.yaml

# Where progress is kept: file or sqlite
store: file
storage_key: roadmap-progress

# Checkpoint that unlocks the side branches. Defaults to the first main
# checkpoint with order 0.
# root:

fog:
  baseline: 10
  max: 95

# Canvas width used to turn pixel positions into percentages. 0 uses the
# laid out width.
canvas_width: 0

auto_scroll: true
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		Backend:     v.GetString(cfgKeyBackend),
		DataDir:     v.GetString(cfgKeyDataDir),
		Catalog:     v.GetString(cfgKeyCatalog),
		Store:       v.GetString(cfgKeyStore),
		StorageKey:  v.GetString(cfgKeyStorageKey),
		Root:        v.GetString(cfgKeyRoot),
		CanvasWidth: v.GetFloat64(cfgKeyCanvasWidth),
		AutoScroll:  v.GetBool(cfgKeyAutoScroll),
		Fog: types.FogConfig{
			Baseline: v.GetFloat64(cfgKeyFogBaseline),
			Max:      v.GetFloat64(cfgKeyFogMax),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault(cfgKeyBackend, d.Backend)
	v.SetDefault(cfgKeyStore, d.Store)
	v.SetDefault(cfgKeyStorageKey, d.StorageKey)
	v.SetDefault(cfgKeyFogBaseline, d.Fog.Baseline)
	v.SetDefault(cfgKeyFogMax, d.Fog.Max)
	v.SetDefault(cfgKeyCanvasWidth, d.CanvasWidth)
	v.SetDefault(cfgKeyAutoScroll, d.AutoScroll)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
