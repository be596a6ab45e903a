package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/roadmap/internal/sqlite"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// configFile holds the structure written to config.yaml by init flags.
type configFile struct {
	Backend     string          `yaml:"backend"`
	DataDir     string          `yaml:"data_dir,omitempty"`
	Catalog     string          `yaml:"catalog,omitempty"`
	Store       string          `yaml:"store"`
	StorageKey  string          `yaml:"storage_key"`
	Root        string          `yaml:"root,omitempty"`
	Fog         types.FogConfig `yaml:"fog"`
	CanvasWidth float64         `yaml:"canvas_width"`
	AutoScroll  bool            `yaml:"auto_scroll"`
}

func (a *app) newInitCmd() *cobra.Command {
	var catalogPath, storeName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize roadmap storage",
		Long: "Create the configuration and data directories, then initialize the storage backend.\n" +
			"With --catalog or --store the choice is written to config.yaml.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath != "" || storeName != "" {
				if err := a.rewriteConfig(catalogPath, storeName); err != nil {
					return err
				}
			}

			backend := sqlite.NewBackend(a.log)
			if err := backend.Attach(a.config); err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
			if err := backend.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Roadmap initialized successfully")
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\ndata:   %s\n", a.configDir, a.config.DataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file to track, relative to the project root")
	cmd.Flags().StringVar(&storeName, "store", "", "progress store: file or sqlite")
	return cmd
}

// rewriteConfig records the catalog and store choice in config.yaml,
// keeping the other values already loaded.
func (a *app) rewriteConfig(catalogPath, storeName string) error {
	path := filepath.Join(a.configDir, configFileExt)

	var current configFile
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &current); err != nil {
			return userError(fmt.Errorf("parse %s: %w", path, err))
		}
	}

	out := configFile{
		Backend:     a.config.Backend,
		DataDir:     current.DataDir,
		Catalog:     current.Catalog,
		Store:       a.config.Store,
		StorageKey:  a.config.StorageKey,
		Root:        a.config.Root,
		Fog:         a.config.Fog,
		CanvasWidth: a.config.CanvasWidth,
		AutoScroll:  a.config.AutoScroll,
	}
	if catalogPath != "" {
		out.Catalog = catalogPath
		a.config.Catalog = catalogPath
		if !filepath.IsAbs(catalogPath) {
			a.config.Catalog = filepath.Join(filepath.Dir(a.configDir), catalogPath)
		}
	}
	if storeName != "" {
		out.Store = storeName
		a.config.Store = storeName
	}
	if err := a.config.Validate(); err != nil {
		return userError(err)
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return sysError(fmt.Errorf("marshal config: %w", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	return nil
}
