// Package cli implements the roadmap command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/roadmap/internal/catalog"
	"github.com/mesh-intelligence/roadmap/internal/paths"
	"github.com/mesh-intelligence/roadmap/internal/store"
	"github.com/mesh-intelligence/roadmap/pkg/roadmap"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state one invocation shares across its commands.
type app struct {
	flags     rootFlags
	log       *zap.Logger
	configDir string
	config    types.Config
}

// NewRootCmd creates the top-level "roadmap" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:     "roadmap",
		Short:   "Track progress through a branching roadmap of checkpoints",
		Long:    "Roadmap tracks which checkpoints you have completed, unlocks the ones\nthat follow, and renders the board with its glow and fog.",
		Version: roadmap.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(PROJECT)/.roadmap)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(PROJECT)/.roadmap-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newStatusCmd())
	root.AddCommand(a.newCompleteCmd())
	root.AddCommand(a.newNextCmd())
	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newWatchCmd())
	root.AddCommand(a.newCheckpointCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "roadmap:", err)
		os.Exit(exitCode(err))
	}
}

// setup builds the logger and, for commands that need it, resolves the
// directories and loads config.yaml.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	log, err := newLogger(a.flags.verbose)
	if err != nil {
		return sysError(fmt.Errorf("initialize logger: %w", err))
	}
	a.log = log

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir, configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg.DataDir = dataDir
	if cfg.Catalog != "" && !filepath.IsAbs(cfg.Catalog) {
		cfg.Catalog = filepath.Join(filepath.Dir(configDir), cfg.Catalog)
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config.yaml: %w", err))
	}

	a.configDir = configDir
	a.config = cfg
	a.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", cfg.DataDir),
		zap.String("catalog", cfg.Catalog),
		zap.String("store", cfg.Store))
	return nil
}

// newLogger builds a production logger that stays quiet below warn unless
// verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// open starts the roadmap described by the loaded config.
func (a *app) open() (*roadmap.Roadmap, error) {
	rm, err := roadmap.Open(a.config, a.log)
	if err != nil {
		return nil, classify(err)
	}
	return rm, nil
}

// exitErr carries the process exit code for an error.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func userError(err error) error { return &exitErr{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitErr{code: exitSysError, err: err} }

// userErrors are sentinels caused by what the user asked for rather than by
// the system.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidName,
	types.ErrInvalidURL,
	types.ErrInvalidDirection,
	types.ErrDuplicateID,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrStoreUnknown,
	types.ErrStorageKeyEmpty,
	types.ErrFogRangeInvalid,
	catalog.ErrNoCheckpoints,
	store.ErrInvalidKey,
}

// classify wraps err with an exit code unless it already carries one.
func classify(err error) error {
	var ee *exitErr
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps an error returned by a command onto a process exit code.
// Errors raised by cobra itself, such as an unknown flag, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
