package types

import "errors"

// Config holds backend selection and engine parameters.
type Config struct {
	Backend     string    `json:"backend" yaml:"backend"`
	DataDir     string    `json:"data_dir" yaml:"data_dir"`
	Catalog     string    `json:"catalog,omitempty" yaml:"catalog,omitempty"` // Catalog file; empty selects the managed catalog.
	Store       string    `json:"store" yaml:"store"`
	StorageKey  string    `json:"storage_key" yaml:"storage_key"`
	Root        string    `json:"root,omitempty" yaml:"root,omitempty"`
	CanvasWidth float64   `json:"canvas_width,omitempty" yaml:"canvas_width,omitempty"`
	AutoScroll  bool      `json:"auto_scroll" yaml:"auto_scroll"`
	Fog         FogConfig `json:"fog" yaml:"fog"`
}

// FogConfig parameterizes the fog reveal signal.
type FogConfig struct {
	Baseline float64 `json:"baseline" yaml:"baseline"`
	Max      float64 `json:"max" yaml:"max"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Supported progress store names.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Defaults applied by DefaultConfig.
const (
	DefaultStorageKey  = "roadmap-progress"
	DefaultFogBaseline = 10
	DefaultFogMax      = 95
	DefaultCanvasWidth = 0 // Zero lets the layout decide.
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrStoreUnknown    = errors.New("unknown progress store")
	ErrStorageKeyEmpty = errors.New("storage key must not be empty")
	ErrFogRangeInvalid = errors.New("fog baseline must be within 0 and max, max within 0 and 100")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// knownStores lists the progress stores that Validate accepts.
var knownStores = map[string]bool{
	StoreFile:   true,
	StoreSQLite: true,
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendSQLite,
		Store:       StoreFile,
		StorageKey:  DefaultStorageKey,
		CanvasWidth: DefaultCanvasWidth,
		AutoScroll:  true,
		Fog: FogConfig{
			Baseline: DefaultFogBaseline,
			Max:      DefaultFogMax,
		},
	}
}

// Validate checks that the Config is well-formed and returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Store != "" && !knownStores[c.Store] {
		return ErrStoreUnknown
	}
	if c.StorageKey == "" {
		return ErrStorageKeyEmpty
	}
	if c.Fog.Max < 0 || c.Fog.Max > 100 || c.Fog.Baseline < 0 || c.Fog.Baseline > c.Fog.Max {
		return ErrFogRangeInvalid
	}
	return nil
}
