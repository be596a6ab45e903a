package engine

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	storageKey  string
	root        string
	surface     types.Surface
	logger      *zap.Logger
	autoScroll  bool
	canvasWidth float64
	fogBaseline float64
	fogMax      float64
}

func defaultOptions() options {
	return options{
		storageKey:  types.DefaultStorageKey,
		logger:      zap.NewNop(),
		autoScroll:  true,
		fogBaseline: types.DefaultFogBaseline,
		fogMax:      types.DefaultFogMax,
	}
}

// WithStorageKey sets the store key holding the progress set.
func WithStorageKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.storageKey = key
		}
	}
}

// WithRoot names the root checkpoint explicitly instead of inferring the
// first main-branch checkpoint with order 0.
func WithRoot(id string) Option {
	return func(o *options) { o.root = id }
}

// WithSurface sets the render surface that receives lock state and signals.
func WithSurface(s types.Surface) Option {
	return func(o *options) { o.surface = s }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAutoScroll toggles scrolling to the next checkpoint after a completion.
func WithAutoScroll(enabled bool) Option {
	return func(o *options) { o.autoScroll = enabled }
}

// WithCanvasWidth sets the width used to turn pixel positions into
// percentages. When unset the widest pixel position in the catalog is used.
func WithCanvasWidth(w float64) Option {
	return func(o *options) { o.canvasWidth = w }
}

// WithFog sets the fog reveal baseline and ceiling, both percentages.
func WithFog(baseline, max float64) Option {
	return func(o *options) {
		o.fogBaseline = baseline
		o.fogMax = max
	}
}

// FromConfig translates a validated Config into engine options.
func FromConfig(cfg types.Config) []Option {
	return []Option{
		WithStorageKey(cfg.StorageKey),
		WithRoot(cfg.Root),
		WithAutoScroll(cfg.AutoScroll),
		WithCanvasWidth(cfg.CanvasWidth),
		WithFog(cfg.Fog.Baseline, cfg.Fog.Max),
	}
}
