// Shared helpers for roadmap CLI commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/roadmap/internal/sqlite"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// attachBackend attaches the SQLite backend for managed catalog commands.
// The caller must defer backend.Detach().
func (a *app) attachBackend() (*sqlite.Backend, error) {
	if a.config.Catalog != "" {
		return nil, userError(fmt.Errorf("checkpoints come from %s; edit that file instead", a.config.Catalog))
	}
	backend := sqlite.NewBackend(a.log)
	if err := backend.Attach(a.config); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}

// resolveID matches arg against the known ids. An exact match wins;
// otherwise arg must be the prefix of exactly one id, so the shortened ids
// shown by status can be typed back.
func resolveID(cps []types.Checkpoint, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", types.ErrInvalidID
	}
	var matches []string
	for _, cp := range cps {
		if cp.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(cp.ID, arg) {
			matches = append(matches, cp.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("checkpoint %q: %w", arg, types.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("checkpoint %q matches %d checkpoints: %w", arg, len(matches), types.ErrInvalidID)
	}
}

// title returns the checkpoint's title, or its id when untitled.
func title(cp types.Checkpoint) string {
	if cp.Title != "" {
		return cp.Title
	}
	return cp.ID
}

// find returns the checkpoint with the given id.
func find(cps []types.Checkpoint, id string) (types.Checkpoint, bool) {
	for _, cp := range cps {
		if cp.ID == id {
			return cp, true
		}
	}
	return types.Checkpoint{}, false
}
