package engine

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// load reads the progress set from the store. Missing, empty, and
// unparseable values all leave the set empty. Entries that are not strings
// and repeated ids are dropped.
func (e *Engine) load() {
	if e.store == nil {
		return
	}
	raw, ok := e.store.Get(e.opts.storageKey)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		e.log.Warn("discarding unreadable roadmap progress",
			zap.String("key", e.opts.storageKey), zap.Error(err))
		return
	}
	for _, item := range items {
		id, ok := item.(string)
		if !ok || id == "" || e.done[id] {
			continue
		}
		e.done[id] = true
		e.progress = append(e.progress, id)
	}
}

// save writes the whole progress set back to the store. A failed write is
// logged; the in-memory progress stays authoritative for this engine.
func (e *Engine) save() {
	if e.store == nil {
		return
	}
	data, err := json.Marshal(e.progress)
	if err != nil {
		e.log.Warn("encoding roadmap progress", zap.Error(err))
		return
	}
	if err := e.store.Set(e.opts.storageKey, string(data)); err != nil {
		e.log.Warn("persisting roadmap progress",
			zap.String("key", e.opts.storageKey), zap.Error(err))
	}
}
