package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roadmap/internal/engine"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

const catalogYAML = `checkpoints:
  - id: intro
    title: Start here
    url: /intro
  - id: basics
    title: Basics
    url: /basics
    order: 1
  - id: deep
    title: Deep dive
    url: /deep
    branch: research
`

// project is a temporary project root with its own config and data dirs.
type project struct {
	dir string
}

func newProject(t *testing.T) project {
	t.Helper()
	return project{dir: t.TempDir()}
}

func (p project) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return p.runContext(context.Background(), &bytes.Buffer{}, args...)
}

func (p project) runContext(ctx context.Context, out interface {
	Write([]byte) (int, error)
	String() string
}, args ...string) (string, error) {
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{
		"--config-dir", filepath.Join(p.dir, ".roadmap"),
		"--data-dir", filepath.Join(p.dir, ".roadmap-db"),
	}, args...))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func (p project) withCatalog(t *testing.T) project {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(p.dir, "roadmap.yaml"), []byte(catalogYAML), 0o644))
	_, err := p.run(t, "init", "--catalog", "roadmap.yaml")
	require.NoError(t, err)
	return p
}

func TestVersion(t *testing.T) {
	out, err := newProject(t).run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "roadmap v")
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	p := newProject(t)
	out, err := p.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Roadmap initialized successfully")

	assert.FileExists(t, filepath.Join(p.dir, ".roadmap", "config.yaml"))
	assert.FileExists(t, filepath.Join(p.dir, ".roadmap-db", "checkpoints.jsonl"))
	assert.FileExists(t, filepath.Join(p.dir, ".roadmap-db", "kv.jsonl"))

	_, err = p.run(t, "init")
	assert.NoError(t, err, "init is idempotent")
}

func TestInitWritesChoices(t *testing.T) {
	p := newProject(t).withCatalog(t)
	_, err := p.run(t, "init", "--store", "sqlite")
	require.NoError(t, err)

	cfg, err := loadConfig(filepath.Join(p.dir, ".roadmap"))
	require.NoError(t, err)
	assert.Equal(t, "roadmap.yaml", cfg.Catalog)
	assert.Equal(t, types.StoreSQLite, cfg.Store)
	assert.Equal(t, float64(types.DefaultFogMax), cfg.Fog.Max)

	_, err = p.run(t, "init", "--store", "postgres")
	assert.ErrorIs(t, err, types.ErrStoreUnknown)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestStatusWithCatalog(t *testing.T) {
	p := newProject(t).withCatalog(t)

	out, err := p.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Start here")
	assert.Contains(t, out, "Mark as done")
	assert.Contains(t, out, "Locked")
	assert.Contains(t, out, "Glow: 0.0%  Fog: 10.0%")
}

func TestStatusJSON(t *testing.T) {
	p := newProject(t).withCatalog(t)
	_, err := p.run(t, "complete", "intro")
	require.NoError(t, err)

	out, err := p.run(t, "--json", "status")
	require.NoError(t, err)

	var doc statusDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "intro", doc.Root)
	assert.Equal(t, []string{"intro"}, doc.Progress)
	require.Len(t, doc.Checkpoints, 3)

	want := map[string]engine.Status{
		"intro":  engine.StatusCompleted,
		"basics": engine.StatusUnlocked,
		"deep":   engine.StatusUnlocked,
	}
	for _, row := range doc.Checkpoints {
		assert.Equal(t, want[row.ID], row.Status, row.ID)
		assert.Equal(t, engine.ButtonFor(row.Status), row.Button)
	}
	assert.Equal(t, 1, doc.Signals.Completed)
	assert.Equal(t, 3, doc.Signals.Total)
}

func TestStatusEmpty(t *testing.T) {
	out, err := newProject(t).run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No checkpoints")
}

func TestComplete(t *testing.T) {
	p := newProject(t).withCatalog(t)

	out, err := p.run(t, "complete", "intro")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Start here")
	assert.Contains(t, out, "Next: Basics (basics)")
	assert.Contains(t, out, "Progress: 1/3")

	out, err = p.run(t, "complete", "intro")
	require.NoError(t, err)
	assert.Contains(t, out, "already completed")
}

func TestCompleteErrors(t *testing.T) {
	p := newProject(t).withCatalog(t)

	tests := []struct {
		name   string
		id     string
		expErr error
	}{
		{"locked", "basics", errLocked},
		{"side branch before root", "deep", errLocked},
		{"unknown", "nope", types.ErrNotFound},
		{"blank", " ", types.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.run(t, "complete", tt.id)
			assert.ErrorIs(t, err, tt.expErr)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestCompleteJSON(t *testing.T) {
	p := newProject(t).withCatalog(t)

	out, err := p.run(t, "--json", "complete", "intro")
	require.NoError(t, err)
	var res completeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "intro", res.ID)
	assert.True(t, res.Changed)
	assert.Equal(t, "basics", res.Next)
}

func TestNext(t *testing.T) {
	p := newProject(t).withCatalog(t)

	out, err := p.run(t, "next")
	require.NoError(t, err)
	assert.Contains(t, out, "intro")
	assert.NotContains(t, out, "basics")

	_, err = p.run(t, "complete", "intro")
	require.NoError(t, err)

	out, err = p.run(t, "--json", "next")
	require.NoError(t, err)
	var cps []types.Checkpoint
	require.NoError(t, json.Unmarshal([]byte(out), &cps))
	var ids []string
	for _, cp := range cps {
		ids = append(ids, cp.ID)
	}
	assert.Equal(t, []string{"basics", "deep"}, ids)

	out, err = p.run(t, "next", "--branch", "research")
	require.NoError(t, err)
	assert.Contains(t, out, "deep")
	assert.NotContains(t, out, "basics")

	out, err = p.run(t, "--json", "next", "--limit", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &cps))
	assert.Len(t, cps, 1)
}

func TestRender(t *testing.T) {
	p := newProject(t).withCatalog(t)
	path := filepath.Join(p.dir, "board.svg")

	out, err := p.run(t, "render", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
	assert.Contains(t, string(data), `data-id="intro"`)

	out, err = p.run(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "--fog-reveal: 10%")
}

func TestManagedCatalog(t *testing.T) {
	p := newProject(t)

	var ids []string
	for _, args := range [][]string{
		{"Intro", "/intro"},
		{"Basics", "/basics"},
		{"Deep dive", "/deep", "--branch", "research"},
	} {
		out, err := p.run(t, append([]string{"--json", "checkpoint", "add"}, args...)...)
		require.NoError(t, err)
		var cp types.Checkpoint
		require.NoError(t, json.Unmarshal([]byte(out), &cp))
		ids = append(ids, cp.ID)
	}

	out, err := p.run(t, "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Deep dive")

	// Managed ids are long; a unique prefix is enough.
	out, err = p.run(t, "complete", ids[0][:len(ids[0])-4])
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Intro")

	_, err = p.run(t, "checkpoint", "move", ids[1], "sideways")
	assert.ErrorIs(t, err, types.ErrInvalidDirection)

	_, err = p.run(t, "checkpoint", "move", ids[1], "up")
	require.NoError(t, err)
	out, err = p.run(t, "--json", "checkpoint", "list")
	require.NoError(t, err)
	var cps []types.Checkpoint
	require.NoError(t, json.Unmarshal([]byte(out), &cps))
	require.Len(t, cps, 3)
	assert.Equal(t, ids[1], cps[0].ID)
	assert.Equal(t, 0, cps[0].Order)

	_, err = p.run(t, "checkpoint", "delete", ids[2])
	require.NoError(t, err)
	out, err = p.run(t, "checkpoint", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Deep dive")

	_, err = p.run(t, "checkpoint", "add", "", "/x")
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestCheckpointImport(t *testing.T) {
	p := newProject(t)
	path := filepath.Join(p.dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o644))

	out, err := p.run(t, "checkpoint", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 checkpoints")

	_, err = p.run(t, "checkpoint", "import", path)
	assert.ErrorIs(t, err, types.ErrDuplicateID)

	_, err = p.run(t, "complete", "intro")
	require.NoError(t, err)
}

func TestCheckpointCommandsNeedManagedCatalog(t *testing.T) {
	p := newProject(t).withCatalog(t)
	_, err := p.run(t, "checkpoint", "add", "X", "/x")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

// syncBuffer is a bytes.Buffer safe for the watch goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	p := newProject(t).withCatalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		_, err := p.runContext(ctx, out, "watch")
		done <- err
	}()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Start here") },
		5*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	_, err := p.run(t, "complete", "intro")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return strings.Contains(out.String(), "Completed") },
		5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("unknown flag")))
	assert.Equal(t, exitUserError, exitCode(classify(types.ErrNotFound)))
	assert.Equal(t, exitSysError, exitCode(classify(errors.New("disk on fire"))))
	assert.Equal(t, exitSysError, exitCode(classify(sysError(types.ErrNotFound))),
		"an explicit code is kept")
}
