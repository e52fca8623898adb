package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/oaserrors"
)

func newManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(append([]Option{WithOutputRoot(t.TempDir())}, opts...)...)
	require.NoError(t, err)
	return m
}

func TestResolvePathModes(t *testing.T) {
	m := newManager(t,
		WithLayout("single", Layout{SubPath: "client", Mode: PathModeSingle, FileName: "client.ts"}),
		WithLayout("grouped", Layout{SubPath: "hooks", Mode: PathModeGrouped}),
		WithLayout("items", Layout{SubPath: "models", Mode: PathModePerItem}),
	)

	tests := []struct {
		name string
		unit ir.Unit
		want string
	}{
		{"single ignores target", ir.Unit{Plugin: "single", Target: "listPets"}, "client/client.ts"},
		{"grouped by tag", ir.Unit{Plugin: "grouped", Target: "listPets", Group: "pets"}, "hooks/pets/list-pets.ts"},
		{"grouped without key", ir.Unit{Plugin: "grouped", Target: "health"}, "hooks/health.ts"},
		{"per item kebab", ir.Unit{Plugin: "items", Target: "UserProfile"}, "models/user-profile.ts"},
		{"file name override", ir.Unit{Plugin: "items", Target: "x", FileName: "special.ts"}, "models/special.ts"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.ResolvePath(tc.unit)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// Resolution is pure: resolving again yields the identical path.
			again, err := m.ResolvePath(tc.unit)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestAccumulationOrderAndDedup(t *testing.T) {
	m := newManager(t, WithLayout("types", Layout{Mode: PathModeSingle, FileName: "models.ts"}))

	require.NoError(t, m.Add(
		ir.Unit{Plugin: "types", Target: "Pet", Content: "type Pet = {};"},
		ir.Unit{Plugin: "types", Target: "Order", Content: "type Order = {};"},
		// Same shape arriving again (request + response reuse) is dropped.
		ir.Unit{Plugin: "types", Target: "Pet", Content: "type Pet = {};"},
	))

	files := m.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "models.ts", files[0].Path)
	assert.Equal(t, "type Pet = {};\ntype Order = {};", files[0].Content)
}

func TestExportConflictIsFatal(t *testing.T) {
	m := newManager(t, WithLayout("types", Layout{Mode: PathModePerItem}))

	err := m.Add(
		ir.Unit{Plugin: "types", Target: "pet", Content: "type Pet = { id: number };", Exports: []string{"Pet"}},
		ir.Unit{Plugin: "types", Target: "pet", Content: "type Pet = { id: string };", Exports: []string{"Pet"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConflict)

	var conflict *oaserrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "pet.ts", conflict.Path)
	assert.Equal(t, "Pet", conflict.Export)
}

func TestIndexFileReExportsInInsertionOrder(t *testing.T) {
	m := newManager(t, WithLayout("types", Layout{
		SubPath:   "models",
		Mode:      PathModePerItem,
		IndexFile: "index.ts",
	}))

	require.NoError(t, m.Add(
		ir.Unit{Plugin: "types", Target: "Pet", Content: "export type Pet = {};", Exports: []string{"Pet"}},
		ir.Unit{Plugin: "types", Target: "Order", Content: "export type Order = {};", Exports: []string{"Order", "OrderStatus"}},
		ir.Unit{Plugin: "types", Target: "internal", Content: "export type Hidden = {};", Exports: []string{"Hidden"}, NoExport: true},
	))
	require.NoError(t, m.Finalize())

	files := m.Files()
	require.Len(t, files, 4)
	index := files[3]
	assert.Equal(t, "models/index.ts", index.Path)
	assert.Equal(t, "export { Pet } from \"./pet\";\nexport { Order, OrderStatus } from \"./order\";\n", index.Content)
}

func TestIndexSkippedWithoutConfiguration(t *testing.T) {
	m := newManager(t, WithLayout("types", Layout{SubPath: "models", Mode: PathModePerItem}))

	require.NoError(t, m.Add(ir.Unit{Plugin: "types", Target: "Pet", Exports: []string{"Pet"}, Content: "x"}))
	require.NoError(t, m.Finalize())
	assert.Len(t, m.Files(), 1)
}

func TestManifest(t *testing.T) {
	m := newManager(t, WithLayout("types", Layout{SubPath: "models", Mode: PathModePerItem}))

	require.NoError(t, m.Add(ir.Unit{
		Plugin:  "types",
		Target:  "Pet",
		Content: "export type Pet = {};",
		Exports: []string{"Pet"},
	}))

	manifest := m.Manifest()
	require.Len(t, manifest, 1)
	assert.Equal(t, "models/pet.ts", manifest[0].Path)
	assert.Equal(t, len("export type Pet = {};"), manifest[0].Size)
	assert.Equal(t, []string{"Pet"}, manifest[0].Exports)
}

func TestFlushWritesTree(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(
		WithOutputRoot(root),
		WithLayout("types", Layout{SubPath: "models", Mode: PathModePerItem}),
	)
	require.NoError(t, err)

	require.NoError(t, m.Add(ir.Unit{Plugin: "types", Target: "Pet", Content: "export type Pet = {};"}))
	_, err = m.Flush()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "models", "pet.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export type Pet = {};", string(data))
}

func TestFlushCleanRemovesPreviousOutput(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, "stale.ts")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	m, err := NewManager(
		WithOutputRoot(root),
		WithClean(true),
		WithLayout("types", Layout{Mode: PathModePerItem}),
	)
	require.NoError(t, err)
	require.NoError(t, m.Add(ir.Unit{Plugin: "types", Target: "Pet", Content: "new"}))

	_, err = m.Flush()
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale output must be removed")
	data, err := os.ReadFile(filepath.Join(root, "pet.ts"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFailingHookIsReportedNotFatal(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(
		WithOutputRoot(root),
		WithLayout("types", Layout{Mode: PathModePerItem}),
		WithHooks(
			Hook{Name: "broken", Command: "definitely-not-a-real-command-4821"},
			Hook{Name: "ok", Command: "true"},
		),
	)
	require.NoError(t, err)
	require.NoError(t, m.Add(ir.Unit{Plugin: "types", Target: "Pet", Content: "x"}))

	results, err := m.Flush()
	require.NoError(t, err, "hook failures never fail the flush")
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)

	// Files stay on disk despite the failing hook.
	_, statErr := os.Stat(filepath.Join(root, "pet.ts"))
	assert.NoError(t, statErr)
}

func TestPathTraversalGuard(t *testing.T) {
	m := newManager(t, WithLayout("types", Layout{Mode: PathModePerItem}))
	require.NoError(t, m.Add(ir.Unit{Plugin: "types", FileName: "../escape.ts", Content: "x"}))

	_, err := m.Flush()
	require.Error(t, err)
}
