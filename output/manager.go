package output

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/fileutil"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/oaserrors"
)

// File is one materialized output file.
type File struct {
	// Path is the file path relative to the output root, slash-separated.
	Path string
	// Content is the full file content.
	Content string
	// Exports are the exported symbols declared in the file, in insertion
	// order.
	Exports []string
}

// Size returns the content length in bytes.
func (f File) Size() int {
	return len(f.Content)
}

// Manager accumulates output units and materializes them as files.
type Manager struct {
	outputRoot string
	clean      bool
	layouts    map[string]Layout
	fallback   Layout
	hooks      []Hook
	logger     document.Logger

	files map[string]*fileState
	paths []string
	dirs  []string
}

type fileState struct {
	blocks    []string
	seen      map[string]bool
	exports   []string
	exportOf  map[string]exportRecord
	indexName string
	isIndex   bool
}

type exportRecord struct {
	content string
	plugin  string
}

// Option configures a Manager.
type Option func(*Manager) error

// WithOutputRoot sets the root directory all output lands under. Required.
func WithOutputRoot(root string) Option {
	return func(m *Manager) error {
		if root == "" {
			return fmt.Errorf("output root cannot be empty")
		}
		m.outputRoot = root
		return nil
	}
}

// WithClean removes the previous output root before flushing. Clean runs
// only after every plugin has completed successfully, never speculatively.
func WithClean(clean bool) Option {
	return func(m *Manager) error {
		m.clean = clean
		return nil
	}
}

// WithLayout sets the layout for one plugin's units.
func WithLayout(plugin string, layout Layout) Option {
	return func(m *Manager) error {
		if plugin == "" {
			return fmt.Errorf("layout plugin name cannot be empty")
		}
		m.layouts[plugin] = layout.normalized()
		return nil
	}
}

// WithHooks appends post-build hooks, run in order after Flush materializes
// every file.
func WithHooks(hooks ...Hook) Option {
	return func(m *Manager) error {
		m.hooks = append(m.hooks, hooks...)
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l document.Logger) Option {
	return func(m *Manager) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		m.logger = l
		return nil
	}
}

// NewManager creates a Manager. Plugins without a registered layout fall
// back to per-item mode directly under the output root.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		layouts:  make(map[string]Layout),
		fallback: Layout{}.normalized(),
		logger:   document.NopLogger{},
		files:    make(map[string]*fileState),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.outputRoot == "" {
		return nil, fmt.Errorf("output root is required")
	}
	return m, nil
}

// layoutFor returns the layout governing a plugin's units.
func (m *Manager) layoutFor(plugin string) Layout {
	if l, ok := m.layouts[plugin]; ok {
		return l
	}
	return m.fallback
}

// ResolvePath resolves a unit's destination relative to the output root
// without adding it. Pure: identical inputs yield the identical path.
func (m *Manager) ResolvePath(unit ir.Unit) (string, error) {
	return m.layoutFor(unit.Plugin).relPath(unit)
}

// Add accumulates units in arrival order. Byte-identical repeated blocks on
// one path are dropped; matching export names with differing content are a
// fatal conflict.
func (m *Manager) Add(units ...ir.Unit) error {
	for _, unit := range units {
		rel, err := m.ResolvePath(unit)
		if err != nil {
			return err
		}
		if err := m.addBlock(rel, unit, m.layoutFor(unit.Plugin)); err != nil {
			return err
		}
	}
	return nil
}

// addBlock appends one unit's content onto a path's accumulation.
func (m *Manager) addBlock(rel string, unit ir.Unit, layout Layout) error {
	fs, ok := m.files[rel]
	if !ok {
		fs = &fileState{
			seen:      make(map[string]bool),
			exportOf:  make(map[string]exportRecord),
			indexName: layout.IndexFile,
		}
		m.files[rel] = fs
		m.paths = append(m.paths, rel)
		if dir := path.Dir(rel); !m.knownDir(dir) {
			m.dirs = append(m.dirs, dir)
		}
	}

	for _, export := range unit.Exports {
		if prior, exists := fs.exportOf[export]; exists {
			if prior.content != unit.Content {
				return &oaserrors.ConflictError{
					Path:    rel,
					Export:  export,
					Plugins: conflictPlugins(prior.plugin, unit.Plugin),
					Message: "same export name with differing content",
				}
			}
			continue
		}
		fs.exportOf[export] = exportRecord{content: unit.Content, plugin: unit.Plugin}
		if !unit.NoExport {
			fs.exports = append(fs.exports, export)
		}
	}

	if fs.seen[unit.Content] {
		m.logger.Debug("dropping duplicate block", "path", rel, "target", unit.Target)
		return nil
	}
	fs.seen[unit.Content] = true
	fs.blocks = append(fs.blocks, unit.Content)
	return nil
}

func (m *Manager) knownDir(dir string) bool {
	for _, d := range m.dirs {
		if d == dir {
			return true
		}
	}
	return false
}

func conflictPlugins(a, b string) []string {
	if a == b {
		return []string{a}
	}
	return []string{a, b}
}

// Finalize emits one index file per directory, re-exporting every exported
// symbol declared in that directory in insertion order. Directories whose
// units configured no index file are skipped, as are units marked
// non-exported.
func (m *Manager) Finalize() error {
	for _, dir := range m.dirs {
		indexName := ""
		var entries []string
		for _, rel := range m.paths {
			fs := m.files[rel]
			if path.Dir(rel) != dir || fs.isIndex {
				continue
			}
			if indexName == "" {
				indexName = fs.indexName
			}
			if len(fs.exports) == 0 {
				continue
			}
			base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
			entries = append(entries, fmt.Sprintf("export { %s } from %q;",
				strings.Join(fs.exports, ", "), "./"+base))
		}
		if indexName == "" || len(entries) == 0 {
			continue
		}

		rel := path.Join(dir, indexName)
		if _, taken := m.files[rel]; taken {
			return &oaserrors.ConflictError{
				Path:    rel,
				Message: "index file collides with an emitted unit",
			}
		}
		m.files[rel] = &fileState{
			blocks:  []string{strings.Join(entries, "\n") + "\n"},
			isIndex: true,
		}
		m.paths = append(m.paths, rel)
	}
	return nil
}

// Files returns the accumulated files in insertion order.
func (m *Manager) Files() []File {
	files := make([]File, 0, len(m.paths))
	for _, rel := range m.paths {
		fs := m.files[rel]
		files = append(files, File{
			Path:    rel,
			Content: strings.Join(fs.blocks, "\n"),
			Exports: fs.exports,
		})
	}
	return files
}

// ManifestEntry is one file record in the build manifest.
type ManifestEntry struct {
	Path    string   `json:"path"`
	Size    int      `json:"size"`
	Exports []string `json:"exports,omitempty"`
}

// Manifest returns the canonical manifest of all accumulated files, in
// insertion order.
func (m *Manager) Manifest() []ManifestEntry {
	files := m.Files()
	entries := make([]ManifestEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, ManifestEntry{
			Path:    f.Path,
			Size:    f.Size(),
			Exports: f.Exports,
		})
	}
	return entries
}

// Flush writes every accumulated file beneath the output root. In clean
// mode the previous output root is removed first; Flush must only be called
// after every plugin has completed successfully. Post-build hooks run after
// all files are on disk; a failing hook is reported in the returned results
// but never unwrites files.
func (m *Manager) Flush() ([]HookResult, error) {
	if m.clean {
		m.logger.Debug("removing previous output root", "root", m.outputRoot)
		if err := os.RemoveAll(m.outputRoot); err != nil {
			return nil, fmt.Errorf("cleaning output root: %w", err)
		}
	}

	for _, f := range m.Files() {
		abs, err := fileutil.SafeJoin(m.outputRoot, filepath.FromSlash(f.Path))
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(abs), fileutil.DirReadableByAll); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(abs, []byte(f.Content), fileutil.ReadableByAll); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}
	m.logger.Info("output materialized", "root", m.outputRoot, "files", len(m.paths))

	return m.runHooks(), nil
}
