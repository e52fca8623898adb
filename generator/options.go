package generator

import (
	"fmt"
	"io"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/options"
	"github.com/erraggy/oasgen/output"
	"github.com/erraggy/oasgen/pipeline"
	"github.com/erraggy/oasgen/resolver"
)

// config holds the configuration assembled from Generate options.
type config struct {
	filePath   string
	reader     io.Reader
	data       []byte
	hasData    bool
	doc        *document.Document
	sourceName string

	outputRoot string
	clean      bool
	dryRun     bool
	upgrade    bool

	enumAsConst bool
	filters     resolver.Filters

	plugins       []pipeline.Plugin
	pluginFilters map[string]resolver.Filters
	layouts       map[string]output.Layout
	hooks         []output.Hook

	logger document.Logger
}

// Option configures a call to Generate.
type Option func(*config) error

// WithFilePath loads the source document from a file on disk.
func WithFilePath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		c.filePath = path
		return nil
	}
}

// WithReader loads the source document from an io.Reader.
func WithReader(r io.Reader) Option {
	return func(c *config) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		c.reader = r
		return nil
	}
}

// WithBytes loads the source document from raw bytes.
func WithBytes(data []byte) Option {
	return func(c *config) error {
		c.data = data
		c.hasData = true
		return nil
	}
}

// WithDocument uses an already-loaded document, skipping the load phase.
func WithDocument(doc *document.Document) Option {
	return func(c *config) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		c.doc = doc
		return nil
	}
}

// WithSourceName sets the source identifier used in errors and results.
// Useful with WithReader and WithBytes, where no file path is available.
func WithSourceName(name string) Option {
	return func(c *config) error {
		c.sourceName = name
		return nil
	}
}

// WithOutputRoot sets the directory all generated files land under.
// Default: "generated".
func WithOutputRoot(root string) Option {
	return func(c *config) error {
		if root == "" {
			return fmt.Errorf("output root cannot be empty")
		}
		c.outputRoot = root
		return nil
	}
}

// WithClean removes the previous output root before writing. The removal
// only happens after every plugin has completed successfully.
func WithClean(clean bool) Option {
	return func(c *config) error {
		c.clean = clean
		return nil
	}
}

// WithDryRun accumulates the generated files and manifest in the result
// without writing anything to disk. Hooks do not run in a dry run.
func WithDryRun(dryRun bool) Option {
	return func(c *config) error {
		c.dryRun = dryRun
		return nil
	}
}

// WithUpgrade controls whether OAS 2.0 input is upgraded to the 3.x shape
// before resolution. Default: true.
func WithUpgrade(enabled bool) Option {
	return func(c *config) error {
		c.upgrade = enabled
		return nil
	}
}

// WithEnumAsConst resolves single-member enumerations as literal constants.
func WithEnumAsConst(enabled bool) Option {
	return func(c *config) error {
		c.enumAsConst = enabled
		return nil
	}
}

// WithFilters sets the global operation filters applied before any plugin
// runs. Per-plugin filters narrow the set further.
func WithFilters(filters resolver.Filters) Option {
	return func(c *config) error {
		c.filters = filters
		return nil
	}
}

// WithPlugin registers an output plugin. When no plugin is registered,
// Generate runs the default TypeScript suite (types, zod, client, query,
// faker, msw).
func WithPlugin(p pipeline.Plugin) Option {
	return func(c *config) error {
		if p == nil {
			return fmt.Errorf("plugin cannot be nil")
		}
		c.plugins = append(c.plugins, p)
		return nil
	}
}

// WithPluginFilters sets the operation filters for one plugin's build.
func WithPluginFilters(plugin string, filters resolver.Filters) Option {
	return func(c *config) error {
		if plugin == "" {
			return fmt.Errorf("plugin name cannot be empty")
		}
		c.pluginFilters[plugin] = filters
		return nil
	}
}

// WithLayout sets the output layout for one plugin, replacing its default.
func WithLayout(plugin string, layout output.Layout) Option {
	return func(c *config) error {
		if plugin == "" {
			return fmt.Errorf("plugin name cannot be empty")
		}
		c.layouts[plugin] = layout
		return nil
	}
}

// WithHooks appends post-build hooks, run in order after all files are on
// disk.
func WithHooks(hooks ...output.Hook) Option {
	return func(c *config) error {
		c.hooks = append(c.hooks, hooks...)
		return nil
	}
}

// WithLogger sets the structured logger used across all phases.
// If not set, logging is disabled.
func WithLogger(l document.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = l
		return nil
	}
}

// validate checks that the assembled configuration is usable.
func (c *config) validate() error {
	return options.ValidateSingleInputSource(
		"must specify an input source (WithFilePath, WithReader, WithBytes, or WithDocument)",
		"must specify exactly one input source",
		c.filePath != "", c.reader != nil, c.hasData, c.doc != nil,
	)
}
