package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/fileutil"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/output"
	"github.com/erraggy/oasgen/pipeline"
	"github.com/erraggy/oasgen/resolver"
	"github.com/erraggy/oasgen/tsemit"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates constructs that degraded during resolution
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates operations that could not be generated
	SeverityError = severity.SeverityError
	// SeverityCritical indicates definitions that could not be resolved
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GenerateResult contains the results of one generation run.
type GenerateResult struct {
	// Files contains all accumulated output files, in insertion order
	Files []output.File
	// Manifest is the canonical manifest of the accumulated files
	Manifest []output.ManifestEntry
	// HookResults reports the post-build hooks, in execution order
	HookResults []output.HookResult
	// SourcePath is the input source identifier
	SourcePath string
	// SourceVersion is the detected source OAS version string
	SourceVersion string
	// OutputRoot is the directory the files were (or would be) written under
	OutputRoot string
	// Issues contains everything reported during resolution
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors
	ErrorCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// Written is true when the files were materialized on disk
	Written bool
	// ResolvedSchemas is the count of named schema definitions resolved
	ResolvedSchemas int
	// ResolvedOperations is the count of operations resolved
	ResolvedOperations int
	// LoadTime is the time taken to load the source document
	LoadTime time.Duration
	// BuildTime is the time taken to resolve and run the plugins
	BuildTime time.Duration
	// WriteTime is the time taken to materialize the output
	WriteTime time.Duration
}

// WriteManifest writes the manifest as indented JSON to path.
func (r *GenerateResult) WriteManifest(path string) error {
	data, err := json.MarshalIndent(r.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Summary returns a one-line summary of the run.
func (r *GenerateResult) Summary() string {
	status := "succeeded"
	if !r.Success {
		status = "failed"
	}
	return fmt.Sprintf("generation %s: %d files, %d schemas, %d operations, %d warnings, %d errors, %d critical",
		status, len(r.Files), r.ResolvedSchemas, r.ResolvedOperations,
		r.WarningCount, r.ErrorCount, r.CriticalCount)
}

// Generate runs the full engine with a background context.
func Generate(opts ...Option) (*GenerateResult, error) {
	return GenerateContext(context.Background(), opts...)
}

// GenerateContext loads, resolves, builds, and materializes in one call.
// Fatal errors return alongside a partial result carrying whatever was
// accumulated before the failure, for diagnostics; partial output is never
// written to disk.
func GenerateContext(ctx context.Context, opts ...Option) (*GenerateResult, error) {
	cfg := &config{
		outputRoot:    "generated",
		upgrade:       true,
		pluginFilters: make(map[string]resolver.Filters),
		layouts:       make(map[string]output.Layout),
		logger:        document.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	result := &GenerateResult{OutputRoot: cfg.outputRoot}

	loadStart := time.Now()
	doc, err := loadDocument(cfg)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(loadStart)
	result.SourcePath = doc.SourcePath
	result.SourceVersion = doc.Version()

	buildStart := time.Now()
	res, err := resolver.New(doc,
		resolver.WithEnumAsConst(cfg.enumAsConst),
		resolver.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, err
	}

	registry := res.Registry()
	operations := res.Operations(cfg.filters)
	result.ResolvedSchemas = len(registry.Names())
	result.ResolvedOperations = len(operations)

	plugins := cfg.plugins
	if len(plugins) == 0 {
		plugins = DefaultPlugins()
	}

	pipe, err := pipeline.New(pipeline.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}
	for _, p := range plugins {
		if err := pipe.Register(p, pipeline.Config{Filters: cfg.pluginFilters[p.Name()]}); err != nil {
			return nil, err
		}
	}

	run, err := pipe.Run(ctx, pipeline.Input{Operations: operations, Registry: registry})
	if err != nil {
		result.BuildTime = time.Since(buildStart)
		finish(result, res.Issues(), false)
		return result, err
	}

	mgr, err := newManager(cfg, plugins)
	if err != nil {
		return nil, err
	}
	if err := mgr.Add(run.Units...); err != nil {
		result.BuildTime = time.Since(buildStart)
		finish(result, res.Issues(), false)
		return result, err
	}
	if err := mgr.Finalize(); err != nil {
		result.BuildTime = time.Since(buildStart)
		finish(result, res.Issues(), false)
		return result, err
	}
	result.Files = mgr.Files()
	result.Manifest = mgr.Manifest()
	result.BuildTime = time.Since(buildStart)

	if !cfg.dryRun {
		writeStart := time.Now()
		hookResults, err := mgr.Flush()
		result.WriteTime = time.Since(writeStart)
		result.HookResults = hookResults
		if err != nil {
			finish(result, res.Issues(), false)
			return result, err
		}
		result.Written = true
	}

	finish(result, res.Issues(), true)
	return result, nil
}

// loadDocument resolves the configured input source to a loaded document.
func loadDocument(cfg *config) (*document.Document, error) {
	if cfg.doc != nil {
		return cfg.doc, nil
	}

	loadOpts := []document.Option{
		document.WithLogger(cfg.logger),
		document.WithUpgrade(cfg.upgrade),
	}
	switch {
	case cfg.filePath != "":
		loadOpts = append(loadOpts, document.WithFilePath(cfg.filePath))
	case cfg.reader != nil:
		loadOpts = append(loadOpts, document.WithReader(cfg.reader))
	default:
		loadOpts = append(loadOpts, document.WithBytes(cfg.data))
	}
	if cfg.sourceName != "" {
		loadOpts = append(loadOpts, document.WithSourceName(cfg.sourceName))
	}
	return document.Load(loadOpts...)
}

// newManager assembles the output manager with each registered plugin's
// layout: the configured one when given, the plugin's default otherwise.
func newManager(cfg *config, plugins []pipeline.Plugin) (*output.Manager, error) {
	mgrOpts := []output.Option{
		output.WithOutputRoot(cfg.outputRoot),
		output.WithClean(cfg.clean),
		output.WithLogger(cfg.logger),
	}
	if len(cfg.hooks) > 0 {
		mgrOpts = append(mgrOpts, output.WithHooks(cfg.hooks...))
	}
	for _, p := range plugins {
		layout, ok := cfg.layouts[p.Name()]
		if !ok {
			layout, ok = defaultLayouts[p.Name()]
			if !ok {
				continue
			}
		}
		mgrOpts = append(mgrOpts, output.WithLayout(p.Name(), layout))
	}
	return output.NewManager(mgrOpts...)
}

// finish tallies the issues and sets the success flag. A run that hit a
// fatal error is never successful, whatever the issue counts say.
func finish(result *GenerateResult, list []GenerateIssue, completed bool) {
	result.Issues = list
	result.InfoCount, result.WarningCount, result.ErrorCount, result.CriticalCount =
		issues.CountBySeverity(list)
	result.Success = completed && result.CriticalCount == 0
}

// DefaultPlugins returns the default TypeScript plugin suite: types, zod,
// client, query, faker, and msw, wired to the default layouts so their
// relative imports line up.
func DefaultPlugins() []pipeline.Plugin {
	return []pipeline.Plugin{
		tsemit.NewTypes(),
		tsemit.NewZod(),
		tsemit.NewClient(),
		tsemit.NewQuery(),
		tsemit.NewFaker(),
		tsemit.NewMSW(),
	}
}

// defaultLayouts places each default plugin's output in its own directory
// as one file, matching the relative import paths the plugins emit.
var defaultLayouts = map[string]output.Layout{
	"types":   {SubPath: "types", Mode: output.PathModeSingle},
	"zod":     {SubPath: "zod", Mode: output.PathModeSingle},
	"client":  {SubPath: "client", Mode: output.PathModeSingle},
	"query":   {SubPath: "query", Mode: output.PathModeSingle},
	"faker":   {SubPath: "faker", Mode: output.PathModeSingle},
	"msw":     {SubPath: "msw", Mode: output.PathModeSingle},
	"gotypes": {Ext: ".go"},
}
