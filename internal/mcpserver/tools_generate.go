package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/generator"
	"github.com/erraggy/oasgen/pipeline"
	"github.com/erraggy/oasgen/resolver"
)

type generateInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OAS document to generate code from"`
	OutputDir   string    `json:"output_dir,omitempty"   jsonschema:"Directory to write generated files to (required unless dry_run)"`
	Plugins     []string  `json:"plugins,omitempty"      jsonschema:"Plugin subset to run: types, zod, client, query, faker, msw (default: all)"`
	Tags        []string  `json:"tags,omitempty"         jsonschema:"Only generate operations carrying one of these tags"`
	DryRun      bool      `json:"dry_run,omitempty"      jsonschema:"Accumulate the manifest without writing files"`
	Clean       bool      `json:"clean,omitempty"        jsonschema:"Remove the previous output directory before writing"`
	EnumAsConst bool      `json:"enum_as_const,omitempty" jsonschema:"Resolve single-member enums as literal constants"`
}

type generatedFileInfo struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

type generateOutput struct {
	Success       bool                `json:"success"`
	Written       bool                `json:"written"`
	OutputDir     string              `json:"output_dir"`
	FileCount     int                 `json:"file_count"`
	Files         []generatedFileInfo `json:"files"`
	Schemas       int                 `json:"schemas"`
	Operations    int                 `json:"operations"`
	WarningCount  int                 `json:"warning_count"`
	ErrorCount    int                 `json:"error_count"`
	CriticalCount int                 `json:"critical_count"`
	Issues        []string            `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.OutputDir == "" && !input.DryRun {
		return errResult(fmt.Errorf("output_dir is required unless dry_run is set")), generateOutput{}, nil
	}
	if err := input.Spec.validate(); err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithDryRun(input.DryRun),
		generator.WithClean(input.Clean),
		generator.WithEnumAsConst(input.EnumAsConst || cfg.EnumAsConst),
	}
	if input.Spec.File != "" {
		opts = append(opts, generator.WithFilePath(input.Spec.File))
	} else {
		opts = append(opts,
			generator.WithBytes([]byte(input.Spec.Content)),
			generator.WithSourceName("inline"),
		)
	}
	if input.OutputDir != "" {
		opts = append(opts, generator.WithOutputRoot(input.OutputDir))
	}
	if len(input.Tags) > 0 {
		opts = append(opts, generator.WithFilters(resolver.Filters{
			Include: resolver.FilterSet{Tags: input.Tags},
		}))
	}

	plugins, err := selectPlugins(input.Plugins)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	for _, p := range plugins {
		opts = append(opts, generator.WithPlugin(p))
	}

	result, err := generator.GenerateContext(ctx, opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:       result.Success,
		Written:       result.Written,
		OutputDir:     input.OutputDir,
		FileCount:     len(result.Files),
		Schemas:       result.ResolvedSchemas,
		Operations:    result.ResolvedOperations,
		WarningCount:  result.WarningCount,
		ErrorCount:    result.ErrorCount,
		CriticalCount: result.CriticalCount,
	}
	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{Path: f.Path, Size: f.Size()})
	}
	output.Issues = makeSlice[string](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issue.String())
	}
	return nil, output, nil
}

// selectPlugins resolves the requested plugin subset, preserving the
// declared dependency order. An empty request selects the full default
// suite; dependencies of a requested plugin are pulled in implicitly.
func selectPlugins(names []string) ([]pipeline.Plugin, error) {
	if len(names) == 0 {
		return nil, nil
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}
	// Dependencies must be in the active set for the pipeline to run.
	for changed := true; changed; {
		changed = false
		for _, p := range generator.DefaultPlugins() {
			if !requested[p.Name()] {
				continue
			}
			for _, dep := range p.Dependencies() {
				if !requested[dep] {
					requested[dep] = true
					changed = true
				}
			}
		}
	}

	var plugins []pipeline.Plugin
	for _, p := range generator.DefaultPlugins() {
		if requested[p.Name()] {
			plugins = append(plugins, p)
			delete(requested, p.Name())
		}
	}
	for name := range requested {
		return nil, fmt.Errorf("unknown plugin %q; valid plugins: %s", name, knownPluginNames())
	}
	return plugins, nil
}

func knownPluginNames() string {
	names := ""
	for i, p := range generator.DefaultPlugins() {
		if i > 0 {
			names += ", "
		}
		names += p.Name()
	}
	return names
}
