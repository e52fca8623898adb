package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/erraggy/oasgen"
	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/generator"
	"github.com/erraggy/oasgen/internal/mcpserver"
	"github.com/erraggy/oasgen/output"
	"github.com/erraggy/oasgen/pipeline"
	"github.com/erraggy/oasgen/resolver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasgen v%s\n", oasgen.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := handleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := handleInspect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// commandNames are the commands suggestCommand matches against.
var commandNames = []string{"generate", "inspect", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or an empty string when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// generateFlags contains flags for the generate command
type generateFlags struct {
	output      string
	plugins     string
	tags        string
	hook        string
	manifest    string
	clean       bool
	dryRun      bool
	enumAsConst bool
	verbose     bool
}

func setupGenerateFlags() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &generateFlags{}

	fs.StringVar(&flags.output, "o", "generated", "output directory for generated files")
	fs.StringVar(&flags.output, "output", "generated", "output directory for generated files")
	fs.StringVar(&flags.plugins, "plugins", "", "comma-separated plugin subset (types,zod,client,query,faker,msw); default: all")
	fs.StringVar(&flags.tags, "tags", "", "comma-separated tags; only matching operations are generated")
	fs.StringVar(&flags.hook, "hook", "", "command to run over the output root after generation (e.g. \"prettier --write\")")
	fs.StringVar(&flags.manifest, "manifest", "", "write a JSON manifest of generated files to this path")
	fs.BoolVar(&flags.clean, "clean", false, "remove the previous output directory before writing")
	fs.BoolVar(&flags.dryRun, "dry-run", false, "list what would be generated without writing files")
	fs.BoolVar(&flags.enumAsConst, "enum-as-const", false, "resolve single-member enums as literal constants")
	fs.BoolVar(&flags.verbose, "verbose", false, "enable debug logging")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasgen generate [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Generate TypeScript artifacts from an OpenAPI specification.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasgen generate -o src/api openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasgen generate --plugins types,zod openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasgen generate --tags pets --clean openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasgen generate --hook \"prettier --write\" openapi.yaml\n")
	}

	return fs, flags
}

func handleGenerate(args []string) error {
	fs, flags := setupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path")
	}

	opts := []generator.Option{
		generator.WithFilePath(fs.Arg(0)),
		generator.WithOutputRoot(flags.output),
		generator.WithClean(flags.clean),
		generator.WithDryRun(flags.dryRun),
		generator.WithEnumAsConst(flags.enumAsConst),
	}
	if flags.verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, generator.WithLogger(document.NewSlogAdapter(slog.New(handler))))
	}
	if flags.tags != "" {
		opts = append(opts, generator.WithFilters(resolver.Filters{
			Include: resolver.FilterSet{Tags: splitList(flags.tags)},
		}))
	}
	if flags.plugins != "" {
		for _, name := range splitList(flags.plugins) {
			plugin, err := pluginByName(name)
			if err != nil {
				return err
			}
			opts = append(opts, generator.WithPlugin(plugin))
		}
	}
	if flags.hook != "" {
		parts := strings.Fields(flags.hook)
		opts = append(opts, generator.WithHooks(output.Hook{
			Name:             parts[0],
			Command:          parts[0],
			Args:             parts[1:],
			AppendOutputRoot: true,
		}))
	}

	result, err := generator.Generate(opts...)
	if err != nil {
		if result != nil {
			printIssues(result)
		}
		return err
	}

	printIssues(result)
	if flags.manifest != "" {
		if err := result.WriteManifest(flags.manifest); err != nil {
			return err
		}
	}
	for _, entry := range result.Manifest {
		fmt.Printf("  %s (%d bytes)\n", entry.Path, entry.Size)
	}
	for _, hr := range result.HookResults {
		if hr.Err != nil {
			fmt.Fprintf(os.Stderr, "hook %s failed: %v\n%s\n", hr.Name, hr.Err, hr.Output)
		}
	}
	fmt.Println(result.Summary())
	if !result.Success {
		os.Exit(1)
	}
	return nil
}

func printIssues(result *generator.GenerateResult) {
	for _, issue := range result.Issues {
		fmt.Fprintln(os.Stderr, issue.String())
	}
}

// inspectFlags contains flags for the inspect command
type inspectFlags struct {
	schemas bool
}

func setupInspectFlags() (*flag.FlagSet, *inspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &inspectFlags{}

	fs.BoolVar(&flags.schemas, "schemas", false, "list the named schema definitions")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasgen inspect [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Print a structural summary of an OpenAPI specification.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasgen inspect openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasgen inspect --schemas openapi.yaml\n")
	}

	return fs, flags
}

func handleInspect(args []string) error {
	fs, flags := setupInspectFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path")
	}

	doc, err := document.Load(document.WithFilePath(fs.Arg(0)))
	if err != nil {
		return err
	}
	res, err := resolver.New(doc)
	if err != nil {
		return err
	}
	registry := res.Registry()
	operations := res.Operations(resolver.Filters{})

	fmt.Printf("Title: %s\n", doc.Title())
	fmt.Printf("Version: %s\n", doc.Version())
	fmt.Printf("Operations: %d\n", len(operations))
	fmt.Printf("Schemas: %d\n", len(registry.Names()))
	if flags.schemas {
		for _, name := range registry.Names() {
			fmt.Printf("  %s\n", name)
		}
	}
	for _, issue := range res.Issues() {
		fmt.Fprintln(os.Stderr, issue.String())
	}
	return nil
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// pluginByName resolves one default-suite plugin by name.
func pluginByName(name string) (pipeline.Plugin, error) {
	for _, p := range generator.DefaultPlugins() {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown plugin %q", name)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	fmt.Println(`oasgen - OpenAPI Specification Code Generator

Usage:
  oasgen <command> [options]

Commands:
  generate    Generate TypeScript artifacts from an OpenAPI specification
  inspect     Print a structural summary of an OpenAPI specification
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasgen generate -o src/api openapi.yaml
  oasgen generate --plugins types,zod --clean openapi.yaml
  oasgen inspect --schemas openapi.yaml

Run 'oasgen <command> --help' for more information on a command.`)
}
