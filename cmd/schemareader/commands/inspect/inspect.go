// Package inspect implements the inspect command, which reads Schema objects out of
// YAML or JSON documents and prints a summary of the resulting model.
package inspect

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/speakeasy-api/schemareader/cmd/schemareader/commands/cmdutil"
	"github.com/speakeasy-api/schemareader/jsonschema/oas3"
	"github.com/speakeasy-api/schemareader/system"
	"github.com/speakeasy-api/schemareader/yml"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Options configures an inspection.
type Options struct {
	// Path selects the nodes to read. Empty selects the document root.
	Path string
	// LegacyPath evaluates Path with the yamlpath dialect instead of RFC 9535.
	LegacyPath bool
	// Map reads each selected node as a map of named schemas.
	Map bool
	// Strict validates schemas against the OpenAPI 3.0 meta-schema before reading them.
	Strict bool
	// MaxDepth bounds schema nesting. Zero means no limit.
	MaxDepth int
	// FS is the file system files are read from. Nil means the host file system.
	FS     system.VirtualFS
	Logger *slog.Logger
}

var (
	pathFlag       string
	legacyPathFlag bool
	mapFlag        bool
	strictFlag     bool
	maxDepthFlag   int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [<file>...]",
	Short: "Read Schema objects from documents and print a summary of each",
	Long: `Read OpenAPI 3.0 Schema objects from one or more YAML or JSON documents and print
an indented summary of the model built for each: type, reference, constraints,
nested schemas and vendor extensions.

By default the document root is read as a single schema. Use --path to select
nodes with a JSONPath expression and --map to read each selected node as a map
of named schemas, such as components.schemas.`,
	Example: `  # Read a single schema
  schemareader inspect pet.yaml

  # Read every component schema of an OpenAPI document
  schemareader inspect --path '$.components.schemas' --map openapi.yaml

  # Validate against the Schema object meta-schema before reading
  cat pet.json | schemareader inspect --strict -`,
	Args: cmdutil.StdinOrFileArgs(1, -1),
	Run:  runInspect,
}

// Apply adds the inspect command to rootCmd.
func Apply(rootCmd *cobra.Command) {
	inspectCmd.Flags().StringVar(&pathFlag, "path", "", "JSONPath expression selecting the schema nodes to read")
	inspectCmd.Flags().BoolVar(&legacyPathFlag, "legacy-path", false, "evaluate --path with the legacy yamlpath implementation")
	inspectCmd.Flags().BoolVar(&mapFlag, "map", false, "read each selected node as a map of named schemas")
	inspectCmd.Flags().BoolVar(&strictFlag, "strict", false, "validate schemas against the OpenAPI 3.0 meta-schema before reading")
	inspectCmd.Flags().IntVar(&maxDepthFlag, "max-depth", 0, "maximum schema nesting depth, 0 for no limit")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	opts := Options{
		Path:       pathFlag,
		LegacyPath: legacyPathFlag,
		Map:        mapFlag,
		Strict:     strictFlag,
		MaxDepth:   maxDepthFlag,
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}

	if err := Inspect(cmd.Context(), opts, cmdutil.InputFilesFromArgs(args), os.Stdin, os.Stdout); err != nil {
		cmdutil.Die(err)
	}
}

// Inspect reads every file concurrently and writes their summaries to w in argument order.
// The file "-" is read from stdin.
func Inspect(ctx context.Context, opts Options, files []string, stdin io.Reader, w io.Writer) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.FS == nil {
		opts.FS = &system.FileSystem{}
	}

	selector, err := NewSelector(opts.Path, opts.LegacyPath)
	if err != nil {
		return err
	}

	readOpts := []oas3.Option{
		oas3.WithLogger(opts.Logger),
		oas3.WithMaxDepth(opts.MaxDepth),
	}
	if opts.Strict {
		readOpts = append(readOpts, oas3.WithStrictValidation())
	}

	outputs := make([]*bytes.Buffer, len(files))

	g, ctx := errgroup.WithContext(ctx)

	for i, file := range files {
		g.Go(func() error {
			buf := &bytes.Buffer{}
			if err := inspectFile(ctx, opts.FS, file, stdin, selector, opts.Map, readOpts, buf); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			outputs[i] = buf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range outputs {
		if _, err := out.WriteTo(w); err != nil {
			return err
		}
	}

	return nil
}

func inspectFile(ctx context.Context, fsys system.VirtualFS, file string, stdin io.Reader, selector Selector, asMap bool, opts []oas3.Option, w io.Writer) error {
	r, err := cmdutil.OpenInput(fsys, file, stdin)
	if err != nil {
		return err
	}
	defer r.Close()

	root, err := yml.Parse(r)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# %s\n", file)

	if root == nil {
		fmt.Fprintln(w, "(empty document)")
		return nil
	}

	nodes := selector.Select(root)
	if len(nodes) == 0 {
		fmt.Fprintln(w, "(no nodes selected)")
		return nil
	}

	for i, node := range nodes {
		label := fmt.Sprintf("[%d]", i)
		if len(nodes) == 1 {
			label = "schema"
		}

		if !asMap {
			s, err := oas3.ReadSchema(ctx, node, opts...)
			if err != nil {
				return err
			}
			writeSchema(w, label, s, 0)
			continue
		}

		schemas, err := oas3.ReadSchemas(ctx, node, opts...)
		if err != nil {
			return err
		}
		if schemas == nil {
			fmt.Fprintf(w, "%s: <not a map>\n", label)
			continue
		}
		for name, s := range schemas.All() {
			writeSchema(w, name, s, 0)
		}
	}

	return nil
}
