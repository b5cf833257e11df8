package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	umlio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// scanCommand creates the scan command, which introspects source code into a
// description and optionally renders it.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		gf           graphFlags
		cf           cacheFlags
		languages    []string
		exportedOnly bool
		includeTests bool
		noGitignore  bool
		output       string
		graphBase    string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Introspect Go or Python source into a description",
		Long: `Introspect Go or Python source into a description.

Go interfaces become abstract classes and embedded types become parents.
Python base classes become parents; ABC subclasses and @abstractmethod
methods are abstract. Field types referring to other scanned classes become
associations, and slice, array or map element types become aggregations.
Files excluded by a .gitignore at the scanned root are skipped unless
--no-gitignore is given.

The description is written as TOML. With --format the diagram is rendered
as well, to --graph-output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				ScanRoot:     args[0],
				Languages:    languages,
				ExportedOnly: exportedOnly,
				IncludeTests: includeTests,
				NoGitignore:  noGitignore,
				Refresh:      cf.refresh,
			}
			if err := gf.apply(&opts); err != nil {
				return err
			}
			return c.runScan(cmd.Context(), opts, output, graphBase, cf)
		},
	}

	cmd.Flags().StringSliceVarP(&languages, "lang", "l", nil, "languages to scan: go, python (default: all)")
	cmd.Flags().BoolVar(&exportedOnly, "exported-only", true, "skip unexported Go types and methods")
	cmd.Flags().BoolVar(&includeTests, "tests", false, "include test files")
	cmd.Flags().BoolVar(&noGitignore, "no-gitignore", false, "read files excluded by the root .gitignore")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "description file (- for stdout)")
	cmd.Flags().StringVar(&graphBase, "graph-output", "classes", "base path for --format outputs")
	gf.register(cmd, "")
	cf.register(cmd)

	return cmd
}

func (c *CLI) runScan(ctx context.Context, opts pipeline.Options, output, graphBase string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d classes in %d files", res.Stats.ClassCount, res.Stats.Files))

	// Write discovered parents explicitly so the description stands alone.
	d := *res.Description
	d.Options.Parents = res.Model.Parents()
	d.Options.Lookup = nil

	var buf bytes.Buffer
	if err := umlio.WriteTOML(&d, &buf); err != nil {
		return err
	}
	if err := writeFile(c.out(), output, buf.Bytes()); err != nil {
		return err
	}

	status := c.out()
	if output == "-" {
		status = os.Stderr
	}
	if output != "-" {
		printSuccess(status, "Wrote description")
		printFile(status, output)
	}
	if len(opts.Formats) == 0 {
		return nil
	}
	paths := outputPaths(opts.Formats, "", graphBase+".toml")
	for _, f := range opts.Formats {
		if err := writeFile(status, paths[f], res.Artifacts[f]); err != nil {
			return err
		}
	}
	printSuccess(status, "Rendered diagram")
	printStats(status, res.Stats.ClassCount, res.Stats.EdgeCount, res.CacheInfo.GraphHit)
	for _, f := range opts.Formats {
		printFile(status, paths[f])
	}
	return nil
}
