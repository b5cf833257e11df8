package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// graphFlags holds the diagram flags shared by graph and scan.
type graphFlags struct {
	formats             string
	dim                 string
	noExplanatoryColumn bool
	rankDir             string
	scale               float64
}

func (f *graphFlags) register(cmd *cobra.Command, defaultFormats string) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", defaultFormats, "output format(s): dot, svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&f.dim, "dim", "", "layout dimensionality: 2d (default), 3d")
	cmd.Flags().BoolVar(&f.noExplanatoryColumn, "no-explanatory-column", false, "omit the Class/Methods caption column")
	cmd.Flags().StringVar(&f.rankDir, "rankdir", "", "dot rank direction: BT (default), TB, LR, RL")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

// apply copies the flags onto opts.
func (f *graphFlags) apply(opts *pipeline.Options) error {
	formats, err := pipeline.ParseFormats(f.formats)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Dimensionality = f.dim
	opts.NoExplanatoryColumn = f.noExplanatoryColumn
	opts.RankDir = f.rankDir
	opts.Scale = f.scale
	return nil
}

// graphCommand creates the graph command for Graphviz diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		gf     graphFlags
		cf     cacheFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [description]",
		Short: "Lay out the full class diagram with Graphviz",
		Long: `Lay out the full class diagram with Graphviz.

Unlike 'plantuml', the graph shows every relationship kind: inheritance,
directed and undirected associations, and aggregations. Each class is drawn
as a table with its abstract methods in italics.

With --dim 3d the diagram is laid out by neato in three dimensions.
Renderings are cached locally; use --refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Path: args[0], Refresh: cf.refresh}
			if err := gf.apply(&opts); err != nil {
				return err
			}
			if len(opts.Formats) == 0 {
				return fmt.Errorf("at least one --format is required")
			}
			return c.runGraph(cmd.Context(), opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	gf.register(cmd, pipeline.FormatSVG)
	cf.register(cmd)

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, output string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	return c.writeArtifacts(res, opts.Formats, output, opts.Path)
}

// writeArtifacts writes every Graphviz artifact and reports the files.
func (c *CLI) writeArtifacts(res *pipeline.Result, formats []string, output, input string) error {
	w := c.out()
	printWarnings(w, res.Warnings)

	paths := outputPaths(formats, output, input)
	for _, f := range formats {
		if err := writeFile(w, paths[f], res.Artifacts[f]); err != nil {
			return err
		}
	}
	if output == "-" {
		return nil
	}

	printSuccess(w, "Rendered diagram")
	printStats(w, res.Stats.ClassCount, res.Stats.EdgeCount, res.CacheInfo.GraphHit)
	for _, f := range formats {
		printFile(w, paths[f])
	}
	return nil
}
