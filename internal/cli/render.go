package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
)

// rendererFlags select the PlantUML collaborator.
type rendererFlags struct {
	server     string
	local      bool
	executable string
}

func (f *rendererFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.server, "server", "", "PlantUML server URL (env "+envPlantUMLServer+", default "+plantuml.DefaultServerURL+")")
	cmd.Flags().BoolVar(&f.local, "local", false, "render with a local plantuml executable instead of a server")
	cmd.Flags().StringVar(&f.executable, "plantuml", plantuml.DefaultExecutable, "plantuml executable for --local")
}

func (f *rendererFlags) renderer() (plantuml.Renderer, error) {
	return newRenderer(f.local, f.executable, f.server)
}

// renderCommand creates the render command, which renders the PlantUML
// diagram through a PlantUML server or executable.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		rf     rendererFlags
		cf     cacheFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [description]",
		Short: "Render the PlantUML diagram of a description",
		Long: `Render the PlantUML diagram of a description.

By default the diagram text is sent to the public PlantUML server. Use
--server for a self-hosted instance or --local to run the plantuml
executable. Failed renderings are reported with the attempted request and
the response; they are never retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := plantuml.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := rf.renderer()
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Path:           args[0],
				Renderer:       r,
				PlantUMLFormat: string(f),
				Refresh:        cf.refresh,
			}
			return c.runRender(cmd.Context(), opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(plantuml.FormatSVG), "output format: svg, png, txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with format extension)")
	rf.register(cmd)
	cf.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering via %s...", opts.Renderer.Name()))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		printCollaboratorError(c.out(), err)
		return err
	}
	spinner.Stop()

	w := c.out()
	printWarnings(w, res.Warnings)
	path := outputPaths([]string{opts.PlantUMLFormat}, output, opts.Path)[opts.PlantUMLFormat]
	if err := writeFile(w, path, res.Rendered); err != nil {
		return err
	}
	if path != "-" {
		printSuccess(w, "Rendered PlantUML diagram")
		printStats(w, res.Stats.ClassCount, len(res.Model.Parents()), res.CacheInfo.PlantUMLHit)
		printFile(w, path)
	}
	return nil
}

// printCollaboratorError shows what was sent to a failing renderer and what
// came back.
func printCollaboratorError(w io.Writer, err error) {
	var ce *errors.CollaboratorError
	if !stderrors.As(err, &ce) {
		return
	}
	printKeyValue(w, "renderer", ce.Collaborator)
	printKeyValue(w, "request", ce.Request)
	if ce.StatusCode != 0 {
		printKeyValue(w, "status", strconv.Itoa(ce.StatusCode))
	}
	if len(ce.Response) > 0 {
		printDetail(w, "%s", truncate(string(ce.Response), 400))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
