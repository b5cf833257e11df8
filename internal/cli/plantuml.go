package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// plantumlCommand creates the plantuml command, which prints the PlantUML
// inheritance diagram of a description.
func (c *CLI) plantumlCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plantuml [description]",
		Short: "Print a description as a PlantUML class diagram",
		Long: `Print a description as a PlantUML class diagram.

The description is a .json or .toml file listing parents, methods,
associations and aggregations. Only inheritance is expressed in PlantUML;
use 'graph' for associations and aggregations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlantUML(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	return cmd
}

func (c *CLI) runPlantUML(ctx context.Context, input, output string) error {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	res, err := runner.Execute(ctx, pipeline.Options{Path: input})
	if err != nil {
		return err
	}
	printWarnings(os.Stderr, res.Warnings)

	if err := writeFile(c.out(), output, []byte(res.PlantUML+"\n")); err != nil {
		return err
	}
	if output != "-" {
		printSuccess(c.out(), "Wrote PlantUML diagram")
		printStats(c.out(), res.Stats.ClassCount, len(res.Model.Parents()), false)
		printFile(c.out(), output)
	}
	return nil
}
