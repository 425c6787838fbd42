package cli

import (
	"context"

	"github.com/spf13/cobra"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	rxio "github.com/matzehuels/rxnpath/pkg/io"
	"github.com/matzehuels/rxnpath/pkg/pipeline"
)

// renderCommand creates the render command. It draws a pathway document
// without reconstructing or laying it out again, so hand-edited coordinates
// survive.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "render [pathway.json]",
		Short: "Render a pathway document as it is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			popts := c.Config.PipelineOptions()
			applyFlags(cmd, &popts, &opts)
			return runRender(cmd.Context(), args[0], popts, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show conditions and roles in graph output")

	return cmd
}

func runRender(ctx context.Context, input string, popts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	if err := rxerrors.ValidateFilePath(input); err != nil {
		return err
	}
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	doc, err := rxio.ImportJSON(input)
	if err != nil {
		return err
	}
	if doc.Kind != rxio.KindPathway {
		return rxerrors.New(rxerrors.ErrCodeInvalidInput, "%s is a %s document; use build or detect first", input, doc.Kind)
	}
	p, err := doc.Pathway()
	if err != nil {
		return err
	}

	artifacts, err := pipeline.Render(ctx, p, popts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + input)
	return writeArtifacts(artifacts, popts.Formats, output, input)
}
