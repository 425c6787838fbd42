package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	rxio "github.com/matzehuels/rxnpath/pkg/io"
	"github.com/matzehuels/rxnpath/pkg/pipeline"
)

// runOpts holds the flags shared by build and detect.
type runOpts struct {
	output        string   // output file (single format) or base path
	formats       []string // output formats
	noCache       bool     // bypass the cache entirely
	refresh       bool     // recompute and overwrite cached results
	bondLength    float64  // drawing bond length
	maxIterations int      // detector pass cap
	scale         float64  // PNG scale factor
	detailed      bool     // conditions and roles in graph output
}

// buildCommand creates the build command for reaction lists.
func (c *CLI) buildCommand() *cobra.Command {
	return c.pipelineCommand("build [reactions.json]",
		"Match reaction steps into a pathway and draw it",
		`Build reads a document of independent reaction steps, matches the products
of each step to the reactants of the next by InChIKey and lays out the
resulting pathway.

InChIKeys are taken from the document unless [inchi] command is configured.`,
		rxio.KindReactions)
}

// detectCommand creates the detect command for drawn schemes.
func (c *CLI) detectCommand() *cobra.Command {
	return c.pipelineCommand("detect [scheme.json]",
		"Read a pathway from a drawn scheme and redraw it",
		`Detect reads a drawn scheme of molecules, pluses, arrows and texts, works out
which molecules each arrow connects and lays out the resulting pathway.`,
		rxio.KindScheme)
}

func (c *CLI) pipelineCommand(use, short, long string, kind rxio.Kind) *cobra.Command {
	var formatsStr string
	var opts runOpts

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			popts := c.Config.PipelineOptions()
			applyFlags(cmd, &popts, &opts)
			return c.runPipeline(cmd.Context(), args[0], kind, popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached results")
	cmd.Flags().Float64Var(&opts.bondLength, "bond-length", 0, "bond length of the drawing")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "cap on detector merge passes")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show conditions and roles in graph output")

	return cmd
}

// applyFlags lets explicitly set flags override the configuration.
func applyFlags(cmd *cobra.Command, popts *pipeline.Options, opts *runOpts) {
	if len(opts.formats) > 0 {
		popts.Formats = opts.formats
	}
	if cmd.Flags().Changed("bond-length") {
		popts.BondLength = opts.bondLength
	}
	if cmd.Flags().Changed("max-iterations") {
		popts.MaxIterations = opts.maxIterations
	}
	if cmd.Flags().Changed("scale") {
		popts.Scale = opts.scale
	}
	if cmd.Flags().Changed("detailed") {
		popts.Detailed = opts.detailed
	}
	popts.Refresh = opts.refresh
}

func (c *CLI) runPipeline(ctx context.Context, input string, kind rxio.Kind, popts pipeline.Options, opts *runOpts) error {
	logger := loggerFromContext(ctx)
	if err := rxerrors.ValidateFilePath(input); err != nil {
		return err
	}

	doc, err := rxio.ImportJSON(input)
	if err != nil {
		return err
	}
	if doc.Kind != kind {
		return rxerrors.New(rxerrors.ErrCodeInvalidInput, "%s is a %s document, expected %s", input, doc.Kind, kind)
	}
	logger.Debug("loaded document", "id", doc.ID, "molecules", len(doc.Molecules))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Reconstructing pathway...")
	spinner.Start()
	res, err := runner.Execute(ctx, doc, popts)
	if err != nil {
		spinner.Stop()
		reportFailure(err)
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Reconstructed %d reactions", res.Stats.Reactions))
	printStats(res.Stats, res.CacheInfo.PathwayHit)
	if res.Stats.Unassigned > 0 {
		printWarning("%d molecules are not part of the pathway", res.Stats.Unassigned)
	}
	return writeArtifacts(res.Artifacts, popts.Formats, opts.output, input)
}

// reportFailure explains reconstruction errors the user can act on.
func reportFailure(err error) {
	var amb *rxerrors.AmbiguousError
	switch {
	case errors.As(err, &amb):
		printError("The steps admit %d different pathways", amb.Count)
		printDetail("Give each molecule a distinct InChIKey or split the input")
	case rxerrors.Is(err, rxerrors.ErrCodeBadPathway):
		printError("The scheme cannot be read as a pathway")
		printDetail("%s", rxerrors.UserMessage(err))
	case rxerrors.Is(err, rxerrors.ErrCodeCycleDetected):
		printError("The reactions form a cycle")
	}
}

// writeArtifacts writes every artifact next to the input, or to output.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) error {
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats) == 1)
		if err := rxerrors.ValidateFilePath(path); err != nil {
			return err
		}
		if filepath.Clean(path) == filepath.Clean(input) {
			return rxerrors.New(rxerrors.ErrCodeInvalidPath, "%s would overwrite the input; pass -o", path)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// extensions maps formats to file suffixes. JSON output is a pathway
// document and must not overwrite a JSON input.
var extensions = map[string]string{
	pipeline.FormatSVG:   ".svg",
	pipeline.FormatPNG:   ".png",
	pipeline.FormatPDF:   ".pdf",
	pipeline.FormatJSON:  ".pathway.json",
	pipeline.FormatDOT:   ".dot",
	pipeline.FormatGraph: ".graph.svg",
}

// outputPath derives the file for one format. A single format written to an
// explicit output uses that path unchanged.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + extensions[format]
}

// basePath strips a known extension from output, or derives the base from
// input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		output = input
	}
	suffixes := slices.Collect(maps.Values(extensions))
	// Longest first so ".pathway.json" wins over ".json".
	slices.SortFunc(suffixes, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range append(suffixes, ".json") {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return strings.TrimSuffix(output, filepath.Ext(output))
}
