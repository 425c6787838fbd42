package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	rxio "github.com/matzehuels/rxnpath/pkg/io"
)

const testScheme = `{
  "kind": "scheme",
  "molecules": [
    {"label": "A", "box": [0, 0, 1, 1]},
    {"label": "B", "box": [5, 0, 6, 1]}
  ],
  "objects": [
    {"type": "arrow", "tail": [2, 0.5], "head": [4, 0.5]}
  ]
}`

func TestDetectThenRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scheme.json")
	if err := os.WriteFile(input, []byte(testScheme), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	ctx := withLogger(context.Background(), c.Logger)

	popts := c.Config.PipelineOptions()
	popts.Formats = []string{"json"}
	if err := c.runPipeline(ctx, input, rxio.KindScheme, popts, &runOpts{noCache: true}); err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	pathwayFile := filepath.Join(dir, "scheme.pathway.json")
	if _, err := os.Stat(pathwayFile); err != nil {
		t.Fatalf("pathway document not written: %v", err)
	}

	popts.Formats = []string{"dot"}
	if err := runRender(ctx, pathwayFile, popts, ""); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "scheme.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.Contains(string(dot), "digraph") {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
	if !strings.Contains(logs.String(), "Rendered") {
		t.Errorf("render did not log progress: %q", logs.String())
	}
}

func TestRenderRejectsScheme(t *testing.T) {
	input := filepath.Join(t.TempDir(), "scheme.json")
	if err := os.WriteFile(input, []byte(testScheme), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(&bytes.Buffer{}, log.InfoLevel)

	err := runRender(context.Background(), input, c.Config.PipelineOptions(), "")
	if !rxerrors.Is(err, rxerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestPipelineKindMismatch(t *testing.T) {
	input := filepath.Join(t.TempDir(), "scheme.json")
	if err := os.WriteFile(input, []byte(testScheme), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(&bytes.Buffer{}, log.InfoLevel)

	err := c.runPipeline(context.Background(), input, rxio.KindReactions, c.Config.PipelineOptions(), &runOpts{noCache: true})
	if !rxerrors.Is(err, rxerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
