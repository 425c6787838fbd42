package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{" SVG, png ,,dot", []string{"svg", "png", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || (got == nil) != (tt.want == nil) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		single bool
		want   string
	}{
		{"next to input", "", "data/scheme.json", "svg", true, "data/scheme.svg"},
		{"explicit single", "out/route.png", "scheme.json", "png", true, "out/route.png"},
		{"explicit base", "out/route.svg", "scheme.json", "pdf", false, "out/route.pdf"},
		{"json output", "", "steps.json", "json", false, "steps.pathway.json"},
		{"pathway input", "", "steps.pathway.json", "graph", false, "steps.graph.svg"},
		{"graph base", "out/route.graph.svg", "x.json", "dot", false, "out/route.dot"},
		{"unknown ext", "out/route.txt", "x.json", "svg", false, "out/route.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scheme.json")
	artifacts := map[string][]byte{
		pipeline.FormatSVG: []byte("<svg/>"),
		pipeline.FormatDOT: []byte("digraph {}"),
	}

	if err := writeArtifacts(artifacts, []string{"svg", "dot"}, "", input); err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "scheme.dot"))
	if err != nil || string(data) != "digraph {}" {
		t.Errorf("scheme.dot = %q, %v", data, err)
	}
}

func TestWriteArtifactsRefusesInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "route.pathway.json")
	err := writeArtifacts(map[string][]byte{"json": []byte("{}")}, []string{"json"}, "", input)
	if !rxerrors.Is(err, rxerrors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}
