package inchi

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/rxnpath/pkg/observability"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Molfiler is implemented by molecules that can be written as MDL molfiles.
type Molfiler interface {
	Molfile() string
}

// ExecOracle runs an external program with the molecule's molfile on stdin.
// The output is scanned for a token starting with "InChI=" and a token shaped
// like an InChIKey; the key is required.
type ExecOracle struct {
	Command []string
}

// Identify implements [Oracle].
func (o ExecOracle) Identify(ctx context.Context, m reaction.Molecule) (id Identity, err error) {
	if len(o.Command) == 0 {
		return Identity{}, fmt.Errorf("inchi: empty command")
	}
	mf, ok := m.(Molfiler)
	if !ok {
		return Identity{}, fmt.Errorf("%w: %T cannot be written as a molfile", ErrNoIdentity, m)
	}

	start := time.Now()
	defer func() {
		observability.Oracle().OnIdentify(ctx, filepath.Base(o.Command[0]), time.Since(start), err)
	}()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, o.Command[0], o.Command[1:]...)
	cmd.Stdin = strings.NewReader(mf.Molfile())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Identity{}, fmt.Errorf("inchi: run %s: %w: %s", o.Command[0], err, strings.TrimSpace(stderr.String()))
	}
	return ParseOutput(stdout.String())
}

// ParseOutput extracts an identity from free-form tool output.
func ParseOutput(out string) (Identity, error) {
	var id Identity
	for _, tok := range strings.Fields(out) {
		if strings.HasPrefix(tok, "InChI=") {
			if id.InChI == "" {
				id.InChI = tok
			}
			continue
		}
		tok = strings.TrimPrefix(tok, "InChIKey=")
		if id.Key == "" && ValidKey(tok) {
			id.Key = tok
		}
	}
	if id.Key == "" {
		return Identity{}, fmt.Errorf("%w: no InChIKey in output", ErrNoIdentity)
	}
	return id, nil
}
