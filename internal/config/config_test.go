package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[detect]
bond_length = 1.5

[layout]
arrow_length = 4.5
vertical_margin = 5

[render]
formats = ["svg", "json"]

[cache]
redis_addr = "localhost:6379"
ttl = "72h"

[inchi]
command = ["obabel", "-imol", "-oinchikey"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Detect.BondLength)
	assert.Equal(t, 64, cfg.Detect.MaxIterations, "unset keys keep defaults")
	assert.Equal(t, []string{"obabel", "-imol", "-oinchikey"}, cfg.InChI.Command)

	ttl, err := cfg.Cache.TTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, ttl)

	opts := cfg.PipelineOptions()
	assert.Equal(t, 4.5, opts.ArrowLength)
	assert.Equal(t, 5.0, opts.VerticalMargin)
	assert.Equal(t, []string{"svg", "json"}, opts.Formats)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code rxerrors.Code
	}{
		{"syntax", "[detect\n", rxerrors.ErrCodeInvalidFormat},
		{"unknown key", "[detect]\nbondlength = 2\n", rxerrors.ErrCodeInvalidFormat},
		{"zero bond length", "[detect]\nbond_length = 0\n", rxerrors.ErrCodeInvalidInput},
		{"negative margin", "[layout]\nmargin = -1\n", rxerrors.ErrCodeInvalidInput},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", rxerrors.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"gif\"]\n", rxerrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.code, rxerrors.GetCode(err), "got %v", err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, rxerrors.Is(err, rxerrors.ErrCodeFileNotFound))
}
