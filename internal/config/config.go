// Package config loads rxnpath.toml.
//
// Settings are applied in three layers: built-in defaults, then the config
// file, then command-line flags. A file looks like:
//
//	[detect]
//	bond_length = 1.5
//	max_iterations = 64
//
//	[layout]
//	arrow_length = 4.5
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl = "72h"
//
//	[inchi]
//	command = ["obabel", "-imol", "-oinchikey"]
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/pipeline"
)

// FileName is the config file looked up in the working directory.
const FileName = "rxnpath.toml"

// Config is the contents of a config file.
type Config struct {
	Detect Detect `toml:"detect"`
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	InChI  InChI  `toml:"inchi"`
}

// Detect holds the reconstruction settings.
type Detect struct {
	BondLength    float64 `toml:"bond_length"`
	MaxIterations int     `toml:"max_iterations"`
}

// Layout holds layout distances in drawing units. Zero takes the default.
type Layout struct {
	ArrowLength    float64 `toml:"arrow_length"`
	Margin         float64 `toml:"margin"`
	PlusSpacing    float64 `toml:"plus_spacing"`
	VerticalMargin float64 `toml:"vertical_margin"`
	RootGap        float64 `toml:"root_gap"`
	TailLength     float64 `toml:"tail_length"`
}

// Render holds output settings.
type Render struct {
	Formats  []string `toml:"formats"`
	Scale    float64  `toml:"scale"`
	Detailed bool     `toml:"detailed"`
}

// Cache selects and tunes the cache backend. With RedisAddr set, Redis is
// used instead of the file cache in Dir.
type Cache struct {
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
	TTL           string `toml:"ttl"`
}

// InChI configures the identity oracle used by the build command.
type InChI struct {
	// Command is run with a molfile on stdin. Empty means identities are
	// read from the input document.
	Command []string `toml:"command"`
	Lenient bool     `toml:"lenient"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Detect: Detect{BondLength: 1, MaxIterations: 64},
		Render: Render{Formats: []string{pipeline.FormatSVG}, Scale: pipeline.DefaultScale},
	}
}

// Load reads the config at path on top of the defaults. An empty path looks
// for FileName in the working directory and then in the user config
// directory; finding neither is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = find()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, rxerrors.Wrap(rxerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, rxerrors.Wrap(rxerrors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, rxerrors.Wrap(rxerrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, rxerrors.New(rxerrors.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func find() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "rxnpath", "config.toml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := rxerrors.ValidatePositive("detect.bond_length", c.Detect.BondLength); err != nil {
		return err
	}
	if c.Detect.MaxIterations <= 0 {
		return rxerrors.New(rxerrors.ErrCodeInvalidInput, "detect.max_iterations must be positive, got %d", c.Detect.MaxIterations)
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	opts := c.PipelineOptions()
	return opts.ValidateAndSetDefaults()
}

// TTLDuration parses Cache.TTL. An empty TTL is zero.
func (c Cache) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, rxerrors.New(rxerrors.ErrCodeInvalidInput, "cache.ttl: invalid duration %q", c.TTL)
	}
	return d, nil
}

// PipelineOptions converts the settings to pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		BondLength:     c.Detect.BondLength,
		MaxIterations:  c.Detect.MaxIterations,
		ArrowLength:    c.Layout.ArrowLength,
		Margin:         c.Layout.Margin,
		PlusSpacing:    c.Layout.PlusSpacing,
		VerticalMargin: c.Layout.VerticalMargin,
		RootGap:        c.Layout.RootGap,
		TailLength:     c.Layout.TailLength,
		Formats:        append([]string(nil), c.Render.Formats...),
		Scale:          c.Render.Scale,
		Detailed:       c.Render.Detailed,
	}
}
