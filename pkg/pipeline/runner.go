package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/cache"
	"github.com/matzehuels/rxnpath/pkg/inchi"
	rxio "github.com/matzehuels/rxnpath/pkg/io"
	"github.com/matzehuels/rxnpath/pkg/observability"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, the oracle and the logger.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Oracle inchi.Oracle
	Logger *log.Logger

	// TTL overrides the lifetime of cached pathways and artifacts when
	// non-zero.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer uses the default key scheme, a nil
// cache disables caching and a nil oracle reads the identities documents
// carry. The oracle is memoized in the cache.
func NewRunner(c cache.Cache, keyer cache.Keyer, oracle inchi.Oracle, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if oracle == nil {
		oracle = inchi.PropertyOracle{}
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Oracle: inchi.NewCachedOracle(oracle, c, keyer, logger),
		Logger: logger,
	}
}

// Execute runs the complete reconstruct → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, doc *rxio.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	p, hash, hit, err := r.PathwayWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Pathway = p
	result.PathwayHash = hash
	result.CacheInfo.PathwayHit = hit
	result.Stats.Molecules = len(p.Molecules)
	result.Stats.Reactions = len(p.Reactions)
	result.Stats.Unassigned = len(p.Unassigned)
	result.Stats.ReconstructTime = time.Since(start)

	r.Logger.Info("reconstructed pathway",
		"reactions", len(p.Reactions),
		"molecules", len(p.Molecules),
		"cached", hit,
		"duration", result.Stats.ReconstructTime)
	if len(p.Unassigned) > 0 {
		r.Logger.Warn("molecules outside the pathway", "count", len(p.Unassigned))
	}

	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PathwayWithCacheInfo reconstructs and lays out the document's pathway.
// It returns the pathway, the hash artifacts are keyed by and whether the
// pathway came from the cache.
func (r *Runner) PathwayWithCacheInfo(ctx context.Context, doc *rxio.Document, opts Options) (*reaction.Pathway, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}
	if doc == nil {
		return nil, "", false, rxerrors.New(rxerrors.ErrCodeInvalidInput, "no input document")
	}

	// The ID is generated for documents that lack one; it must not split
	// the cache.
	input := *doc
	input.ID = ""
	inputHash, err := cache.HashJSON(input)
	if err != nil {
		return nil, "", false, err
	}
	key := r.Keyer.PathwayKey(inputHash, opts.PathwayKeyOpts(string(doc.Kind)))
	hash := cache.Hash([]byte(key))

	if !opts.Refresh {
		if p, ok := r.cachedPathway(ctx, key); ok {
			return p, hash, true, nil
		}
	}

	p, err := Reconstruct(ctx, doc, r.Oracle, opts)
	if err != nil {
		return nil, "", false, err
	}
	res, err := Layout(ctx, p, opts)
	if err != nil {
		return nil, "", false, fmt.Errorf("layout: %w", err)
	}
	opts.Logger.Debug("laid out pathway",
		"rows", len(res.Rows),
		"arrows", res.Arrows,
		"multitail", res.MultitailArrows)

	var buf bytes.Buffer
	if err := rxio.WriteJSON(rxio.FromPathway(p), &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), r.ttl(cache.TTLPathway)); err != nil {
			r.Logger.Warn("pathway cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "pathway", buf.Len())
		}
	}
	return p, hash, false, nil
}

func (r *Runner) cachedPathway(ctx context.Context, key string) (*reaction.Pathway, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "pathway")
		return nil, false
	}
	doc, err := rxio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	p, err := doc.Pathway()
	if err != nil {
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "pathway")
	return p, true
}

// RenderWithCacheInfo renders every requested format of a laid-out pathway.
// hash identifies the pathway, as returned by [Runner.PathwayWithCacheInfo].
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *reaction.Pathway, hash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && !opts.Refresh {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, p, renderOpts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	for format, data := range rendered {
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
