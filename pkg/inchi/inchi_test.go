package inchi

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rxnpath/pkg/cache"
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/sketch"
)

const ethanolKey = "LFQSCWFLJHTTHZ-UHFFFAOYSA-N"

func ethanol() *sketch.Fragment {
	return &sketch.Fragment{
		Atoms: []sketch.Atom{
			{Symbol: "C", Pos: geometry.V(0, 0)},
			{Symbol: "C", Pos: geometry.V(1, 0.5)},
			{Symbol: "O", Pos: geometry.V(2, 0)},
		},
		Bonds:    []sketch.Bond{{A: 0, B: 1, Order: 1}, {A: 1, B: 2, Order: 1}},
		InChI:    "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3",
		InChIKey: ethanolKey,
	}
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey(ethanolKey))
	assert.False(t, ValidKey("LFQSCWFLJHTTHZ-UHFFFAOYSA"))
	assert.False(t, ValidKey("lfqscwfljhtthz-uhffffaoysa-n"))
}

func TestPropertyOracle(t *testing.T) {
	ctx := context.Background()

	id, err := PropertyOracle{}.Identify(ctx, ethanol())
	require.NoError(t, err)
	assert.Equal(t, ethanolKey, id.Key)

	bare := &sketch.Fragment{Label: "A"}
	_, err = PropertyOracle{}.Identify(ctx, bare)
	assert.ErrorIs(t, err, ErrNoIdentity)

	bare.InChIKey = "A"
	_, err = PropertyOracle{}.Identify(ctx, bare)
	assert.ErrorIs(t, err, ErrInvalidKey)

	id, err = PropertyOracle{Lenient: true}.Identify(ctx, bare)
	require.NoError(t, err)
	assert.Equal(t, "A", id.Key)
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    Identity
		wantErr bool
	}{
		{"obabel", "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3 " + ethanolKey + "\n", Identity{InChI: "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3", Key: ethanolKey}, false},
		{"prefixed key", "InChIKey=" + ethanolKey, Identity{Key: ethanolKey}, false},
		{"no key", "InChI=1S/H2O/h1H2", Identity{}, true},
		{"empty", "", Identity{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutput(tt.out)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoIdentity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCachedOracle(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	var calls atomic.Int32
	inner := OracleFunc(func(ctx context.Context, m reaction.Molecule) (Identity, error) {
		calls.Add(1)
		return PropertyOracle{}.Identify(ctx, m)
	})
	o := NewCachedOracle(inner, fc, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := o.Identify(ctx, ethanol())
			assert.NoError(t, err)
			assert.Equal(t, ethanolKey, id.Key)
		}()
	}
	wg.Wait()
	first := calls.Load()
	assert.GreaterOrEqual(t, first, int32(1))

	moved := ethanol()
	moved.Translate(geometry.V(30, 30))
	_, err = o.Identify(ctx, moved)
	require.NoError(t, err)
	assert.Equal(t, first, calls.Load(), "moved molecule is served from cache")
}

func TestCachedOracleError(t *testing.T) {
	errBoom := errors.New("boom")
	o := NewCachedOracle(OracleFunc(func(context.Context, reaction.Molecule) (Identity, error) {
		return Identity{}, errBoom
	}), cache.NewNullCache(), nil, nil)

	_, err := o.Identify(context.Background(), ethanol())
	assert.ErrorIs(t, err, errBoom)
}
