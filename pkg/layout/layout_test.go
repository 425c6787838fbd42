package layout

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rxnpath/pkg/detect"
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

type box struct{ r geometry.Rect }

func (b *box) BoundingBox() geometry.Rect    { return b.r }
func (b *box) Translate(offset geometry.Vec) { b.r = geometry.Translate(b.r, offset) }

// pathwayOf builds a pathway from steps given as reactant and product pool
// indices over n unit molecules scattered on a line.
func pathwayOf(t *testing.T, n int, steps [][2][]int) *reaction.Pathway {
	t.Helper()
	p := reaction.New()
	for i := range n {
		p.AddMolecule(&box{r: geometry.RectAround(geometry.V(float64(i)*0.3, 0), 0.5, 0.5)})
	}
	for _, s := range steps {
		p.AddReaction(reaction.Reaction{Reactants: s[0], Products: s[1], Arrow: reaction.NoArrow})
	}
	for pre, r := range p.Reactions {
		for succ, other := range p.Reactions {
			var slots []int
			for slot, m := range other.Reactants {
				if slices.Contains(r.Products, m) {
					slots = append(slots, slot)
				}
			}
			if len(slots) > 0 {
				require.NoError(t, p.Link(pre, succ, slots))
			}
		}
	}
	require.NoError(t, p.Validate())
	return p
}

func rowBoxes(res Result) []geometry.Rect {
	out := make([]geometry.Rect, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = r.Box
	}
	return out
}

// assertTree checks that no two rows overlap and that every row lies left
// of the row it feeds.
func assertTree(t *testing.T, res Result) {
	t.Helper()
	assert.False(t, geometry.RectsOverlap(rowBoxes(res)), "rows overlap")

	byReaction := make(map[int]geometry.Rect)
	for _, r := range res.Rows {
		if r.Reaction >= 0 {
			byReaction[r.Reaction] = r.Box
		}
	}
	for _, r := range res.Rows {
		if r.Parent < 0 {
			continue
		}
		parent, ok := byReaction[r.Parent]
		require.True(t, ok)
		assert.Less(t, r.Box.Max.X, parent.Min.X, "row of reaction %d at depth %d", r.Reaction, r.Depth)
	}
}

type step struct {
	reactants string
	catalysts string
	next      string
	name      string
}

// shape describes a pathway independent of reaction order: every reaction
// keyed by its products.
func shape(p *reaction.Pathway) map[string]step {
	key := func(ids []int) string {
		s := slices.Clone(ids)
		slices.Sort(s)
		return fmt.Sprint(s)
	}
	out := make(map[string]step)
	for i, r := range p.Reactions {
		st := step{reactants: key(r.Reactants), catalysts: key(r.Catalysts), name: r.Name() + "|" + r.Condition()}
		if succ := p.Nodes[i].Successors; len(succ) > 0 {
			st.next = key(p.Reactions[succ[0].Reaction].Products)
		}
		out[key(r.Products)] = st
	}
	return out
}

func roundTrip(t *testing.T, p *reaction.Pathway) {
	t.Helper()
	want := shape(p)
	got, err := detect.New(detect.Options{}).Detect(detect.MoleculeList(p.Molecules), &p.Meta)
	require.NoError(t, err)
	assert.Equal(t, want, shape(got))
}

func TestLinearChain(t *testing.T) {
	// A -> B -> C -> D
	p := pathwayOf(t, 4, [][2][]int{
		{{0}, {1}},
		{{1}, {2}},
		{{2}, {3}},
	})
	require.Equal(t, []int{2}, p.RootReactionIndices())

	res, err := New(p, Options{}).Apply()
	require.NoError(t, err)

	reactionRows := 0
	for _, r := range res.Rows {
		if r.Reaction >= 0 {
			reactionRows++
		}
	}
	assert.Equal(t, 3, reactionRows)
	assert.Equal(t, 3, res.Arrows)
	assert.Zero(t, res.MultitailArrows)
	assertTree(t, res)

	for i, r := range p.Reactions {
		assert.NotEqual(t, reaction.NoArrow, r.Arrow, "reaction %d", i)
	}
	roundTrip(t, p)
}

func TestConvergentWithLabels(t *testing.T) {
	// A -> B; B + C -> D over catalyst K
	p := pathwayOf(t, 5, [][2][]int{
		{{0}, {1}},
		{{1, 2}, {3}},
	})
	p.Reactions[1].Catalysts = []int{4}
	p.Reactions[1].SetProperty(reaction.PropertyName, "Coupling")
	p.Reactions[1].SetProperty(reaction.PropertyCondition, "rt")

	res, err := New(p, Options{}).Apply()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Arrows)
	assert.Equal(t, 1, res.MultitailArrows)
	assertTree(t, res)

	var texts []string
	for _, txt := range p.Meta.Texts() {
		texts = append(texts, txt.Content)
	}
	assert.Equal(t, []string{"Coupling", "rt"}, texts)

	cat := p.Molecules[4].BoundingBox()
	product := p.Molecules[3].BoundingBox()
	assert.Greater(t, cat.Min.Y, product.Min.Y, "catalyst sits above the connector")

	roundTrip(t, p)
}

func TestDeepSiblings(t *testing.T) {
	// A -> B -> C, E -> F -> G, C + G -> H, H -> I
	p := pathwayOf(t, 9, [][2][]int{
		{{0}, {1}},
		{{1}, {2}},
		{{3}, {4}},
		{{4}, {5}},
		{{2, 5}, {6}},
		{{6}, {7, 8}},
	})

	res, err := New(p, Options{}).Apply()
	require.NoError(t, err)
	assertTree(t, res)
	assert.Equal(t, 1, res.MultitailArrows)
	assert.Equal(t, 5, res.Arrows)

	plus := 0
	for range p.Meta.Pluses() {
		plus++
	}
	assert.Equal(t, 1, plus, "one plus between the two final products")

	roundTrip(t, p)
}

func TestSeveralRoots(t *testing.T) {
	p := pathwayOf(t, 4, [][2][]int{
		{{0}, {1}},
		{{2}, {3}},
	})
	require.Len(t, p.RootReactionIndices(), 2)

	res, err := New(p, Options{}).Apply()
	require.NoError(t, err)
	assertTree(t, res)
	roundTrip(t, p)
}

func TestApplyTwice(t *testing.T) {
	p := pathwayOf(t, 2, [][2][]int{{{0}, {1}}})
	l := New(p, Options{})
	_, err := l.Apply()
	require.NoError(t, err)
	_, err = l.Apply()
	assert.ErrorIs(t, err, ErrReused)
}

func TestWalkerCentresParents(t *testing.T) {
	p := pathwayOf(t, 4, [][2][]int{
		{{0, 1, 2}, {3}},
	})

	l := New(p, Options{})
	_, err := l.Apply()
	require.NoError(t, err)

	// One reaction with only starting materials has a single leaf child and
	// shares its y.
	require.Len(t, l.items, 2)
	assert.InDelta(t, l.items[0].y, l.items[1].y, 1e-9)
	assert.Equal(t, []int{1}, l.items[0].children)
}

func TestFreeTextsMoveBelowTrees(t *testing.T) {
	p := pathwayOf(t, 2, [][2][]int{{{0}, {1}}})
	stray := p.AddMolecule(&box{r: geometry.RectAround(geometry.V(40, 40), 0.5, 0.5)})
	p.Unassigned = append(p.Unassigned, stray)
	p.Meta.Add(&reaction.Text{Box: geometry.NewRect(geometry.V(50, 50), geometry.V(52, 51)), Content: "note"})

	res, err := New(p, Options{}).Apply()
	require.NoError(t, err)

	var note *reaction.Text
	for _, txt := range p.Meta.Texts() {
		if txt.Content == "note" {
			note = txt
		}
	}
	require.NotNil(t, note)
	assert.InDelta(t, 2, note.Box.Width(), 1e-9)
	assert.InDelta(t, 1, note.Box.Height(), 1e-9)

	for _, r := range res.Rows {
		assert.Less(t, note.Box.Max.Y, r.Box.Min.Y, "row %d", r.Reaction)
	}
	assert.Less(t, note.Box.Max.Y, p.Molecules[stray].BoundingBox().Min.Y)
	assert.InDelta(t, note.Box.Min.Y, res.Bounds.Min.Y, 1e-9, "the note is the lowest object")
}
