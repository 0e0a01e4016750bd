package caret

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightLiterals(t *testing.T) {
	root, p1, _, hello, _ := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	// A text leaf weighs its rune count; a paragraph adds two marker units.
	assert.Equal(t, 5, engine.Weight(hello))
	assert.Equal(t, 7, engine.Weight(p1))
	assert.Equal(t, 16, engine.TotalWeight())
}

func TestWeightVoidContainer(t *testing.T) {
	root := NewContainer("doc")
	br := NewVoidContainer("br")
	require.NoError(t, root.AppendChild(br))
	engine := newTestEngine(t, Options{Root: root})

	assert.Equal(t, 1, engine.Weight(br))
	assert.Equal(t, 3, engine.TotalWeight())
}

func TestWeightIgnoresInvisibleNodes(t *testing.T) {
	root := NewContainer("doc")
	meta := NewContainer("meta")
	require.NoError(t, meta.AppendChild(NewText("hidden")))
	pi := NewOther("pi")
	require.NoError(t, root.AppendChild(meta))
	require.NoError(t, root.AppendChild(pi))

	engine := newTestEngine(t, Options{
		Root:   root,
		Ignore: func(n *Node) bool { return n.Name() == "meta" },
	})

	assert.Equal(t, 0, engine.Weight(meta))
	assert.Equal(t, 0, engine.Weight(pi))
	assert.Equal(t, 2, engine.TotalWeight())
}

func TestWeightCacheStaleDetection(t *testing.T) {
	root, _, _, _, world := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root, CacheWeights: true})

	require.Equal(t, 16, engine.TotalWeight())

	// Mutating content does not refresh the cache; the total is stale until
	// the caller invalidates the mutated leaf's ancestor chain.
	require.NoError(t, world.SetText("worlds"))
	assert.Equal(t, 16, engine.TotalWeight())

	engine.InvalidateWeight(world)
	assert.Equal(t, 17, engine.TotalWeight())
}

func TestWeightWithoutCacheTracksMutation(t *testing.T) {
	root, _, _, _, world := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	require.Equal(t, 16, engine.TotalWeight())
	require.NoError(t, world.SetText("worlds"))
	assert.Equal(t, 17, engine.TotalWeight())
}

func TestOffsetByAnchor(t *testing.T) {
	root, p1, p2, hello, world := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	cases := []struct {
		anchor Anchor
		want   int
	}{
		{Anchor{Node: hello, Offset: 0}, 0},
		{Anchor{Node: hello, Offset: 3}, 3},
		{Anchor{Node: hello, Offset: 5}, 5},
		{Anchor{Node: world, Offset: 0}, 7},
		{Anchor{Node: world, Offset: 5}, 12},
		{Anchor{Node: p1, Offset: 0}, 0},
		{Anchor{Node: p1, Offset: 1}, 5},
		{Anchor{Node: p2, Offset: 1}, 12},
		{Anchor{Node: root, Offset: 0}, 0},
		{Anchor{Node: root, Offset: 1}, 7},
		{Anchor{Node: root, Offset: 2}, 14},
	}
	for _, tc := range cases {
		got, err := engine.OffsetByAnchor(tc.anchor)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, got, "anchor %s[%d]", tc.anchor.Node.Kind(), tc.anchor.Offset)
	}
}

func TestOffsetByAnchorErrors(t *testing.T) {
	root, _, _, hello, _ := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	_, err := engine.OffsetByAnchor(Anchor{})
	require.ErrorIs(t, err, ErrInvalidAnchor)

	_, err = engine.OffsetByAnchor(Anchor{Node: hello, Offset: 9})
	require.ErrorIs(t, err, ErrInvalidAnchor)

	// A detached subtree's ascent never reaches the root.
	stray := NewContainer("p")
	leaf := NewText("adrift")
	require.NoError(t, stray.AppendChild(leaf))
	_, err = engine.OffsetByAnchor(Anchor{Node: leaf, Offset: 0})
	require.ErrorIs(t, err, ErrInvalidOffsetAnchor)
}

func TestAnchorByOffset(t *testing.T) {
	root, p1, p2, hello, world := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	cases := []struct {
		offset     int
		wantNode   *Node
		wantOffset int
	}{
		{0, hello, 0},
		{3, hello, 3},
		{5, p1, 1},  // gap after "hello"
		{7, world, 0},
		{9, world, 2},
		{12, p2, 1}, // gap after "world"
		{14, root, 2},
	}
	for _, tc := range cases {
		a, err := engine.AnchorByOffset(tc.offset)
		require.NoErrorf(t, err, "offset %d", tc.offset)
		require.Samef(t, tc.wantNode, a.Node, "offset %d", tc.offset)
		assert.Equalf(t, tc.wantOffset, a.Offset, "offset %d", tc.offset)
	}
}

func TestAnchorByOffsetOutOfRange(t *testing.T) {
	root, _, _, _, _ := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	_, err := engine.AnchorByOffset(-1)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = engine.AnchorByOffset(16)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestAnchorByOffsetIn(t *testing.T) {
	root, _, _, hello, _ := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	// Text base: the offset addresses the leaf's content directly.
	a, err := engine.AnchorByOffsetIn(hello, 3)
	require.NoError(t, err)
	require.Same(t, hello, a.Node)
	assert.Equal(t, 3, a.Offset)

	_, err = engine.AnchorByOffsetIn(hello, 6)
	require.ErrorIs(t, err, ErrInvalidSearch)

	// A root base matches the document-level conversion.
	a, err = engine.AnchorByOffsetIn(root, 7)
	require.NoError(t, err)
	b, err := engine.AnchorByOffset(7)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

// canonicalText rewrites a container gap anchor to the equivalent position in
// an adjacent text leaf, when one exists, so round-trip comparisons have a
// single representation per linear position.
func canonicalText(a Anchor) Anchor {
	if a.Node.Kind() != KindContainer {
		return a
	}
	if ch := a.Node.Child(a.Offset); ch != nil && ch.Kind() == KindText {
		return Anchor{Node: ch, Offset: 0}
	}
	if ch := a.Node.Child(a.Offset - 1); ch != nil && ch.Kind() == KindText {
		return Anchor{Node: ch, Offset: ch.RuneLen()}
	}
	return a
}

func TestOffsetAnchorRoundTrip(t *testing.T) {
	root, _, _, hello, world := buildParagraphDoc(t)
	engine := newTestEngine(t, Options{Root: root})

	for _, leaf := range []*Node{hello, world} {
		for offset := 0; offset <= leaf.RuneLen(); offset++ {
			a := Anchor{Node: leaf, Offset: offset}
			t.Run(fmt.Sprintf("%s_%d", leaf.Text(), offset), func(t *testing.T) {
				linear, err := engine.OffsetByAnchor(a)
				require.NoError(t, err)
				back, err := engine.AnchorByOffset(linear)
				require.NoError(t, err)
				back = canonicalText(back)
				require.Same(t, a.Node, back.Node)
				assert.Equal(t, a.Offset, back.Offset)
			})
		}
	}
}

func TestWeightCacheSpeedsDescent(t *testing.T) {
	// A deeper tree exercising cached descent: sections of paragraphs.
	root := NewContainer("doc")
	var lastLeaf *Node
	for s := 0; s < 3; s++ {
		section := NewContainer("section")
		for p := 0; p < 4; p++ {
			para := NewContainer("p")
			lastLeaf = NewText("text")
			require.NoError(t, para.AppendChild(lastLeaf))
			require.NoError(t, section.AppendChild(para))
		}
		require.NoError(t, root.AppendChild(section))
	}
	engine := newTestEngine(t, Options{Root: root, CacheWeights: true})

	// paragraph = 4+2 = 6, section = 4*6+2 = 26, document = 3*26+2 = 80.
	require.Equal(t, 80, engine.TotalWeight())

	linear, err := engine.OffsetByAnchor(Anchor{Node: lastLeaf, Offset: 4})
	require.NoError(t, err)
	back, err := engine.AnchorByOffset(linear)
	require.NoError(t, err)
	back = canonicalText(back)
	require.Same(t, lastLeaf, back.Node)
	assert.Equal(t, 4, back.Offset)
}
