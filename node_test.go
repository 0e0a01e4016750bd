package caret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKinds(t *testing.T) {
	p := NewContainer("p")
	assert.Equal(t, KindContainer, p.Kind())
	assert.Equal(t, "p", p.Name())
	assert.False(t, p.SingleClosing())

	br := NewVoidContainer("br")
	assert.Equal(t, KindContainer, br.Kind())
	assert.True(t, br.SingleClosing())

	txt := NewText("hi")
	assert.Equal(t, KindText, txt.Kind())
	assert.Equal(t, "hi", txt.Text())
	assert.Equal(t, 2, txt.RuneLen())

	other := NewOther("comment")
	assert.Equal(t, KindOther, other.Kind())
}

func TestRuneLenCountsRunes(t *testing.T) {
	txt := NewText("héllo")
	assert.Equal(t, 5, txt.RuneLen())

	txt = NewText("안녕")
	assert.Equal(t, 2, txt.RuneLen())
}

func TestAppendAndSiblings(t *testing.T) {
	p := NewContainer("p")
	a := NewText("a")
	b := NewText("b")
	require.NoError(t, p.AppendChild(a))
	require.NoError(t, p.AppendChild(b))

	assert.Equal(t, 2, p.ChildCount())
	require.Same(t, a, p.Child(0))
	require.Same(t, b, p.Child(1))
	assert.Nil(t, p.Child(2))
	assert.Nil(t, p.Child(-1))

	require.Same(t, p, a.Parent())
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 1, b.Index())
	require.Same(t, b, a.NextSibling())
	require.Same(t, a, b.PrevSibling())
	assert.Nil(t, a.PrevSibling())
	assert.Nil(t, b.NextSibling())
}

func TestInsertChildBeforeAndAfter(t *testing.T) {
	p := NewContainer("p")
	a := NewText("a")
	c := NewText("c")
	require.NoError(t, p.AppendChild(a))
	require.NoError(t, p.AppendChild(c))

	b := NewText("b")
	require.NoError(t, p.InsertChildAfter(b, a))
	require.Same(t, b, p.Child(1))
	require.Same(t, c, p.Child(2))

	z := NewText("z")
	require.NoError(t, p.InsertChildBefore(z, a))
	require.Same(t, z, p.Child(0))
	require.Same(t, a, p.Child(1))
}

func TestInsertRejectsForeignReference(t *testing.T) {
	p := NewContainer("p")
	q := NewContainer("q")
	ref := NewText("ref")
	require.NoError(t, q.AppendChild(ref))

	err := p.InsertChildBefore(NewText("x"), ref)
	require.ErrorIs(t, err, ErrNotAChild)

	err = p.InsertChildAfter(NewText("x"), nil)
	require.ErrorIs(t, err, ErrNotAChild)
}

func TestAppendRejectsNonContainerParent(t *testing.T) {
	txt := NewText("leaf")
	err := txt.AppendChild(NewText("x"))
	require.ErrorIs(t, err, ErrNotAContainer)
}

func TestAppendReparents(t *testing.T) {
	p := NewContainer("p")
	q := NewContainer("q")
	child := NewText("x")
	require.NoError(t, p.AppendChild(child))
	require.NoError(t, q.AppendChild(child))

	assert.Equal(t, 0, p.ChildCount())
	require.Same(t, q, child.Parent())
}

func TestDetach(t *testing.T) {
	p := NewContainer("p")
	a := NewText("a")
	b := NewText("b")
	require.NoError(t, p.AppendChild(a))
	require.NoError(t, p.AppendChild(b))

	a.Detach()
	assert.Nil(t, a.Parent())
	assert.Equal(t, -1, a.Index())
	assert.Equal(t, 1, p.ChildCount())
	require.Same(t, b, p.Child(0))

	// Detaching twice is a no-op.
	a.Detach()
	assert.Nil(t, a.Parent())
}

func TestSetText(t *testing.T) {
	txt := NewText("old")
	require.NoError(t, txt.SetText("new"))
	assert.Equal(t, "new", txt.Text())

	p := NewContainer("p")
	require.ErrorIs(t, p.SetText("nope"), ErrNotAText)
}

func TestChildrenReturnsCopy(t *testing.T) {
	p := NewContainer("p")
	require.NoError(t, p.AppendChild(NewText("a")))

	kids := p.Children()
	kids[0] = nil
	require.NotNil(t, p.Child(0))
}

func TestToXML(t *testing.T) {
	root, _, _, _, _ := buildParagraphDoc(t)
	assert.Equal(t, "<doc><p>hello</p><p>world</p></doc>", ToXML(root))
}

func TestToXMLVoidAndEscaping(t *testing.T) {
	root := NewContainer("doc")
	require.NoError(t, root.AppendChild(NewText("a < b & c")))
	require.NoError(t, root.AppendChild(NewVoidContainer("br")))
	require.NoError(t, root.AppendChild(NewOther("pi")))

	assert.Equal(t, "<doc>a &lt; b &amp; c<br/><!--pi--></doc>", ToXML(root))
}
