package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device/recorder"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentation_SiblingColorsUnderOneShader(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	for i, c := range []common.Color4{red, green, blue} {
		p := NewColorNode(c)
		p.AddChild(newSquare(t, rec, sn, string(rune('a'+i))))
		sn.AddChild(p)
	}

	traverse(t, rec, sn, common.Identity4())
	draws := rec.Draws()
	require.Len(t, draws, 3)

	loc := sn.Handles().Get(shader.SlotColor)
	for i, want := range []common.Color4{red, green, blue} {
		got, ok := draws[i].Vec4(loc)
		require.True(t, ok)
		assert.Equal(t, want.Array(), got)
	}
}

func TestPresentation_BlendScopedToSubtree(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)

	blended := NewColorBlendingNode(common.Color4{G: 1, A: 0.5}, true)
	blended.AddChild(newSquare(t, rec, sn, "inside"))
	sn.AddChild(blended)
	sn.AddChild(NewColorNode(red, WithChildren(newSquare(t, rec, sn, "after"))))

	traverse(t, rec, sn, common.Identity4())
	draws := rec.Draws()
	require.Len(t, draws, 2)
	assert.True(t, draws[0].Blend)
	assert.False(t, draws[1].Blend)
	assert.False(t, rec.Blending())
	assert.Len(t, rec.CallsOf("EnableBlend"), 1)
	assert.Len(t, rec.CallsOf("DisableBlend"), 1)
}

func TestPresentation_NestedBlendTogglesOnce(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)

	outer := NewColorBlendingNode(red, true)
	inner := NewColorBlendingNode(green, true)
	inner.AddChild(newSquare(t, rec, sn, "deep"))
	outer.AddChild(inner)
	outer.AddChild(newSquare(t, rec, sn, "shallow"))
	sn.AddChild(outer)

	traverse(t, rec, sn, common.Identity4())
	draws := rec.Draws()
	require.Len(t, draws, 2)
	assert.True(t, draws[0].Blend)
	assert.True(t, draws[1].Blend, "inner node must not disable blending its ancestor enabled")
	assert.Len(t, rec.CallsOf("EnableBlend"), 1)
	assert.Len(t, rec.CallsOf("DisableBlend"), 1)
}

func TestPresentation_RestoresOuterColor(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)

	outer := NewColorNode(red)
	inner := NewColorNode(green)
	inner.AddChild(newSquare(t, rec, sn, "green"))
	outer.AddChild(inner)
	outer.AddChild(newSquare(t, rec, sn, "red"))
	sn.AddChild(outer)

	traverse(t, rec, sn, common.Identity4())
	draws := rec.Draws()
	require.Len(t, draws, 2)

	loc := sn.Handles().Get(shader.SlotColor)
	got, _ := draws[0].Vec4(loc)
	assert.Equal(t, green.Array(), got)
	got, _ = draws[1].Vec4(loc)
	assert.Equal(t, red.Array(), got)
}

func TestPresentation_ColorAboveShaderReachesIt(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	sn.AddChild(newSquare(t, rec, sn, "sq"))

	root := NewColorNode(blue)
	root.AddChild(sn)
	traverse(t, rec, root, common.Identity4())

	draws := rec.Draws()
	require.Len(t, draws, 1)
	got, ok := draws[0].Vec4(sn.Handles().Get(shader.SlotColor))
	require.True(t, ok)
	assert.Equal(t, blue.Array(), got)
}

func TestPresentation_Setters(t *testing.T) {
	p := NewColorNode(red)
	assert.False(t, p.Blending())
	p.SetBlending(true)
	p.SetColor(green)
	assert.True(t, p.Blending())
	assert.Equal(t, green, p.Color())
}

func TestPresentation_TopLevelColorDoesNotReachSibling(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	sn.AddChild(NewColorNode(red, WithChildren(newSquare(t, rec, sn, "a"))))
	sn.AddChild(newSquare(t, rec, sn, "b"))

	state := traverse(t, rec, sn, common.Identity4())
	draws := rec.Draws()
	require.Len(t, draws, 2)

	loc := sn.Handles().Get(shader.SlotColor)
	got, _ := draws[0].Vec4(loc)
	assert.Equal(t, red.Array(), got)
	got, ok := draws[1].Vec4(loc)
	require.True(t, ok)
	assert.Equal(t, DefaultColor.Array(), got)
	assert.False(t, state.HasColor)
	assert.Equal(t, DefaultColor, state.Color)
}
