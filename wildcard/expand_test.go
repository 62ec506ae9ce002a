package wildcard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sealdice/wildseal/wildcard/types"
)

func TestParseOptions(t *testing.T) {
	as := assert.New(t)

	opts := ParseOptions("1::a|b|x::c|-2::d|2.5::e::f| 3 ::g")
	as.Equal([]types.WeightedOption{
		{Text: "a", Weight: 1},
		{Text: "b", Weight: 1},
		{Text: "x::c", Weight: 1},
		{Text: "d", Weight: 0},
		{Text: "e::f", Weight: 2.5},
		{Text: "g", Weight: 3},
	}, opts)
}

func TestParseOptionsKeepsEmptySegments(t *testing.T) {
	opts := ParseOptions("a||b|")
	assert.Len(t, opts, 4)
	assert.Equal(t, "", opts[1].Text)
	assert.Equal(t, "", opts[3].Text)
}

func TestExpandGroupInnermostFirst(t *testing.T) {
	as := assert.New(t)
	ctx := NewResolutionContext(1)

	text, ok := ExpandGroup(ctx, "pre {x|{y|y}} post")
	as.True(ok)
	as.Equal("pre {x|y} post", text)

	text, ok = ExpandGroup(ctx, text)
	as.True(ok)
	as.Contains([]string{"pre x post", "pre y post"}, text)

	_, ok = ExpandGroup(ctx, text)
	as.False(ok)
}

func TestExpandGroupIgnoresEmptyBraces(t *testing.T) {
	ctx := NewResolutionContext(1)
	text, ok := ExpandGroup(ctx, "a {} b")
	assert.False(t, ok)
	assert.Equal(t, "a {} b", text)
}

func TestExpandGroupAllZeroWeightsPicksFirst(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		text, ok := ExpandGroup(NewResolutionContext(seed), "{0::a|0::b|0::c}")
		assert.True(t, ok)
		assert.Equal(t, "a", text)
	}
}

func TestExpandGroupNeverPicksZeroWeight(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		text, _ := ExpandGroup(NewResolutionContext(seed), "{0::a|1::b|0::c}")
		assert.Equal(t, "b", text)
	}
}

func TestExpandGroupConsumesOneSample(t *testing.T) {
	as := assert.New(t)

	for _, group := range []string{"{a|b|c}", "{0::a|0::b}", "{solo}"} {
		expanded := NewResolutionContext(42)
		_, ok := ExpandGroup(expanded, group)
		as.True(ok)

		ref := NewResolutionContext(42)
		ref.float64()

		as.Equal(ref.float64(), expanded.float64(), "group %s", group)
	}
}

func TestPickWeightedEmpty(t *testing.T) {
	assert.Equal(t, "", pickWeighted(NewResolutionContext(3), nil))
}
