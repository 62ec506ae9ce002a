package wildcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealdice/wildseal/wildcard/types"
)

func TestExtractDirectivesArity(t *testing.T) {
	as := assert.New(t)

	cases := []struct {
		text      string
		primary   float64
		secondary float64
	}{
		{"<lora:foo>", 1.0, 1.0},
		{"<lora:foo:0.8>", 0.8, 0.8},
		{"<lora:foo:0.8:0.3>", 0.8, 0.3},
		{"<lora:foo:abc>", 1.0, 1.0},
		{"<lora:foo:0.8:abc>", 0.8, 1.0},
		{"<lora:foo:abc:0.3>", 1.0, 0.3},
		{"<lora:foo::0.3>", 1.0, 0.3},
		{"<lora:foo:0.8:>", 0.8, 0.8},
		{"<lora: foo : 0.5 >", 0.5, 0.5},
	}

	for _, c := range cases {
		directives, clean := ExtractDirectives(c.text, "lora")
		require.Len(t, directives, 1, c.text)
		as.Equal("foo", directives[0].RawName, c.text)
		as.Equal(c.primary, directives[0].PrimaryStrength, c.text)
		as.Equal(c.secondary, directives[0].SecondaryStrength, c.text)
		as.Equal("", clean, c.text)
	}
}

func TestExtractDirectivesCleanup(t *testing.T) {
	directives, clean := ExtractDirectives("a  <lora:foo:0.5>   b", "lora")
	assert.Equal(t, "a b", clean)
	assert.Equal(t, []*types.ModifierDirective{
		{Name: "foo", RawName: "foo", PrimaryStrength: 0.5, SecondaryStrength: 0.5},
	}, directives)
}

func TestExtractDirectivesOrderAndEmptyNames(t *testing.T) {
	as := assert.New(t)

	directives, clean := ExtractDirectives("<lora:b:1> x <lora: :0.5>\n\ty <lora:a> <hypernet:h:1>", "")
	as.Equal("x y <hypernet:h:1>", clean)
	require.Len(t, directives, 2)
	as.Equal("b", directives[0].RawName)
	as.Equal("a", directives[1].RawName)
}

func TestExtractDirectivesCustomKeyword(t *testing.T) {
	directives, clean := ExtractDirectives("1girl <hypernet:style:0.7> <lora:kept>", "hypernet")
	require.Len(t, directives, 1)
	assert.Equal(t, "style", directives[0].RawName)
	assert.Equal(t, 0.7, directives[0].PrimaryStrength)
	assert.Equal(t, "1girl <lora:kept>", clean)
}

func TestExtractDirectivesNone(t *testing.T) {
	directives, clean := ExtractDirectives("  just   text ", "lora")
	assert.Empty(t, directives)
	assert.Equal(t, "just text", clean)
}
