package wildcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	as := assert.New(t)
	as.Equal("characters/mystyle", NormalizeName(`Characters\MyStyle.safetensors`, DefaultModelSuffixes))
	as.Equal("style", NormalizeName("Style.PT", DefaultModelSuffixes))
	as.Equal("style.ckpt", NormalizeName("style.ckpt", DefaultModelSuffixes))
}

func TestMatchCanonicalName(t *testing.T) {
	as := assert.New(t)
	names := []string{
		"characters/MyStyle.safetensors",
		`styles\Ink.pt`,
		"a/Same.safetensors",
		"b/Same.safetensors",
		"Same.safetensors",
	}

	got, ok := MatchCanonicalName("MyStyle", names, DefaultModelSuffixes)
	as.True(ok)
	as.Equal("characters/MyStyle.safetensors", got)

	got, ok = MatchCanonicalName(`characters\mystyle.safetensors`, names, DefaultModelSuffixes)
	as.True(ok)
	as.Equal("characters/MyStyle.safetensors", got)

	got, ok = MatchCanonicalName("styles/ink", names, DefaultModelSuffixes)
	as.True(ok)
	as.Equal(`styles\Ink.pt`, got)

	got, ok = MatchCanonicalName("b/same", names, DefaultModelSuffixes)
	as.True(ok)
	as.Equal("b/Same.safetensors", got)

	// 完整路径优先于按文件名匹配
	got, ok = MatchCanonicalName("same", names, DefaultModelSuffixes)
	as.True(ok)
	as.Equal("Same.safetensors", got)

	_, ok = MatchCanonicalName("c/same", names, DefaultModelSuffixes)
	as.False(ok)

	_, ok = MatchCanonicalName("missing_one", names, DefaultModelSuffixes)
	as.False(ok)

	_, ok = MatchCanonicalName("MyStyle", nil, DefaultModelSuffixes)
	as.False(ok)
}

func TestMatchCanonicalNameFirstInRegistryOrder(t *testing.T) {
	names := []string{"x/Dup.safetensors", "y/Dup.pt"}
	got, ok := MatchCanonicalName("dup", names, DefaultModelSuffixes)
	assert.True(t, ok)
	assert.Equal(t, "x/Dup.safetensors", got)
}
