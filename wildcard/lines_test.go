package wildcard

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLines(t *testing.T) {
	logs := observeWarnings(t)
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt": "  first \r\n\n\t\nsecond\nthird  ",
	})

	assert.Equal(t, []string{"first", "second", "third"}, LoadLines(filepath.Join(dir, "a.txt")))
	assert.Empty(t, LoadLines(filepath.Join(dir, "missing.txt")))
	assert.Empty(t, LoadLines(dir))
	assert.Equal(t, 2, logs.FilterMessageSnippet("error reading").Len())
}

func TestSelectLine(t *testing.T) {
	as := assert.New(t)
	lines := []string{"l1", "l2", "l3"}

	for seed, want := range map[uint64]string{1: "l1", 2: "l2", 3: "l3", 4: "l1", 0: "l3", math.MaxUint64: "l3"} {
		got, err := SelectLine(lines, seed)
		as.NoError(err)
		as.Equal(want, got, "seed %d", seed)
	}

	_, err := SelectLine(nil, 1)
	as.ErrorIs(err, ErrNoLines)
}

func TestListTemplates(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.txt":         "x",
		"a/z.txt":       "x",
		"a/ignored.yml": "x",
	})

	files, err := ListTemplates(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/z.txt", "b.txt"}, files)

	_, err = ListTemplates(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)
}

func TestNormalizeSeed(t *testing.T) {
	as := assert.New(t)
	as.Equal(uint64(150), NormalizeSeed(-150, 1))
	as.Equal(uint64(150), NormalizeSeed(150, 1))
	as.Equal(uint64(1), NormalizeSeed(0, 1))
	as.Equal(uint64(0), NormalizeSeed(0, 0))
	as.Equal(uint64(10), NormalizeSeed(-3, 10))
	as.Equal(uint64(math.MaxInt64)+1, NormalizeSeed(math.MinInt64, 1))
}

func TestRandomSeed(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.GreaterOrEqual(t, RandomSeed(), uint64(1))
	}
}
