package postquery

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyLongestMatchPrefersLongerEntry(t *testing.T) {
	t.Parallel()

	v := NewVocabulary([]string{"order", "ordered"})

	length, ok := v.LongestMatch([]byte("ordered:5"), 0)
	require.True(t, ok)
	assert.Equal(t, len("ordered"), length)
}

func TestVocabularyLongestMatchNoEntry(t *testing.T) {
	t.Parallel()

	v := NewVocabulary([]string{"order"})
	_, ok := v.LongestMatch([]byte("rating:safe"), 0)
	assert.False(t, ok)
}

func TestVocabularyLongestMatchAtPosition(t *testing.T) {
	t.Parallel()

	v := NewVocabulary([]string{"user"})
	length, ok := v.LongestMatch([]byte("-user:admin"), 1)
	require.True(t, ok)
	assert.Equal(t, len("user"), length)
}

func TestVocabularyIgnoresEmptyNames(t *testing.T) {
	t.Parallel()

	v := NewVocabulary([]string{"", "order", ""})
	length, ok := v.LongestMatch([]byte("order:asc"), 0)
	require.True(t, ok)
	assert.Equal(t, len("order"), length)
}

func TestNilVocabularyNeverMatches(t *testing.T) {
	t.Parallel()

	var v *Vocabulary
	_, ok := v.LongestMatch([]byte("order:asc"), 0)
	assert.False(t, ok)
}

func TestLoadVocabularyYAML(t *testing.T) {
	t.Parallel()

	f, err := os.Open("testdata/metatags.yaml")
	require.NoError(t, err)
	defer f.Close()

	names, err := LoadVocabularyYAML(f)
	require.NoError(t, err)

	assert.Contains(t, names, "order")
	assert.Contains(t, names, "ordered")
	assert.Contains(t, names, "commentaryupdater")

	v := NewVocabulary(names)
	length, ok := v.LongestMatch([]byte("ordered:desc"), 0)
	require.True(t, ok)
	assert.Equal(t, len("ordered"), length, "longest-prefix match must prefer 'ordered' over 'order'")

	length, ok = v.LongestMatch([]byte("commentaryupdater:5"), 0)
	require.True(t, ok)
	assert.Equal(t, len("commentaryupdater"), length)
}

func TestLoadVocabularyYAMLMalformed(t *testing.T) {
	t.Parallel()

	_, err := LoadVocabularyYAML(strings.NewReader("metatags: [this, is, not: valid: yaml"))
	assert.Error(t, err)
}
