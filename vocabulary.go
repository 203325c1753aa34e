package postquery

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tagsearch/postquery/internal/vocabtrie"
)

// Vocabulary is the trie-indexed form of the metatag name list a caller
// passes to Parse. Building it once up front turns "does any vocabulary
// entry match here, preferring the longest" into a single trie walk
// instead of trying every candidate in turn for every metatag attempt,
// which is what the source this was distilled from does (and
// names as a latent bug when prefixes overlap, spec.md §9).
type Vocabulary struct {
	trie *vocabtrie.Trie
}

// NewVocabulary builds a Vocabulary from the caller-supplied metatag names
// (spec.md §6.3: ASCII, lowercase, no ':' or whitespace). Names are taken
// as given; NewVocabulary does not validate or lowercase them — a caller
// handing in a malformed vocabulary simply gets a vocabulary that never
// matches the malformed entries, not an error.
func NewVocabulary(names []string) *Vocabulary {
	t := vocabtrie.New()
	for _, name := range names {
		if name == "" {
			continue
		}
		t.Insert(name)
	}
	return &Vocabulary{trie: t}
}

// LongestMatch reports the byte length of the longest vocabulary entry
// that is a prefix of input[pos:], if any.
func (v *Vocabulary) LongestMatch(input []byte, pos int) (length int, ok bool) {
	if v == nil || v.trie == nil {
		return 0, false
	}
	return v.trie.LongestMatch(input, pos)
}

// metatagFile is the shape LoadVocabularyYAML expects, modeled on
// _examples/original_source/test/test.rb's flat METATAGS list.
type metatagFile struct {
	Metatags []string `yaml:"metatags"`
}

// LoadVocabularyYAML reads a metatag vocabulary from a YAML document of
// the form:
//
//	metatags: [user, rating, order, ...]
//
// This is a convenience for assembling the []string that Parse and
// NewVocabulary expect from a file, not a configuration loader for the
// parser itself — Parse never reads one on its own.
func LoadVocabularyYAML(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("post query: reading vocabulary: %w", err)
	}

	var file metatagFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("post query: decoding vocabulary: %w", err)
	}
	return file.Metatags, nil
}
