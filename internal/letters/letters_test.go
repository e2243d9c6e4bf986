package letters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDiacritic(t *testing.T) {
	for _, r := range Diacritics() {
		assert.Truef(t, IsDiacritic(r), "expected %U to be a diacritic", r)
	}
	for _, r := range Alphabet() {
		assert.Falsef(t, IsDiacritic(r), "expected %q to be a base letter", r)
	}
	assert.False(t, IsDiacritic(' '))
	for _, r := range []rune{RoundedZero, HighMeem, LowMeem, WaqfSalaa, WaqfSakta, SubscriptAlef} {
		assert.Truef(t, IsDiacritic(r), "expected %U to be a diacritic", r)
	}
	// Nonspacing marks outside the set still count as marks.
	assert.True(t, IsDiacritic('\u0657'))
}

func TestEveryDiacriticHasRelatedMarks(t *testing.T) {
	for _, r := range Diacritics() {
		assert.NotEmptyf(t, RelatedDiacritics(r), "no related marks for %U", r)
	}
}

func TestAlphabetSize(t *testing.T) {
	require.Len(t, Alphabet(), 28)
	require.GreaterOrEqual(t, len(Diacritics()), 4)
}

func TestTablesHaveNoSelfOrDuplicateEntries(t *testing.T) {
	tables := map[string]map[rune][]rune{
		"successors": successors,
		"similar":    similar,
		"likely":     likelyDiacritics,
		"related":    relatedDiacritics,
	}
	for name, table := range tables {
		for key, values := range table {
			seen := map[rune]struct{}{}
			for _, v := range values {
				_, dup := seen[v]
				assert.Falsef(t, dup, "%s[%q] lists %q twice", name, key, v)
				seen[v] = struct{}{}
			}
			if name == "similar" || name == "related" {
				_, self := seen[key]
				assert.Falsef(t, self, "%s[%q] lists itself", name, key)
			}
		}
	}
}

func TestDiacriticTablesOnlyHoldDiacritics(t *testing.T) {
	for key, values := range likelyDiacritics {
		for _, v := range values {
			assert.Truef(t, IsDiacritic(v), "likely[%q] holds non-diacritic %q", key, v)
		}
	}
	for key, values := range relatedDiacritics {
		assert.True(t, IsDiacritic(key))
		for _, v := range values {
			assert.Truef(t, IsDiacritic(v), "related[%U] holds non-diacritic %q", key, v)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	got := Similar('ب')
	require.NotEmpty(t, got)
	got[0] = 'x'
	assert.NotEqual(t, 'x', Similar('ب')[0])
	assert.Nil(t, Similar('x'))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "ب", Display('ب'))
	assert.Equal(t, "\u25cc\u064e", Display(Fatha))
	assert.Equal(t, "␣", Display(' '))
	assert.Equal(t, "\u25cc\u06df", Display(RoundedZero))
	assert.Equal(t, "\u25cc\u06d6", Display(WaqfSalaa))
}
