package domain_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascent/internal/modules/grade/domain"
)

func TestParseRecognisesBothGrammars(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw   string
		want  domain.ParsedGrade
		label string
	}{
		{"5.10a", domain.ParsedGrade{Scale: domain.ScaleYDS, Major: 10, Letter: "a"}, "5.10a"},
		{" 5. 11 C ", domain.ParsedGrade{Scale: domain.ScaleYDS, Major: 11, Letter: "c"}, "5.11c"},
		{"5.9", domain.ParsedGrade{Scale: domain.ScaleYDS, Major: 9}, "5.9"},
		{"5.15d", domain.ParsedGrade{Scale: domain.ScaleYDS, Major: 15, Letter: "d"}, "5.15d"},
		{"v3", domain.ParsedGrade{Scale: domain.ScaleV, Major: 3}, "V3"},
		{"V 4+", domain.ParsedGrade{Scale: domain.ScaleV, Major: 4, Modifier: "+"}, "V4+"},
		{"V16-", domain.ParsedGrade{Scale: domain.ScaleV, Major: 16, Modifier: "-"}, "V16-"},
	}
	for _, tc := range cases {
		got := domain.Parse(tc.raw)
		tc.want.Raw = tc.raw
		assert.Equal(t, tc.want, got, tc.raw)
		assert.Equal(t, tc.label, got.Label(), tc.raw)
	}
}

func TestParseDegradesToUnknown(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "5.5", "5.16a", "5.10e", "V17", "VB", "6a+", "V3++", "hard"} {
		got := domain.Parse(raw)
		assert.Equal(t, domain.ScaleUnknown, got.Scale, raw)
		assert.False(t, got.Known(), raw)
		assert.Equal(t, domain.UnknownColor, domain.ColorFor(got), raw)
	}
	assert.Equal(t, "project", domain.Canonical("  project "))
}

func TestLessOrdersByScaleThenDifficulty(t *testing.T) {
	t.Parallel()
	labels := []string{"5.10a", "V7", "zzz", "V0", "5.9", "V4+", "V4", "V4-", "5.10d", "aaa"}
	sort.SliceStable(labels, func(i, j int) bool { return domain.Less(labels[i], labels[j]) })
	assert.Equal(t, []string{"V0", "V4-", "V4", "V4+", "V7", "5.9", "5.10a", "5.10d", "aaa", "zzz"}, labels)
}

func allYDS() []domain.ParsedGrade {
	out := []domain.ParsedGrade{}
	for major := 6; major <= 15; major++ {
		for _, letter := range []string{"", "a", "b", "c", "d"} {
			out = append(out, domain.ParsedGrade{Scale: domain.ScaleYDS, Major: major, Letter: letter})
		}
	}
	return out
}

func allV() []domain.ParsedGrade {
	out := []domain.ParsedGrade{}
	for major := 0; major <= 16; major++ {
		for _, mod := range []string{"-", "", "+"} {
			out = append(out, domain.ParsedGrade{Scale: domain.ScaleV, Major: major, Modifier: mod})
		}
	}
	return out
}

func TestColorIsMonotonicByDifficulty(t *testing.T) {
	t.Parallel()
	for _, grades := range [][]domain.ParsedGrade{allYDS(), allV()} {
		for _, a := range grades {
			for _, b := range grades {
				if domain.SortKey(a) >= domain.SortKey(b) {
					continue
				}
				ca, cb := domain.ColorFor(a), domain.ColorFor(b)
				require.LessOrEqual(t, ca.Tier, cb.Tier, "%s vs %s", a.Label(), b.Label())
				require.LessOrEqual(t, ca.Rank(), cb.Rank(), "%s vs %s", a.Label(), b.Label())
			}
		}
	}
}

func TestColorShadesWithinOneHue(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, raw := range []string{"5.11a", "5.11b", "5.11c", "5.11d"} {
		c := domain.ColorForLabel(raw)
		assert.Equal(t, 5, c.Tier, raw)
		seen[c.Hex] = true
	}
	assert.Len(t, seen, domain.ShadeLevels)

	shades := []int{}
	for _, raw := range []string{"V6", "V6+", "V7", "V7+"} {
		c := domain.ColorForLabel(raw)
		assert.Equal(t, 3, c.Tier, raw)
		shades = append(shades, c.Shade)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, shades)
}

func TestMinusSharesThePlainShade(t *testing.T) {
	t.Parallel()
	for _, major := range []string{"V0", "V3", "V6", "V7", "V15"} {
		assert.Equal(t, domain.ColorForLabel(major), domain.ColorForLabel(major+"-"), major)
	}
	minus := domain.Parse("V7-")
	plain := domain.Parse("V7")
	assert.Less(t, domain.SortKey(minus), domain.SortKey(plain))
}

func TestColorSaturatesAtMaxTier(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"5.14a", "5.15d", "V16", "V16+"} {
		assert.Equal(t, domain.MaxColor, domain.ColorForLabel(raw), raw)
	}
	assert.Equal(t, "red-3", domain.ColorForLabel("5.13d").Token)
	assert.Equal(t, "red-3", domain.ColorForLabel("V15+").Token)
	assert.Equal(t, "green-0", domain.ColorForLabel("V0").Token)
}
