package theme_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	gradedomain "ascent/internal/modules/grade/domain"
	"ascent/internal/ui/theme"
)

func TestFade(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lipgloss.Color("#fab387"), theme.Fade("#fab387", 1))
	assert.Equal(t, lipgloss.Color(theme.BaseHex), theme.Fade("#fab387", 0))
	assert.Equal(t, theme.Surface1, theme.Fade("peach", 0.35))

	faded := string(theme.Fade("#ffffff", 0.35))
	assert.NotEqual(t, "#ffffff", faded)
	assert.NotEqual(t, theme.BaseHex, faded)
}

func TestMaxGradeColorStandsOutFromChrome(t *testing.T) {
	t.Parallel()

	chrome := []lipgloss.Color{
		theme.Base, theme.Mantle, theme.Surface0, theme.Surface1,
		theme.Text, theme.Subtext0,
	}
	for _, c := range chrome {
		assert.NotEqual(t, strings.ToLower(string(c)), strings.ToLower(gradedomain.MaxColor.Hex))
	}
	// The top tier must also differ from the darkest tabulated red.
	assert.NotEqual(t, gradedomain.ColorForLabel("5.13d").Hex, gradedomain.MaxColor.Hex)
	assert.NotEqual(t, gradedomain.ColorForLabel("V15").Hex, gradedomain.MaxColor.Hex)
}
