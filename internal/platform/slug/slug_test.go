package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ascent/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "the-spot-boulder-gym", slug.Make("  The Spot: Boulder Gym! "))
	assert.Equal(t, "session", slug.Make("!!!"))
	assert.LessOrEqual(t, len(slug.Make(strings.Repeat("crag ", 30))), 48)
}
