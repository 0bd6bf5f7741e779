package domain

import "strconv"

// Color is a display token for a grade. Tier selects the hue row and Shade
// the level within it, 0 lightest to 3 darkest.
type Color struct {
	Tier  int
	Shade int
	Hex   string
	Token string
}

const ShadeLevels = 4

var hueNames = [...]string{"green", "teal", "sky", "blue", "indigo", "purple", "orange", "red"}

// hueTable is ordered easy to hard, each row lightest to darkest.
var hueTable = [len(hueNames)][ShadeLevels]string{
	{"#c6f6d5", "#86e0a0", "#3fbf6f", "#1f8a4c"},
	{"#b2f0ea", "#6fd8cc", "#2fb3a6", "#1b7f76"},
	{"#bfe6fb", "#7dcbf2", "#3aa9e0", "#1e7bb0"},
	{"#c3d3fb", "#8aa8f5", "#4f77e6", "#2c4fb8"},
	{"#d0cbfa", "#a59cf1", "#7667e0", "#4c3fb0"},
	{"#e6c8f7", "#cc92ee", "#a95bd9", "#7a34a8"},
	{"#fde0bf", "#fbbc7a", "#f08f34", "#c0661a"},
	{"#fbc6c6", "#f38b8b", "#e04848", "#a82424"},
}

// MaxTier is the tier of every grade past the last tabulated hue.
const MaxTier = len(hueNames)

var (
	MaxColor     = Color{Tier: MaxTier, Shade: ShadeLevels - 1, Hex: "#7a0f0f", Token: "max"}
	UnknownColor = Color{Tier: -1, Shade: 0, Hex: "#a6adc8", Token: "unknown"}
	// Neutral is the empty ring track.
	Neutral = Color{Tier: -1, Shade: 0, Hex: "#45475a", Token: "neutral"}
)

// ColorFor maps a grade to its hue and shade. V grades pair two majors per
// hue (V0-V1, V2-V3, ...) with "+" lifting one shade; "-" keeps the plain shade.
// YDS grades use one hue per major with the letter as the shade. Both scales
// saturate at MaxColor.
func ColorFor(p ParsedGrade) Color {
	var tier, shade int
	switch p.Scale {
	case ScaleV:
		tier = p.Major / 2
		shade = 2 * (p.Major % 2)
		if p.Modifier == "+" {
			shade++
		}
	case ScaleYDS:
		tier = p.Major - ydsMinMajor
		if r := letterRank(p.Letter); r > 0 {
			shade = r - 1
		}
	default:
		return UnknownColor
	}
	if tier >= MaxTier {
		return MaxColor
	}
	return Color{
		Tier:  tier,
		Shade: shade,
		Hex:   hueTable[tier][shade],
		Token: hueNames[tier] + "-" + strconv.Itoa(shade),
	}
}

func ColorForLabel(raw string) Color {
	return ColorFor(Parse(raw))
}

// Rank flattens tier and shade into one comparable number.
func (c Color) Rank() int {
	return c.Tier*ShadeLevels + c.Shade
}
