package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type Scale string

const (
	ScaleV       Scale = "V"
	ScaleYDS     Scale = "YDS"
	ScaleUnknown Scale = "UNKNOWN"
)

const (
	ydsMinMajor = 6
	ydsMaxMajor = 15
	vMaxMajor   = 16
)

var (
	ydsPattern = regexp.MustCompile(`^5\.(\d{1,2})([abcd])?$`)
	vPattern   = regexp.MustCompile(`^v(\d{1,2})([+-])?$`)
)

// ParsedGrade is the structured form of a grade label. Letter is only set on
// YDS grades and Modifier only on V grades.
type ParsedGrade struct {
	Scale    Scale
	Major    int
	Letter   string
	Modifier string
	Raw      string
}

// Parse recognises "5.<major>[a-d]" and "V<major>[+|-]" ignoring case and
// whitespace. Everything else is ScaleUnknown.
func Parse(raw string) ParsedGrade {
	norm := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, raw)

	if m := ydsPattern.FindStringSubmatch(norm); m != nil {
		major, _ := strconv.Atoi(m[1])
		if major >= ydsMinMajor && major <= ydsMaxMajor {
			return ParsedGrade{Scale: ScaleYDS, Major: major, Letter: m[2], Raw: raw}
		}
	}
	if m := vPattern.FindStringSubmatch(norm); m != nil {
		major, _ := strconv.Atoi(m[1])
		if major <= vMaxMajor {
			return ParsedGrade{Scale: ScaleV, Major: major, Modifier: m[2], Raw: raw}
		}
	}
	return ParsedGrade{Scale: ScaleUnknown, Raw: raw}
}

// Label is the canonical spelling, e.g. "V4+" or "5.11c". Unknown grades
// keep their trimmed raw text.
func (p ParsedGrade) Label() string {
	switch p.Scale {
	case ScaleV:
		return "V" + strconv.Itoa(p.Major) + p.Modifier
	case ScaleYDS:
		return "5." + strconv.Itoa(p.Major) + p.Letter
	default:
		return strings.TrimSpace(p.Raw)
	}
}

func (p ParsedGrade) Known() bool { return p.Scale != ScaleUnknown }

// Canonical parses raw and returns its canonical label.
func Canonical(raw string) string {
	return Parse(raw).Label()
}

// SortKey orders grades by difficulty: V grades first, then YDS, then
// unknown labels. Within a scale a larger key is a harder grade.
func SortKey(p ParsedGrade) int {
	switch p.Scale {
	case ScaleV:
		return p.Major*10 + modifierRank(p.Modifier)
	case ScaleYDS:
		return 1000 + p.Major*10 + letterRank(p.Letter)
	default:
		return 2000
	}
}

// Less is the stable total order used wherever grades are listed.
func Less(a, b string) bool {
	ka, kb := SortKey(Parse(a)), SortKey(Parse(b))
	if ka != kb {
		return ka < kb
	}
	return a < b
}

func modifierRank(mod string) int {
	switch mod {
	case "-":
		return 0
	case "+":
		return 2
	default:
		return 1
	}
}

func letterRank(letter string) int {
	if letter == "" {
		return 0
	}
	return int(letter[0]-'a') + 1
}
