package markdown

import "strings"

// Block is a generated region of a note delimited by two HTML comments.
// Text outside the markers belongs to the user and is never rewritten.
type Block struct {
	Start string
	End   string
}

func NewBlock(name string) Block {
	return Block{
		Start: "<!-- ascent:" + name + ":start -->",
		End:   "<!-- ascent:" + name + ":end -->",
	}
}

// Replace swaps the block's content in body, appending the block when it is
// not present yet.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(b.End):]
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
