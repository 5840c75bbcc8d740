package flashcard

import (
	"regexp"
	"strings"
	"unicode"
)

// ws is any Unicode whitespace, so notes pasted from web pages (NBSP,
// ideographic spaces) parse like plain ASCII ones.
const ws = `[\s\v\x1c-\x1f\x{85}\p{Z}]`

var (
	headingRgx  = regexp.MustCompile(`(?i)^#{2,6}` + ws + `*Flashcard` + ws + `*\p{Nd}+` + ws + `*:` + ws + `*(.+)$`)
	questionRgx = regexp.MustCompile(`(?i)^` + ws + `*[*-]` + ws + `+\*\*Question\*\*` + ws + `*:` + ws + `*(.+)$`)
	answerRgx   = regexp.MustCompile(`(?i)^` + ws + `*[*-]` + ws + `+\*\*Answer\*\*` + ws + `*:?` + ws + `*$`)
	sepRgx      = regexp.MustCompile(`^` + ws + `*---` + ws + `*$`)
)

// lineBreaks maps every line terminator onto "\n". CRLF comes first so it
// counts as a single break.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// Card is a single question/answer pair extracted from a deck.
type Card struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"q"`
	Answer   string `json:"a"`
	Title    string `json:"title"`
	Tag      string `json:"tag,omitempty"`
	Topic    string `json:"topic,omitempty"`
}

// Parse extracts every complete card from a Markdown document. Text before
// the first card heading is ignored.
func Parse(text string) []Card {
	lines := splitLines(text)

	var cards []Card
	i := 0
	for i < len(lines) {
		m := headingRgx.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}

		card := Card{Title: trimSpace(m[1])}
		var answer []string
		i++
	body:
		for i < len(lines) {
			if isBoundary(lines[i]) {
				break
			}
			if q := questionRgx.FindStringSubmatch(lines[i]); q != nil {
				card.Question = trimSpace(q[1])
			}
			if answerRgx.MatchString(lines[i]) {
				i++
				for i < len(lines) && !isBoundary(lines[i]) {
					answer = append(answer, lines[i])
					i++
				}
				break body
			}
			i++
		}

		card.Answer = trimSpace(strings.Join(answer, "\n"))
		if card.Question != "" && card.Answer != "" {
			cards = append(cards, card)
		}
	}
	return cards
}

// isBoundary reports whether a line ends the current card.
func isBoundary(line string) bool {
	return headingRgx.MatchString(line) || sepRgx.MatchString(line)
}

func splitLines(text string) []string {
	text = lineBreaks.Replace(text)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
	})
}
