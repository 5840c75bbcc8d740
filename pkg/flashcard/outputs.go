package flashcard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// cardNamespace seeds the name-based card IDs so the same card in the same
// file always gets the same ID across conversions.
var cardNamespace = uuid.MustParse("5b0c5a4e-93f4-4bd1-8d44-2b6f1d1e7c31")

// Source is one Markdown document to convert.
type Source struct {
	Name string
	Text string
}

// Outputs holds the converted cards and their serialised forms.
type Outputs struct {
	Cards []Card
	JSON  string
	TSV   string
}

// Document is the on-disk JSON shape of a converted deck.
type Document struct {
	Cards []Card `json:"cards"`
}

// Tag returns the tag used for cards parsed from the named file: its base
// name without extension.
func Tag(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CardID returns the stable identifier of a card.
func CardID(c Card) string {
	key := strings.Join([]string{c.Tag, c.Title, c.Question}, "\x00")
	return uuid.NewSHA1(cardNamespace, []byte(key)).String()
}

// BuildOutputs parses every source, tags the cards with their file stem and
// renders the JSON and TSV forms.
func BuildOutputs(sources []Source) (*Outputs, error) {
	cards := []Card{}
	for _, src := range sources {
		tag := Tag(src.Name)
		for _, c := range Parse(src.Text) {
			c.Tag = tag
			c.ID = CardID(c)
			cards = append(cards, c)
		}
	}

	doc, err := MarshalDocument(cards)
	if err != nil {
		return nil, err
	}

	return &Outputs{
		Cards: cards,
		JSON:  doc,
		TSV:   FormatTSV(cards),
	}, nil
}

// MarshalDocument renders cards as an indented {"cards": [...]} document.
// Non-ASCII text and HTML characters are written as-is.
func MarshalDocument(cards []Card) (string, error) {
	if cards == nil {
		cards = []Card{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Cards: cards}); err != nil {
		return "", fmt.Errorf("failed to encode cards: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// UnmarshalDocument decodes a {"cards": [...]} document.
func UnmarshalDocument(data []byte) ([]Card, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Cards {
		if doc.Cards[i].ID == "" {
			doc.Cards[i].ID = CardID(doc.Cards[i])
		}
	}
	return doc.Cards, nil
}

// FormatTSV renders one "question<TAB>answer" line per card, the format
// Quizlet imports. Answers keep their embedded newlines.
func FormatTSV(cards []Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.Question)
		sb.WriteByte('\t')
		sb.WriteString(c.Answer)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ReadSources loads Markdown files from disk.
func ReadSources(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		sources = append(sources, Source{Name: filepath.Base(p), Text: string(data)})
	}
	return sources, nil
}
