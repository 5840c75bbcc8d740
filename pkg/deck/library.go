package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/recallkit/recallkit/pkg/flashcard"
	"github.com/recallkit/recallkit/pkg/fsutil"
)

// IndexFile is the name of the topic index. It and cards.json are never
// treated as topics.
const IndexFile = "topics.json"

var reservedTopics = map[string]bool{"cards": true, "topics": true}

var topicRgx = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)

// ErrInvalidTopic is returned for topic names that are unsafe as file names
var ErrInvalidTopic = errors.New("invalid topic name")

// ErrTopicNotFound is returned when a topic has no stored card set
var ErrTopicNotFound = errors.New("topic not found")

// ValidateTopic checks that a topic name is safe to use as a file stem.
func ValidateTopic(topic string) error {
	if !topicRgx.MatchString(topic) || reservedTopics[topic] || strings.Trim(topic, ".") == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	return nil
}

// Library stores topic sets under a build directory.
type Library struct {
	dir string
}

// NewLibrary creates a Library rooted at dir. The directory is created on
// first write.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the build directory.
func (l *Library) Dir() string {
	return l.dir
}

func (l *Library) path(topic, ext string) string {
	return filepath.Join(l.dir, topic+ext)
}

// Save writes the JSON and TSV files of a topic, refreshes the index and
// returns the number of cards saved.
func (l *Library) Save(topic string, out *flashcard.Outputs) (int, error) {
	if err := ValidateTopic(topic); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create build dir: %w", err)
	}

	if err := fsutil.WriteFileAtomic(l.path(topic, ".json"), []byte(out.JSON), 0o644); err != nil {
		return 0, err
	}
	if err := fsutil.WriteFileAtomic(l.path(topic, ".tsv"), []byte(out.TSV), 0o644); err != nil {
		return 0, err
	}

	if _, err := l.WriteIndex(); err != nil {
		return 0, err
	}
	return len(out.Cards), nil
}

// List returns the stored topic names, sorted.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	topics := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		topic := strings.TrimSuffix(name, ".json")
		if reservedTopics[topic] {
			continue
		}
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics, nil
}

// WriteIndex rewrites topics.json from the files present and returns the
// indexed topics.
func (l *Library) WriteIndex() ([]string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create build dir: %w", err)
	}
	topics, err := l.List()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(map[string][]string{"topics": topics}, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(l.dir, IndexFile), data, 0o644); err != nil {
		return nil, err
	}
	return topics, nil
}

// LoadJSON returns the raw JSON document of a topic.
func (l *Library) LoadJSON(topic string) ([]byte, error) {
	return l.read(topic, ".json")
}

// LoadTSV returns the TSV export of a topic.
func (l *Library) LoadTSV(topic string) ([]byte, error) {
	return l.read(topic, ".tsv")
}

func (l *Library) read(topic, ext string) ([]byte, error) {
	if err := ValidateTopic(topic); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path(topic, ext))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
		}
		return nil, fmt.Errorf("failed to read topic %s: %w", topic, err)
	}
	return data, nil
}

// Load returns the cards of a topic with Topic set.
func (l *Library) Load(topic string) ([]flashcard.Card, error) {
	data, err := l.LoadJSON(topic)
	if err != nil {
		return nil, err
	}
	cards, err := flashcard.UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode topic %s: %w", topic, err)
	}
	for i := range cards {
		cards[i].Topic = topic
	}
	return cards, nil
}

// LoadAll aggregates the cards of every topic. Unreadable or malformed topic
// files contribute no cards.
func (l *Library) LoadAll() ([]flashcard.Card, error) {
	topics, err := l.List()
	if err != nil {
		return nil, err
	}

	all := []flashcard.Card{}
	for _, topic := range topics {
		cards, err := l.Load(topic)
		if err != nil {
			log.Printf("Skipping topic %s: %v", topic, err)
			continue
		}
		all = append(all, cards...)
	}
	return all, nil
}

// Delete removes a topic's files and refreshes the index. Deleting a missing
// topic is not an error.
func (l *Library) Delete(topic string) error {
	if err := ValidateTopic(topic); err != nil {
		return err
	}
	for _, ext := range []string{".json", ".tsv"} {
		if err := os.Remove(l.path(topic, ext)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete topic %s: %w", topic, err)
		}
	}
	_, err := l.WriteIndex()
	return err
}
