package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recallkit/pkg/flashcard"
)

func buildOutputs(t *testing.T, name, text string) *flashcard.Outputs {
	t.Helper()
	out, err := flashcard.BuildOutputs([]flashcard.Source{{Name: name, Text: text}})
	require.NoError(t, err)
	return out
}

const deckText = "## Flashcard 1: One\n- **Question**: Q1?\n- **Answer**:\nA1.\n\n## Flashcard 2: Two\n- **Question**: Q2?\n- **Answer**:\nA2."

func TestValidateTopic(t *testing.T) {
	valid := []string{"python", "go-basics", "v1.2_notes", "a"}
	for _, topic := range valid {
		assert.NoError(t, ValidateTopic(topic), topic)
	}

	invalid := []string{"", "..", ".", "../etc", "a/b", "with space", "cards", "topics"}
	for _, topic := range invalid {
		assert.ErrorIs(t, ValidateTopic(topic), ErrInvalidTopic, topic)
	}
}

func TestLibrary_SaveLoadDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build")
	lib := NewLibrary(dir)

	count, err := lib.Save("python", buildOutputs(t, "notes.md", deckText))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = lib.Save("go", buildOutputs(t, "go.md", deckText))
	require.NoError(t, err)

	topics, err := lib.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "python"}, topics)

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"topics":["go","python"]}`, string(index))

	cards, err := lib.Load("python")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "python", cards[0].Topic)
	assert.Equal(t, "notes", cards[0].Tag)

	tsv, err := lib.LoadTSV("python")
	require.NoError(t, err)
	assert.Equal(t, "Q1?\tA1.\nQ2?\tA2.\n", string(tsv))

	all, err := lib.LoadAll()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	require.NoError(t, lib.Delete("python"))
	require.NoError(t, lib.Delete("python"), "deleting twice is fine")

	_, err = lib.Load("python")
	assert.ErrorIs(t, err, ErrTopicNotFound)
	_, err = os.Stat(filepath.Join(dir, "python.tsv"))
	assert.True(t, os.IsNotExist(err))

	index, err = os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"topics":["go"]}`, string(index))
}

func TestLibrary_ListSkipsReservedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cards.json", "topics.json", "notes.txt", "bio.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"cards":[]}`), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.json"), 0o755))

	topics, err := NewLibrary(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"bio"}, topics)
}

func TestLibrary_MissingDir(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"))

	topics, err := lib.List()
	require.NoError(t, err)
	assert.Empty(t, topics)

	all, err := lib.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLibrary_LoadAllSkipsCorruptTopics(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir)
	_, err := lib.Save("good", buildOutputs(t, "good.md", deckText))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	all, err := lib.LoadAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLibrary_RejectsInvalidTopic(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	_, err := lib.Save("../escape", &flashcard.Outputs{})
	assert.ErrorIs(t, err, ErrInvalidTopic)
	_, err = lib.LoadJSON("a/b")
	assert.ErrorIs(t, err, ErrInvalidTopic)
	assert.ErrorIs(t, lib.Delete("topics"), ErrInvalidTopic)
}
