package leitner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestScheduler() (*Scheduler, *clock) {
	c := &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := NewScheduler()
	s.Now = c.now
	return s, c
}

func TestBox(t *testing.T) {
	tests := []struct {
		name     string
		box      Box
		promoted Box
		clamped  Box
	}{
		{"one", BoxOne, BoxTwo, BoxOne},
		{"three", BoxThree, BoxFour, BoxThree},
		{"four stays in four", BoxFour, BoxFour, BoxFour},
		{"zero", Box(0), BoxTwo, BoxOne},
		{"too large", Box(9), BoxFour, BoxFour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.promoted, tt.box.Promote())
			assert.Equal(t, tt.clamped, tt.box.Clamp())
		})
	}

	assert.Equal(t, "three", BoxThree.String())
	assert.Equal(t, "Box(7)", Box(7).String())
	b, err := BoxString("Four")
	require.NoError(t, err)
	assert.Equal(t, BoxFour, b)
}

func TestReview_TransitionTable(t *testing.T) {
	s, c := newTestScheduler()
	deck := NewDeck()

	st := s.Review(deck, "card", true)
	assert.Equal(t, BoxTwo, st.Box)
	assert.Equal(t, c.t.Add(24*time.Hour), st.Due)
	assert.Equal(t, 1, st.Streak)

	st = s.Review(deck, "card", true)
	assert.Equal(t, BoxThree, st.Box)
	assert.Equal(t, c.t.Add(3*24*time.Hour), st.Due)

	st = s.Review(deck, "card", true)
	assert.Equal(t, BoxFour, st.Box)

	st = s.Review(deck, "card", true)
	assert.Equal(t, BoxFour, st.Box, "last box is sticky")
	assert.Equal(t, c.t.Add(7*24*time.Hour), st.Due)
	assert.Equal(t, 4, st.Streak)

	st = s.Review(deck, "card", false)
	assert.Equal(t, BoxOne, st.Box)
	assert.Equal(t, c.t, st.Due, "box one is due immediately")
	assert.Equal(t, 5, st.Reviews)
	assert.Equal(t, 1, st.Lapses)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, c.t, deck.UpdatedAt)
}

func TestState_UnknownCard(t *testing.T) {
	s, c := newTestScheduler()
	st := s.State(NewDeck(), "nope")

	assert.Equal(t, BoxOne, st.Box)
	assert.True(t, st.IsNew())
	assert.True(t, s.IsDue(st, c.t))
}

func TestDue(t *testing.T) {
	s, c := newTestScheduler()
	deck := NewDeck()

	s.Review(deck, "a", true)  // box two, due tomorrow
	s.Review(deck, "b", false) // box one, due now
	c.advance(time.Hour)
	s.Review(deck, "c", false) // box one, due later today

	ids := []string{"new", "a", "c", "b", "new"}
	assert.Equal(t, []string{"new", "b", "c"}, s.Due(deck, ids, 0))
	assert.Equal(t, []string{"new", "b"}, s.Due(deck, ids, 2))

	c.advance(24 * time.Hour)
	assert.Equal(t, []string{"new", "b", "c", "a"}, s.Due(deck, ids, 0))
}

func TestStats(t *testing.T) {
	s, _ := newTestScheduler()
	deck := NewDeck()
	s.Review(deck, "a", true)
	s.Review(deck, "b", true)
	s.Review(deck, "b", true)

	stats := s.Stats(deck, []string{"a", "b", "c", "c"})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.New)
	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, map[string]int{"one": 1, "two": 1, "three": 1, "four": 0}, stats.Boxes)
}

func TestDeck_NormalizeAndReset(t *testing.T) {
	var deck Deck
	require.NoError(t, json.Unmarshal([]byte(`{"cards":{"x":{"box":7,"reviews":2},"y":{"box":0}}}`), &deck))
	deck.Normalize()

	assert.Equal(t, BoxFour, deck.Cards["x"].Box)
	assert.Equal(t, BoxOne, deck.Cards["y"].Box)

	assert.True(t, deck.Reset("x"))
	assert.False(t, deck.Reset("x"))

	empty := Deck{}
	empty.Normalize()
	assert.NotNil(t, empty.Cards)
}

func TestWithIntervals(t *testing.T) {
	s := NewScheduler()
	_, err := s.WithIntervals([4]time.Duration{0, -time.Hour, 0, 0})
	assert.EqualError(t, err, "interval for box two must not be negative")

	custom := [4]time.Duration{time.Minute, time.Hour, 2 * time.Hour, 3 * time.Hour}
	s, err = s.WithIntervals(custom)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.Interval(BoxTwo))
	assert.Equal(t, 3*time.Hour, s.Interval(Box(12)))
}
