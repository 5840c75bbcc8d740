package leitner

import (
	"fmt"
	"sort"
	"time"
)

// DefaultIntervals are the review intervals of boxes one to four.
var DefaultIntervals = [4]time.Duration{
	0,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
}

// CardState is the scheduling state of one card.
type CardState struct {
	Box          Box       `json:"box"`
	Due          time.Time `json:"due"`
	LastReviewed time.Time `json:"last_reviewed"`
	Reviews      int       `json:"reviews"`
	Lapses       int       `json:"lapses"`
	Streak       int       `json:"streak"`
}

// IsNew reports whether the card has never been reviewed.
func (s CardState) IsNew() bool {
	return s.Reviews == 0
}

// Deck is the scheduling state of every reviewed card of a profile, keyed by
// card ID.
type Deck struct {
	Cards     map[string]CardState `json:"cards"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	return &Deck{Cards: map[string]CardState{}}
}

// Normalize repairs state loaded from storage: a nil map becomes empty and
// out-of-range boxes are clamped.
func (d *Deck) Normalize() {
	if d.Cards == nil {
		d.Cards = map[string]CardState{}
	}
	for id, st := range d.Cards {
		if !st.Box.IsABox() {
			st.Box = st.Box.Clamp()
			d.Cards[id] = st
		}
	}
}

// Reset forgets a card, returning it to box one.
func (d *Deck) Reset(id string) bool {
	if _, ok := d.Cards[id]; !ok {
		return false
	}
	delete(d.Cards, id)
	return true
}

// Stats summarises a set of cards.
type Stats struct {
	Total int            `json:"total"`
	New   int            `json:"new"`
	Due   int            `json:"due"`
	Boxes map[string]int `json:"boxes"`
}

// Scheduler applies the Leitner transition table.
type Scheduler struct {
	Intervals [4]time.Duration
	Now       func() time.Time
}

// NewScheduler returns a scheduler using the default intervals and the wall
// clock.
func NewScheduler() *Scheduler {
	return &Scheduler{Intervals: DefaultIntervals, Now: time.Now}
}

// WithIntervals overrides the box intervals. All four must be non-negative.
func (s *Scheduler) WithIntervals(intervals [4]time.Duration) (*Scheduler, error) {
	for i, iv := range intervals {
		if iv < 0 {
			return nil, fmt.Errorf("interval for box %s must not be negative", Box(i+1))
		}
	}
	s.Intervals = intervals
	return s, nil
}

func (s *Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Interval returns the review interval of a box.
func (s *Scheduler) Interval(b Box) time.Duration {
	return s.Intervals[b.Clamp()-1]
}

// State returns a card's current state. Unknown cards are new, in box one and
// due immediately.
func (s *Scheduler) State(deck *Deck, id string) CardState {
	if st, ok := deck.Cards[id]; ok {
		st.Box = st.Box.Clamp()
		return st
	}
	return CardState{Box: BoxOne}
}

// IsDue reports whether a card should be shown at the given time.
func (s *Scheduler) IsDue(st CardState, at time.Time) bool {
	return !st.Due.After(at)
}

// Review records an answer for a card and returns its new state.
func (s *Scheduler) Review(deck *Deck, id string, correct bool) CardState {
	if deck.Cards == nil {
		deck.Cards = map[string]CardState{}
	}
	now := s.now()
	st := s.State(deck, id)

	if correct {
		st.Box = st.Box.Promote()
		st.Streak++
	} else {
		st.Box = BoxOne
		st.Lapses++
		st.Streak = 0
	}
	st.Reviews++
	st.LastReviewed = now
	st.Due = now.Add(s.Interval(st.Box))

	deck.Cards[id] = st
	deck.UpdatedAt = now
	return st
}

// Due returns the IDs of due cards among ids, lowest box first, then earliest
// due time, then in the given order. A limit <= 0 returns every due card.
func (s *Scheduler) Due(deck *Deck, ids []string, limit int) []string {
	now := s.now()

	type candidate struct {
		id    string
		state CardState
		pos   int
	}
	var due []candidate
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		st := s.State(deck, id)
		if s.IsDue(st, now) {
			due = append(due, candidate{id: id, state: st, pos: i})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.state.Box != b.state.Box {
			return a.state.Box < b.state.Box
		}
		if !a.state.Due.Equal(b.state.Due) {
			return a.state.Due.Before(b.state.Due)
		}
		return a.pos < b.pos
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	result := make([]string, len(due))
	for i, c := range due {
		result[i] = c.id
	}
	return result
}

// Stats counts cards per box among ids.
func (s *Scheduler) Stats(deck *Deck, ids []string) Stats {
	now := s.now()
	stats := Stats{Boxes: make(map[string]int, len(BoxValues()))}
	for _, b := range BoxValues() {
		stats.Boxes[b.String()] = 0
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		st := s.State(deck, id)
		stats.Total++
		stats.Boxes[st.Box.String()]++
		if st.IsNew() {
			stats.New++
		}
		if s.IsDue(st, now) {
			stats.Due++
		}
	}
	return stats
}
