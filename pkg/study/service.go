package study

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"github.com/recallkit/recallkit/pkg/flashcard"
	"github.com/recallkit/recallkit/pkg/leitner"
	"github.com/recallkit/recallkit/pkg/server/store"
)

// ProgressKey is the progress document key holding the Leitner deck.
const ProgressKey = "leitner"

// ErrCardNotFound is returned when reviewing a card no topic contains
var ErrCardNotFound = errors.New("card not found")

// CardSource provides the cards of stored topics.
type CardSource interface {
	Load(topic string) ([]flashcard.Card, error)
	LoadAll() ([]flashcard.Card, error)
}

// DueCard is a card ready to be shown, with its rendered answer and current
// scheduling state.
type DueCard struct {
	flashcard.Card
	AnswerHTML template.HTML     `json:"answer_html"`
	State      leitner.CardState `json:"state"`
}

// Service runs study sessions.
type Service struct {
	cards     CardSource
	progress  store.ProgressStore
	scheduler *leitner.Scheduler

	// mu serialises read-modify-write cycles on progress documents.
	mu sync.Mutex
}

// NewService creates a study Service.
func NewService(cards CardSource, progress store.ProgressStore, scheduler *leitner.Scheduler) *Service {
	if scheduler == nil {
		scheduler = leitner.NewScheduler()
	}
	return &Service{cards: cards, progress: progress, scheduler: scheduler}
}

// Scheduler returns the scheduler in use.
func (s *Service) Scheduler() *leitner.Scheduler {
	return s.scheduler
}

// LoadDeck extracts the Leitner deck from a progress document. A document
// without one yields an empty deck.
func LoadDeck(doc store.Document) (*leitner.Deck, error) {
	raw, ok := doc[ProgressKey]
	if !ok || string(raw) == "null" {
		return leitner.NewDeck(), nil
	}

	var deck leitner.Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrCorruptProgress, err)
	}
	deck.Normalize()
	return &deck, nil
}

// StoreDeck writes the deck into a progress document.
func StoreDeck(doc store.Document, deck *leitner.Deck) error {
	raw, err := json.Marshal(deck)
	if err != nil {
		return err
	}
	doc[ProgressKey] = raw
	return nil
}

func (s *Service) cardsFor(topic string) ([]flashcard.Card, error) {
	if topic == "" {
		return s.cards.LoadAll()
	}
	return s.cards.Load(topic)
}

func (s *Service) loadDeck(profile string) (store.Document, *leitner.Deck, error) {
	doc, err := s.progress.GetProgress(profile)
	if err != nil {
		return nil, nil, err
	}
	deck, err := LoadDeck(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, deck, nil
}

func ids(cards []flashcard.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// Due returns the cards of a topic (every topic when empty) that are due for
// the profile, at most limit of them when limit > 0.
func (s *Service) Due(profile, topic string, limit int) ([]DueCard, error) {
	cards, err := s.cardsFor(topic)
	if err != nil {
		return nil, err
	}
	_, deck, err := s.loadDeck(profile)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]flashcard.Card, len(cards))
	for _, c := range cards {
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}

	dueIDs := s.scheduler.Due(deck, ids(cards), limit)
	result := make([]DueCard, 0, len(dueIDs))
	for _, id := range dueIDs {
		card := byID[id]
		html, err := flashcard.RenderAnswer(card.Answer)
		if err != nil {
			return nil, fmt.Errorf("failed to render card %s: %w", id, err)
		}
		result = append(result, DueCard{
			Card:       card,
			AnswerHTML: html,
			State:      s.scheduler.State(deck, id),
		})
	}
	return result, nil
}

// Review records an answer for a card and persists the new state.
func (s *Service) Review(profile, cardID string, correct bool) (leitner.CardState, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return leitner.CardState{}, err
	}
	if err := s.requireCard(cardID); err != nil {
		return leitner.CardState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, deck, err := s.loadDeck(profile)
	if err != nil {
		return leitner.CardState{}, err
	}
	st := s.scheduler.Review(deck, cardID, correct)
	if err := StoreDeck(doc, deck); err != nil {
		return leitner.CardState{}, err
	}
	if err := s.progress.PutProgress(profile, doc); err != nil {
		return leitner.CardState{}, err
	}
	return st, nil
}

// ResetCard forgets a card's state for a profile. It reports whether the card
// had any state.
func (s *Service) ResetCard(profile, cardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, deck, err := s.loadDeck(profile)
	if err != nil {
		return false, err
	}
	if !deck.Reset(cardID) {
		return false, nil
	}
	if err := StoreDeck(doc, deck); err != nil {
		return false, err
	}
	return true, s.progress.PutProgress(profile, doc)
}

// Stats summarises a profile's boxes for a topic (every topic when empty).
func (s *Service) Stats(profile, topic string) (leitner.Stats, error) {
	cards, err := s.cardsFor(topic)
	if err != nil {
		return leitner.Stats{}, err
	}
	_, deck, err := s.loadDeck(profile)
	if err != nil {
		return leitner.Stats{}, err
	}
	return s.scheduler.Stats(deck, ids(cards)), nil
}

func (s *Service) requireCard(cardID string) error {
	cards, err := s.cards.LoadAll()
	if err != nil {
		return err
	}
	for _, c := range cards {
		if c.ID == cardID {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
}
