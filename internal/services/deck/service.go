package deck

import (
	"github.com/litfish/litgame-go/internal/dependencies/random"
	"github.com/litfish/litgame-go/internal/model"
)

// Service builds and shuffles LIT decks
type Service struct {
	random random.Random
}

// New creates a new deck Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Build returns the full 48-card deck in deterministic order:
// suit-major, then set-type, then rank low to high.
func (s *Service) Build() []model.Card {
	cards := make([]model.Card, 0, model.DeckSize)
	for _, suit := range model.Suits {
		for _, st := range model.SetTypes {
			for _, rank := range model.SetRanks(st) {
				cards = append(cards, model.Card{Suit: suit, Rank: rank, SetType: st})
			}
		}
	}
	return cards
}

// Shuffled returns a freshly built deck in uniformly random order
func (s *Service) Shuffled() []model.Card {
	cards := s.Build()
	s.random.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// Deal splits the deck into numPlayers hands of model.HandSize cards,
// consuming the deck front to back in player order. The deal must be
// exact: a deck size that doesn't match numPlayers*HandSize is a
// configuration error, not a legal game.
func Deal(cards []model.Card, numPlayers int) ([][]model.Card, error) {
	if numPlayers <= 0 || numPlayers*model.HandSize != len(cards) {
		return nil, model.ErrInvalidCapacity
	}

	hands := make([][]model.Card, numPlayers)
	for i := 0; i < numPlayers; i++ {
		hand := make([]model.Card, model.HandSize)
		copy(hand, cards[i*model.HandSize:(i+1)*model.HandSize])
		hands[i] = hand
	}
	return hands, nil
}
