package model

import "fmt"

// Suit is one of the four standard card suits
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits lists all suits in deck-building order
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank is a card rank; sevens are excluded from the LIT deck
type Rank string

const (
	RankAce   Rank = "ace"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "jack"
	RankQueen Rank = "queen"
	RankKing  Rank = "king"
)

// SetType partitions a suit's twelve ranks into two sets of six
type SetType string

const (
	SetLower SetType = "lower"
	SetUpper SetType = "upper"
)

// SetTypes lists both set types in deck-building order
var SetTypes = []SetType{SetLower, SetUpper}

// SetRanks returns the six ranks belonging to a set type, low to high
func SetRanks(st SetType) []Rank {
	if st == SetLower {
		return []Rank{RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix}
	}
	return []Rank{RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing}
}

// Card is an immutable playing card. A card's set is identified by
// (Suit, SetType); each set holds exactly six ranks.
type Card struct {
	Suit    Suit    `json:"suit"`
	Rank    Rank    `json:"rank"`
	SetType SetType `json:"set_type"`
}

// SameSet reports whether two cards belong to the same set
func (c Card) SameSet(o Card) bool {
	return c.Suit == o.Suit && c.SetType == o.SetType
}

// String renders the card for action log lines, e.g. "ace of hearts"
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// ValidSuit reports whether s is a recognized suit
func ValidSuit(s Suit) bool {
	switch s {
	case SuitHearts, SuitDiamonds, SuitClubs, SuitSpades:
		return true
	}
	return false
}

// ValidSetType reports whether st is a recognized set type
func ValidSetType(st SetType) bool {
	return st == SetLower || st == SetUpper
}

// ValidRank reports whether r is one of the twelve deck ranks
func ValidRank(r Rank) bool {
	for _, st := range SetTypes {
		for _, sr := range SetRanks(st) {
			if r == sr {
				return true
			}
		}
	}
	return false
}

// RankSetType returns the set type the rank belongs to
func RankSetType(r Rank) (SetType, bool) {
	for _, st := range SetTypes {
		for _, sr := range SetRanks(st) {
			if r == sr {
				return st, true
			}
		}
	}
	return "", false
}

// DeckSize is the number of cards in a full LIT deck:
// 4 suits x 2 set types x 6 ranks
const DeckSize = 48

// NumSets is the number of distinct sets in the deck
const NumSets = 8

// HandSize is the number of cards dealt to each player
const HandSize = 6
