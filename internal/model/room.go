package model

import "time"

// RoomName is the unique key for a room in the registry
type RoomName string

// RoomStatus represents the lifecycle phase of a room.
// Transitions are forward-only: waiting -> playing -> finished.
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusPlaying  RoomStatus = "playing"
	RoomStatusFinished RoomStatus = "finished"
)

// Team is one of the two match teams
type Team string

const (
	TeamUnassigned Team = ""
	TeamRed        Team = "red"
	TeamBlue       Team = "blue"
)

// Opposing returns the other team
func (t Team) Opposing() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// ValidTeam reports whether t is a joinable team
func ValidTeam(t Team) bool {
	return t == TeamRed || t == TeamBlue
}

// WinnerDraw marks a terminal game with no winning team
const WinnerDraw = "draw"

// RoomPlayer is a player's seat in a room. Hand order carries no meaning.
type RoomPlayer struct {
	ID           PlayerID
	Name         string
	Team         Team
	Hand         []Card
	IsHost       bool
	CanClaimTurn bool
	JoinedAt     time.Time
}

// HasCard reports whether the player holds the exact card
func (p *RoomPlayer) HasCard(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// HoldsSet reports whether the player holds at least one card of the set
func (p *RoomPlayer) HoldsSet(suit Suit, st SetType) bool {
	for _, h := range p.Hand {
		if h.Suit == suit && h.SetType == st {
			return true
		}
	}
	return false
}

// CapturedSet records one declaration outcome. Every declaration appends
// an entry, right or wrong, so entries are not deduplicated and the log
// can grow past the eight physical sets.
type CapturedSet struct {
	Team    Team    `json:"team"`
	Suit    Suit    `json:"suit"`
	SetType SetType `json:"set_type"`
}

// DefaultCapacity is the only supported room size: 8 players x 6 cards
// consumes the 48-card deck exactly.
const DefaultCapacity = 8

// Room is a game room: the registry entry, seat list and live match state.
// Players are kept in join order; turn rotation follows that order.
type Room struct {
	Name         RoomName
	Status       RoomStatus
	Capacity     int
	Players      []RoomPlayer
	CurrentTurn  PlayerID // empty before the game starts
	CapturedSets []CapturedSet
	LastAction   string
	Winner       string // team id or "draw"; empty until finished
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetPlayer returns the seat for the given player id, or nil
func (r *Room) GetPlayer(id PlayerID) *RoomPlayer {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// GetHost returns the host seat, or nil if none
func (r *Room) GetHost() *RoomPlayer {
	for i := range r.Players {
		if r.Players[i].IsHost {
			return &r.Players[i]
		}
	}
	return nil
}

// PlayerIndex returns the join-order index of the player, or -1
func (r *Room) PlayerIndex(id PlayerID) int {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// IsFull reports whether the room has reached capacity
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.Capacity
}

// TeamCounts returns the number of seats assigned to each team
func (r *Room) TeamCounts() (red, blue, unassigned int) {
	for i := range r.Players {
		switch r.Players[i].Team {
		case TeamRed:
			red++
		case TeamBlue:
			blue++
		default:
			unassigned++
		}
	}
	return
}

// TeamHoldsSet reports whether the team's pooled hands cover all six
// ranks of the given set
func (r *Room) TeamHoldsSet(team Team, suit Suit, st SetType) bool {
	for _, rank := range SetRanks(st) {
		want := Card{Suit: suit, Rank: rank, SetType: st}
		held := false
		for i := range r.Players {
			if r.Players[i].Team == team && r.Players[i].HasCard(want) {
				held = true
				break
			}
		}
		if !held {
			return false
		}
	}
	return true
}

// CapturedCount returns the number of captured-set entries held by the team
func (r *Room) CapturedCount(team Team) int {
	n := 0
	for _, cs := range r.CapturedSets {
		if cs.Team == team {
			n++
		}
	}
	return n
}
