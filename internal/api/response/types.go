package response

import (
	"time"

	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Card represents a card in API responses
type Card struct {
	Suit    string `json:"suit"`
	Rank    string `json:"rank"`
	SetType string `json:"set_type"`
}

// CardFromModel converts model.Card
func CardFromModel(c model.Card) Card {
	return Card{
		Suit:    string(c.Suit),
		Rank:    string(c.Rank),
		SetType: string(c.SetType),
	}
}

// RoomPlayer represents a seated player in a room snapshot
type RoomPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	Hand         []Card `json:"hand"`
	IsHost       bool   `json:"is_host"`
	CanClaimTurn bool   `json:"can_claim_turn,omitempty"`
}

// RoomPlayerFromModel converts model.RoomPlayer
func RoomPlayerFromModel(p *model.RoomPlayer) RoomPlayer {
	hand := make([]Card, len(p.Hand))
	for i, c := range p.Hand {
		hand[i] = CardFromModel(c)
	}
	return RoomPlayer{
		ID:           string(p.ID),
		Name:         p.Name,
		Team:         string(p.Team),
		Hand:         hand,
		IsHost:       p.IsHost,
		CanClaimTurn: p.CanClaimTurn,
	}
}

// CapturedSet represents one captured-set log entry
type CapturedSet struct {
	Team    string `json:"team"`
	Suit    string `json:"suit"`
	SetType string `json:"set_type"`
}

// CapturedSetFromModel converts model.CapturedSet
func CapturedSetFromModel(cs model.CapturedSet) CapturedSet {
	return CapturedSet{
		Team:    string(cs.Team),
		Suit:    string(cs.Suit),
		SetType: string(cs.SetType),
	}
}

// Room is the full room snapshot broadcast to subscribers. Hands are
// included as-is for every seat; clients are trusted not to render
// opponents' cards.
type Room struct {
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	Capacity     int           `json:"capacity"`
	Players      []RoomPlayer  `json:"players"`
	CurrentTurn  *string       `json:"current_turn"`
	CapturedSets []CapturedSet `json:"captured_sets"`
	LastAction   string        `json:"last_action"`
	Winner       *string       `json:"winner"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// RoomFromModel converts model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	players := make([]RoomPlayer, len(r.Players))
	for i := range r.Players {
		players[i] = RoomPlayerFromModel(&r.Players[i])
	}

	captured := make([]CapturedSet, len(r.CapturedSets))
	for i, cs := range r.CapturedSets {
		captured[i] = CapturedSetFromModel(cs)
	}

	var currentTurn *string
	if r.CurrentTurn != "" {
		t := string(r.CurrentTurn)
		currentTurn = &t
	}

	var winner *string
	if r.Winner != "" {
		w := r.Winner
		winner = &w
	}

	return Room{
		Name:         string(r.Name),
		Status:       string(r.Status),
		Capacity:     r.Capacity,
		Players:      players,
		CurrentTurn:  currentTurn,
		CapturedSets: captured,
		LastAction:   r.LastAction,
		Winner:       winner,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
