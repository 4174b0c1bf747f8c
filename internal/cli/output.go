package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Card response type
type Card struct {
	Suit    string `json:"suit"`
	Rank    string `json:"rank"`
	SetType string `json:"set_type"`
}

// RoomPlayer response type
type RoomPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	Hand         []Card `json:"hand"`
	IsHost       bool   `json:"is_host"`
	CanClaimTurn bool   `json:"can_claim_turn,omitempty"`
}

// CapturedSet response type
type CapturedSet struct {
	Team    string `json:"team"`
	Suit    string `json:"suit"`
	SetType string `json:"set_type"`
}

// Room response type
type Room struct {
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	Capacity     int           `json:"capacity"`
	Players      []RoomPlayer  `json:"players"`
	CurrentTurn  *string       `json:"current_turn"`
	CapturedSets []CapturedSet `json:"captured_sets"`
	LastAction   string        `json:"last_action"`
	Winner       *string       `json:"winner"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Name)
	fmt.Printf("Status: %s\n", r.Status)
	if r.CurrentTurn != nil {
		fmt.Printf("Current Turn: %s\n", *r.CurrentTurn)
	}
	if r.LastAction != "" {
		fmt.Printf("Last Action: %s\n", r.LastAction)
	}

	fmt.Printf("Players (%d/%d):\n", len(r.Players), r.Capacity)
	for _, p := range r.Players {
		hostStr := ""
		if p.IsHost {
			hostStr = " [host]"
		}
		claimStr := ""
		if p.CanClaimTurn {
			claimStr = " [may claim turn]"
		}
		fmt.Printf("  - %s (%s) - team %s%s%s\n", p.Name, p.ID, p.Team, hostStr, claimStr)
		if len(p.Hand) > 0 {
			fmt.Printf("      hand: %s\n", formatHand(p.Hand))
		}
	}

	if len(r.CapturedSets) > 0 {
		fmt.Println("Captured Sets:")
		for _, cs := range r.CapturedSets {
			fmt.Printf("  - %s %s -> team %s\n", cs.SetType, cs.Suit, cs.Team)
		}
	}

	if r.Winner != nil {
		fmt.Printf("Winner: %s\n", *r.Winner)
	}
}

func formatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = fmt.Sprintf("%s of %s", c.Rank, c.Suit)
	}
	return strings.Join(parts, ", ")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
