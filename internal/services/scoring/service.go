package scoring

import (
	"github.com/litfish/litgame-go/internal/model"
)

// Service evaluates turn succession and terminal game state
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// NextPlayer returns the circular successor of current in room join order
func (s *Service) NextPlayer(current model.PlayerID, players []model.RoomPlayer) (model.PlayerID, error) {
	for i := range players {
		if players[i].ID == current {
			return players[(i+1)%len(players)].ID, nil
		}
	}
	return "", model.ErrPlayerNotFound
}

// CheckWin inspects captured-set counts and returns the winning team id,
// model.WinnerDraw, or empty string while the game continues.
//
// A team wins as soon as it holds at least 3 captured sets and strictly
// more than the other team. Both teams at 3 or more with equal counts is
// an immediate draw.
func (s *Service) CheckWin(captured []model.CapturedSet) string {
	red, blue := 0, 0
	for _, cs := range captured {
		switch cs.Team {
		case model.TeamRed:
			red++
		case model.TeamBlue:
			blue++
		}
	}

	switch {
	case red >= 3 && red > blue:
		return string(model.TeamRed)
	case blue >= 3 && blue > red:
		return string(model.TeamBlue)
	case red >= 3 && blue >= 3 && red == blue:
		return model.WinnerDraw
	}
	return ""
}
