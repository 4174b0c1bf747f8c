package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/litfish/litgame-go/internal/dependencies/clock"
	"github.com/litfish/litgame-go/internal/dependencies/keylock"
	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/services/deck"
	"github.com/litfish/litgame-go/internal/services/scoring"
	"github.com/litfish/litgame-go/internal/storage"
)

// Controller runs the in-room state machine: dealing, the card-request
// protocol, set declarations and turn claims. Every action validates
// fully before mutating, so a rejected action leaves the room untouched.
type Controller struct {
	storage        storage.Storage
	deckService    *deck.Service
	scoringService *scoring.Service
	clock          clock.Clock
	locks          *keylock.KeyLock
	logger         *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	deckService *deck.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	locks *keylock.KeyLock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		deckService:    deckService,
		scoringService: scoringService,
		clock:          clock,
		locks:          locks,
		logger:         logger,
	}
}

// StartGame deals a shuffled deck and moves the room to playing. Only
// the host may start, the room must be full, and the teams must be
// evenly assigned with nobody left unassigned. The first seat in join
// order takes the opening turn.
func (c *Controller) StartGame(ctx context.Context, name model.RoomName, playerID model.PlayerID) (*model.Room, error) {
	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	switch room.Status {
	case model.RoomStatusPlaying:
		return nil, model.ErrGameInProgress
	case model.RoomStatusFinished:
		return nil, model.ErrGameFinished
	}

	actor := room.GetPlayer(playerID)
	if actor == nil {
		return nil, model.ErrNotInRoom
	}
	if !actor.IsHost {
		return nil, model.ErrNotHost
	}
	if !room.IsFull() {
		return nil, model.ErrInsufficientPlayers
	}

	red, blue, unassigned := room.TeamCounts()
	if unassigned > 0 || red != blue {
		return nil, model.ErrTeamsUnbalanced
	}

	hands, err := deck.Deal(c.deckService.Shuffled(), len(room.Players))
	if err != nil {
		return nil, err
	}
	for i := range room.Players {
		room.Players[i].Hand = hands[i]
	}

	room.Status = model.RoomStatusPlaying
	room.CurrentTurn = room.Players[0].ID
	room.LastAction = actor.Name + " started the game"
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("room", string(name)),
		slog.Int("players", len(room.Players)),
	)

	return room, nil
}

// RequestCard asks an opponent for a specific card. Whether or not the
// target holds it, the turn passes to the target; a hit also moves the
// card into the requester's hand.
func (c *Controller) RequestCard(ctx context.Context, name model.RoomName, requesterID, targetID model.PlayerID, card model.Card) (*model.Room, error) {
	if !model.ValidSuit(card.Suit) || !model.ValidSetType(card.SetType) || !model.ValidRank(card.Rank) {
		return nil, model.ErrInvalidInput
	}
	if st, ok := model.RankSetType(card.Rank); !ok || st != card.SetType {
		return nil, model.ErrInvalidInput
	}

	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(room, model.RoomStatusPlaying); err != nil {
		return nil, err
	}
	if room.CurrentTurn != requesterID {
		return nil, model.ErrNotYourTurn
	}

	requester := room.GetPlayer(requesterID)
	if requester == nil {
		return nil, model.ErrNotInRoom
	}
	target := room.GetPlayer(targetID)
	if target == nil {
		return nil, model.ErrPlayerNotFound
	}

	if err := validateRequest(requester, target, card); err != nil {
		return nil, err
	}

	if target.HasCard(card) {
		transferCard(target, requester, card)
		room.LastAction = fmt.Sprintf("%s got the %s from %s", requester.Name, card, target.Name)
	} else {
		room.LastAction = fmt.Sprintf("%s asked %s for the %s but they didn't have it", requester.Name, target.Name, card)
	}

	// Turn passes to the player asked, hit or miss.
	room.CurrentTurn = target.ID
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// validateRequest checks the card-request predicate. Requests targeting
// a teammate or oneself, involving an empty hand on either side, for a
// set the requester holds nothing from, or for a card the requester
// already holds are all invalid.
func validateRequest(requester, target *model.RoomPlayer, card model.Card) error {
	if target.ID == requester.ID {
		return model.ErrInvalidRequest
	}
	if target.Team == requester.Team {
		return model.ErrInvalidRequest
	}
	if len(requester.Hand) == 0 || len(target.Hand) == 0 {
		return model.ErrInvalidRequest
	}
	holdsFromSet := false
	for _, held := range requester.Hand {
		if held.SameSet(card) {
			holdsFromSet = true
			break
		}
	}
	if !holdsFromSet {
		return model.ErrInvalidRequest
	}
	if requester.HasCard(card) {
		return model.ErrInvalidRequest
	}
	return nil
}

func transferCard(from, to *model.RoomPlayer, card model.Card) {
	for i, held := range from.Hand {
		if held == card {
			from.Hand = append(from.Hand[:i], from.Hand[i+1:]...)
			break
		}
	}
	to.Hand = append(to.Hand, card)
}

// DeclareSet commits the turn holder's team to owning every rank of a
// set. A correct declaration captures the set for the declarer's team;
// a wrong one awards it to the opposing team. Hands are never touched:
// win evaluation reads only the captured-set log.
func (c *Controller) DeclareSet(ctx context.Context, name model.RoomName, playerID model.PlayerID, suit model.Suit, setType model.SetType) (*model.Room, error) {
	if !model.ValidSuit(suit) || !model.ValidSetType(setType) {
		return nil, model.ErrInvalidInput
	}

	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(room, model.RoomStatusPlaying); err != nil {
		return nil, err
	}
	if room.CurrentTurn != playerID {
		return nil, model.ErrNotYourTurn
	}

	declarer := room.GetPlayer(playerID)
	if declarer == nil {
		return nil, model.ErrNotInRoom
	}

	if room.TeamHoldsSet(declarer.Team, suit, setType) {
		room.CapturedSets = append(room.CapturedSets, model.CapturedSet{
			Team:    declarer.Team,
			Suit:    suit,
			SetType: setType,
		})
		room.LastAction = fmt.Sprintf("%s declared the %s %s set for team %s", declarer.Name, setType, suit, declarer.Team)
	} else {
		awarded := declarer.Team.Opposing()
		room.CapturedSets = append(room.CapturedSets, model.CapturedSet{
			Team:    awarded,
			Suit:    suit,
			SetType: setType,
		})
		room.LastAction = fmt.Sprintf("%s declared the %s %s set incorrectly, awarding it to team %s", declarer.Name, setType, suit, awarded)
	}

	if winner := c.scoringService.CheckWin(room.CapturedSets); winner != "" {
		room.Status = model.RoomStatusFinished
		room.Winner = winner
		room.UpdatedAt = c.clock.Now()

		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, err
		}

		c.logger.Info("game finished",
			slog.String("room", string(name)),
			slog.String("winner", winner),
		)
		return room, nil
	}

	next, err := c.scoringService.NextPlayer(playerID, room.Players)
	if err != nil {
		return nil, err
	}
	room.CurrentTurn = next
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// ClaimTurn lets a player flagged with canClaimTurn seize the turn. The
// flag is single use and is cleared when spent. This is the escape
// hatch for a stalled turn holder, for example one with an empty hand.
func (c *Controller) ClaimTurn(ctx context.Context, name model.RoomName, playerID model.PlayerID) (*model.Room, error) {
	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(room, model.RoomStatusPlaying); err != nil {
		return nil, err
	}

	claimant := room.GetPlayer(playerID)
	if claimant == nil {
		return nil, model.ErrNotInRoom
	}
	if !claimant.CanClaimTurn {
		return nil, model.ErrCannotClaimTurn
	}

	claimant.CanClaimTurn = false
	room.CurrentTurn = claimant.ID
	room.LastAction = claimant.Name + " claimed the turn"
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// GrantClaim marks a player as allowed to claim the turn. Host only.
func (c *Controller) GrantClaim(ctx context.Context, name model.RoomName, hostID, playerID model.PlayerID) (*model.Room, error) {
	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(room, model.RoomStatusPlaying); err != nil {
		return nil, err
	}

	actor := room.GetPlayer(hostID)
	if actor == nil {
		return nil, model.ErrNotInRoom
	}
	if !actor.IsHost {
		return nil, model.ErrNotHost
	}

	grantee := room.GetPlayer(playerID)
	if grantee == nil {
		return nil, model.ErrPlayerNotFound
	}

	grantee.CanClaimTurn = true
	room.LastAction = actor.Name + " allowed " + grantee.Name + " to claim the turn"
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func requireStatus(room *model.Room, want model.RoomStatus) error {
	if room.Status == want {
		return nil
	}
	switch room.Status {
	case model.RoomStatusWaiting:
		return model.ErrGameNotStarted
	case model.RoomStatusPlaying:
		return model.ErrGameInProgress
	default:
		return model.ErrGameFinished
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	StartGame(ctx context.Context, name model.RoomName, playerID model.PlayerID) (*model.Room, error)
	RequestCard(ctx context.Context, name model.RoomName, requesterID, targetID model.PlayerID, card model.Card) (*model.Room, error)
	DeclareSet(ctx context.Context, name model.RoomName, playerID model.PlayerID, suit model.Suit, setType model.SetType) (*model.Room, error)
	ClaimTurn(ctx context.Context, name model.RoomName, playerID model.PlayerID) (*model.Room, error)
	GrantClaim(ctx context.Context, name model.RoomName, hostID, playerID model.PlayerID) (*model.Room, error)
}

var _ ControllerInterface = (*Controller)(nil)
