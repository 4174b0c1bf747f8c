package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity,omitempty"`
}

// JoinTeamRequest is the request body for picking a team
type JoinTeamRequest struct {
	Team string `json:"team"`
}

// RequestCardRequest is the request body for asking an opponent for a card
type RequestCardRequest struct {
	TargetPlayerID string `json:"target_player_id"`
	Suit           string `json:"suit"`
	Rank           string `json:"rank"`
	SetType        string `json:"set_type"`
}

// DeclareSetRequest is the request body for declaring a set
type DeclareSetRequest struct {
	Suit    string `json:"suit"`
	SetType string `json:"set_type"`
}

// GrantClaimRequest is the request body for allowing a player to claim the turn
type GrantClaimRequest struct {
	PlayerID string `json:"player_id"`
}
