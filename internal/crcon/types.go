package crcon

import (
	"time"
)

type GameMap struct {
	ID         string `json:"id"`
	PrettyName string `json:"pretty_name"`
	GameMode   string `json:"game_mode"`
}

type Ban struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

// One historical name of a player inside a profile
type ProfileName struct {
	Name     string `json:"name"`
	LastSeen string `json:"last_seen"`
}

type Vip struct {
	Name      string
	ExpiresAt time.Time
}

// Remaining returns the time left on a temporary VIP at the given instant
func (vip *Vip) Remaining(now time.Time) time.Duration {
	return vip.ExpiresAt.Sub(now)
}

type ScoreboardPlayer struct {
	Name     string `json:"player"`
	PlayerID string `json:"player_id"`
}
