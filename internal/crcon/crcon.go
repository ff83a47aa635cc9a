package crcon

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"crconbot/internal/common"

	"github.com/rs/zerolog/log"
)

// Routes inside the CRCON API
const (
	ROUTE_GET_MAPS             = "/api/get_maps"
	ROUTE_GET_SERVER_SETTINGS  = "/api/get_server_settings"
	ROUTE_SET_MAX_PING         = "/api/set_max_ping_autokick"
	ROUTE_GET_BANS             = "/api/get_bans"
	ROUTE_GET_PLAYER_PROFILE   = "/api/get_player_profile"
	ROUTE_UNBAN                = "/api/unban"
	ROUTE_GET_VIP_IDS          = "/api/get_vip_ids"
	ROUTE_ADD_BLACKLIST_RECORD = "/api/add_blacklist_record"
	ROUTE_TEMP_BAN             = "/api/temp_ban"
	ROUTE_GET_LIVE_SCOREBOARD  = "/api/get_live_scoreboard"
)

// Admin name attached to bans issued from Discord
const AdminName = "discordBot"

// Expiry CRCON expects for a "permanent" blacklist record
const permanentBanExpiry = "2033-01-01T00:00:00"

// Name returned when a player profile cannot be resolved
const UnknownPlayer = "Unknown"

// How many temp bans /bans and /unban work with
const RecentBanCount = 5

type Client struct {
	baseURL     string
	proxy       common.Proxy
	warfareMaps map[string]string
}

func NewClient(baseURL string, bearerToken string, restrictions []common.Restriction) *Client {
	header := map[string]string{"Authorization": "Bearer " + bearerToken}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		proxy:       common.NewProxy(header, restrictions),
		warfareMaps: map[string]string{},
	}
}

// RefreshMapCache fetches the map list and rebuilds the warfare map cache
// wholesale. Called once at startup
func (client *Client) RefreshMapCache() error {

	data := client.proxy.Get(client.baseURL+ROUTE_GET_MAPS, nil, false)
	if data == nil {
		return fmt.Errorf("could not request map list")
	}
	warfare, err := UnmarshalWarfareMaps(data)
	if err != nil {
		return err
	}
	client.warfareMaps = warfare
	log.Info().Int("maps", len(warfare)).Msg("Cached warfare maps")
	return nil
}

// MapName resolves a map id through the cache
func (client *Client) MapName(id string) (string, bool) {
	name, ok := client.warfareMaps[id]
	return name, ok
}

func (client *Client) WarfareMapCount() int {
	return len(client.warfareMaps)
}

// MaxPingAutokick reads the current autokick ping threshold in ms
func (client *Client) MaxPingAutokick() (int, error) {

	data := client.proxy.Get(client.baseURL+ROUTE_GET_SERVER_SETTINGS, nil, true)
	if data == nil {
		return 0, fmt.Errorf("could not request server settings")
	}
	ping, err := UnmarshalMaxPing(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch max ping")
		return 0, err
	}
	return ping, nil
}

// SetMaxPingAutokick updates the autokick ping threshold in ms
func (client *Client) SetMaxPingAutokick(ping int) error {

	payload := struct {
		MaxMs int `json:"max_ms"`
	}{ping}
	data := client.proxy.Post(client.baseURL+ROUTE_SET_MAX_PING, payload)
	if data == nil {
		return fmt.Errorf("could not set max ping to %d", ping)
	}
	return UnmarshalResult(data, nil)
}

// RecentTempBans returns up to limit temp bans, newest first
func (client *Client) RecentTempBans(limit int) ([]Ban, error) {

	data := client.proxy.Get(client.baseURL+ROUTE_GET_BANS, nil, true)
	if data == nil {
		return nil, fmt.Errorf("could not request ban list")
	}
	bans, err := UnmarshalTempBans(data, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch bans")
		return nil, err
	}
	return bans, nil
}

// PlayerName resolves the most recently seen name of a player.
// Failures come back as the Unknown sentinel, never as an error
func (client *Client) PlayerName(playerID string) string {

	params := url.Values{"player_id": {playerID}}
	data := client.proxy.Get(client.baseURL+ROUTE_GET_PLAYER_PROFILE, params, true)
	if data == nil {
		return UnknownPlayer
	}
	name, err := UnmarshalProfileName(data)
	if err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("Failed to fetch player profile")
		return UnknownPlayer
	}
	return name
}

// Unban lifts the ban on a player
func (client *Client) Unban(playerID string) error {

	payload := struct {
		PlayerID string `json:"player_id"`
	}{playerID}
	data := client.proxy.Post(client.baseURL+ROUTE_UNBAN, payload)
	if data == nil {
		return fmt.Errorf("could not unban player %s", playerID)
	}
	return UnmarshalResult(data, nil)
}

// TemporaryVips lists the VIPs whose status still expires, with the
// longest remaining time first
func (client *Client) TemporaryVips(now time.Time) ([]Vip, error) {

	data := client.proxy.Get(client.baseURL+ROUTE_GET_VIP_IDS, nil, true)
	if data == nil {
		return nil, fmt.Errorf("could not request VIP list")
	}
	vips, err := UnmarshalTemporaryVips(data, now)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch VIP data")
		return nil, err
	}
	return vips, nil
}

// PermanentBan blacklists a player until the permanent expiry
func (client *Client) PermanentBan(playerID string, reason string) error {

	payload := struct {
		PlayerID    string `json:"player_id"`
		BlacklistID int    `json:"blacklist_id"`
		Reason      string `json:"reason"`
		ExpiresAt   string `json:"expires_at"`
		AdminName   string `json:"admin_name"`
	}{playerID, 0, reason, permanentBanExpiry, AdminName}
	data := client.proxy.Post(client.baseURL+ROUTE_ADD_BLACKLIST_RECORD, payload)
	if data == nil {
		return fmt.Errorf("could not ban player %s", playerID)
	}
	return UnmarshalResult(data, nil)
}

// TempBan bans a player for the given number of hours
func (client *Client) TempBan(playerID string, playerName string, hours int, reason string) error {

	payload := struct {
		PlayerID      string `json:"player_id"`
		PlayerName    string `json:"player_name"`
		DurationHours int    `json:"duration_hours"`
		Reason        string `json:"reason"`
		By            string `json:"by"`
	}{playerID, playerName, hours, reason, AdminName}
	data := client.proxy.Post(client.baseURL+ROUTE_TEMP_BAN, payload)
	if data == nil {
		return fmt.Errorf("could not temp ban player %s", playerID)
	}
	return UnmarshalResult(data, nil)
}

// LiveScoreboard lists the players currently on the server
func (client *Client) LiveScoreboard() ([]ScoreboardPlayer, error) {

	data := client.proxy.Get(client.baseURL+ROUTE_GET_LIVE_SCOREBOARD, nil, true)
	if data == nil {
		return nil, fmt.Errorf("could not request live scoreboard")
	}
	players, err := UnmarshalScoreboard(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch scoreboard")
		return nil, err
	}
	return players, nil
}

// FilterByPrefix keeps the scoreboard players whose name starts with the
// provided prefix, case insensitively
func FilterByPrefix(players []ScoreboardPlayer, prefix string) []ScoreboardPlayer {

	prefix = strings.ToLower(prefix)
	var filtered []ScoreboardPlayer
	for _, player := range players {
		if strings.HasPrefix(strings.ToLower(player.Name), prefix) {
			filtered = append(filtered, player)
		}
	}
	return filtered
}
