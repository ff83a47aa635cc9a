package crcon

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Every CRCON response wraps its payload in the same envelope
type envelope struct {
	Result json.RawMessage `json:"result"`
	Failed bool            `json:"failed"`
	Error  *string         `json:"error"`
}

// UnmarshalResult decodes the CRCON envelope and then the payload itself
func UnmarshalResult(data []byte, result any) error {

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("response is not a CRCON envelope: %w", err)
	}
	if env.Failed {
		if env.Error != nil {
			return fmt.Errorf("CRCON reported failure: %s", *env.Error)
		}
		return fmt.Errorf("CRCON reported failure")
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("result does not have the expected content: %w", err)
	}
	return nil
}

// UnmarshalWarfareMaps builds the map id -> pretty name cache from a
// get_maps response, keeping only warfare maps and dropping night variants
func UnmarshalWarfareMaps(data []byte) (map[string]string, error) {

	var maps []GameMap
	if err := UnmarshalResult(data, &maps); err != nil {
		return nil, err
	}

	warfare := map[string]string{}
	for _, m := range maps {
		if m.GameMode != "warfare" || m.ID == "" || m.PrettyName == "" {
			continue
		}
		if strings.Contains(strings.ToLower(m.PrettyName), "night") {
			continue
		}
		warfare[m.ID] = m.PrettyName
	}
	return warfare, nil
}

// UnmarshalMaxPing extracts max_ping_autokick from a get_server_settings response
func UnmarshalMaxPing(data []byte) (int, error) {

	var settings struct {
		MaxPingAutokick int `json:"max_ping_autokick"`
	}
	if err := UnmarshalResult(data, &settings); err != nil {
		return 0, err
	}
	return settings.MaxPingAutokick, nil
}

// UnmarshalTempBans filters a get_bans response down to temp bans with a
// player id, newest first, capped at limit
func UnmarshalTempBans(data []byte, limit int) ([]Ban, error) {

	var bans []Ban
	if err := UnmarshalResult(data, &bans); err != nil {
		return nil, err
	}

	var temp []Ban
	for i := len(bans) - 1; i >= 0; i-- {
		if bans[i].Type != "temp" || bans[i].PlayerID == "" {
			continue
		}
		temp = append(temp, bans[i])
		if len(temp) == limit {
			break
		}
	}
	return temp, nil
}

// UnmarshalProfileName picks the most recently seen name out of a
// get_player_profile response
func UnmarshalProfileName(data []byte) (string, error) {

	var profile struct {
		Names []ProfileName `json:"names"`
	}
	if err := UnmarshalResult(data, &profile); err != nil {
		return "", err
	}
	if len(profile.Names) == 0 {
		return "", fmt.Errorf("profile carries no names")
	}

	// last_seen is ISO formatted, so string order is time order
	sort.Slice(profile.Names, func(i, j int) bool {
		return profile.Names[i].LastSeen > profile.Names[j].LastSeen
	})
	return profile.Names[0].Name, nil
}

// The expiration CRCON uses to mark a VIP as permanent
const permanentVipYear = 3000

// The suffix the seeding reward plugin appends to VIP names
const seedVipSuffix = " - CRCON Seed VIP"

// UnmarshalTemporaryVips extracts the VIPs from a get_vip_ids response that
// are temporary and still active at the provided instant, sorted by the
// longest remaining time first
func UnmarshalTemporaryVips(data []byte, now time.Time) ([]Vip, error) {

	var raw []struct {
		Name          string `json:"name"`
		VipExpiration string `json:"vip_expiration"`
	}
	if err := UnmarshalResult(data, &raw); err != nil {
		return nil, err
	}

	var vips []Vip
	for _, entry := range raw {
		expiresAt, err := time.Parse(time.RFC3339, entry.VipExpiration)
		if err != nil {
			continue
		}
		if expiresAt.Year() >= permanentVipYear || !expiresAt.After(now) {
			continue
		}
		name := strings.TrimSuffix(entry.Name, seedVipSuffix)
		vips = append(vips, Vip{Name: name, ExpiresAt: expiresAt})
	}

	sort.Slice(vips, func(i, j int) bool {
		return vips[i].ExpiresAt.After(vips[j].ExpiresAt)
	})
	return vips, nil
}

// UnmarshalScoreboard extracts the player list from a get_live_scoreboard response
func UnmarshalScoreboard(data []byte) ([]ScoreboardPlayer, error) {

	var scoreboard struct {
		Stats []ScoreboardPlayer `json:"stats"`
	}
	if err := UnmarshalResult(data, &scoreboard); err != nil {
		return nil, err
	}
	return scoreboard.Stats, nil
}
