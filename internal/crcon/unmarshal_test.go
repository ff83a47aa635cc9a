package crcon

import (
	"testing"
	"time"
)

func TestUnmarshalResultEnvelope(t *testing.T) {

	var value struct{ Foo string }
	if err := UnmarshalResult([]byte(`{"result": {"foo": "bar"}, "failed": false, "error": null}`), &value); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if value.Foo != "bar" {
		t.Errorf("Expected bar, got %q", value.Foo)
	}

	if err := UnmarshalResult([]byte(`{"result": null, "failed": true, "error": "boom"}`), nil); err == nil {
		t.Error("Expected an error for a failed envelope")
	}
	if err := UnmarshalResult([]byte(`not json`), nil); err == nil {
		t.Error("Expected an error for garbage input")
	}
}

func TestUnmarshalWarfareMaps(t *testing.T) {

	data := []byte(`{"result": [
		{"id": "carentan_warfare", "pretty_name": "Carentan", "game_mode": "warfare"},
		{"id": "carentan_warfare_night", "pretty_name": "Carentan (Night)", "game_mode": "warfare"},
		{"id": "carentan_offensive_us", "pretty_name": "Carentan Off. US", "game_mode": "offensive"},
		{"id": "", "pretty_name": "Nameless", "game_mode": "warfare"},
		{"id": "utah_warfare", "pretty_name": "Utah Beach", "game_mode": "warfare"}
	], "failed": false, "error": null}`)

	maps, err := UnmarshalWarfareMaps(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("Expected 2 warfare maps, got %d: %v", len(maps), maps)
	}
	if maps["carentan_warfare"] != "Carentan" || maps["utah_warfare"] != "Utah Beach" {
		t.Errorf("Unexpected cache content: %v", maps)
	}
}

func TestUnmarshalTempBans(t *testing.T) {

	data := []byte(`{"result": [
		{"type": "temp", "player_id": "a"},
		{"type": "perma", "player_id": "b"},
		{"type": "temp", "player_id": ""},
		{"type": "temp", "player_id": "c"},
		{"type": "temp", "player_id": "d"}
	], "failed": false, "error": null}`)

	bans, err := UnmarshalTempBans(data, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(bans) != 2 {
		t.Fatalf("Expected 2 bans, got %d", len(bans))
	}
	// Newest first, perma and empty ids skipped
	if bans[0].PlayerID != "d" || bans[1].PlayerID != "c" {
		t.Errorf("Unexpected order: %v", bans)
	}
}

func TestUnmarshalProfileName(t *testing.T) {

	data := []byte(`{"result": {"names": [
		{"name": "OldName", "last_seen": "2024-01-01T00:00:00"},
		{"name": "NewName", "last_seen": "2025-06-01T00:00:00"},
		{"name": "MiddleName", "last_seen": "2024-12-01T00:00:00"}
	]}, "failed": false, "error": null}`)

	name, err := UnmarshalProfileName(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if name != "NewName" {
		t.Errorf("Expected the most recently seen name, got %q", name)
	}

	if _, err := UnmarshalProfileName([]byte(`{"result": {"names": []}, "failed": false}`)); err == nil {
		t.Error("Expected an error for a profile without names")
	}
}

func TestUnmarshalTemporaryVips(t *testing.T) {

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	data := []byte(`{"result": [
		{"name": "Forever", "vip_expiration": "3000-01-01T00:00:00+00:00"},
		{"name": "Expired", "vip_expiration": "2026-08-01T00:00:00+00:00"},
		{"name": "Shorty", "vip_expiration": "2026-08-29T12:00:00+00:00"},
		{"name": "Seeder - CRCON Seed VIP", "vip_expiration": "2026-09-28T12:00:00+00:00"},
		{"name": "Broken", "vip_expiration": "not-a-date"}
	], "failed": false, "error": null}`)

	vips, err := UnmarshalTemporaryVips(data, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(vips) != 2 {
		t.Fatalf("Expected 2 temporary VIPs, got %d: %v", len(vips), vips)
	}
	// Longest remaining first, seed suffix stripped
	if vips[0].Name != "Seeder" {
		t.Errorf("Expected Seeder first without the suffix, got %q", vips[0].Name)
	}
	if vips[1].Name != "Shorty" {
		t.Errorf("Expected Shorty second, got %q", vips[1].Name)
	}
	if remaining := vips[1].Remaining(now); remaining != 24*time.Hour {
		t.Errorf("Expected 24h remaining, got %v", remaining)
	}
}

func TestUnmarshalScoreboard(t *testing.T) {

	data := []byte(`{"result": {"stats": [
		{"player": "Alpha", "player_id": "1"},
		{"player": "beta", "player_id": "2"}
	]}, "failed": false, "error": null}`)

	players, err := UnmarshalScoreboard(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(players) != 2 || players[0].Name != "Alpha" {
		t.Errorf("Unexpected scoreboard: %v", players)
	}
}

func TestFilterByPrefix(t *testing.T) {

	players := []ScoreboardPlayer{
		{Name: "Alpha", PlayerID: "1"},
		{Name: "alphonse", PlayerID: "2"},
		{Name: "Beta", PlayerID: "3"},
	}
	tests := []struct {
		prefix string
		want   int
	}{
		{"alp", 2},
		{"ALPHA", 1},
		{"beta", 1},
		{"gamma", 0},
		{"", 3},
	}
	for _, test := range tests {
		if got := len(FilterByPrefix(players, test.prefix)); got != test.want {
			t.Errorf("FilterByPrefix(%q) returned %d players, expected %d", test.prefix, got, test.want)
		}
	}
}
