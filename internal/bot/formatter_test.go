package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"crconbot/internal/crcon"
	"crconbot/internal/stats"

	"github.com/bwmarrin/discordgo"
)

func TestFormatVipDuration(t *testing.T) {

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0d 0h 0m"},
		{90 * time.Minute, "0d 1h 30m"},
		{25 * time.Hour, "1d 1h 0m"},
		{3*24*time.Hour + 5*time.Hour + 42*time.Minute, "3d 5h 42m"},
	}
	for _, test := range tests {
		if actual := FormatVipDuration(test.duration); actual != test.expected {
			t.Errorf("FormatVipDuration(%v) = %q, expected %q", test.duration, actual, test.expected)
		}
	}
}

func TestMonthAbbr(t *testing.T) {

	tests := []struct {
		yearMonth string
		expected  string
	}{
		{"2026-01", "Jan"},
		{"2025-12", "Dec"},
		{"garbage", "garbage"},
	}
	for _, test := range tests {
		if actual := MonthAbbr(test.yearMonth); actual != test.expected {
			t.Errorf("MonthAbbr(%q) = %q, expected %q", test.yearMonth, actual, test.expected)
		}
	}
}

func makeVips(count int, now time.Time) []crcon.Vip {
	vips := make([]crcon.Vip, count)
	for i := range vips {
		vips[i] = crcon.Vip{
			Name:      fmt.Sprintf("Player%d", i),
			ExpiresAt: now.Add(time.Duration(count-i) * time.Hour),
		}
	}
	return vips
}

func pageButtons(t *testing.T, response Response) (previous, next discordgo.Button) {
	t.Helper()
	if len(response.Components) != 1 {
		t.Fatalf("Expected one component row, got %d", len(response.Components))
	}
	row, ok := response.Components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("Expected an actions row, got %T", response.Components[0])
	}
	if len(row.Components) != 2 {
		t.Fatalf("Expected two buttons, got %d", len(row.Components))
	}
	return row.Components[0].(discordgo.Button), row.Components[1].(discordgo.Button)
}

func TestVipPageSinglePage(t *testing.T) {

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	response := VipPage(makeVips(3, now), 0, now)

	if response.Embed == nil {
		t.Fatal("Expected an embed")
	}
	if footer := response.Embed.Footer.Text; footer != "1–3 of 3" {
		t.Errorf("Unexpected footer %q", footer)
	}
	if len(response.Components) != 0 {
		t.Error("A single page should have no paging buttons")
	}
	if !strings.Contains(response.Embed.Description, "Player0") {
		t.Errorf("Expected Player0 in description: %s", response.Embed.Description)
	}
}

func TestVipPagePaging(t *testing.T) {

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	vips := makeVips(45, now)

	// First page: previous disabled, next points to page 1
	first := VipPage(vips, 0, now)
	if footer := first.Embed.Footer.Text; footer != "1–20 of 45" {
		t.Errorf("Unexpected first page footer %q", footer)
	}
	previous, next := pageButtons(t, first)
	if !previous.Disabled || next.Disabled {
		t.Error("First page should only allow paging forward")
	}
	if next.CustomID != "vips-page:1" {
		t.Errorf("Unexpected next custom id %q", next.CustomID)
	}

	// Last page: 5 entries, next disabled
	last := VipPage(vips, 2, now)
	if footer := last.Embed.Footer.Text; footer != "41–45 of 45" {
		t.Errorf("Unexpected last page footer %q", footer)
	}
	previous, next = pageButtons(t, last)
	if previous.Disabled || !next.Disabled {
		t.Error("Last page should only allow paging back")
	}
	if previous.CustomID != "vips-page:1" {
		t.Errorf("Unexpected previous custom id %q", previous.CustomID)
	}

	// Out of range pages clamp instead of going blank
	clamped := VipPage(vips, 99, now)
	if footer := clamped.Embed.Footer.Text; footer != "41–45 of 45" {
		t.Errorf("Page beyond the end should clamp to the last page, footer %q", footer)
	}
}

func TestTempBanList(t *testing.T) {

	bans := []crcon.Ban{{PlayerID: "111"}, {PlayerID: "222"}}
	names := []string{"Alpha", "Bravo"}
	response := TempBanList(bans, names)

	if !strings.Contains(response.Content, "Last 2 Temp Bans") {
		t.Errorf("Unexpected header: %s", response.Content)
	}
	if !strings.Contains(response.Content, "`1` - Alpha (ID: `111`)") {
		t.Errorf("Missing first ban line: %s", response.Content)
	}
	if !strings.Contains(response.Content, "`2` - Bravo (ID: `222`)") {
		t.Errorf("Missing second ban line: %s", response.Content)
	}
}

func statsOption(t *testing.T, response Response) discordgo.SelectMenuOption {
	t.Helper()
	row := response.Components[0].(discordgo.ActionsRow)
	menu := row.Components[0].(discordgo.SelectMenu)
	return menu.Options[0]
}

func TestSelectStatsPlayerTruncatesLongNames(t *testing.T) {

	long := strings.Repeat("x", 120)
	option := statsOption(t, SelectStatsPlayer([]stats.PlayerMatch{{SteamID: 765, Name: long}}))
	if len(option.Label) != 100 {
		t.Errorf("Expected the label truncated to 100 characters, got %d", len(option.Label))
	}
	if option.Value != "765|"+long[:100] {
		t.Errorf("Unexpected option value %q", option.Value)
	}

	// Multi-byte names must be cut on a rune boundary, not mid-rune
	wide := strings.Repeat("ü", 120)
	option = statsOption(t, SelectStatsPlayer([]stats.PlayerMatch{{SteamID: 765, Name: wide}}))
	if !utf8.ValidString(option.Label) {
		t.Error("Truncated label is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(option.Label); got != 100 {
		t.Errorf("Expected 100 runes in the label, got %d", got)
	}
}

func TestStatsEmbedEarlierRollup(t *testing.T) {

	allTime := stats.AllTimeStats{
		Matches:    100,
		Kills:      1000,
		Deaths:     500,
		BestStreak: 21,
		Seconds:    200 * 3600,
	}
	monthly := []stats.MonthlyStats{
		{Month: "2026-08", Matches: 10, Kills: 100, Deaths: 50, AvgKDR: 2.0, BestStreak: 15, Seconds: 20 * 3600},
		{Month: "2026-07", Matches: 20, Kills: 200, Deaths: 100, AvgKDR: 2.0, BestStreak: 21, Seconds: 30 * 3600},
	}
	response := StatsEmbed("Admin", "Soldier", allTime, monthly)

	if response.Embed == nil {
		t.Fatal("Expected an embed")
	}
	if len(response.Embed.Fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(response.Embed.Fields))
	}

	totals := response.Embed.Fields[0].Value
	if !strings.Contains(totals, "Games: **100**") || !strings.Contains(totals, "**1000 / 500**") {
		t.Errorf("Unexpected totals field: %s", totals)
	}
	if !strings.Contains(totals, "K/D Ratio: **2.00**") {
		t.Errorf("Expected the all time KDR in: %s", totals)
	}
	if !strings.Contains(totals, "Time Played: **200h 0m**") {
		t.Errorf("Expected the total time in: %s", totals)
	}

	months := response.Embed.Fields[1].Value
	if !strings.Contains(months, "📆 Aug — 100 / 50 / 10 / 2.00 🎯 15 🕒 20h") {
		t.Errorf("Unexpected month rows: %s", months)
	}

	// Earlier = all time minus the listed months
	earlier := response.Embed.Fields[2].Value
	if !strings.Contains(earlier, "700 / 350 / 70 / 2.00") {
		t.Errorf("Unexpected earlier rollup: %s", earlier)
	}
	if !strings.Contains(earlier, "🕒 150h") {
		t.Errorf("Expected 150 earlier hours in: %s", earlier)
	}
}

func TestStatsEmbedWithoutMonths(t *testing.T) {

	response := StatsEmbed("Admin", "Soldier", stats.AllTimeStats{}, nil)
	if months := response.Embed.Fields[1].Value; months != "No recent matches" {
		t.Errorf("Unexpected month field: %s", months)
	}
}
