package bot

import (
	"fmt"
	"strings"
	"time"

	"crconbot/internal/crcon"
	"crconbot/internal/stats"

	"github.com/bwmarrin/discordgo"
)

// Use "teal" color for the bot
const color int = 0x008080

// VIPs shown per embed page
const vipsPerPage = 20

func CurrentPing(ping int) Response {
	return Text(fmt.Sprintf("📡 Current max ping autokick is `%d` ms.", ping))
}

func CouldNotFetchPing() Response {
	return Text("⚠️ Could not fetch current ping.")
}

func PingSet(ping int) Response {
	return Text(fmt.Sprintf("✅ Set max ping autokick to `%d` ms.", ping))
}

func PingSetFailed() Response {
	return Text("❌ Failed to set ping.")
}

func PingOutOfRange() Response {
	return Text("⚠️ Ping must be between 1 and 10000 ms.")
}

func ScheduledTimes(t1 string, p1 int, t2 string, p2 int) Response {
	return Text(fmt.Sprintf("🕒 Job 1: %s:%s @ %dms\n🕒 Job 2: %s:%s @ %dms",
		t1[:2], t1[2:], p1, t2[:2], t2[2:], p2))
}

func JobRescheduled(job int, hour, minute, ping int) Response {
	return Text(fmt.Sprintf("✅ Job %d rescheduled to `%02d:%02d` @ %dms.", job, hour, minute, ping))
}

func InvalidTimeFormat() Response {
	return Text("⚠️ Invalid time format. Use HHMM.")
}

func InvalidTimeValue() Response {
	return Text("⚠️ Invalid time value.")
}

func InvalidJobNumber() Response {
	return Text("⚠️ Invalid job number (1 or 2).")
}

func RescheduleFailed(job int) Response {
	return Text(fmt.Sprintf("❌ Failed to reschedule job %d.", job))
}

func NoTempBans() Response {
	return Text("⚠️ No temp bans found.")
}

func TempBanList(bans []crcon.Ban, names []string) Response {
	lines := make([]string, len(bans))
	for i, ban := range bans {
		lines[i] = fmt.Sprintf("`%d` - %s (ID: `%s`)", i+1, names[i], ban.PlayerID)
	}
	return Text(fmt.Sprintf("**Last %d Temp Bans:**\n%s", len(bans), strings.Join(lines, "\n")))
}

func NoBansToUnban() Response {
	return Text("⚠️ No bans to unban.")
}

func InvalidBanIndex() Response {
	return Text("⚠️ Invalid ban index.")
}

func PlayerUnbanned(name string, playerID string) Response {
	return Text(fmt.Sprintf("✅ Unbanned `%s` (ID: `%s`)", name, playerID))
}

func UnbanFailed() Response {
	return Text("❌ Failed to unban player.")
}

func ScoreboardUnavailable() Response {
	return Ephemeral("❌ Error fetching live scoreboard.")
}

func NoPlayersWithPrefix() Response {
	return Ephemeral("⚠️ No players found with that prefix.")
}

func TooManyMatches() Response {
	return Ephemeral("⚠️ Too many matches. Please narrow your prefix.")
}

// SelectPlayer offers a dropdown of scoreboard players. The action ends up
// in the select custom id, so the component handler knows which ban flow
// this belongs to
func SelectPlayer(players []crcon.ScoreboardPlayer, action string, placeholder string, prompt string) Response {
	options := make([]discordgo.SelectMenuOption, len(players))
	for i, player := range players {
		options[i] = discordgo.SelectMenuOption{Label: player.Name, Value: player.PlayerID}
	}
	return Response{
		Content:   prompt,
		Ephemeral: true,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    action,
					Placeholder: placeholder,
					Options:     options,
				},
			}},
		},
	}
}

func PlayerBanned(name string, reason string) Response {
	return Ephemeral(fmt.Sprintf("✅ Successfully banned `%s` for reason: '%s'.", name, reason))
}

func BanFailed() Response {
	return Ephemeral("❌ Failed to ban player.")
}

func BanAnnouncement(admin string, name string, reason string) string {
	return fmt.Sprintf("👮 `%s` banned `%s` for reason: '%s'", admin, name, reason)
}

func PlayerTempBanned(name string, hours int, reason string) Response {
	return Ephemeral(fmt.Sprintf("⏳ Temporarily banned `%s` for %dh. Reason: '%s'", name, hours, reason))
}

func TempBanFailed() Response {
	return Ephemeral("❌ Failed to temp-ban player.")
}

func InvalidBanDuration() Response {
	return Ephemeral("⚠️ Duration must be between 1 and 720 hours.")
}

func TempBanAnnouncement(admin string, name string, hours int, reason string) string {
	return fmt.Sprintf("⛔ `%s` temp-banned `%s` (%dh) for: '%s'", admin, name, hours, reason)
}

func WrongChannel(purpose string) Response {
	return Ephemeral(fmt.Sprintf("⚠️ This command can only be used in the %s channel.", purpose))
}

func NoTemporaryVips() Response {
	return Ephemeral("⚠️ No temporary VIPs found.")
}

func VipsUnavailable() Response {
	return Ephemeral("❌ Error fetching VIP data.")
}

// VipPage renders one page of the temporary VIP list with paging buttons.
// The target pages ride in the button custom ids
func VipPage(vips []crcon.Vip, page int, now time.Time) Response {

	pages := (len(vips) + vipsPerPage - 1) / vipsPerPage
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}
	start := page * vipsPerPage
	end := min(start+vipsPerPage, len(vips))

	var lines []string
	for _, vip := range vips[start:end] {
		lines = append(lines, fmt.Sprintf("⏰ %s → `%s`", vip.Name, FormatVipDuration(vip.Remaining(now))))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "🧾 Temporary VIPs (Longest to Shortest)",
		Description: strings.Join(lines, "\n"),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d–%d of %d", start+1, end, len(vips))},
	}

	response := Response{Embed: embed, Ephemeral: true}
	if pages > 1 {
		response.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀️",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("vips-page:%d", page-1),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "▶️",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("vips-page:%d", page+1),
					Disabled: page == pages-1,
				},
			}},
		}
	}
	return response
}

// FormatVipDuration renders a remaining time as days, hours and minutes
func FormatVipDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

func StatsNotConfigured() Response {
	return Ephemeral("⚠️ Player stats are not configured on this bot.")
}

func NoMatchingPlayers() Response {
	return Text("No matching players found.")
}

func StatsUnavailable() Response {
	return Text("❌ Error fetching player stats.")
}

// SelectStatsPlayer offers the search hits; the value carries both the id
// and the exact name that was picked
func SelectStatsPlayer(matches []stats.PlayerMatch) Response {
	options := make([]discordgo.SelectMenuOption, len(matches))
	for i, match := range matches {
		name := match.Name
		// Discord caps labels at 100 characters; cut on a rune boundary
		if runes := []rune(name); len(runes) > 100 {
			name = string(runes[:100])
		}
		options[i] = discordgo.SelectMenuOption{
			Label: name,
			Value: fmt.Sprintf("%d|%s", match.SteamID, name),
		}
	}
	return Response{
		Content: "Select a player:",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "playerstats-select",
					Placeholder: "Select a player",
					Options:     options,
				},
			}},
		},
	}
}

// StatsEmbed renders the all time totals, the last six months and an
// "earlier" rollup of everything before them
func StatsEmbed(requester string, playerName string, allTime stats.AllTimeStats, monthly []stats.MonthlyStats) Response {

	allTimeKDR := 0.0
	if allTime.Deaths > 0 {
		allTimeKDR = float64(allTime.Kills) / float64(allTime.Deaths)
	}
	totalHours := allTime.Seconds / 3600
	totalMinutes := (allTime.Seconds % 3600) / 60

	var monthLines []string
	var recentKills, recentDeaths, recentMatches int
	var recentSeconds int64
	for _, month := range monthly {
		monthLines = append(monthLines, formatMonthRow(month))
		recentKills += month.Kills
		recentDeaths += month.Deaths
		recentMatches += month.Matches
		recentSeconds += month.Seconds
	}
	if len(monthLines) == 0 {
		monthLines = []string{"No recent matches"}
	}

	earlierKills := allTime.Kills - recentKills
	earlierDeaths := allTime.Deaths - recentDeaths
	earlierMatches := allTime.Matches - recentMatches
	earlierKDR := 0.0
	if earlierDeaths > 0 {
		earlierKDR = float64(earlierKills) / float64(earlierDeaths)
	}
	earlierHours := (allTime.Seconds - recentSeconds) / 3600

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s requested stats for `%s`", requester, playerName),
		Color: color,
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🏅 All-Time Totals",
		Value: fmt.Sprintf(
			"• Games: **%d**\n• Kills / Deaths: **%d / %d**\n• K/D Ratio: **%.2f**\n• Best Kill Streak: **%d**\n• Time Played: **%dh %dm**",
			allTime.Matches, allTime.Kills, allTime.Deaths, allTimeKDR, allTime.BestStreak, totalHours, totalMinutes),
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "🗓️ Last 6 Months (K/D/G/R 🎯 🕒)",
		Value:  strings.Join(monthLines, "\n"),
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "📦 Earlier",
		Value: fmt.Sprintf("%d / %d / %d / %.2f 🎯 %d 🕒 %dh",
			earlierKills, earlierDeaths, earlierMatches, earlierKDR, allTime.BestStreak, earlierHours),
		Inline: false,
	})
	return Response{Embed: embed}
}

func formatMonthRow(month stats.MonthlyStats) string {
	return fmt.Sprintf("📆 %s — %d / %d / %d / %.2f 🎯 %d 🕒 %dh",
		MonthAbbr(month.Month), month.Kills, month.Deaths, month.Matches,
		month.AvgKDR, month.BestStreak, month.Seconds/3600)
}

// MonthAbbr turns a "YYYY-MM" label into the short month name
func MonthAbbr(yearMonth string) string {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return yearMonth
	}
	return t.Month().String()[:3]
}

func BotOnline(ping int) Response {
	return Text(fmt.Sprintf("🟢 Bot and API are online! Current max ping autokick: `%d` ms.", ping))
}

func BotOnlineAPIDown() Response {
	return Text("🟢 Bot is online, but failed to reach API.")
}

func HelpMessage() Response {

	embed := &discordgo.MessageEmbed{Title: "📘 HLL command tool", Color: color}
	commands := []struct{ name, value string }{
		{"/banplayer", "Ban a live player: input the start of a name, select the player, then give a reason"},
		{"/bantemp", "Temp-ban a live player: same flow, plus a duration in hours"},
		{"/bans", "Show the last 5 temp bans"},
		{"/unban", "Unban a player by number from the /bans list"},
		{"/curping", "Show the current max ping autokick value"},
		{"/setping", "Set the max ping autokick value (in ms)"},
		{"/curscheduledtime", "Show the scheduled job times and ping values"},
		{"/setscheduledtime", "Set a scheduled job time and ping"},
		{"/showvips", "Display temporary VIPs and how long they have left"},
		{"/playerstats", "Show all-time stats for a player by name"},
		{"/online", "Check if bot and API are running"},
		{"/help", "Show this help message"},
	}
	for _, command := range commands {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "`" + command.name + "`", Value: command.value, Inline: false,
		})
	}
	return Response{Embed: embed}
}
