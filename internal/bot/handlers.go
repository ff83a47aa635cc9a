package bot

import (
	"context"
	"time"

	"crconbot/internal/config"
	"crconbot/internal/crcon"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// At most this many dropdown entries fit in a select menu
const maxSelectOptions = 25

// /showvips is rate limited to once per this window
const showVipsCooldown = time.Hour

func optionMap(interaction *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := interaction.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, option := range options {
		m[option.Name] = option
	}
	return m
}

func (bot *Bot) handleCurPing(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	ping, err := bot.client.MaxPingAutokick()
	if err != nil {
		CouldNotFetchPing().Respond(discord, interaction.Interaction)
		return
	}
	CurrentPing(ping).Respond(discord, interaction.Interaction)
}

func (bot *Bot) handleSetPing(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	ping := int(optionMap(interaction)["ping"].IntValue())
	if ping <= 0 || ping > 10000 {
		PingOutOfRange().Respond(discord, interaction.Interaction)
		return
	}
	if err := bot.client.SetMaxPingAutokick(ping); err != nil {
		PingSetFailed().Respond(discord, interaction.Interaction)
		return
	}
	PingSet(ping).Respond(discord, interaction.Interaction)
}

func (bot *Bot) handleCurScheduledTime(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	t1, p1 := bot.cfg.Job(1)
	t2, p2 := bot.cfg.Job(2)
	ScheduledTimes(t1, p1, t2, p2).Respond(discord, interaction.Interaction)
}

func (bot *Bot) handleSetScheduledTime(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	options := optionMap(interaction)
	job := int(options["job"].IntValue())
	dayTime := options["time"].StringValue()
	ping := int(options["ping"].IntValue())

	if job != 1 && job != 2 {
		InvalidJobNumber().Respond(discord, interaction.Interaction)
		return
	}
	hour, minute, err := config.ParseDayTime(dayTime)
	if err != nil {
		InvalidTimeFormat().Respond(discord, interaction.Interaction)
		return
	}
	if ping <= 0 || ping > 10000 {
		PingOutOfRange().Respond(discord, interaction.Interaction)
		return
	}
	if err := bot.scheduler.Reschedule(job, dayTime, ping); err != nil {
		RescheduleFailed(job).Respond(discord, interaction.Interaction)
		return
	}
	JobRescheduled(job, hour, minute, ping).Respond(discord, interaction.Interaction)
}

func (bot *Bot) handleBans(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	// Resolving names takes one profile request per ban
	deferReply(discord, interaction.Interaction, false)

	bans, err := bot.client.RecentTempBans(crcon.RecentBanCount)
	if err != nil || len(bans) == 0 {
		NoTempBans().FollowUp(discord, interaction.Interaction)
		return
	}
	names := make([]string, len(bans))
	for i, ban := range bans {
		names[i] = bot.client.PlayerName(ban.PlayerID)
	}
	TempBanList(bans, names).FollowUp(discord, interaction.Interaction)
}

func (bot *Bot) handleUnban(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	index := int(optionMap(interaction)["index"].IntValue())
	user := interactionUser(interaction)

	deferReply(discord, interaction.Interaction, false)

	bans, err := bot.client.RecentTempBans(crcon.RecentBanCount)
	if err != nil || len(bans) == 0 {
		log.Info().Str("user", user.Username).Msg("Unban attempted but no bans were found")
		NoBansToUnban().FollowUp(discord, interaction.Interaction)
		return
	}
	if index < 1 || index > len(bans) {
		log.Warn().Str("user", user.Username).Int("index", index).Msg("Invalid unban index")
		InvalidBanIndex().FollowUp(discord, interaction.Interaction)
		return
	}

	playerID := bans[index-1].PlayerID
	name := bot.client.PlayerName(playerID)
	if err := bot.client.Unban(playerID); err != nil {
		log.Error().Str("user", user.Username).Str("player", name).Str("player_id", playerID).Msg("Unban failed")
		UnbanFailed().FollowUp(discord, interaction.Interaction)
		return
	}
	log.Info().Str("user", user.Username).Str("player", name).Str("player_id", playerID).Msg("Player unbanned")
	PlayerUnbanned(name, playerID).FollowUp(discord, interaction.Interaction)
}

func (bot *Bot) handleBanPlayer(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {
	bot.startBanFlow(discord, interaction, "banperm-select", "Select a player to ban", "Select the player to ban:")
}

func (bot *Bot) handleBanTemp(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {
	bot.startBanFlow(discord, interaction, "bantemp-select", "Select a player to temp-ban", "Select the player to temp-ban:")
}

// startBanFlow is the shared first step of /banplayer and /bantemp:
// filter the live scoreboard by prefix and offer a dropdown
func (bot *Bot) startBanFlow(discord *discordgo.Session, interaction *discordgo.InteractionCreate, action, placeholder, prompt string) {

	prefix := optionMap(interaction)["name_prefix"].StringValue()
	deferReply(discord, interaction.Interaction, true)

	players, err := bot.client.LiveScoreboard()
	if err != nil {
		ScoreboardUnavailable().FollowUp(discord, interaction.Interaction)
		return
	}
	filtered := crcon.FilterByPrefix(players, prefix)
	if len(filtered) == 0 {
		NoPlayersWithPrefix().FollowUp(discord, interaction.Interaction)
		return
	}
	if len(filtered) > maxSelectOptions {
		TooManyMatches().FollowUp(discord, interaction.Interaction)
		return
	}
	SelectPlayer(filtered, action, placeholder, prompt).FollowUp(discord, interaction.Interaction)
}

func (bot *Bot) handleShowVips(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	if bot.cfg.VipsChannelID != "" && interaction.ChannelID != bot.cfg.VipsChannelID {
		WrongChannel("VIP").Respond(discord, interaction.Interaction)
		return
	}
	if !bot.takeShowVipsSlot() {
		Ephemeral("⚠️ VIPs were reviewed recently, try again later.").Respond(discord, interaction.Interaction)
		return
	}

	deferReply(discord, interaction.Interaction, true)

	now := time.Now().UTC()
	vips, err := bot.client.TemporaryVips(now)
	if err != nil {
		VipsUnavailable().FollowUp(discord, interaction.Interaction)
		return
	}
	if len(vips) == 0 {
		NoTemporaryVips().FollowUp(discord, interaction.Interaction)
		return
	}

	// The review itself is public even though the list is not
	user := interactionUser(interaction)
	if _, err := discord.ChannelMessageSend(interaction.ChannelID, "👀 "+user.Username+" reviewed VIPs"); err != nil {
		log.Error().Err(err).Msg("Could not send VIP review notice")
	}

	VipPage(vips, 0, now).FollowUp(discord, interaction.Interaction)
}

func (bot *Bot) takeShowVipsSlot() bool {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	if time.Since(bot.lastShowVips) < showVipsCooldown {
		return false
	}
	bot.lastShowVips = time.Now()
	return true
}

func (bot *Bot) handlePlayerStats(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	if bot.stats == nil {
		StatsNotConfigured().Respond(discord, interaction.Interaction)
		return
	}
	if bot.cfg.StatsChannelID != "" && interaction.ChannelID != bot.cfg.StatsChannelID {
		WrongChannel("stats").Respond(discord, interaction.Interaction)
		return
	}

	prefix := optionMap(interaction)["player_name"].StringValue()
	deferReply(discord, interaction.Interaction, false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	matches, err := bot.stats.SearchPlayers(ctx, prefix)
	if err != nil {
		log.Error().Err(err).Str("search", prefix).Msg("Player search failed")
		StatsUnavailable().FollowUp(discord, interaction.Interaction)
		return
	}
	if len(matches) == 0 {
		NoMatchingPlayers().FollowUp(discord, interaction.Interaction)
		return
	}
	SelectStatsPlayer(matches).FollowUp(discord, interaction.Interaction)
}

func (bot *Bot) handleOnline(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	ping, err := bot.client.MaxPingAutokick()
	if err != nil {
		BotOnlineAPIDown().Respond(discord, interaction.Interaction)
		return
	}
	BotOnline(ping).Respond(discord, interaction.Interaction)
}

func (bot *Bot) handleHelp(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {
	HelpMessage().Respond(discord, interaction.Interaction)
}
