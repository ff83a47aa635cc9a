package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

func (bot *Bot) onComponent(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	data := interaction.MessageComponentData()
	action, payload := customIDParts(data.CustomID)

	switch action {
	case "banperm-select":
		bot.openBanModal(discord, interaction, data.Values[0], false)
	case "bantemp-select":
		bot.openBanModal(discord, interaction, data.Values[0], true)
	case "vips-page":
		bot.flipVipPage(discord, interaction, payload)
	case "playerstats-select":
		bot.showPlayerStats(discord, interaction, data.Values[0])
	default:
		log.Warn().Str("custom_id", data.CustomID).Msg("Received unknown component interaction")
	}
}

// openBanModal asks for a reason (and a duration for temp bans). The
// player id rides in the modal custom id so the flow stays stateless
func (bot *Bot) openBanModal(discord *discordgo.Session, interaction *discordgo.InteractionCreate, playerID string, temp bool) {

	playerName := bot.client.PlayerName(playerID)

	customID := "banperm-modal:" + playerID
	title := "Ban Reason for " + playerName
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "reason",
				Label:       "Reason",
				Style:       discordgo.TextInputShort,
				Placeholder: "Enter reason for ban",
				Required:    true,
			},
		}},
	}
	if temp {
		customID = "bantemp-modal:" + playerID
		title = "Temp Ban for " + playerName
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "duration",
				Label:       "Duration (hours)",
				Style:       discordgo.TextInputShort,
				Placeholder: "e.g. 2",
				Required:    true,
			},
		}})
	}

	err := discord.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Could not open ban modal")
	}
}

func (bot *Bot) onModalSubmit(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	data := interaction.ModalSubmitData()
	action, playerID := customIDParts(data.CustomID)
	user := interactionUser(interaction)

	switch action {
	case "banperm-modal":
		reason := modalValue(data, "reason")
		playerName := bot.client.PlayerName(playerID)
		if err := bot.client.PermanentBan(playerID, reason); err != nil {
			log.Error().Err(err).Str("player_id", playerID).Msg("Ban failed")
			BanFailed().Respond(discord, interaction.Interaction)
			return
		}
		log.Info().Str("user", user.Username).Str("user_id", user.ID).
			Str("player", playerName).Str("player_id", playerID).Str("reason", reason).Msg("Player banned")
		PlayerBanned(playerName, reason).Respond(discord, interaction.Interaction)
		bot.Announce(BanAnnouncement(user.Username, playerName, reason))

	case "bantemp-modal":
		reason := modalValue(data, "reason")
		hours, err := strconv.Atoi(strings.TrimSpace(modalValue(data, "duration")))
		if err != nil || hours <= 0 || hours > 720 {
			InvalidBanDuration().Respond(discord, interaction.Interaction)
			return
		}
		playerName := bot.client.PlayerName(playerID)
		if err := bot.client.TempBan(playerID, playerName, hours, reason); err != nil {
			log.Error().Err(err).Str("player_id", playerID).Msg("Temp ban failed")
			TempBanFailed().Respond(discord, interaction.Interaction)
			return
		}
		log.Info().Str("user", user.Username).Str("player", playerName).Str("player_id", playerID).
			Int("hours", hours).Str("reason", reason).Msg("Player temp banned")
		PlayerTempBanned(playerName, hours, reason).Respond(discord, interaction.Interaction)
		bot.Announce(TempBanAnnouncement(user.Username, playerName, hours, reason))

	default:
		log.Warn().Str("custom_id", data.CustomID).Msg("Received unknown modal submit")
	}
}

// modalValue digs a text input value out of a modal submission
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

// flipVipPage refetches the VIP list and re-renders the requested page.
// A little staleness between clicks beats holding pages in memory
func (bot *Bot) flipVipPage(discord *discordgo.Session, interaction *discordgo.InteractionCreate, payload string) {

	page, err := strconv.Atoi(payload)
	if err != nil {
		log.Warn().Str("payload", payload).Msg("Bad VIP page payload")
		return
	}
	now := time.Now().UTC()
	vips, err := bot.client.TemporaryVips(now)
	if err != nil {
		VipsUnavailable().Update(discord, interaction.Interaction)
		return
	}
	if len(vips) == 0 {
		NoTemporaryVips().Update(discord, interaction.Interaction)
		return
	}
	VipPage(vips, page, now).Update(discord, interaction.Interaction)
}

func (bot *Bot) showPlayerStats(discord *discordgo.Session, interaction *discordgo.InteractionCreate, value string) {

	if bot.stats == nil {
		StatsNotConfigured().Respond(discord, interaction.Interaction)
		return
	}

	// The value carries both the id and the exact name that was selected
	idString, playerName, found := strings.Cut(value, "|")
	steamID, err := strconv.ParseInt(idString, 10, 64)
	if !found || err != nil {
		log.Warn().Str("value", value).Msg("Bad player stats selection")
		return
	}

	deferReply(discord, interaction.Interaction, false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	allTime, err := bot.stats.AllTime(ctx, steamID)
	if err != nil {
		log.Error().Err(err).Int64("steam_id", steamID).Msg("All-time stats query failed")
		StatsUnavailable().FollowUp(discord, interaction.Interaction)
		return
	}
	monthly, err := bot.stats.Monthly(ctx, steamID)
	if err != nil {
		log.Error().Err(err).Int64("steam_id", steamID).Msg("Monthly stats query failed")
		StatsUnavailable().FollowUp(discord, interaction.Interaction)
		return
	}

	user := interactionUser(interaction)
	log.Info().Str("user", user.Username).Str("user_id", user.ID).Int64("steam_id", steamID).Msg("Player stats requested")
	StatsEmbed(user.Username, playerName, allTime, monthly).FollowUp(discord, interaction.Interaction)
}
