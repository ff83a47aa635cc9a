package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Response is one reply to an interaction: plain content, an embed,
// message components, or any mix of them
type Response struct {
	Content    string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

func Text(content string) Response {
	return Response{Content: content}
}

func Ephemeral(content string) Response {
	return Response{Content: content, Ephemeral: true}
}

func (response Response) flags() discordgo.MessageFlags {
	if response.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func (response Response) embeds() []*discordgo.MessageEmbed {
	if response.Embed == nil {
		return nil
	}
	return []*discordgo.MessageEmbed{response.Embed}
}

// Respond answers the interaction with a new message
func (response Response) Respond(discord *discordgo.Session, interaction *discordgo.Interaction) {
	err := discord.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    response.Content,
			Embeds:     response.embeds(),
			Components: response.Components,
			Flags:      response.flags(),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Could not respond to interaction")
	}
}

// FollowUp sends a followup message to an interaction deferred earlier
func (response Response) FollowUp(discord *discordgo.Session, interaction *discordgo.Interaction) {
	_, err := discord.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Content:    response.Content,
		Embeds:     response.embeds(),
		Components: response.Components,
		Flags:      response.flags(),
	})
	if err != nil {
		log.Error().Err(err).Msg("Could not send interaction followup")
	}
}

// Update edits the message a component interaction came from,
// used to flip between pages
func (response Response) Update(discord *discordgo.Session, interaction *discordgo.Interaction) {
	err := discord.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    response.Content,
			Embeds:     response.embeds(),
			Components: response.Components,
			Flags:      response.flags(),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Could not update interaction message")
	}
}

// deferReply acknowledges the interaction so slower handlers can follow up
func deferReply(discord *discordgo.Session, interaction *discordgo.Interaction, ephemeral bool) {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := discord.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Error().Err(err).Msg("Could not defer interaction")
	}
}
