package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"crconbot/internal/config"
	"crconbot/internal/crcon"
	"crconbot/internal/schedule"
	"crconbot/internal/stats"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	cfg       *config.Config
	client    *crcon.Client
	stats     *stats.Store // nil when DB_URL is not configured
	scheduler *schedule.Scheduler
	session   *discordgo.Session

	commandHandlers map[string]func(*discordgo.Session, *discordgo.InteractionCreate)

	mu           sync.Mutex
	lastShowVips time.Time
}

func New(cfg *config.Config, client *crcon.Client, statsStore *stats.Store) *Bot {

	bot := &Bot{cfg: cfg, client: client, stats: statsStore}
	bot.commandHandlers = map[string]func(*discordgo.Session, *discordgo.InteractionCreate){
		"curping":          bot.handleCurPing,
		"setping":          bot.handleSetPing,
		"curscheduledtime": bot.handleCurScheduledTime,
		"setscheduledtime": bot.handleSetScheduledTime,
		"bans":             bot.handleBans,
		"unban":            bot.handleUnban,
		"banplayer":        bot.handleBanPlayer,
		"bantemp":          bot.handleBanTemp,
		"showvips":         bot.handleShowVips,
		"playerstats":      bot.handlePlayerStats,
		"online":           bot.handleOnline,
		"help":             bot.handleHelp,
	}
	return bot
}

func (bot *Bot) Run() error {

	discord, err := discordgo.New("Bot " + bot.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds

	discord.AddHandler(bot.onInteraction)

	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()
	bot.session = discord
	log.Info().Str("user", discord.State.User.String()).Msg("Bot logged in")

	// Sync the slash command surface
	_, err = discord.ApplicationCommandBulkOverwrite(discord.State.User.ID, "", commands)
	if err != nil {
		return fmt.Errorf("could not register slash commands: %w", err)
	}
	log.Info().Int("commands", len(commands)).Msg("Synced slash commands")

	// Fetch and cache maps once at startup
	if err := bot.client.RefreshMapCache(); err != nil {
		log.Error().Err(err).Msg("Failed to fetch and cache maps")
	}

	// Reschedule jobs from the config and start the scheduler
	bot.scheduler = schedule.New(bot.cfg, bot.client, bot.cfg.Location(), bot.Announce)
	if err := bot.scheduler.Start(); err != nil {
		return fmt.Errorf("could not start scheduler: %w", err)
	}
	defer bot.scheduler.Stop()

	bot.Announce("🟢 Bot is online!")

	// keep bot running until there is an os interruption (ctrl + C)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Info().Msg("Shutting down")

	return nil
}

// Announce sends a public message to the admin channel
func (bot *Bot) Announce(content string) {
	if bot.session == nil {
		return
	}
	if _, err := bot.session.ChannelMessageSend(bot.cfg.ChannelID, content); err != nil {
		log.Error().Err(err).Msg("Could not send announcement")
	}
}

func (bot *Bot) onInteraction(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		name := interaction.ApplicationCommandData().Name
		handler, ok := bot.commandHandlers[name]
		if !ok {
			log.Warn().Str("command", name).Msg("Received unknown command")
			return
		}
		user := interactionUser(interaction)
		log.Info().Str("command", name).Str("user", user.Username).Str("user_id", user.ID).Msg("Command requested")
		handler(discord, interaction)

	case discordgo.InteractionMessageComponent:
		bot.onComponent(discord, interaction)

	case discordgo.InteractionModalSubmit:
		bot.onModalSubmit(discord, interaction)
	}
}

// interactionUser works for both guild and DM interactions
func interactionUser(interaction *discordgo.InteractionCreate) *discordgo.User {
	if interaction.Member != nil {
		return interaction.Member.User
	}
	return interaction.User
}

// customIDParts splits an "action:payload" component id
func customIDParts(customID string) (string, string) {
	action, payload, _ := strings.Cut(customID, ":")
	return action, payload
}
