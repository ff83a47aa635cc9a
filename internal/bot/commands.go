package bot

import (
	"github.com/bwmarrin/discordgo"
)

// The slash command surface. Registered in bulk on startup
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "curping",
		Description: "Show current max ping autokick",
	},
	{
		Name:        "setping",
		Description: "Set max ping autokick",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "ping",
			Description: "Ping in ms",
			Required:    true,
		}},
	},
	{
		Name:        "curscheduledtime",
		Description: "Show scheduled jobs and pings",
	},
	{
		Name:        "setscheduledtime",
		Description: "Set scheduled job time and ping",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "job",
				Description: "Job number (1 or 2)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "time",
				Description: "Time HHMM",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "ping",
				Description: "Ping in ms",
				Required:    true,
			},
		},
	},
	{
		Name:        "bans",
		Description: "Show last 5 temp bans",
	},
	{
		Name:        "unban",
		Description: "Unban player by ban number from the last /bans list",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "index",
			Description: "Ban number from the /bans list (1-5)",
			Required:    true,
		}},
	},
	{
		Name:        "banplayer",
		Description: "Ban a live player by name prefix",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name_prefix",
			Description: "Start of the player name",
			Required:    true,
		}},
	},
	{
		Name:        "bantemp",
		Description: "Temporarily ban a live player by name prefix",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name_prefix",
			Description: "Start of the player name",
			Required:    true,
		}},
	},
	{
		Name:        "showvips",
		Description: "Show all temporary VIPs by time remaining",
	},
	{
		Name:        "playerstats",
		Description: "Show all-time stats for a player by name",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "player_name",
			Description: "All or part of the player's name",
			Required:    true,
		}},
	},
	{
		Name:        "online",
		Description: "Check if bot and API are running",
	},
	{
		Name:        "help",
		Description: "Show this help message",
	},
}
