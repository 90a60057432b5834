package service

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/digimonapk/dicords/config"
)

// DiscordService owns the bot session. It consumes button interactions,
// drives them through the workflow engine, and sends the resulting
// notifications. It never mutates the store directly; all mutations go
// through the engine.
type DiscordService struct {
	session   *discordgo.Session
	channelID string
	engine    *Engine
	ready     atomic.Bool
}

// NewDiscordService creates the bot session without connecting it.
func NewDiscordService(cfg *config.DiscordConfig, engine *Engine) (*DiscordService, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	d := &DiscordService{
		session:   session,
		channelID: cfg.ChannelID,
		engine:    engine,
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	session.AddHandler(d.onReady)
	session.AddHandler(d.onInteraction)

	return d, nil
}

// Open connects the gateway session.
func (d *DiscordService) Open() error {
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to connect to discord: %w", err)
	}
	return nil
}

// Close shuts the gateway session down.
func (d *DiscordService) Close() error {
	d.ready.Store(false)
	return d.session.Close()
}

// Ready reports whether the gateway session has completed its handshake.
func (d *DiscordService) Ready() bool {
	return d.ready.Load()
}

// BotTag returns the connected bot user's tag, or empty before ready.
func (d *DiscordService) BotTag() string {
	if !d.ready.Load() || d.session.State.User == nil {
		return ""
	}
	return d.session.State.User.String()
}

func (d *DiscordService) onReady(s *discordgo.Session, r *discordgo.Ready) {
	d.ready.Store(true)

	slog.Info("discord bot connected",
		"user", r.User.String(),
		"user_id", r.User.ID,
		"guilds", len(r.Guilds),
	)

	d.logReachableChannels()
	d.validateConfiguredChannel()
}

// logReachableChannels dumps every channel the bot can see to the log so
// an operator can pick a destination channel id.
func (d *DiscordService) logReachableChannels() {
	guilds, err := d.ListReachableChannels()
	if err != nil {
		slog.Error("failed to enumerate channels", "error", err)
		return
	}

	for _, guild := range guilds {
		slog.Info("scanning guild", "guild", guild.GuildName, "guild_id", guild.GuildID)
		for _, ch := range guild.Channels {
			slog.Info("channel",
				"name", ch.Name,
				"channel_id", ch.ID,
				"type", int(ch.Type),
				"status", ch.Status,
			)
		}
	}

	if d.channelID == "" {
		slog.Warn("no destination channel configured; set CHANNEL_ID to one of the sendable channels above")
	}
}

// validateConfiguredChannel checks once at startup that the configured
// destination channel is a sendable text channel or thread the bot can
// both view and write to. Failures are logged, not fatal: sends will keep
// returning DispatchError until the configuration is fixed.
func (d *DiscordService) validateConfiguredChannel() {
	if d.channelID == "" {
		return
	}

	ch, err := d.session.Channel(d.channelID)
	if err != nil {
		slog.Error("configured channel is not reachable", "channel_id", d.channelID, "error", err)
		return
	}
	if !sendableChannelType(ch.Type) {
		slog.Error("configured channel is not a sendable text channel or thread",
			"channel_id", d.channelID,
			"type", int(ch.Type),
		)
		return
	}

	perms, err := d.session.State.UserChannelPermissions(d.session.State.User.ID, d.channelID)
	if err != nil {
		slog.Error("cannot resolve permissions for configured channel", "channel_id", d.channelID, "error", err)
		return
	}
	if perms&discordgo.PermissionViewChannel == 0 || perms&discordgo.PermissionSendMessages == 0 {
		slog.Error("insufficient permissions on configured channel, need ViewChannel and SendMessages",
			"channel_id", d.channelID,
		)
		return
	}

	slog.Info("destination channel configured", "channel", ch.Name, "channel_id", ch.ID)
}
