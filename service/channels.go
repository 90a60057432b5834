package service

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// ChannelCapability is one channel's resolved send eligibility for the
// bot identity.
type ChannelCapability struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Type    discordgo.ChannelType `json:"type"`
	CanView bool                  `json:"canView"`
	CanSend bool                  `json:"canSend"`
	Status  string                `json:"status"`
}

// GuildChannels groups channel capabilities per guild.
type GuildChannels struct {
	GuildID   string              `json:"guildId"`
	GuildName string              `json:"guildName"`
	Channels  []ChannelCapability `json:"channels"`
}

// ListReachableChannels enumerates every text channel and thread the bot
// can see across its guilds, with per-channel view/send eligibility. It
// is a read-only diagnostic; nothing in the workflow depends on it.
func (d *DiscordService) ListReachableChannels() ([]GuildChannels, error) {
	botID := ""
	if d.session.State.User != nil {
		botID = d.session.State.User.ID
	}

	result := make([]GuildChannels, 0, len(d.session.State.Guilds))
	for _, guild := range d.session.State.Guilds {
		channels, err := d.session.GuildChannels(guild.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch channels for guild %s: %w", guild.ID, err)
		}

		sendable := make([]ChannelCapability, 0, len(channels))
		for _, ch := range channels {
			if !sendableChannelType(ch.Type) {
				continue
			}

			perms, err := d.session.State.UserChannelPermissions(botID, ch.ID)
			if err != nil {
				// Channel not in state yet; report it as inaccessible
				// rather than failing the whole enumeration.
				perms = 0
			}

			canView := perms&discordgo.PermissionViewChannel != 0
			canSend := perms&discordgo.PermissionSendMessages != 0
			sendable = append(sendable, ChannelCapability{
				ID:      ch.ID,
				Name:    channelDisplayName(ch),
				Type:    ch.Type,
				CanView: canView,
				CanSend: canSend,
				Status:  capabilityStatus(canView, canSend),
			})
		}

		sort.Slice(sendable, func(i, j int) bool {
			return sendable[i].Name < sendable[j].Name
		})

		result = append(result, GuildChannels{
			GuildID:   guild.ID,
			GuildName: guild.Name,
			Channels:  sendable,
		})
	}

	return result, nil
}

// sendableChannelType reports whether messages can be sent to this kind
// of channel: guild text channels and threads only.
func sendableChannelType(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}

func capabilityStatus(canView, canSend bool) string {
	switch {
	case canView && canSend:
		return "sendable"
	case canView:
		return "view-only"
	default:
		return "no-access"
	}
}

func channelDisplayName(ch *discordgo.Channel) string {
	if ch.Name == "" {
		return "(thread)"
	}
	return ch.Name
}
