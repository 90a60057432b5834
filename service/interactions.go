package service

import (
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/digimonapk/dicords/model"
)

// onInteraction consumes button events. The custom id is decoded once at
// the boundary into a structured command; the engine then runs the whole
// read-transition-write sequence before any outbound call, so two
// transitions for the same document never interleave.
func (d *DiscordService) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	slog.Debug("button pressed", "custom_id", customID)

	cmd, err := DecodeCommand(customID)
	if err != nil {
		// Nothing sensible can be answered to a button we did not create.
		slog.Warn("ignoring undecodable interaction", "custom_id", customID, "error", err)
		return
	}

	doc, effect := d.engine.Apply(cmd)

	if err := d.respond(s, i, cmd, doc, effect); err != nil {
		slog.Error("failed to respond to interaction",
			"doc_id", cmd.Doc(),
			"custom_id", customID,
			"error", err,
		)
	}
}

// respond dispatches the effect of an applied command back to Discord.
// The store mutation has already happened; failures here are logged by
// the caller and never rolled back.
func (d *DiscordService) respond(s *discordgo.Session, i *discordgo.InteractionCreate, cmd model.Command, doc model.Document, effect Effect) error {
	switch effect {
	case EffectPrompt:
		slog.Info("awaiting confirmation", "doc_id", doc.DocID, "page", int(doc.PendingPage))
		row := confirmationRow(doc.PendingPage, doc.DocID)
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    renderPrompt(doc.PendingPage, doc.DocID),
				Components: []discordgo.MessageComponent{row},
			},
		})

	case EffectApproved:
		slog.Info("page change approved", "doc_id", doc.DocID, "page", int(doc.Page))
		return updateMessage(s, i, RenderResult(EffectApproved, doc.Page, doc.DocID), nil)

	case EffectCancelled:
		slog.Info("page change cancelled", "doc_id", doc.DocID, "page", int(doc.Page))
		return updateMessage(s, i, RenderResult(EffectCancelled, 0, doc.DocID), nil)

	case EffectDeleted:
		slog.Info("document deleted", "doc_id", cmd.Doc())
		return updateMessage(s, i, "", []*discordgo.MessageEmbed{deletionEmbed(cmd.Doc())})

	default:
		// Stale confirmation: acknowledge quietly so the client stops
		// spinning, without posting anything.
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
	}
}

// updateMessage replaces the originating message in place and strips its
// buttons so a resolved prompt cannot be clicked twice.
func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string, embeds []*discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     embeds,
			Components: []discordgo.MessageComponent{},
		},
	})
}

func deletionEmbed(docID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       embedColorDeleted,
		Title:       "🗑️ Document Deleted",
		Description: RenderResult(EffectDeleted, 0, docID),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}
