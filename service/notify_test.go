package service

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/digimonapk/dicords/model"
)

func TestDocumentEmbedOmitsSentinels(t *testing.T) {
	doc := model.NewDocument("A1", model.Submission{City: "Bogota"}, 1)

	embed := documentEmbed(doc)

	names := make([]string, 0, len(embed.Fields))
	for _, f := range embed.Fields {
		names = append(names, f.Name)
	}
	joined := strings.Join(names, "|")

	if !strings.Contains(joined, "Document ID") {
		t.Error("Expected document id field")
	}
	if !strings.Contains(joined, "City") {
		t.Error("Expected city field")
	}
	if strings.Contains(joined, "Token") || strings.Contains(joined, "SMS") {
		t.Errorf("Expected unsupplied attributes to be omitted, got %s", joined)
	}
	if strings.Contains(joined, "Secret") {
		t.Errorf("Expected secret to be omitted for non-login document, got %s", joined)
	}
}

func TestDocumentEmbedIncludesSuppliedFields(t *testing.T) {
	doc := model.NewDocument("A1", model.Submission{
		Category: "login",
		Token:    "tok-1",
		SMSCode:  "1234",
	}, 1)

	embed := documentEmbed(doc)

	joined := ""
	for _, f := range embed.Fields {
		joined += f.Name + "|"
	}

	if !strings.Contains(joined, "Secret") {
		t.Error("Expected secret field for login document")
	}
	if !strings.Contains(joined, "Token") {
		t.Error("Expected token field")
	}
	if !strings.Contains(joined, "SMS") {
		t.Error("Expected sms field")
	}
}

func TestDocumentButtonRows(t *testing.T) {
	rows := documentButtonRows("doc_1")

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	var customIDs []string
	for _, row := range rows {
		actionsRow, ok := row.(discordgo.ActionsRow)
		if !ok {
			t.Fatalf("Expected ActionsRow, got %T", row)
		}
		for _, comp := range actionsRow.Components {
			button, ok := comp.(discordgo.Button)
			if !ok {
				t.Fatalf("Expected Button, got %T", comp)
			}
			customIDs = append(customIDs, button.CustomID)
		}
	}

	if len(customIDs) != 7 {
		t.Fatalf("Expected 7 buttons, got %d", len(customIDs))
	}

	// Every button must decode back to a command for the same document
	for _, id := range customIDs {
		cmd, err := DecodeCommand(id)
		if err != nil {
			t.Fatalf("Button id %q does not decode: %v", id, err)
		}
		if cmd.Doc() != "doc_1" {
			t.Errorf("Button id %q targets %q, expected doc_1", id, cmd.Doc())
		}
	}

	if customIDs[6] != "delete_doc_1" {
		t.Errorf("Expected delete button last, got %q", customIDs[6])
	}
}

func TestConfirmationRowRoundTrips(t *testing.T) {
	row := confirmationRow(model.PageSMS, "a_b")

	if len(row.Components) != 2 {
		t.Fatalf("Expected 2 buttons, got %d", len(row.Components))
	}

	yes := row.Components[0].(discordgo.Button)
	cmd, err := DecodeCommand(yes.CustomID)
	if err != nil {
		t.Fatalf("Yes button does not decode: %v", err)
	}
	conf, ok := cmd.(model.Confirm)
	if !ok || !conf.Approve || conf.Page != model.PageSMS || conf.DocID != "a_b" {
		t.Errorf("Unexpected yes command %+v", cmd)
	}

	no := row.Components[1].(discordgo.Button)
	cmd, err = DecodeCommand(no.CustomID)
	if err != nil {
		t.Fatalf("No button does not decode: %v", err)
	}
	conf, ok = cmd.(model.Confirm)
	if !ok || conf.Approve {
		t.Errorf("Unexpected no command %+v", cmd)
	}
}

func TestRenderPrompt(t *testing.T) {
	prompt := renderPrompt(model.PageCredit, "A1")

	if !strings.Contains(prompt, "Credit") {
		t.Error("Expected page label in prompt")
	}
	if !strings.Contains(prompt, "Page 3") {
		t.Error("Expected page number in prompt")
	}
	if !strings.Contains(prompt, "`A1`") {
		t.Error("Expected document id in prompt")
	}
}

func TestRenderResult(t *testing.T) {
	approved := RenderResult(EffectApproved, model.PageFinal, "A1")
	if !strings.Contains(approved, "CONFIRMED") || !strings.Contains(approved, "Final") {
		t.Errorf("Unexpected approved render: %s", approved)
	}

	cancelled := RenderResult(EffectCancelled, 0, "A1")
	if !strings.Contains(cancelled, "cancelled") || !strings.Contains(cancelled, "`A1`") {
		t.Errorf("Unexpected cancelled render: %s", cancelled)
	}

	deleted := RenderResult(EffectDeleted, 0, "A1")
	if !strings.Contains(deleted, "deleted") || !strings.Contains(deleted, "`A1`") {
		t.Errorf("Unexpected deleted render: %s", deleted)
	}

	if RenderResult(EffectNone, 0, "A1") != "" {
		t.Error("Expected empty render for no-op effect")
	}
}

func TestSendableChannelType(t *testing.T) {
	sendable := []discordgo.ChannelType{
		discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
	}
	for _, ct := range sendable {
		if !sendableChannelType(ct) {
			t.Errorf("Expected type %d to be sendable", ct)
		}
	}

	notSendable := []discordgo.ChannelType{
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildCategory,
		discordgo.ChannelTypeDM,
	}
	for _, ct := range notSendable {
		if sendableChannelType(ct) {
			t.Errorf("Expected type %d to not be sendable", ct)
		}
	}
}

func TestCapabilityStatus(t *testing.T) {
	if got := capabilityStatus(true, true); got != "sendable" {
		t.Errorf("Expected sendable, got %s", got)
	}
	if got := capabilityStatus(true, false); got != "view-only" {
		t.Errorf("Expected view-only, got %s", got)
	}
	if got := capabilityStatus(false, false); got != "no-access" {
		t.Errorf("Expected no-access, got %s", got)
	}
}

func TestChannelDisplayName(t *testing.T) {
	if got := channelDisplayName(&discordgo.Channel{Name: "general"}); got != "general" {
		t.Errorf("Expected general, got %s", got)
	}
	if got := channelDisplayName(&discordgo.Channel{}); got != "(thread)" {
		t.Errorf("Expected (thread), got %s", got)
	}
}
