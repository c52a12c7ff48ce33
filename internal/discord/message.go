package discord

import (
	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/Jaideep25/Pokedex/internal/response"
)

// maxContent is Discord's limit on message content length, in runes.
const maxContent = 2000

// Message renders a reply as a Discord message.
func Message(resp *response.Response) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{}
	if resp == nil {
		return msg
	}
	msg.Content = clip(resp.Text(), maxContent)
	if resp.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{Embed(resp.Embed)}
	}
	return msg
}

// Embed converts the transport-neutral embed into discordgo's. Oversized
// values are split by AddField; every piece keeps the field's inline flag and
// the result is truncated to Discord's embed limits.
func Embed(e *response.Embed) *discordgo.MessageEmbed {
	em := embed.NewEmbed().SetColor(e.Color)
	if e.Title != "" {
		em.SetTitle(e.Title)
	}
	if e.Description != "" {
		em.SetDescription(e.Description)
	}
	for _, f := range e.Fields {
		before := len(em.Fields)
		em.AddField(f.Name, f.Value)
		for _, piece := range em.Fields[before:] {
			piece.Inline = f.Inline
		}
	}
	if e.Thumbnail != "" {
		em.SetThumbnail(e.Thumbnail)
	}
	if e.Footer != "" {
		em.SetFooter(e.Footer)
	}
	return em.Truncate().MessageEmbed
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
