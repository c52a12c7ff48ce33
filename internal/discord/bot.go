package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/command"
	"github.com/Jaideep25/Pokedex/internal/response"
)

// Dispatcher is the part of command.Dispatcher the bot needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, req command.Request) (*response.Response, *command.Invocation, error)
}

// Bot is a Discord bot answering prefixed chat commands.
type Bot struct {
	dg         *discordgo.Session
	dispatcher Dispatcher
	prefix     string
	log        zerolog.Logger

	// ctx is the lifetime of the session; handlers derive from it.
	ctx context.Context
}

func New(d Dispatcher, prefix string, log zerolog.Logger) *Bot {
	return &Bot{
		dispatcher: d,
		prefix:     prefix,
		log:        log.With().Str("component", "discord").Logger(),
		ctx:        context.Background(),
	}
}

// Run opens the gateway session and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, closing session")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("discord bot is running")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	req, ok := b.request(m.Message)
	if !ok {
		return
	}

	resp, _, err := b.dispatcher.Dispatch(b.ctx, req)
	if errors.Is(err, command.ErrUnknownCommand) {
		return
	}
	if err != nil {
		b.log.Error().Err(err).Str("channel", m.ChannelID).Msg("dispatch failed")
		return
	}
	if err := b.send(s, m.ChannelID, resp); err != nil {
		b.log.Error().Err(err).Str("channel", m.ChannelID).Msg("failed to send reply")
	}
}

// request turns a prefixed message into a dispatcher request. Guild
// messages are scoped to the guild, direct messages to their channel.
func (b *Bot) request(m *discordgo.Message) (command.Request, bool) {
	text, ok := strings.CutPrefix(strings.TrimSpace(m.Content), b.prefix)
	if !ok || strings.TrimSpace(text) == "" {
		return command.Request{}, false
	}

	scope := m.GuildID
	if scope == "" {
		scope = m.ChannelID
	}
	req := command.Request{
		Text:      text,
		ScopeID:   scope,
		ChannelID: m.ChannelID,
	}
	if m.Author != nil {
		req.UserID = m.Author.ID
		req.Username = m.Author.Username
	}
	return req, true
}

func (b *Bot) send(s *discordgo.Session, channelID string, resp *response.Response) error {
	msg := Message(resp)
	if msg.Content == "" && len(msg.Embeds) == 0 {
		return nil
	}
	_, err := s.ChannelMessageSendComplex(channelID, msg)
	return err
}
