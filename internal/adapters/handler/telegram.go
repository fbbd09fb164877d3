package handler

import (
	"context"
	"satpix/internal/core/domain"
	"satpix/internal/core/domain/command"
	"satpix/internal/core/port"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Telegram routes text messages to registered slash commands, and everything else to the fallback command.
type Telegram struct {
	commandRegistry port.CommandRegistry
	fallback        port.Command
	timeout         time.Duration
}

func NewTelegram(commandRegistry port.CommandRegistry, fallback port.Command, timeout time.Duration) *Telegram {
	return &Telegram{commandRegistry: commandRegistry, fallback: fallback, timeout: timeout}
}

func (t *Telegram) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	msg := update.Message
	log.Debug().Str("message", msg.Text).Int64("chatId", msg.Chat.ID).Msg("received message")

	handler := t.fallback
	if cmd := command.ParseCommand(msg.Text); cmd != "" {
		registered, err := t.commandRegistry.Get(cmd)
		if err != nil {
			log.Debug().Str("command", cmd).Msg("no handler for command")
		} else {
			handler = registered
		}
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	err := handler.Respond(ctx, &port.ChatMessage{
		Message: domain.Message{
			ID:      newRequestID(),
			From:    strconv.FormatInt(msg.Chat.ID, 10),
			Text:    msg.Text,
			HasText: true,
		},
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		log.Err(err).Str("command", handler.GetCommand()).Msg("failed to respond to message")
	}
}
