package sender

import (
	"context"
	"satpix/internal/core/domain"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

// TelegramBot is the subset of *bot.Bot the sender uses.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func (s *Telegram) SendReply(ctx context.Context, chatID int64, messageID int, reply domain.Reply) error {
	replyTo := &models.ReplyParameters{
		MessageID: messageID,
		ChatID:    chatID,
	}

	if reply.HasMedia() {
		_, err := s.bot.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:          chatID,
			Photo:           &models.InputFileString{Data: reply.MediaURL},
			Caption:         reply.Body,
			ReplyParameters: replyTo,
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send photo response")
			return err
		}

		return nil
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            reply.Body,
		ReplyParameters: replyTo,
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send text response")
		return err
	}

	return nil
}

const ChatActionRepeatSeconds = 5

// SendChatAction repeats the action until ctx is done, as Telegram clears it after a few seconds.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	var chatAction models.ChatAction
	switch action {
	case domain.SendingPhoto:
		chatAction = models.ChatActionUploadPhoto
	default:
		chatAction = models.ChatActionTyping
	}

	log.Debug().Int64("chatID", chatID).Msg("starting action routine")
	for {
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: chatAction,
		})
		if err != nil {
			log.Debug().Err(err).Msg("error sending chat action")
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		case <-time.After(ChatActionRepeatSeconds * time.Second):
		}
	}
}
