package command

import (
	"context"
	"fmt"
	"satpix/internal/core/domain"
	"satpix/internal/core/port"
	"satpix/internal/core/service"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Satellite delivers the satellite image pipeline's reply to a Telegram chat.
type Satellite struct {
	responder port.Responder
	sender    port.ReplySender
	auth      service.Authorizer
	command   string
}

func NewSatellite(responder port.Responder, sender port.ReplySender, auth service.Authorizer, command string) *Satellite {
	return &Satellite{responder: responder, sender: sender, auth: auth, command: command}
}

func (s *Satellite) GetCommand() string {
	return s.command
}

func (s *Satellite) Respond(ctx context.Context, message *port.ChatMessage) error {
	l := log.With().
		Str("requestId", message.ID).
		Int("messageId", message.MessageID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Logger()

	if !s.auth.IsAuthorized(strconv.FormatInt(message.ChatID, 10)) {
		l.Debug().Msg("not authorized")
		return s.send(ctx, message, domain.NewReply(domain.MsgUnauthorized, ""))
	}

	actionCtx, stopAction := context.WithCancel(ctx)
	defer stopAction()
	go s.sender.SendChatAction(actionCtx, message.ChatID, domain.SendingPhoto)

	reply := s.responder.Respond(ctx, message.Message)
	stopAction()

	return s.send(ctx, message, reply)
}

func (s *Satellite) send(ctx context.Context, message *port.ChatMessage, reply domain.Reply) error {
	err := s.sender.SendReply(ctx, message.ChatID, message.MessageID, reply)
	if err != nil {
		log.Error().Err(err).Int64("chatId", message.ChatID).Msg(domain.ErrSendingReplyFailed.Error())
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
