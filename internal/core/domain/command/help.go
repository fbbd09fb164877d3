package command

import (
	"context"
	"fmt"
	"satpix/internal/core/domain"
	"satpix/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

const usage = `Send me a place and I'll send you a satellite photo of it.

Format: location, country code, date (optional)
Example: Eiffel Tower, FR, 2021-01-01

Without a date you get the most recent image for today.`

type Help struct {
	registry port.CommandRegistry
	sender   port.ReplySender
	command  string
}

func NewHelp(registry port.CommandRegistry, sender port.ReplySender, command string) *Help {
	return &Help{registry: registry, sender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, message *port.ChatMessage) error {
	log.Info().
		Int("messageId", message.MessageID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Msg("handling request")

	sb := &strings.Builder{}
	sb.WriteString(usage)
	sb.WriteString("\n\nCommands: ")
	sb.WriteString(strings.Join(h.registry.ListCommands(), ", "))

	err := h.sender.SendReply(ctx, message.ChatID, message.MessageID, domain.NewReply(sb.String(), ""))
	if err != nil {
		return fmt.Errorf("failed to send help: %w", err)
	}

	return nil
}
