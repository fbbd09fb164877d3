package port

import (
	"context"
	"satpix/internal/core/domain"
)

type ReplySender interface {
	// SendReply delivers a reply to the chat the message came from, as a photo with caption when the reply
	// carries media and as plain text otherwise.
	SendReply(ctx context.Context, chatID int64, messageID int, reply domain.Reply) error
	// SendChatAction sends a specified chat action (e.g., typing, sending photo) to indicate activity in a given chat.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
}
