package port

import (
	"context"
	"satpix/internal/core/domain"
)

// ChatMessage is a message received in a Telegram chat.
type ChatMessage struct {
	domain.Message
	ChatID    int64
	MessageID int
}

type Command interface {
	// Respond processes a given chat message and responds to the originating chat.
	Respond(ctx context.Context, message *ChatMessage) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}

type Responder interface {
	// Respond runs a message through the satellite image pipeline and returns the reply to deliver.
	Respond(ctx context.Context, message domain.Message) domain.Reply
}
