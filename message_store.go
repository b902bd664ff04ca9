package mailshell

import (
	"context"
	"errors"
)

// ErrMessageNotFound is returned by stores for unknown message IDs
var ErrMessageNotFound = errors.New("message not found")

// MessageStore defines where the mailbox collection is loaded from and where changed messages are written back
type MessageStore interface {
	// ListMessages returns all messages in arrival order
	ListMessages(ctx context.Context) ([]Message, error)
	GetMessage(ctx context.Context, messageID string) (Message, error)
	// SaveMessage inserts a new message at the end or replaces an existing one in place
	SaveMessage(ctx context.Context, msg Message) error
	DeleteMessage(ctx context.Context, messageID string) error
}
