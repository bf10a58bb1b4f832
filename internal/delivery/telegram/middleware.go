package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// commandText names plain text updates in logs.
const commandText = "text"

// withErrorHandling logs a failed command together with the quiz position of
// the chat and replies with a generic error.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		fields := []zap.Field{
			zap.Int64("chat_id", chatID),
			zap.String("command", command),
			zap.Error(err),
		}
		if c, ok := h.chats.Get(chatID); ok {
			fields = append(fields,
				zap.String("location", c.Location.Encode()),
				zap.String("status", string(c.Session.Snapshot().Status)),
			)
		}

		h.logger.Error("command failed", fields...)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
