package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionNoop:
		h.answerCallback(cb, "")

	case actionCategories:
		h.answerCallback(cb, "")
		h.editCategories(ctx, chatID, msgID)

	case actionCategory:
		h.answerCallback(cb, "")
		category := data.param(0)
		if category == "" {
			return
		}
		// The picker message becomes the quiz message.
		h.chat(chatID)
		h.chats.SetMessageID(chatID, msgID)
		h.startQuiz(ctx, chatID, category, 0)

	case actionNav, actionPick, actionSubmit:
		h.answerCallback(cb, h.handleQuizCallback(chatID, msgID, data))

	default:
		h.logger.Warn("unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
		)
		h.answerCallback(cb, "")
	}
}

// handleQuizCallback applies a quiz button press and returns the toast text
// to show, if any. Presses on anything but the chat's current quiz message
// are rejected.
func (h *Handler) handleQuizCallback(chatID int64, msgID int, data callbackData) string {
	c, ok := h.chats.Get(chatID)
	if !ok {
		return msgQuizExpired
	}
	if h.chats.MessageID(chatID) != msgID {
		return msgStaleMessage
	}
	h.chats.Touch(chatID)

	if data.Action == actionNav {
		navigate(c.Session, data.param(0))
		return ""
	}

	// Choice and submit buttons belong to the question they were drawn for.
	// The quiz may have moved on before the press arrived.
	question, err := strconv.Atoi(data.param(0))
	if err != nil {
		h.logger.Warn("invalid quiz callback", zap.String("data", data.Raw))
		return ""
	}
	snap := c.Session.Snapshot()
	if question != snap.QuestionNumber() {
		return msgStaleMessage
	}

	switch data.Action {
	case actionPick:
		i, err := strconv.Atoi(data.param(1))
		if err != nil {
			h.logger.Warn("invalid pick callback", zap.String("data", data.Raw))
			return ""
		}
		if snap.Answer.Submitted {
			return msgAlreadyAnswered
		}
		c.Session.SelectChoice(i)

	case actionSubmit:
		if snap.Answer.Submitted {
			return msgAlreadyAnswered
		}
		if len(snap.Answer.Selected) == 0 {
			return msgSelectFirst
		}
		c.Session.SubmitAnswer()
	}

	return ""
}

// editCategories turns the message into the category picker.
func (h *Handler) editCategories(ctx context.Context, chatID int64, msgID int) {
	categories, err := h.questionService.ListCategories(ctx)
	if err != nil {
		h.logger.Error("failed to list categories",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	kb := buildCategoriesKeyboard(categories)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, msgChooseCategory, kb)
	_ = h.send(edit)
}
