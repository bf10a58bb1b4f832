package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

// handleStart greets the user, or opens the quiz location carried by a deep link.
func (h *Handler) handleStart(payload string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if category, question, ok := decodeStartPayload(payload); ok {
			h.chats.SetMessageID(chatID, 0)
			h.startQuiz(ctx, chatID, category, question)
			return nil
		}

		return h.sendCategories(ctx, chatID, msgWelcome)
	}
}

func (h *Handler) handleCategories() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.sendCategories(ctx, chatID, msgChooseCategory)
	}
}

// handleQuiz starts "/quiz <category> [n]" in a new quiz message.
func (h *Handler) handleQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) == 0 {
			return h.sendCategories(ctx, chatID, msgQuizUsage)
		}

		question := 0
		if len(fields) > 1 {
			question, _ = strconv.Atoi(fields[1])
		}

		h.chats.SetMessageID(chatID, 0)
		h.startQuiz(ctx, chatID, strings.ToLower(fields[0]), question)
		return nil
	}
}

func (h *Handler) handleGoTo(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		raw := strings.TrimSpace(args)
		if raw == "" {
			return h.send(newPlainMessage(chatID, msgGoToUsage))
		}
		return h.goTo(chatID, raw)
	}
}

// handleText treats a bare number as /goto while a quiz is active.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		raw := strings.TrimSpace(text)
		if _, err := strconv.Atoi(raw); err != nil {
			return h.send(newPlainMessage(chatID, msgUnknownCommand))
		}
		return h.goTo(chatID, raw)
	}
}

// goTo re-anchors the quiz at the bottom of the chat on the question numbered raw.
func (h *Handler) goTo(chatID int64, raw string) error {
	c, ok := h.activeChat(chatID)
	if !ok {
		return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
	}

	total := c.Session.Snapshot().Total()
	n := service.ParseQuestionParam(raw, total)
	if n == 0 {
		return h.send(newPlainMessage(chatID, fmt.Sprintf(msgQuestionRange, total)))
	}

	h.chats.SetMessageID(chatID, 0)
	if !c.Session.GoTo(n) {
		h.showQuiz(chatID, c.Session.Snapshot())
	}

	return nil
}

// handleNavigate runs a typed navigation command and re-sends the quiz below it.
func (h *Handler) handleNavigate(direction string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		c, ok := h.activeChat(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		h.chats.SetMessageID(chatID, 0)
		if !navigate(c.Session, direction) {
			h.showQuiz(chatID, c.Session.Snapshot())
		}

		return nil
	}
}

// handleLink shares the current location as a deep link.
func (h *Handler) handleLink() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		c, ok := h.activeChat(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		category := c.Location.QueryParam(service.ParamCategory)
		question, err := strconv.Atoi(c.Location.QueryParam(service.ParamQuestion))
		if err != nil {
			question = 1
		}

		link := buildDeepLink(h.botUserName, category, question)
		text := fmt.Sprintf(msgShareLink, link, category, question)

		msg := newPlainMessage(chatID, text)
		msg.DisableWebPagePreview = true
		return h.send(msg)
	}
}

// handleStop drops the chat's quiz. Buttons of its message report the quiz as expired.
func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, ok := h.chats.Get(chatID); !ok {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		h.chats.Delete(chatID)
		h.logger.Debug("quiz stopped", zap.Int64("chat_id", chatID))
		return h.send(newPlainMessage(chatID, msgQuizStopped))
	}
}

func (h *Handler) sendCategories(ctx context.Context, chatID int64, text string) error {
	categories, err := h.questionService.ListCategories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		h.logger.Warn("no categories available", zap.Int64("chat_id", chatID))
		return h.send(newPlainMessage(chatID, msgNoCategories))
	}

	msg := newPlainMessage(chatID, text)
	msg.ReplyMarkup = buildCategoriesKeyboard(categories)
	return h.send(msg)
}

// navigate applies a navigation direction and reports whether the question changed.
func navigate(s *service.QuizSession, direction string) bool {
	switch direction {
	case navFirst:
		return s.First()
	case navPrev:
		return s.Previous()
	case navNext:
		return s.Next()
	case navLast:
		return s.Last()
	default:
		return false
	}
}
