package telegram

import (
	"fmt"
	"math"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

// redraw returns the session listener that keeps the chat's quiz message in
// sync with the session.
func (h *Handler) redraw(chatID int64) service.Listener {
	return func(ev service.Event) {
		h.showQuiz(chatID, ev.Snapshot)
	}
}

// showQuiz edits the chat's quiz message, or sends a new one and remembers
// it when the chat has none.
func (h *Handler) showQuiz(chatID int64, snap service.Snapshot) {
	text, kb := renderQuiz(snap)

	if msgID := h.chats.MessageID(chatID); msgID != 0 {
		edit := newEdit(chatID, msgID, text)
		edit.ReplyMarkup = kb
		_ = h.send(edit)
		return
	}

	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Error("failed to send quiz message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	h.chats.SetMessageID(chatID, sent.MessageID)
}

// renderQuiz renders a session snapshot as MarkdownV2 text with its keyboard.
func renderQuiz(snap service.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch snap.Status {
	case service.StatusLoading:
		return md(msgLoading), nil
	case service.StatusError:
		kb := buildBackToCategoriesKeyboard()
		return md("❌ " + snap.Err), &kb
	case service.StatusIdle:
		kb := buildBackToCategoriesKeyboard()
		return md(msgNoActiveQuiz), &kb
	}

	q, ok := snap.Current()
	if !ok {
		kb := buildBackToCategoriesKeyboard()
		return md(msgNoQuestions), &kb
	}

	var sb strings.Builder

	sb.WriteString(bold("LFCA · " + entities.CategoryTitle(snap.Category)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Question %d/%d · %d%%",
		snap.QuestionNumber(), snap.Total(), progressPercent(snap.QuestionNumber(), snap.Total()))))
	sb.WriteString("\n\n")

	sb.WriteString(bold(q.Text))
	sb.WriteString("\n")
	if q.Multiple {
		sb.WriteString(italic("Select all that apply"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for i, c := range q.Choices {
		sb.WriteString(md(fmt.Sprintf("%s. %s", choiceLetter(i), c.Text)))
		sb.WriteString("\n")
	}

	if ev, ok := snap.Feedback(); ok {
		sb.WriteString("\n")
		sb.WriteString(bold(feedbackHeadline(ev.Feedback)))
		sb.WriteString("\n")
		sb.WriteString(md(selectedCountLine(ev)))
		sb.WriteString("\n")
		if q.Explanation != "" {
			sb.WriteString("\n")
			sb.WriteString(bold("Explanation:"))
			sb.WriteString(" ")
			sb.WriteString(md(q.Explanation))
			sb.WriteString("\n")
		}
	}

	kb := buildQuestionKeyboard(snap, q)
	return strings.TrimRight(sb.String(), "\n"), &kb
}

// progressPercent is the share of the category reached by question n of total.
func progressPercent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func choiceLetter(i int) string {
	return string(rune('A' + i))
}

func feedbackHeadline(f entities.Feedback) string {
	switch f {
	case entities.FeedbackCorrect:
		return feedbackCorrect
	case entities.FeedbackPartiallyCorrect:
		return feedbackPartially
	default:
		return feedbackIncorrect
	}
}

func selectedCountLine(ev entities.Evaluation) string {
	noun := "answer"
	if ev.Total != 1 {
		noun = "answers"
	}
	return fmt.Sprintf("You selected %d/%d correct %s", ev.Matched, ev.Total, noun)
}
