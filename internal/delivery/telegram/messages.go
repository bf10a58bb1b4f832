// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgWelcome = "👋 Welcome to the LFCA quiz!\n\n" +
		"Practise for the Linux Foundation Certified IT Associate exam one category at a time. " +
		"Pick a category below to start."
	msgChooseCategory  = "📚 Choose a category:"
	msgNoCategories    = "No question categories are available right now. Please try again later."
	msgQuizUsage       = "Usage: /quiz <category> [question]. Pick a category below:"
	msgGoToUsage       = "Usage: /goto <question number>."
	msgQuestionRange   = "Enter a question number from 1 to %d."
	msgNoActiveQuiz    = "No quiz in progress. Choose a category with /categories."
	msgLoading         = "⏳ Loading questions..."
	msgNoQuestions     = "No questions available for this category."
	msgSelectFirst     = "Select at least one answer first."
	msgAlreadyAnswered = "This question is already answered."
	msgStaleMessage    = "This quiz message is outdated. Use the latest one."
	msgQuizExpired     = "This quiz has expired. Choose a category to start again."
	msgQuizStopped     = "Quiz stopped. Send /categories to start again."
	msgShareLink       = "🔗 Link to this question:\n%s\n\nOr send: /quiz %s %d"
	msgInternalError   = "Something went wrong. Please try again later."
	msgUnknownCommand  = "Unknown command. Send /help to see what I can do."
	msgHelp            = "LFCA quiz commands:\n\n" +
		"/categories - choose a category\n" +
		"/quiz <category> [n] - start a category, optionally at question n\n" +
		"/goto <n> - jump to question n (or just send the number)\n" +
		"/first, /prev, /next, /last - move between questions\n" +
		"/link - share a link to the current question\n" +
		"/stop - end the current quiz\n" +
		"/help - show this message"
)

// Feedback headlines.
const (
	feedbackCorrect   = "✅ Correct!"
	feedbackPartially = "🟡 Partially correct"
	feedbackIncorrect = "❌ Incorrect"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}
