package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

const choicesPerRow = 4

// buildCategoriesKeyboard builds one button per category.
func buildCategoriesKeyboard(categories []entities.Category) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Title, buildCategoryCallback(c.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildBackToCategoriesKeyboard builds the keyboard shown without a question.
func buildBackToCategoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Choose a category", buildCategoriesCallback()),
		),
	)
}

// buildQuestionKeyboard builds choice toggles, the submit button and navigation
// for the question on screen.
func buildQuestionKeyboard(snap service.Snapshot, q entities.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for i := range q.Choices {
		row = append(row, buildChoiceButton(snap.Answer, q, snap.QuestionNumber(), i))
		if len(row) == choicesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if !snap.Answer.Submitted {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Submit answer", buildSubmitCallback(snap.QuestionNumber())),
		))
	}

	rows = append(rows, buildNavRow(snap))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📚 Categories", buildCategoriesCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildChoiceButton labels a choice with its selection state before
// submission and with its correctness after.
func buildChoiceButton(answer entities.AnswerState, q entities.Question, number, i int) tgbotapi.InlineKeyboardButton {
	letter := choiceLetter(i)
	selected := answer.IsSelected(i)

	if answer.Submitted {
		marker := "▫️"
		switch {
		case q.IsCorrect(i):
			marker = "✅"
		case selected:
			marker = "❌"
		}
		return tgbotapi.NewInlineKeyboardButtonData(marker+" "+letter, buildNoopCallback())
	}

	var marker string
	switch {
	case q.Multiple && selected:
		marker = "☑️"
	case q.Multiple:
		marker = "⬜"
	case selected:
		marker = "🔘"
	default:
		marker = "⚪"
	}

	return tgbotapi.NewInlineKeyboardButtonData(marker+" "+letter, buildPickCallback(number, i))
}

// buildNavRow builds the navigation row; unavailable directions are omitted.
func buildNavRow(snap service.Snapshot) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton

	if snap.CanGoPrevious() {
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("⏮", buildNavCallback(navFirst)),
			tgbotapi.NewInlineKeyboardButtonData("◀️", buildNavCallback(navPrev)),
		)
	}

	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		strconv.Itoa(snap.QuestionNumber())+"/"+strconv.Itoa(snap.Total()), buildNoopCallback(),
	))

	if snap.CanGoNext() {
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("▶️", buildNavCallback(navNext)),
			tgbotapi.NewInlineKeyboardButtonData("⏭", buildNavCallback(navLast)),
		)
	}

	return row
}
