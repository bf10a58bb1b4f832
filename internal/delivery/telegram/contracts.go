package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuestionService interface {
	LoadCategory(ctx context.Context, categoryID string) ([]entities.Question, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
}

type ChatStorage interface {
	GetOrCreate(chatID int64, create func() (*storage.Chat, []func())) *storage.Chat
	Get(chatID int64) (*storage.Chat, bool)
	Touch(chatID int64)
	SetMessageID(chatID int64, messageID int)
	MessageID(chatID int64) int
	Delete(chatID int64)
}
