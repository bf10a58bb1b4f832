package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
	"github.com/aliskhannn/lfca-quiz-bot/internal/storage"
)

type Handler struct {
	bot             Bot
	logger          *zap.Logger
	questionService QuestionService
	chats           ChatStorage
	botUserName     string
	observer        service.Listener
}

// NewHandler creates the Telegram handler. observer, when set, is subscribed
// to every quiz session the handler creates.
func NewHandler(
	bot Bot,
	logger *zap.Logger,
	questionService QuestionService,
	chats ChatStorage,
	botUserName string,
	observer service.Listener,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		questionService: questionService,
		chats:           chats,
		botUserName:     botUserName,
		observer:        observer,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		command := update.Message.Command()
		switch command {
		case "start":
			_ = h.withErrorHandling(command, h.handleStart(args))(ctx, chatID)
		case "categories":
			_ = h.withErrorHandling(command, h.handleCategories())(ctx, chatID)
		case "quiz":
			_ = h.withErrorHandling(command, h.handleQuiz(args))(ctx, chatID)
		case "goto":
			_ = h.withErrorHandling(command, h.handleGoTo(args))(ctx, chatID)
		case "first":
			_ = h.withErrorHandling(command, h.handleNavigate(navFirst))(ctx, chatID)
		case "prev":
			_ = h.withErrorHandling(command, h.handleNavigate(navPrev))(ctx, chatID)
		case "next":
			_ = h.withErrorHandling(command, h.handleNavigate(navNext))(ctx, chatID)
		case "last":
			_ = h.withErrorHandling(command, h.handleNavigate(navLast))(ctx, chatID)
		case "link":
			_ = h.withErrorHandling(command, h.handleLink())(ctx, chatID)
		case "stop":
			_ = h.withErrorHandling(command, h.handleStop())(ctx, chatID)
		case "help":
			_ = h.send(newPlainMessage(chatID, msgHelp))
		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(commandText, h.handleText(update.Message.Text))(ctx, chatID)
}

// chat returns the quiz chat for chatID, creating its session on first use.
// Listener order: location first, then metrics, then the redraw.
func (h *Handler) chat(chatID int64) *storage.Chat {
	return h.chats.GetOrCreate(chatID, func() (*storage.Chat, []func()) {
		session := service.NewQuizSession(h.questionService, h.logger.With(zap.Int64("chat_id", chatID)))
		location := service.NewQueryLocation("")

		unsubscribe := []func(){session.Subscribe(service.LocationSync(location))}
		if h.observer != nil {
			unsubscribe = append(unsubscribe, session.Subscribe(h.observer))
		}
		unsubscribe = append(unsubscribe, session.Subscribe(h.redraw(chatID)))

		h.logger.Info("quiz chat created",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", session.ID()),
		)

		return &storage.Chat{Session: session, Location: location}, unsubscribe
	})
}

// activeChat returns the chat of chatID when it has a loaded quiz.
func (h *Handler) activeChat(chatID int64) (*storage.Chat, bool) {
	c, ok := h.chats.Get(chatID)
	if !ok || c.Session.Snapshot().Status != service.StatusReady {
		return nil, false
	}
	h.chats.Touch(chatID)
	return c, true
}

// startQuiz points the chat's location at category and question and starts
// the session from it.
func (h *Handler) startQuiz(ctx context.Context, chatID int64, category string, question int) service.Snapshot {
	c := h.chat(chatID)

	params := map[string]string{service.ParamCategory: category}
	if question > 0 {
		params[service.ParamQuestion] = strconv.Itoa(question)
	}
	c.Location.Replace(params)

	h.logger.Info("starting quiz",
		zap.Int64("chat_id", chatID),
		zap.String("location", c.Location.Encode()),
	)

	return service.StartFromLocation(ctx, c.Session, c.Location)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newPlainMessage(chatID, err)
	_ = h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Error("failed to answer callback",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
