package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

// Chat is the quiz state of one Telegram chat.
type Chat struct {
	Session  *service.QuizSession
	Location *service.QueryLocation

	unsubscribe []func()
	messageID   int
	lastActive  time.Time
}

// ChatStorage provides in-memory storage for quiz chats by chat ID.
type ChatStorage struct {
	mu    sync.RWMutex
	chats map[int64]*Chat
	now   func() time.Time
}

// NewChatStorage creates a new ChatStorage.
func NewChatStorage() *ChatStorage {
	return &ChatStorage{
		chats: make(map[int64]*Chat),
		now:   time.Now,
	}
}

// GetOrCreate returns the chat for chatID, building it with create on first use.
// create returns the chat and the unsubscribe functions of its session listeners.
func (s *ChatStorage) GetOrCreate(chatID int64, create func() (*Chat, []func())) *Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.chats[chatID]; ok {
		c.lastActive = s.now()
		return c
	}

	c, unsubscribe := create()
	c.unsubscribe = unsubscribe
	c.lastActive = s.now()
	s.chats[chatID] = c

	return c
}

// Get retrieves the chat for chatID.
func (s *ChatStorage) Get(chatID int64) (*Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[chatID]
	return c, ok
}

// Touch marks the chat as active now.
func (s *ChatStorage) Touch(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.chats[chatID]; ok {
		c.lastActive = s.now()
	}
}

// SetMessageID stores the ID of the message the chat's quiz is rendered into.
func (s *ChatStorage) SetMessageID(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.chats[chatID]; ok {
		c.messageID = messageID
	}
}

// MessageID returns the ID of the chat's quiz message, 0 if none was sent yet.
func (s *ChatStorage) MessageID(chatID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.chats[chatID]; ok {
		return c.messageID
	}
	return 0
}

// Delete removes the chat and detaches its session listeners.
func (s *ChatStorage) Delete(chatID int64) {
	s.mu.Lock()
	c, ok := s.chats[chatID]
	delete(s.chats, chatID)
	s.mu.Unlock()

	if ok {
		c.detach()
	}
}

// EvictIdle removes chats whose last activity is before the cutoff and
// returns how many were removed.
func (s *ChatStorage) EvictIdle(before time.Time) int {
	var evicted []*Chat

	s.mu.Lock()
	for id, c := range s.chats {
		if c.lastActive.Before(before) {
			evicted = append(evicted, c)
			delete(s.chats, id)
		}
	}
	s.mu.Unlock()

	for _, c := range evicted {
		c.detach()
	}

	return len(evicted)
}

// Len returns the number of stored chats.
func (s *ChatStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats)
}

func (c *Chat) detach() {
	for _, fn := range c.unsubscribe {
		fn()
	}
}
