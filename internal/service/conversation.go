package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xiaot623/council/internal/domain"
)

// ErrConversationNotFound is returned when a conversation does not exist.
var ErrConversationNotFound = errors.New("conversation not found")

// CreateConversation creates a new, empty conversation.
func (s *Service) CreateConversation(ctx context.Context) (*domain.Conversation, error) {
	conversation := &domain.Conversation{
		ConversationID: "conv_" + uuid.New().String()[:8],
		CreatedAt:      time.Now(),
	}
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// GetConversation retrieves a conversation with its messages. Returns nil
// when the conversation does not exist.
func (s *Service) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	return s.store.GetConversation(ctx, conversationID)
}

// ListConversations retrieves conversation summaries, newest first.
func (s *Service) ListConversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	return s.store.ListConversations(ctx)
}

// deriveTitle builds a conversation title from its first query.
func deriveTitle(query string) string {
	title := strings.Join(strings.Fields(query), " ")
	if len(title) > 60 {
		title = title[:60] + "..."
	}
	return title
}
