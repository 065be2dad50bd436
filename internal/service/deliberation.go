package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xiaot623/council/internal/council"
	"github.com/xiaot623/council/internal/domain"
)

// ErrBlocked is returned when the admission policy rejects a request.
var ErrBlocked = errors.New("request blocked by policy")

// SubmitQuery runs a full deliberation for a query inside a conversation.
// The user message and the assistant message (carrying the complete stage
// record) are persisted; storage failures after a successful deliberation
// are logged rather than failing the request.
func (s *Service) SubmitQuery(ctx context.Context, conversationID string, req domain.QueryRequest) (*domain.QueryResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	effort := req.Effort
	if effort == "" {
		effort = s.config.Effort
	}
	if !effort.Valid() {
		return nil, fmt.Errorf("invalid effort level %q", effort)
	}

	conversation, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}

	delibReq := domain.DeliberationRequest{
		Query:    req.Query,
		Roster:   s.config.CouncilModels,
		Chairman: s.config.ChairmanModel,
		Effort:   effort,
	}

	decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"roster":   delibReq.Roster,
		"chairman": delibReq.Chairman,
		"effort":   string(delibReq.Effort),
	})
	if err != nil {
		return nil, fmt.Errorf("policy evaluation failed: %w", err)
	}
	if decision != "allow" {
		return nil, ErrBlocked
	}

	now := time.Now()
	userMsg := &domain.Message{
		MessageID:      "msg_" + uuid.New().String()[:8],
		ConversationID: conversationID,
		Role:           domain.RoleUser,
		Content:        req.Query,
		CreatedAt:      now,
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		log.Printf("ERROR: failed to save user message: %v", err)
		// Continue anyway - message storage failure shouldn't block the deliberation
	}

	if conversation.Title == "" {
		if err := s.store.UpdateConversationTitle(ctx, conversationID, deriveTitle(req.Query)); err != nil {
			log.Printf("ERROR: failed to set conversation title: %v", err)
		}
	}

	deliberation, err := s.orchestrator.Run(ctx, delibReq)
	if err != nil {
		var stageErr *council.StageError
		if errors.As(err, &stageErr) {
			// Persist the partial record so the failure is inspectable.
			s.saveAssistantMessage(ctx, conversationID, stageErr.Deliberation)
		}
		return nil, err
	}

	assistantMsg := s.saveAssistantMessage(ctx, conversationID, deliberation)

	return &domain.QueryResponse{
		ConversationID: conversationID,
		MessageID:      assistantMsg.MessageID,
		Deliberation:   deliberation,
	}, nil
}

func (s *Service) saveAssistantMessage(ctx context.Context, conversationID string, d *domain.Deliberation) *domain.Message {
	stageData, err := json.Marshal(d)
	if err != nil {
		log.Printf("ERROR: failed to marshal deliberation: %v", err)
	}

	msg := &domain.Message{
		MessageID:      "msg_" + uuid.New().String()[:8],
		ConversationID: conversationID,
		Role:           domain.RoleAssistant,
		Content:        d.Stage3,
		StageData:      stageData,
		CreatedAt:      time.Now(),
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		log.Printf("ERROR: failed to save assistant message: %v", err)
	}
	return msg
}
