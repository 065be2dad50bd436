// Package store provides persistence for conversations and deliberations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xiaot623/council/internal/domain"
)

// Store defines the persistence operations the service needs.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, conversation *domain.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	ListConversations(ctx context.Context) ([]domain.ConversationSummary, error)
	UpdateConversationTitle(ctx context.Context, conversationID, title string) error

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			stage_data TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation creates a new conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, title, created_at) VALUES (?, ?, ?)`,
		conversation.ConversationID, conversation.Title, conversation.CreatedAt)
	return err
}

// GetConversation retrieves a conversation with all of its messages.
// Returns nil when the conversation does not exist.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, title, created_at FROM conversations WHERE conversation_id = ?`,
		conversationID).Scan(&conversation.ConversationID, &conversation.Title, &conversation.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	messages, err := s.GetMessages(ctx, conversationID, 0)
	if err != nil {
		return nil, err
	}
	conversation.Messages = messages

	return &conversation, nil
}

// ListConversations retrieves conversation summaries, newest first.
func (s *SQLiteStore) ListConversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.conversation_id, c.title, c.created_at, COUNT(m.message_id)
		 FROM conversations c
		 LEFT JOIN messages m ON m.conversation_id = c.conversation_id
		 GROUP BY c.conversation_id
		 ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.ConversationSummary{}
	for rows.Next() {
		var summary domain.ConversationSummary
		if err := rows.Scan(&summary.ConversationID, &summary.Title, &summary.CreatedAt, &summary.MessageCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// UpdateConversationTitle sets a conversation's title.
func (s *SQLiteStore) UpdateConversationTitle(ctx context.Context, conversationID, title string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET title = ? WHERE conversation_id = ?`,
		title, conversationID)
	return err
}

// CreateMessage creates a new message.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	var stageData interface{}
	if len(message.StageData) > 0 {
		stageData = string(message.StageData)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, conversation_id, role, content, stage_data, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.ConversationID, message.Role, message.Content, stageData, message.CreatedAt)
	return err
}

// GetMessages retrieves messages for a conversation in chronological order.
// A limit of 0 retrieves everything.
func (s *SQLiteStore) GetMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	query := `SELECT message_id, conversation_id, role, content, stage_data, created_at
		FROM messages WHERE conversation_id = ? ORDER BY created_at ASC`
	args := []interface{}{conversationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var message domain.Message
		var stageData sql.NullString
		if err := rows.Scan(&message.MessageID, &message.ConversationID, &message.Role, &message.Content, &stageData, &message.CreatedAt); err != nil {
			return nil, err
		}
		if stageData.Valid {
			message.StageData = []byte(stageData.String)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
