package chat

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/repository"
)

// MatchView is one entry of the caller's match list.
type MatchView struct {
	MatchID        uint64 `json:"match_id"`
	ConversationID uint64 `json:"conversation_id"`
	OtherUserID    uint64 `json:"other_user_id"`
	OtherUsername  string `json:"other_username"`
	MatchedAt      int64  `json:"matched_at"`
}

// Service exposes the poll-based messaging surface on top of matches.
type Service struct {
	appCtx    *app.AppContext
	matchRepo *repository.MatchRepository
	msgRepo   *repository.MessageRepository
	userRepo  *repository.UserRepository
	blockRepo *repository.BlockRepository
}

// NewService creates the chat service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		matchRepo: repository.NewMatchRepository(appCtx.DB),
		msgRepo:   repository.NewMessageRepository(appCtx.DB),
		userRepo:  repository.NewUserRepository(appCtx.DB),
		blockRepo: repository.NewBlockRepository(appCtx.DB),
	}
}

// ListMatches returns the caller's matches with their conversation ids
// and the other participant's name, newest match first.
func (s *Service) ListMatches(ctx context.Context, userID uint64) ([]MatchView, error) {
	matches, err := s.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		otherID := m.User1ID
		if otherID == userID {
			otherID = m.User2ID
		}

		other, err := s.userRepo.GetByID(ctx, otherID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue // counterpart deleted their account
		} else if err != nil {
			return nil, svcErr.Persistence(err)
		}

		conv, err := s.matchRepo.GetConversation(ctx, m.ID)
		if err != nil {
			return nil, svcErr.Persistence(err)
		}

		views = append(views, MatchView{
			MatchID:        m.ID,
			ConversationID: conv.ID,
			OtherUserID:    otherID,
			OtherUsername:  other.Username,
			MatchedAt:      m.CreatedAt.UnixMilli(),
		})
	}
	return views, nil
}

// participants resolves a conversation and the two matched users, or
// NotFound when the shell is gone (e.g. torn down by a block).
func (s *Service) participants(ctx context.Context, conversationID uint64) (*db.Conversation, *db.Match, error) {
	conv, err := s.msgRepo.GetConversationByID(ctx, conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, svcErr.NotFound("conversation not found")
	} else if err != nil {
		return nil, nil, svcErr.Persistence(err)
	}

	var match db.Match
	if err := s.appCtx.DB.WithContext(ctx).First(&match, conv.MatchID).Error; err != nil {
		return nil, nil, svcErr.Persistence(err)
	}
	return conv, &match, nil
}

// ListMessages returns a page of conversation history, newest first.
// Only the two matched users may read it.
func (s *Service) ListMessages(ctx context.Context, userID, conversationID uint64, token *string, limit int) ([]db.Message, *string, error) {
	_, match, err := s.participants(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if userID != match.User1ID && userID != match.User2ID {
		return nil, nil, svcErr.Forbidden("not a participant of this conversation")
	}

	messages, next, err := s.msgRepo.ListMessages(ctx, conversationID, token, limit)
	if err != nil {
		return nil, nil, svcErr.Persistence(err)
	}
	return messages, next, nil
}

// SendMessage appends a message to a conversation the caller
// participates in. A block in either direction rejects the send; in
// practice the block cascade already removed the conversation.
func (s *Service) SendMessage(ctx context.Context, userID, conversationID uint64, content string) (*db.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, svcErr.InvalidInput("message content is required")
	}

	_, match, err := s.participants(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if userID != match.User1ID && userID != match.User2ID {
		return nil, svcErr.Forbidden("not a participant of this conversation")
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, match.User1ID, match.User2ID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	if blocked {
		return nil, svcErr.BlockedPair("interaction between blocked users")
	}

	msg := &db.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, svcErr.Persistence(err)
	}
	return msg, nil
}
