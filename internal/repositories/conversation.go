package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heroic/ats-platform/internal/models"
)

type ConversationRepository interface {
	Create(ctx context.Context, turn *models.ConversationTurn) error
	FindBySession(ctx context.Context, sessionID string) ([]models.ConversationTurn, error)
	TrimSession(ctx context.Context, sessionID string, keep int) error
	DeleteBySession(ctx context.Context, sessionID string) error
	DeleteAll(ctx context.Context) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, turn *models.ConversationTurn) error {
	if err := r.db.WithContext(ctx).Create(turn).Error; err != nil {
		return fmt.Errorf("failed to create conversation turn: %w", err)
	}
	return nil
}

func (r *conversationRepository) FindBySession(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&turns).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find conversation turns: %w", err)
	}

	return turns, nil
}

// TrimSession deletes all but the newest keep turns of a session.
func (r *conversationRepository) TrimSession(ctx context.Context, sessionID string, keep int) error {
	db := r.db.WithContext(ctx)
	newest := db.Model(&models.ConversationTurn{}).
		Select("id").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(keep)

	result := db.
		Where("session_id = ?", sessionID).
		Where("id NOT IN (?)", newest).
		Delete(&models.ConversationTurn{})

	if result.Error != nil {
		return fmt.Errorf("failed to trim conversation: %w", result.Error)
	}

	return nil
}

func (r *conversationRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.ConversationTurn{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete conversation: %w", result.Error)
	}

	return nil
}

func (r *conversationRepository) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.ConversationTurn{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete conversations: %w", result.Error)
	}

	return nil
}
