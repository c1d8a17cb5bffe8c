package postgres

import (
	"context"
	"errors"

	"github.com/proxytool/proxytool/internal/models"
	"github.com/proxytool/proxytool/internal/utils"
	"gorm.io/gorm"
)

type TurnRepository interface {
	Insert(ctx context.Context, t *models.ConversationTurn) error
	// AppendPair writes a user/assistant turn pair as one transaction.
	AppendPair(ctx context.Context, userTurn, assistantTurn *models.ConversationTurn) error
	// LatestResume returns the newest resume record for the user, or
	// utils.ErrNotFound when they never uploaded one.
	LatestResume(ctx context.Context, userID string) (*models.ConversationTurn, error)
	// ListResumes returns all resume records for the user, newest first.
	ListResumes(ctx context.Context, userID string) ([]models.ConversationTurn, error)
	// RecentChats returns chat turns (resume records excluded) newest first.
	RecentChats(ctx context.Context, userID string, limit int) ([]models.ConversationTurn, error)
}

type turnRepo struct {
	db *gorm.DB
}

func NewTurnRepo(db *gorm.DB) TurnRepository {
	return &turnRepo{db: db}
}

func (r *turnRepo) Insert(ctx context.Context, t *models.ConversationTurn) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnRepo) AppendPair(ctx context.Context, userTurn, assistantTurn *models.ConversationTurn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userTurn).Error; err != nil {
			return err
		}
		return tx.Create(assistantTurn).Error
	})
}

func (r *turnRepo) LatestResume(ctx context.Context, userID string) (*models.ConversationTurn, error) {
	var row models.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND resume_details IS NOT NULL", userID).
		Order("created_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *turnRepo) ListResumes(ctx context.Context, userID string) ([]models.ConversationTurn, error) {
	var rows []models.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND resume_details IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *turnRepo) RecentChats(ctx context.Context, userID string, limit int) ([]models.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND resume_details IS NULL", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
