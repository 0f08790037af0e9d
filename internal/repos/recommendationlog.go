package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/learnloop-backend/internal/logger"
	"github.com/yungbote/learnloop-backend/internal/types"
)

type RecommendationLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.RecommendationLog) (*types.RecommendationLog, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.RecommendationLog, error)
}

type recommendationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationLogRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationLogRepo {
	repoLog := baseLog.With("repo", "RecommendationLogRepo")
	return &recommendationLogRepo{db: db, log: repoLog}
}

func (r *recommendationLogRepo) Create(ctx context.Context, tx *gorm.DB, row *types.RecommendationLog) (*types.RecommendationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *recommendationLogRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.RecommendationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RecommendationLog
	if userID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 20
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
