package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/learnloop-backend/internal/logger"
	"github.com/yungbote/learnloop-backend/internal/types"
)

type LearningItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.LearningItem) ([]*types.LearningItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningItem, error)
	GetCurated(ctx context.Context, tx *gorm.DB) ([]*types.LearningItem, error)
	GetPersonalizedFor(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningItem, error)
	GetOwnedBy(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningItem, error)
	GetPublicCommunity(ctx context.Context, tx *gorm.DB, excludeUserID uuid.UUID) ([]*types.LearningItem, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type learningItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningItemRepo(db *gorm.DB, baseLog *logger.Logger) LearningItemRepo {
	repoLog := baseLog.With("repo", "LearningItemRepo")
	return &learningItemRepo{db: db, log: repoLog}
}

func (r *learningItemRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.LearningItem) ([]*types.LearningItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.LearningItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningItem
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningItemRepo) GetCurated(ctx context.Context, tx *gorm.DB) ([]*types.LearningItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningItem
	if err := transaction.WithContext(ctx).
		Where("source = ? AND visibility = ?", types.ItemSourceSystem, types.VisibilityCurated).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningItemRepo) GetPersonalizedFor(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningItem
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where(datatypes.JSONArrayQuery("personalized_for").Contains(userID.String())).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningItemRepo) GetOwnedBy(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningItem
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningItemRepo) GetPublicCommunity(ctx context.Context, tx *gorm.DB, excludeUserID uuid.UUID) ([]*types.LearningItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningItem
	query := transaction.WithContext(ctx).
		Where("source = ? AND visibility = ?", types.ItemSourceUser, types.VisibilityPublic)
	if excludeUserID != uuid.Nil {
		query = query.Where("owner_id IS NULL OR owner_id <> ?", excludeUserID)
	}

	if err := query.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningItemRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.LearningItem{}).Error; err != nil {
		return err
	}
	return nil
}
