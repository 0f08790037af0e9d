package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/learnloop-backend/internal/logger"
	"github.com/yungbote/learnloop-backend/internal/types"
)

type ItemProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ItemProgress) ([]*types.ItemProgress, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ItemProgress, error)
	GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.ItemProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ItemProgress) error
}

type itemProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemProgressRepo(db *gorm.DB, baseLog *logger.Logger) ItemProgressRepo {
	repoLog := baseLog.With("repo", "ItemProgressRepo")
	return &itemProgressRepo{db: db, log: repoLog}
}

func (r *itemProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ItemProgress) ([]*types.ItemProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ItemProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itemProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ItemProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ItemProgress
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndStatus preloads the associated item; the mastery estimate
// needs the item's tags alongside the progress score.
func (r *itemProgressRepo) GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.ItemProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ItemProgress
	if userID == uuid.Nil || status == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Item").
		Where("user_id = ? AND status = ?", userID, status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ItemProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique user_id + item_id
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", row.UserID, row.ItemID).
		Assign(row).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}
