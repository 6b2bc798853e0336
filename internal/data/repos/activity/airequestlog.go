package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type AIRequestLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.AIRequestLog) (*types.AIRequestLog, error)
	CountByUserDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string) (int64, error)
}

type aiRequestLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAIRequestLogRepo(db *gorm.DB, baseLog *logger.Logger) AIRequestLogRepo {
	return &aiRequestLogRepo{db: db, log: baseLog.With("repo", "AIRequestLogRepo")}
}

func (ar *aiRequestLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.AIRequestLog) (*types.AIRequestLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (ar *aiRequestLogRepo) CountByUserDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AIRequestLog{}).
		Where("user_id = ? AND day = ?", userID, day).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
