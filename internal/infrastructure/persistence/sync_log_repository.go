package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/domain/shared"
)

// GormSyncLogRepository implements channel.SyncLogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// FindByID finds a sync log by its ID
func (r *GormSyncLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.SyncLog, error) {
	var log channel.SyncLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindAll finds sync logs, newest first
func (r *GormSyncLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]channel.SyncLog, error) {
	var logs []channel.SyncLog
	query := r.applyPagination(r.db.WithContext(ctx).Model(&channel.SyncLog{}), filter)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByPlatform finds sync logs for a platform, newest first
func (r *GormSyncLogRepository) FindByPlatform(ctx context.Context, platform channel.Platform, filter shared.Filter) ([]channel.SyncLog, error) {
	var logs []channel.SyncLog
	query := r.applyPagination(
		r.db.WithContext(ctx).Model(&channel.SyncLog{}).
			Where("platform = ?", platform),
		filter,
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Save creates or updates a sync log
func (r *GormSyncLogRepository) Save(ctx context.Context, log *channel.SyncLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *GormSyncLogRepository) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("started_at DESC")
}

// Ensure GormSyncLogRepository implements SyncLogRepository
var _ channel.SyncLogRepository = (*GormSyncLogRepository)(nil)
