package channel

import (
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// SyncStatus is the outcome of a synchronization run
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncLog records one synchronization run against a platform
type SyncLog struct {
	shared.BaseEntity
	Platform     Platform   `gorm:"type:varchar(20);not null;index"`
	Status       SyncStatus `gorm:"type:varchar(10);not null"`
	ItemsChecked int        `gorm:"not null;default:0"`
	ItemsSynced  int        `gorm:"not null;default:0"`
	ItemsFailed  int        `gorm:"not null;default:0"`
	Error        string     `gorm:"type:text"`
	StartedAt    time.Time  `gorm:"not null"`
	FinishedAt   *time.Time
}

// TableName returns the table name for GORM
func (SyncLog) TableName() string {
	return "sync_logs"
}

// NewSyncLog starts a sync log entry in pending state
func NewSyncLog(platform Platform) (*SyncLog, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform")
	}
	return &SyncLog{
		BaseEntity: shared.NewBaseEntity(),
		Platform:   platform,
		Status:     SyncStatusPending,
		StartedAt:  time.Now(),
	}, nil
}

// Complete finalizes the log with counts. Status is derived: all failed
// means failed, any failed means partial, otherwise success.
func (l *SyncLog) Complete(checked, synced, failed int, errMsg string) {
	now := time.Now()
	l.ItemsChecked = checked
	l.ItemsSynced = synced
	l.ItemsFailed = failed
	l.Error = errMsg
	l.FinishedAt = &now
	l.UpdatedAt = now

	switch {
	case failed > 0 && synced == 0:
		l.Status = SyncStatusFailed
	case failed > 0:
		l.Status = SyncStatusPartial
	default:
		l.Status = SyncStatusSuccess
	}
}

// InventoryDiscrepancy describes a mismatch between local stock and the
// count reported by a platform for a mapped product.
type InventoryDiscrepancy struct {
	ProductID     uuid.UUID `json:"product_id"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	Platform      Platform  `json:"platform"`
	LocalStock    int64     `json:"local_stock"`
	PlatformStock int64     `json:"platform_stock"`
	Difference    int64     `json:"difference"`
	DetectedAt    time.Time `json:"detected_at"`
}

// NewInventoryDiscrepancy builds a discrepancy record; Difference is
// local minus platform.
func NewInventoryDiscrepancy(productID uuid.UUID, sku, name string, platform Platform, localStock, platformStock int64) InventoryDiscrepancy {
	return InventoryDiscrepancy{
		ProductID:     productID,
		SKU:           sku,
		ProductName:   name,
		Platform:      platform,
		LocalStock:    localStock,
		PlatformStock: platformStock,
		Difference:    localStock - platformStock,
		DetectedAt:    time.Now(),
	}
}

// PlatformProduct is a product as reported by an external platform
type PlatformProduct struct {
	ID        string
	VariantID string
	SKU       string
	Name      string
	Inventory int64
}
