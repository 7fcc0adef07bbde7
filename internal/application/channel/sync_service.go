package channel

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/domain/shared"
)

// SyncService compares local stock against the counts external platforms
// report and records the outcome as sync logs
type SyncService struct {
	mappingRepo channel.MappingRepository
	productRepo catalog.ProductRepository
	syncLogRepo channel.SyncLogRepository
	fetchers    map[channel.Platform]channel.PlatformFetcher
	pageSize    int
	logger      *zap.Logger
}

// defaultScanPageSize bounds how many mappings one discrepancy check loads
const defaultScanPageSize = 500

// NewSyncService creates a new SyncService
func NewSyncService(
	mappingRepo channel.MappingRepository,
	productRepo catalog.ProductRepository,
	syncLogRepo channel.SyncLogRepository,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		mappingRepo: mappingRepo,
		productRepo: productRepo,
		syncLogRepo: syncLogRepo,
		fetchers:    make(map[channel.Platform]channel.PlatformFetcher),
		pageSize:    defaultScanPageSize,
		logger:      logger,
	}
}

// SetScanPageSize overrides how many mappings are scanned per page
// during discrepancy checks
func (s *SyncService) SetScanPageSize(size int) {
	if size > 0 {
		s.pageSize = size
	}
}

// RegisterFetcher registers the fetcher for a platform
func (s *SyncService) RegisterFetcher(fetcher channel.PlatformFetcher) {
	s.fetchers[fetcher.Platform()] = fetcher
}

// DetectDiscrepancies fetches the platform's current inventory and
// compares it against local totals for every mapped product. Each run is
// recorded as a sync log.
func (s *SyncService) DetectDiscrepancies(ctx context.Context, platform channel.Platform) (*DiscrepancyReport, error) {
	fetcher, ok := s.fetchers[platform]
	if !ok {
		return nil, shared.NewDomainError("PLATFORM_NOT_CONFIGURED", "No fetcher configured for platform")
	}

	syncLog, err := channel.NewSyncLog(platform)
	if err != nil {
		return nil, err
	}

	platformProducts, err := fetcher.FetchProducts(ctx)
	if err != nil {
		syncLog.Complete(0, 0, 1, err.Error())
		if saveErr := s.syncLogRepo.Save(ctx, syncLog); saveErr != nil {
			s.logger.Warn("failed to save sync log", zap.Error(saveErr))
		}
		return nil, err
	}

	byIdentifier := make(map[string]channel.PlatformProduct, len(platformProducts))
	for _, pp := range platformProducts {
		if pp.VariantID != "" {
			byIdentifier[pp.VariantID] = pp
		}
		if pp.ID != "" {
			byIdentifier[pp.ID] = pp
		}
	}

	report := &DiscrepancyReport{
		Platform:      platform,
		CheckedAt:     time.Now(),
		Discrepancies: make([]channel.InventoryDiscrepancy, 0),
	}

	// Page through the full mapping store; one page is only a scan window
	var checked, failed int
	filter := shared.DefaultFilter()
	filter.PageSize = s.pageSize
	for page := 1; ; page++ {
		filter.Page = page
		mappings, err := s.mappingRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}

		for i := range mappings {
			mapping := &mappings[i]
			if !mapping.HasPlatform(platform) {
				continue
			}
			report.MappedCount++

			platformProduct, ok := byIdentifier[mapping.PlatformIdentifier(platform)]
			if !ok {
				s.logger.Debug("mapped product not reported by platform",
					zap.String("platform", platform.String()),
					zap.String("sku", mapping.LocalSKU),
				)
				continue
			}

			product, err := s.productRepo.FindByID(ctx, mapping.LocalProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					s.logger.Warn("mapping points at missing product",
						zap.String("product_id", mapping.LocalProductID.String()),
					)
					failed++
					continue
				}
				return nil, err
			}

			checked++
			if product.TotalQuantity != platformProduct.Inventory {
				report.Discrepancies = append(report.Discrepancies, channel.NewInventoryDiscrepancy(
					product.ID, product.SKU, product.Name,
					platform, product.TotalQuantity, platformProduct.Inventory,
				))
			}
		}

		if len(mappings) < filter.PageSize {
			break
		}
	}

	syncLog.Complete(checked, checked-len(report.Discrepancies), failed, "")
	if err := s.syncLogRepo.Save(ctx, syncLog); err != nil {
		s.logger.Warn("failed to save sync log", zap.Error(err))
	}

	s.logger.Info("discrepancy check finished",
		zap.String("platform", platform.String()),
		zap.Int("checked", checked),
		zap.Int("discrepancies", len(report.Discrepancies)),
	)

	return report, nil
}

// ListSyncLogs retrieves recent sync runs, newest first
func (s *SyncService) ListSyncLogs(ctx context.Context, platform *channel.Platform, page, pageSize int) ([]channel.SyncLog, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if platform != nil {
		return s.syncLogRepo.FindByPlatform(ctx, *platform, filter)
	}
	return s.syncLogRepo.FindAll(ctx, filter)
}
