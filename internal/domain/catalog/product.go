package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is used when a product does not configure its own
const DefaultLowStockThreshold int64 = 5

// Product represents a sellable item tracked across stock locations.
// It is the aggregate root for catalog and stock-level operations.
type Product struct {
	shared.BaseAggregateRoot
	SKU               string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string             `gorm:"type:varchar(200);not null"`
	Description       string             `gorm:"type:text"`
	Category          string             `gorm:"type:varchar(100);index"`
	Price             decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Cost              decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Locations         StockMap           `gorm:"type:jsonb;serializer:json"`
	TotalQuantity     int64              `gorm:"not null;default:0"`
	LowStockThreshold int64              `gorm:"not null;default:5"`
	IsBundle          bool               `gorm:"not null;default:false"`
	BundleActive      bool               `gorm:"not null;default:false"`
	BundleComponents  BundleComponentSet `gorm:"type:jsonb;serializer:json"`
}

// StockEntry is the per-location stock record. MinStockLevel of zero means
// no minimum is configured for the location.
type StockEntry struct {
	Quantity      int64 `json:"quantity"`
	MinStockLevel int64 `json:"min_stock_level,omitempty"`
}

// StockMap holds per-location stock entries keyed by location ID
type StockMap map[uuid.UUID]StockEntry

// BundleComponent is a denormalized snapshot of a product included in a bundle
type BundleComponent struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
}

// BundleComponentSet is the list of components making up a bundle
type BundleComponentSet []BundleComponent

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with an empty stock map
func NewProduct(sku, name string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Price:             decimal.Zero,
		Cost:              decimal.Zero,
		Locations:         make(StockMap),
		LowStockThreshold: DefaultLowStockThreshold,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets the selling price and the cost
func (p *Product) SetPrices(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost cannot be negative")
	}

	p.Price = price
	p.Cost = cost
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetLowStockThreshold sets the level below which the product counts as low stock
func (p *Product) SetLowStockThreshold(threshold int64) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// QuantityAt returns the quantity held at a location
func (p *Product) QuantityAt(locationID uuid.UUID) int64 {
	return p.Locations[locationID].Quantity
}

// MinStockAt returns the minimum stock level configured for a location,
// zero when none is set
func (p *Product) MinStockAt(locationID uuid.UUID) int64 {
	return p.Locations[locationID].MinStockLevel
}

// IsLowStockAt reports whether the location's quantity has fallen to or
// below its configured minimum. Locations without a minimum never count
// as low.
func (p *Product) IsLowStockAt(locationID uuid.UUID) bool {
	entry := p.Locations[locationID]
	return entry.MinStockLevel > 0 && entry.Quantity <= entry.MinStockLevel
}

// SetMinStockAt configures the minimum stock level for a location. The
// location becomes referenced even when it holds no stock yet.
func (p *Product) SetMinStockAt(locationID uuid.UUID, level int64) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum stock level cannot be negative")
	}

	if p.Locations == nil {
		p.Locations = make(StockMap)
	}
	entry := p.Locations[locationID]
	entry.MinStockLevel = level
	p.Locations[locationID] = entry
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HoldsStockAt reports whether the product references the location at all,
// regardless of the quantity held there
func (p *Product) HoldsStockAt(locationID uuid.UUID) bool {
	_, ok := p.Locations[locationID]
	return ok
}

// SetQuantityAt sets the absolute quantity at a location and returns the
// signed difference from the previous quantity. The total is recomputed
// from the full location map, never adjusted incrementally.
func (p *Product) SetQuantityAt(locationID uuid.UUID, quantity int64) (int64, error) {
	if quantity < 0 {
		return 0, shared.ErrInvalidQuantity
	}

	if p.Locations == nil {
		p.Locations = make(StockMap)
	}
	entry := p.Locations[locationID]
	old := entry.Quantity
	entry.Quantity = quantity
	p.Locations[locationID] = entry
	p.recomputeTotal()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	delta := quantity - old
	p.emitStockEvents(locationID, delta)

	return delta, nil
}

// AddStockAt increases the quantity at a location
func (p *Product) AddStockAt(locationID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	if p.Locations == nil {
		p.Locations = make(StockMap)
	}
	entry := p.Locations[locationID]
	entry.Quantity += quantity
	p.Locations[locationID] = entry
	p.recomputeTotal()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.emitStockEvents(locationID, quantity)

	return nil
}

// RemoveStockAt decreases the quantity at a location. Stock never goes
// negative; removing more than is available fails with InsufficientStock.
func (p *Product) RemoveStockAt(locationID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if p.QuantityAt(locationID) < quantity {
		return shared.ErrInsufficientStock
	}

	entry := p.Locations[locationID]
	entry.Quantity -= quantity
	p.Locations[locationID] = entry
	p.recomputeTotal()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.emitStockEvents(locationID, -quantity)

	return nil
}

// TransferStock moves quantity between two locations. The total quantity
// is conserved.
func (p *Product) TransferStock(fromLocationID, toLocationID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if fromLocationID == toLocationID {
		return shared.ErrSameLocation
	}
	if p.QuantityAt(fromLocationID) < quantity {
		return shared.ErrInsufficientStock
	}

	from := p.Locations[fromLocationID]
	from.Quantity -= quantity
	p.Locations[fromLocationID] = from
	to := p.Locations[toLocationID]
	to.Quantity += quantity
	p.Locations[toLocationID] = to
	p.recomputeTotal()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsLowStock returns true when the total quantity is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.TotalQuantity <= p.LowStockThreshold
}

// MarkAsBundle turns the product into a bundle made of the given components
func (p *Product) MarkAsBundle(components []BundleComponent) error {
	if len(components) == 0 {
		return shared.NewDomainError("INVALID_COMPONENTS", "Bundle must contain at least one component")
	}
	for _, c := range components {
		if c.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_COMPONENTS", "Component product ID is required")
		}
		if c.Quantity <= 0 {
			return shared.ErrInvalidQuantity
		}
		if c.ProductID == p.ID {
			return shared.NewDomainError("INVALID_COMPONENTS", "Bundle cannot contain itself")
		}
	}

	p.IsBundle = true
	p.BundleActive = true
	p.BundleComponents = components
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetBundleActive toggles whether the bundle is sellable. Inactive
// bundles keep their definition but are skipped by sale processing.
func (p *Product) SetBundleActive(active bool) error {
	if !p.IsBundle {
		return shared.ErrNotABundle
	}

	p.BundleActive = active
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ClearBundle removes the bundle definition, turning the product back into
// a plain product
func (p *Product) ClearBundle() {
	p.IsBundle = false
	p.BundleActive = false
	p.BundleComponents = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// recomputeTotal derives the total from the per-location map
func (p *Product) recomputeTotal() {
	var total int64
	for _, entry := range p.Locations {
		total += entry.Quantity
	}
	p.TotalQuantity = total
}

// emitStockEvents publishes level-change events after a stock mutation
func (p *Product) emitStockEvents(locationID uuid.UUID, delta int64) {
	if delta == 0 {
		return
	}
	p.AddDomainEvent(NewStockLevelChangedEvent(p, locationID, delta))
	if delta < 0 && p.IsLowStock() {
		p.AddDomainEvent(NewStockBelowThresholdEvent(p))
	}
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
