package inventory

import (
	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// TransactionType represents the type of ledger entry
type TransactionType string

const (
	// TransactionTypeSale records stock sold through a channel
	TransactionTypeSale TransactionType = "sale"
	// TransactionTypeProduction records stock produced into a location
	TransactionTypeProduction TransactionType = "production"
	// TransactionTypeAdjustment records a manual stock correction
	TransactionTypeAdjustment TransactionType = "adjustment"
	// TransactionTypeTransfer records stock moved between locations
	TransactionTypeTransfer TransactionType = "transfer"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeProduction, TransactionTypeAdjustment, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionSource identifies where a ledger entry originated
type TransactionSource string

const (
	SourceShopify TransactionSource = "shopify"
	SourceSquare  TransactionSource = "square"
	SourceAmazon  TransactionSource = "amazon"
	SourceManual  TransactionSource = "manual"
	SourceWebhook TransactionSource = "webhook"
)

// String returns the string representation of TransactionSource
func (s TransactionSource) String() string {
	return string(s)
}

// IsValid returns true if the source is valid
func (s TransactionSource) IsValid() bool {
	switch s {
	case SourceShopify, SourceSquare, SourceAmazon, SourceManual, SourceWebhook:
		return true
	}
	return false
}

// LedgerSource maps an incoming sale source to the source stored on the
// ledger entry: manual sales stay manual, everything else is recorded as
// a webhook-originated movement.
func LedgerSource(s TransactionSource) TransactionSource {
	if s == SourceManual {
		return SourceManual
	}
	return SourceWebhook
}

// InventoryTransaction is an immutable record of a stock movement. Once
// appended to the ledger it is never modified; corrections are made with
// new entries. The set of populated location fields depends on the type:
//
//	sale        Quantity < 0, FromLocationID set
//	production  Quantity > 0, ToLocationID set
//	adjustment  Quantity != 0, ToLocationID when positive, FromLocationID when negative
//	transfer    Quantity > 0, both locations set and distinct
type InventoryTransaction struct {
	shared.BaseEntity
	Type             TransactionType   `gorm:"type:varchar(20);not null;index:idx_ledger_type"`
	ProductID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_ledger_product"`
	ProductName      string            `gorm:"type:varchar(200);not null"`
	ProductSKU       string            `gorm:"type:varchar(50);not null;index"`
	Quantity         int64             `gorm:"not null"`
	FromLocationID   *uuid.UUID        `gorm:"type:uuid;index"`
	FromLocationName string            `gorm:"type:varchar(200)"`
	ToLocationID     *uuid.UUID        `gorm:"type:uuid;index"`
	ToLocationName   string            `gorm:"type:varchar(200)"`
	Source           TransactionSource `gorm:"type:varchar(20);not null;index:idx_ledger_source"`
	Reference        string            `gorm:"type:varchar(100)"`
	Notes            string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// ProductSnapshot carries the denormalized product fields stored on every
// ledger entry so history survives catalog edits and deletions.
type ProductSnapshot struct {
	ID   uuid.UUID
	Name string
	SKU  string
}

// NewSaleTransaction creates a sale ledger entry. The quantity argument is
// the units sold (positive); the entry stores it negated.
func NewSaleTransaction(product ProductSnapshot, quantity int64, fromLocationID uuid.UUID, source TransactionSource) (*InventoryTransaction, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if fromLocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Sale requires a source location")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid transaction source")
	}

	tx := &InventoryTransaction{
		BaseEntity:     shared.NewBaseEntity(),
		Type:           TransactionTypeSale,
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductSKU:     product.SKU,
		Quantity:       -quantity,
		FromLocationID: &fromLocationID,
		Source:         LedgerSource(source),
	}
	return tx, tx.validate()
}

// NewProductionTransaction creates a production ledger entry with a
// positive quantity.
func NewProductionTransaction(product ProductSnapshot, quantity int64, toLocationID uuid.UUID) (*InventoryTransaction, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if toLocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Production requires a destination location")
	}

	tx := &InventoryTransaction{
		BaseEntity:   shared.NewBaseEntity(),
		Type:         TransactionTypeProduction,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductSKU:   product.SKU,
		Quantity:     quantity,
		ToLocationID: &toLocationID,
		Source:       SourceManual,
	}
	return tx, tx.validate()
}

// NewAdjustmentTransaction creates an adjustment ledger entry from a signed
// delta. Positive deltas set the destination location, negative deltas set
// the source location. A zero delta is not a ledger entry.
func NewAdjustmentTransaction(product ProductSnapshot, delta int64, locationID uuid.UUID) (*InventoryTransaction, error) {
	if delta == 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Adjustment requires a location")
	}

	tx := &InventoryTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        TransactionTypeAdjustment,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductSKU:  product.SKU,
		Quantity:    delta,
		Source:      SourceManual,
	}
	if delta > 0 {
		tx.ToLocationID = &locationID
	} else {
		tx.FromLocationID = &locationID
	}
	return tx, tx.validate()
}

// NewTransferTransaction creates a transfer ledger entry between two
// distinct locations.
func NewTransferTransaction(product ProductSnapshot, quantity int64, fromLocationID, toLocationID uuid.UUID) (*InventoryTransaction, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if fromLocationID == uuid.Nil || toLocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Transfer requires both locations")
	}
	if fromLocationID == toLocationID {
		return nil, shared.ErrSameLocation
	}

	tx := &InventoryTransaction{
		BaseEntity:     shared.NewBaseEntity(),
		Type:           TransactionTypeTransfer,
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductSKU:     product.SKU,
		Quantity:       quantity,
		FromLocationID: &fromLocationID,
		ToLocationID:   &toLocationID,
		Source:         SourceManual,
	}
	return tx, tx.validate()
}

// WithReference sets the external reference (e.g. order ID, batch number)
func (t *InventoryTransaction) WithReference(reference string) *InventoryTransaction {
	t.Reference = reference
	return t
}

// WithNotes sets free-form notes on the entry
func (t *InventoryTransaction) WithNotes(notes string) *InventoryTransaction {
	t.Notes = notes
	return t
}

// WithLocationNames sets the denormalized location names
func (t *InventoryTransaction) WithLocationNames(fromName, toName string) *InventoryTransaction {
	t.FromLocationName = fromName
	t.ToLocationName = toName
	return t
}

// AbsQuantity returns the magnitude of the movement
func (t *InventoryTransaction) AbsQuantity() int64 {
	if t.Quantity < 0 {
		return -t.Quantity
	}
	return t.Quantity
}

// IsIncrease returns true if the entry increases total stock
func (t *InventoryTransaction) IsIncrease() bool {
	return t.Quantity > 0 && t.Type != TransactionTypeTransfer
}

// IsDecrease returns true if the entry decreases total stock
func (t *InventoryTransaction) IsDecrease() bool {
	return t.Quantity < 0
}

// validate enforces the per-type field shape
func (t *InventoryTransaction) validate() error {
	if t.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !t.Type.IsValid() {
		return shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if !t.Source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Invalid transaction source")
	}

	switch t.Type {
	case TransactionTypeSale:
		if t.Quantity >= 0 || t.FromLocationID == nil || t.ToLocationID != nil {
			return shared.NewDomainError("INVALID_TRANSACTION", "Sale entries record a negative quantity leaving one location")
		}
	case TransactionTypeProduction:
		if t.Quantity <= 0 || t.ToLocationID == nil || t.FromLocationID != nil {
			return shared.NewDomainError("INVALID_TRANSACTION", "Production entries record a positive quantity entering one location")
		}
	case TransactionTypeAdjustment:
		switch {
		case t.Quantity == 0:
			return shared.ErrInvalidQuantity
		case t.Quantity > 0 && (t.ToLocationID == nil || t.FromLocationID != nil):
			return shared.NewDomainError("INVALID_TRANSACTION", "Positive adjustments set only the destination location")
		case t.Quantity < 0 && (t.FromLocationID == nil || t.ToLocationID != nil):
			return shared.NewDomainError("INVALID_TRANSACTION", "Negative adjustments set only the source location")
		}
	case TransactionTypeTransfer:
		if t.Quantity <= 0 || t.FromLocationID == nil || t.ToLocationID == nil {
			return shared.NewDomainError("INVALID_TRANSACTION", "Transfer entries record a positive quantity with both locations")
		}
		if *t.FromLocationID == *t.ToLocationID {
			return shared.ErrSameLocation
		}
	}
	return nil
}
