package models

import (
	"time"

	"github.com/solacehq/solace/internal/shared/constants"
)

// CatalogEntryModel represents the database persistence model for product
// catalog entries.
type CatalogEntryModel struct {
	ID             uint   `gorm:"primarykey"`
	Provider       string `gorm:"not null;size:32;uniqueIndex:uk_catalog_product,priority:1"`
	StoreProductID string `gorm:"not null;size:191;uniqueIndex:uk_catalog_product,priority:2"`
	Environment    string `gorm:"not null;size:16;default:production;uniqueIndex:uk_catalog_product,priority:3"`
	PlanID         uint   `gorm:"not null;index:idx_catalog_plan"`
	Active         bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (CatalogEntryModel) TableName() string {
	return constants.TableProductCatalogEntries
}
