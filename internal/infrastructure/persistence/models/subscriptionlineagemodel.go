package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/solacehq/solace/internal/shared/constants"
)

// SubscriptionLineageModel represents the database persistence model for
// subscription lineages. This is the anti-corruption layer between domain
// and database.
type SubscriptionLineageModel struct {
	ID                    uint   `gorm:"primarykey"`
	SID                   string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sl_xxx"`
	UserID                uint   `gorm:"not null;index:idx_lineage_user"`
	PlanID                uint   `gorm:"not null;index:idx_lineage_plan"`
	Provider              string `gorm:"not null;size:32;uniqueIndex:uk_lineage_origin,priority:1"`
	Environment           string `gorm:"not null;size:16;default:production"`
	OriginalTransactionID string `gorm:"not null;size:191;uniqueIndex:uk_lineage_origin,priority:2"`
	LatestTransactionID   string `gorm:"not null;size:191"`
	StoreProductID        string `gorm:"not null;size:191"`
	Status                string `gorm:"not null;size:32;index:idx_lineage_status"`
	LastEventKind         string `gorm:"not null;size:48"`
	ExpiresAt             *time.Time
	AutoRenewEnabled      bool    `gorm:"default:false"`
	AppAccountToken       *string `gorm:"size:191"`
	ObfuscatedAccountID   *string `gorm:"size:191"`
	ObfuscatedProfileID   *string `gorm:"size:191"`
	CustomerID            *string `gorm:"size:191"`
	LastNotification      datatypes.JSON
	LastRenewalInfo       datatypes.JSON
	LastTransactionInfo   datatypes.JSON
	Version               int `gorm:"not null;default:1"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionLineageModel) TableName() string {
	return constants.TableSubscriptionLineages
}

// BeforeCreate hook for GORM
func (m *SubscriptionLineageModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
