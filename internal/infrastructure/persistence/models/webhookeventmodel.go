package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/solacehq/solace/internal/shared/constants"
)

// WebhookEventModel represents the database persistence model for the
// append-only webhook event ledger.
type WebhookEventModel struct {
	ID                    uint   `gorm:"primarykey"`
	SID                   string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: evt_xxx"`
	Provider              string `gorm:"not null;size:32;index:idx_webhook_event_origin,priority:1"`
	ProviderEventType     string `gorm:"not null;size:191"`
	Kind                  string `gorm:"not null;size:48;default:''"`
	OriginalTransactionID string `gorm:"not null;size:191;default:'';index:idx_webhook_event_origin,priority:2"`
	Payload               datatypes.JSON
	Outcome               string `gorm:"not null;size:48;index:idx_webhook_event_outcome"`
	ErrorDetail           string `gorm:"type:text"`
	ReceivedAt            time.Time
	ReplayedAt            *time.Time
}

// TableName specifies the table name for GORM
func (WebhookEventModel) TableName() string {
	return constants.TableBillingWebhookEvents
}
