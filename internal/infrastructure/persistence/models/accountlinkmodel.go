package models

import (
	"time"

	"github.com/solacehq/solace/internal/shared/constants"
)

// AccountLinkModel represents the database persistence model for
// provider-side identifier links.
type AccountLinkModel struct {
	ID         uint   `gorm:"primarykey"`
	Provider   string `gorm:"not null;size:32;uniqueIndex:uk_account_link_identity,priority:1"`
	Kind       string `gorm:"not null;size:32;uniqueIndex:uk_account_link_identity,priority:2"`
	ExternalID string `gorm:"not null;size:191;uniqueIndex:uk_account_link_identity,priority:3"`
	UserID     uint   `gorm:"not null;index:idx_account_link_user"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (AccountLinkModel) TableName() string {
	return constants.TableBillingAccountLinks
}
