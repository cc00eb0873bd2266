package models

import (
	"time"

	"github.com/solacehq/solace/internal/shared/constants"
)

// AccountTokenModel represents the database persistence model for issued
// account tokens.
type AccountTokenModel struct {
	ID            uint   `gorm:"primarykey"`
	Token         string `gorm:"uniqueIndex;not null;size:36;comment:UUID echoed back by store notifications"`
	UserID        uint   `gorm:"not null;index:idx_account_token_user"`
	IsActive      bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	DeactivatedAt *time.Time
}

// TableName specifies the table name for GORM
func (AccountTokenModel) TableName() string {
	return constants.TableAccountTokens
}
