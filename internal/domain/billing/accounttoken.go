package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/shared/biztime"
)

// AccountToken is one entry in the token-issuance ledger: an opaque token
// handed to the client before purchase so the store can echo it back inside
// notifications. Entries are created at purchase-intent time, consulted at
// webhook time, and never mutated except deactivation.
type AccountToken struct {
	id            uint
	token         string
	userID        uint
	isActive      bool
	createdAt     time.Time
	deactivatedAt *time.Time
}

// NewAccountToken issues a fresh token for the given user. The token is a
// UUID because Apple's appAccountToken field requires one; the other
// providers accept it as an opaque string.
func NewAccountToken(userID uint) (*AccountToken, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &AccountToken{
		token:     uuid.NewString(),
		userID:    userID,
		isActive:  true,
		createdAt: biztime.NowUTC(),
	}, nil
}

// ReconstructAccountToken reconstructs a ledger entry from persistence.
func ReconstructAccountToken(
	tokenID uint,
	token string,
	userID uint,
	isActive bool,
	createdAt time.Time,
	deactivatedAt *time.Time,
) (*AccountToken, error) {
	if tokenID == 0 {
		return nil, fmt.Errorf("token ID cannot be zero")
	}
	if token == "" {
		return nil, fmt.Errorf("token value is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &AccountToken{
		id:            tokenID,
		token:         token,
		userID:        userID,
		isActive:      isActive,
		createdAt:     createdAt,
		deactivatedAt: deactivatedAt,
	}, nil
}

// Deactivate marks the token inactive. Deactivation is idempotent.
func (t *AccountToken) Deactivate() {
	if !t.isActive {
		return
	}
	now := biztime.NowUTC()
	t.isActive = false
	t.deactivatedAt = &now
}

func (t *AccountToken) ID() uint {
	return t.id
}

func (t *AccountToken) Token() string {
	return t.token
}

func (t *AccountToken) UserID() uint {
	return t.userID
}

func (t *AccountToken) IsActive() bool {
	return t.isActive
}

func (t *AccountToken) CreatedAt() time.Time {
	return t.createdAt
}

func (t *AccountToken) DeactivatedAt() *time.Time {
	return t.deactivatedAt
}

// SetID sets the token ID (only for persistence layer use).
func (t *AccountToken) SetID(tokenID uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	if tokenID == 0 {
		return fmt.Errorf("token ID cannot be zero")
	}
	t.id = tokenID
	return nil
}
