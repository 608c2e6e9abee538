package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role controls access to admin endpoints. Set once at registration and
// never changed through user-facing update paths.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// WalletKind selects which of a user's two balances an operation touches.
type WalletKind string

const (
	WalletEwallet WalletKind = "ewallet" // general-purpose earnings wallet
	WalletTopup   WalletKind = "topup"   // reserved for plan purchases
)

func (w WalletKind) Valid() bool {
	return w == WalletEwallet || w == WalletTopup
}

// User is an account: identity, sponsor link and the two wallet balances.
// UserID is the public 6-digit identifier and doubles as the referral code.
type User struct {
	ID             int64           `db:"id" json:"-"`
	UserID         string          `db:"user_id" json:"user_id"`
	FullName       string          `db:"full_name" json:"full_name"`
	Email          string          `db:"email" json:"email"`
	Mobile         string          `db:"mobile" json:"mobile,omitempty"`
	PasswordHash   string          `db:"password_hash" json:"-"`
	Role           Role            `db:"role" json:"role"`
	SponsorID      string          `db:"sponsor_id" json:"sponsor_id,omitempty"`
	EwalletBalance decimal.Decimal `db:"ewallet_balance" json:"ewallet_balance"`
	TopupBalance   decimal.Decimal `db:"topup_balance" json:"topup_balance"`
	TotalEarnings  decimal.Decimal `db:"total_earnings" json:"total_earnings"`
	TotalWithdrawn decimal.Decimal `db:"total_withdrawn" json:"total_withdrawn"`
	ProfileImage   string          `db:"profile_image" json:"profile_image,omitempty"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}
