package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalMethod is how an approved withdrawal is paid out.
type WithdrawalMethod string

const (
	WithdrawUPI    WithdrawalMethod = "upi"
	WithdrawBank   WithdrawalMethod = "bank"
	WithdrawWallet WithdrawalMethod = "wallet"
)

func (m WithdrawalMethod) Valid() bool {
	return m == WithdrawUPI || m == WithdrawBank || m == WithdrawWallet
}

// WithdrawalStatus: pending -> approved | rejected.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a user's request to pay out ewallet funds. The balance is
// only debited at approval time, inside the same transaction that writes
// the ledger entry.
type Withdrawal struct {
	ID          int64             `db:"id" json:"id"`
	UserID      string            `db:"user_id" json:"user_id"`
	Amount      decimal.Decimal   `db:"amount" json:"amount"`
	Method      WithdrawalMethod  `db:"method" json:"method"`
	AccountInfo map[string]string `db:"account_info" json:"account_info,omitempty"`
	Status      WithdrawalStatus  `db:"status" json:"status"`
	ProcessedBy string            `db:"processed_by" json:"processed_by,omitempty"`
	Remarks     string            `db:"remarks" json:"remarks,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time        `db:"processed_at" json:"processed_at,omitempty"`
}
