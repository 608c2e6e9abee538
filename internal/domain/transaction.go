package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType is the direction of a ledger entry.
type TxnType string

const (
	TxnCredit TxnType = "credit"
	TxnDebit  TxnType = "debit"
)

func (t TxnType) Valid() bool {
	return t == TxnCredit || t == TxnDebit
}

// TxnSource classifies what produced a ledger entry.
type TxnSource string

const (
	SourceTopupFundRequest  TxnSource = "topup_fund_request"
	SourceWithdrawalRequest TxnSource = "withdrawal_request"
	SourceFundTransfer      TxnSource = "fund_transfer"
	SourcePlanDeposit       TxnSource = "plan_deposit"
	SourceDailyIncome       TxnSource = "daily_income"
	SourceMonthlyIncome     TxnSource = "monthly_income"
	SourceLevelIncome       TxnSource = "level_income"
	SourceDirectIncome      TxnSource = "direct_income"
	SourceAdminAdjustment   TxnSource = "admin_adjustment"
)

// TxnStatus is the entry lifecycle. User-initiated fund requests start
// pending; system-generated entries are written as success. The only legal
// mutation of an entry is the single pending -> success|failed transition.
type TxnStatus string

const (
	TxnPending TxnStatus = "pending"
	TxnSuccess TxnStatus = "success"
	TxnFailed  TxnStatus = "failed"
)

// Transaction is one immutable ledger entry describing a single
// balance-affecting event.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	SponsorID   string          `db:"sponsor_id" json:"sponsor_id,omitempty"`
	Type        TxnType         `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	SubAmount   decimal.Decimal `db:"sub_amount" json:"sub_amount"`
	Source      TxnSource       `db:"source" json:"source"`
	Status      TxnStatus       `db:"status" json:"status"`
	WalletType  WalletKind      `db:"wallet_type" json:"wallet_type"`
	PlanID      *int64          `db:"plan_id" json:"plan_id,omitempty"`
	PurchaseID  *int64          `db:"purchase_id" json:"purchase_id,omitempty"`
	Description string          `db:"description" json:"description,omitempty"`
	TxnNo       string          `db:"txn_no" json:"txn_no,omitempty"`
	Note        string          `db:"note" json:"note,omitempty"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	Source     TxnSource
	Status     TxnStatus
	WalletType WalletKind
	Limit      int
	Offset     int
}
