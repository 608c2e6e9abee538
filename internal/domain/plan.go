package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanType distinguishes account-activation plans from deposit plans.
type PlanType string

const (
	PlanActivation PlanType = "activation"
	PlanDeposit    PlanType = "deposit"
)

// CommissionLevel is one row of a plan's per-level commission schedule.
type CommissionLevel struct {
	Level             int             `json:"level"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
}

// Plan is purchasable reference data. The purchase flow reads it and never
// writes it; price and schedule changes only affect future purchases.
type Plan struct {
	ID                int64             `db:"id" json:"id"`
	Name              string            `db:"name" json:"name"`
	PlanType          PlanType          `db:"plan_type" json:"plan_type"`
	Amount            decimal.Decimal   `db:"amount" json:"amount"`
	DailyCommission   decimal.Decimal   `db:"daily_commission" json:"daily_commission"`
	MonthlyCommission decimal.Decimal   `db:"monthly_commission" json:"monthly_commission"`
	Description       string            `db:"description" json:"description,omitempty"`
	Levels            []CommissionLevel `db:"levels" json:"levels"`
	IsActive          bool              `db:"is_active" json:"is_active"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

// PurchaseStatus is the plan purchase lifecycle. The purchase flow currently
// writes approved directly (auto-approval).
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseApproved PurchaseStatus = "approved"
	PurchaseRejected PurchaseStatus = "rejected"
)

// PlanPurchase records one account buying one plan. Amount and the
// commission schedule are copied from the plan at purchase time so later
// plan edits never change existing purchases.
type PlanPurchase struct {
	ID                int64             `db:"id" json:"id"`
	UserID            string            `db:"user_id" json:"user_id"`
	SponsorID         string            `db:"sponsor_id" json:"sponsor_id,omitempty"`
	PlanID            int64             `db:"plan_id" json:"plan_id"`
	Amount            decimal.Decimal   `db:"amount" json:"amount"`
	DailyCommission   decimal.Decimal   `db:"daily_commission" json:"daily_commission"`
	MonthlyCommission decimal.Decimal   `db:"monthly_commission" json:"monthly_commission"`
	Levels            []CommissionLevel `db:"levels" json:"levels"`
	Status            PurchaseStatus    `db:"status" json:"status"`
	StartDate         time.Time         `db:"start_date" json:"start_date"`
	EndDate           *time.Time        `db:"end_date" json:"end_date,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}
