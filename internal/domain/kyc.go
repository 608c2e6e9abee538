package domain

import "time"

// KycStatus: pending -> approved | rejected, both terminal.
type KycStatus string

const (
	KycPending  KycStatus = "pending"
	KycApproved KycStatus = "approved"
	KycRejected KycStatus = "rejected"
)

func (s KycStatus) Valid() bool {
	return s == KycPending || s == KycApproved || s == KycRejected
}

// Terminal reports whether the status permits no further transition.
func (s KycStatus) Terminal() bool {
	return s == KycApproved || s == KycRejected
}

// KycRecord holds a user's identity and bank details for verification.
// One record per user, created once.
type KycRecord struct {
	ID                int64     `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	UserName          string    `db:"user_name" json:"user_name"`
	PanNumber         string    `db:"pan_number" json:"pan_number"`
	AadharNumber      string    `db:"aadhar_number" json:"aadhar_number"`
	AccountHolderName string    `db:"account_holder_name" json:"account_holder_name"`
	BankName          string    `db:"bank_name" json:"bank_name"`
	AccountNumber     string    `db:"account_number" json:"account_number"`
	IFSCCode          string    `db:"ifsc_code" json:"ifsc_code"`
	DocumentImage     string    `db:"document_image" json:"document_image,omitempty"`
	Status            KycStatus `db:"status" json:"status"`
	Remarks           string    `db:"remarks" json:"remarks,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// KycFilter narrows admin KYC listings.
type KycFilter struct {
	Status KycStatus // empty = all
	Search string    // matches user_id or user_name
	Page   int
	Limit  int
}
