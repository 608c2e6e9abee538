package integration

import (
	"context"
	"testing"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"
	"mlm_platform/internal/service"

	"github.com/shopspring/decimal"
)

func TestFundRequestApproval(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	ws := service.NewWalletService(db)

	req, err := ws.SubmitFundRequest(ctx, user.UserID, decimal.NewFromInt(300), "UTR123", "bank transfer")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != domain.TxnPending {
		t.Fatalf("status = %q, want pending", req.Status)
	}

	// nothing credited while pending
	u, _ := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !u.TopupBalance.IsZero() {
		t.Fatalf("balance = %s before approval, want 0", u.TopupBalance)
	}

	entry, err := ws.SettleFundRequest(ctx, req.ID, true, "verified")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if entry.Status != domain.TxnSuccess {
		t.Errorf("status = %q, want success", entry.Status)
	}

	u, _ = repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !u.TopupBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("balance = %s after approval, want 300", u.TopupBalance)
	}

	// decisions are one-shot
	if _, err := ws.SettleFundRequest(ctx, req.ID, true, "again"); err != repository.ErrRequestNotPending {
		t.Errorf("second approval err = %v, want ErrRequestNotPending", err)
	}
}

func TestFundRequestRejection(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	ws := service.NewWalletService(db)

	req, err := ws.SubmitFundRequest(ctx, user.UserID, decimal.NewFromInt(300), "UTR124", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	entry, err := ws.SettleFundRequest(ctx, req.ID, false, "no matching payment")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if entry.Status != domain.TxnFailed {
		t.Errorf("status = %q, want failed", entry.Status)
	}

	u, _ := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !u.TopupBalance.IsZero() {
		t.Errorf("balance = %s after rejection, want 0", u.TopupBalance)
	}
}

func TestWithdrawalLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	ws := service.NewWalletService(db)

	// load the ewallet
	if _, err := ws.FundTransfer(ctx, user.UserID, decimal.NewFromInt(800),
		domain.TxnCredit, domain.WalletEwallet, "test"); err != nil {
		t.Fatalf("fund ewallet: %v", err)
	}

	// over-balance request rejected up front
	if _, err := ws.SubmitWithdrawal(ctx, user.UserID, decimal.NewFromInt(900),
		domain.WithdrawUPI, map[string]string{"upi": "a@bank"}); err != repository.ErrInsufficientFunds {
		t.Fatalf("over-balance err = %v, want ErrInsufficientFunds", err)
	}

	w, err := ws.SubmitWithdrawal(ctx, user.UserID, decimal.NewFromInt(500),
		domain.WithdrawUPI, map[string]string{"upi": "a@bank"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if w.Status != domain.WithdrawalPending {
		t.Fatalf("status = %q, want pending", w.Status)
	}

	// balance untouched until the decision
	u, _ := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !u.EwalletBalance.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("balance = %s while pending, want 800", u.EwalletBalance)
	}

	decided, err := ws.DecideWithdrawal(ctx, w.ID, true, "999001", "paid via UPI")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if decided.Status != domain.WithdrawalApproved {
		t.Errorf("status = %q, want approved", decided.Status)
	}

	u, _ = repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !u.EwalletBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("balance = %s after approval, want 300", u.EwalletBalance)
	}
	if !u.TotalWithdrawn.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total withdrawn = %s, want 500", u.TotalWithdrawn)
	}

	// one success ledger entry for the payout
	txns, _ := repository.NewTransactionRepository(db).ListByUser(ctx, user.UserID,
		domain.TransactionFilter{Source: domain.SourceWithdrawalRequest})
	if len(txns) != 1 {
		t.Fatalf("withdrawal entries = %d, want 1", len(txns))
	}

	if _, err := ws.DecideWithdrawal(ctx, w.ID, false, "999001", "flip"); err != repository.ErrRequestNotPending {
		t.Errorf("re-decision err = %v, want ErrRequestNotPending", err)
	}
}

func TestWithdrawalRejection(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	ws := service.NewWalletService(db)

	if _, err := ws.FundTransfer(ctx, user.UserID, decimal.NewFromInt(400),
		domain.TxnCredit, domain.WalletEwallet, "test"); err != nil {
		t.Fatalf("fund ewallet: %v", err)
	}

	w, err := ws.SubmitWithdrawal(ctx, user.UserID, decimal.NewFromInt(400),
		domain.WithdrawBank, map[string]string{"account": "0001"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// rejecting without remarks is refused and changes nothing
	if _, err := ws.DecideWithdrawal(ctx, w.ID, false, "999001", "  "); err != service.ErrRemarksRequired {
		t.Fatalf("blank remarks err = %v, want ErrRemarksRequired", err)
	}
	still, err := repository.NewWithdrawalRepository(db).ListByUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(still) != 1 || still[0].Status != domain.WithdrawalPending {
		t.Fatal("request left pending state after refused decision")
	}

	decided, err := ws.DecideWithdrawal(ctx, w.ID, false, "999001", "account details invalid")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if decided.Status != domain.WithdrawalRejected {
		t.Errorf("status = %q, want rejected", decided.Status)
	}
	if decided.Remarks != "account details invalid" {
		t.Errorf("remarks = %q, want preserved", decided.Remarks)
	}

	// rejection never touches balances or the ledger
	u, _ := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !u.EwalletBalance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("balance = %s after rejection, want 400", u.EwalletBalance)
	}
	if !u.TotalWithdrawn.IsZero() {
		t.Errorf("total withdrawn = %s after rejection, want 0", u.TotalWithdrawn)
	}
	txns, _ := repository.NewTransactionRepository(db).ListByUser(ctx, user.UserID,
		domain.TransactionFilter{Source: domain.SourceWithdrawalRequest})
	if len(txns) != 0 {
		t.Errorf("withdrawal ledger entries = %d after rejection, want 0", len(txns))
	}
}

func TestKycStateMachine(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	repo := repository.NewKycRepository(db)

	rec := &domain.KycRecord{
		UserID:       user.UserID,
		UserName:     user.FullName,
		PanNumber:    "ABCDE1234F",
		AadharNumber: "123412341234",
		Status:       domain.KycPending,
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	// one submission per account
	if err := repo.Create(ctx, &domain.KycRecord{
		UserID: user.UserID, UserName: user.FullName,
		PanNumber: "ABCDE1234F", AadharNumber: "123412341234",
		Status: domain.KycPending,
	}); err != repository.ErrKycAlreadySubmitted {
		t.Fatalf("duplicate err = %v, want ErrKycAlreadySubmitted", err)
	}

	approved, err := repo.SetStatus(ctx, rec.ID, domain.KycApproved, "looks odd")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Remarks != "" {
		t.Errorf("approval kept remarks %q, want cleared", approved.Remarks)
	}

	// terminal states admit no further transition
	if _, err := repo.SetStatus(ctx, rec.ID, domain.KycRejected, "changed my mind"); err != repository.ErrKycAlreadyDecided {
		t.Errorf("re-decision err = %v, want ErrKycAlreadyDecided", err)
	}
}
