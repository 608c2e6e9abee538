package service

import (
	"context"
	"errors"
	"strings"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrRemarksRequired = errors.New("remarks are required when rejecting")
)

// WalletService owns every balance mutation outside the purchase flow.
// Each mutation is a conditional atomic adjust plus exactly one ledger
// entry, committed together.
type WalletService struct {
	db             *pgxpool.Pool
	userRepo       *repository.UserRepository
	txnRepo        *repository.TransactionRepository
	withdrawalRepo *repository.WithdrawalRepository

	OnLedgerAppend func(domain.Transaction)
}

func NewWalletService(db *pgxpool.Pool) *WalletService {
	return &WalletService{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		txnRepo:        repository.NewTransactionRepository(db),
		withdrawalRepo: repository.NewWithdrawalRepository(db),
	}
}

func (s *WalletService) notify(t *domain.Transaction) {
	if s.OnLedgerAppend != nil {
		s.OnLedgerAppend(*t)
	}
}

// FundTransfer is the admin's manual adjustment: credit or debit either
// wallet with a success ledger entry (source admin_adjustment).
func (s *WalletService) FundTransfer(ctx context.Context, userID string, amount decimal.Decimal, txnType domain.TxnType, wallet domain.WalletKind, note string) (*domain.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	delta := amount
	if txnType == domain.TxnDebit {
		delta = amount.Neg()
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.userRepo.AdjustBalanceTx(ctx, tx, userID, wallet, delta); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		UserID:      userID,
		Type:        txnType,
		Amount:      amount,
		Source:      domain.SourceAdminAdjustment,
		Status:      domain.TxnSuccess,
		WalletType:  wallet,
		Description: "Admin adjustment",
		Note:        note,
	}
	if err := s.txnRepo.CreateWithTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.notify(entry)
	return entry, nil
}

// SubmitFundRequest records a user's request to load the topup wallet as a
// pending credit ledger entry. No balance changes until an admin approves.
func (s *WalletService) SubmitFundRequest(ctx context.Context, userID string, amount decimal.Decimal, txnNo, note string) (*domain.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.userRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxnCredit,
		Amount:      amount,
		Source:      domain.SourceTopupFundRequest,
		Status:      domain.TxnPending,
		WalletType:  domain.WalletTopup,
		Description: "Topup fund request",
		TxnNo:       txnNo,
		Note:        note,
	}
	if err := s.txnRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SettleFundRequest is the admin decision on a pending fund request. The
// request entry itself is the ledger record: approval flips it to success
// and credits the topup wallet in the same transaction, so the mutation has
// exactly one entry. Rejection flips it to failed and touches no balance.
func (s *WalletService) SettleFundRequest(ctx context.Context, requestID int64, approve bool, adminNote string) (*domain.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	status := domain.TxnFailed
	if approve {
		status = domain.TxnSuccess
	}

	entry, err := s.txnRepo.SettlePendingTx(ctx, tx, requestID, status, adminNote)
	if err != nil {
		return nil, err
	}
	if entry.Source != domain.SourceTopupFundRequest {
		return nil, repository.ErrRequestNotFound
	}

	if approve {
		if _, err := s.userRepo.AdjustBalanceTx(ctx, tx, entry.UserID, domain.WalletTopup, entry.Amount); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	if approve {
		s.notify(entry)
	}
	return entry, nil
}

// SubmitWithdrawal records a pending ewallet withdrawal request. The amount
// is validated against the current balance for early feedback, but the
// authoritative check is the conditional debit at approval time.
func (s *WalletService) SubmitWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, method domain.WithdrawalMethod, accountInfo map[string]string) (*domain.Withdrawal, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.EwalletBalance.LessThan(amount) {
		return nil, repository.ErrInsufficientFunds
	}

	w := &domain.Withdrawal{
		UserID:      userID,
		Amount:      amount,
		Method:      method,
		AccountInfo: accountInfo,
	}
	if err := s.withdrawalRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// DecideWithdrawal settles a pending withdrawal. Approval debits the
// ewallet (conditional, so a drained wallet fails the whole decision),
// bumps total_withdrawn and writes the success ledger entry, all in one
// transaction. Rejection requires remarks and leaves balances untouched.
func (s *WalletService) DecideWithdrawal(ctx context.Context, requestID int64, approve bool, processedBy, remarks string) (*domain.Withdrawal, error) {
	if !approve && strings.TrimSpace(remarks) == "" {
		return nil, ErrRemarksRequired
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	status := domain.WithdrawalRejected
	if approve {
		status = domain.WithdrawalApproved
	}

	w, err := s.withdrawalRepo.DecideTx(ctx, tx, requestID, status, processedBy, remarks)
	if err != nil {
		return nil, err
	}

	var entry *domain.Transaction
	if approve {
		if _, err := s.userRepo.AdjustBalanceTx(ctx, tx, w.UserID, domain.WalletEwallet, w.Amount.Neg()); err != nil {
			return nil, err
		}
		if err := s.userRepo.AddWithdrawnTx(ctx, tx, w.UserID, w.Amount); err != nil {
			return nil, err
		}
		entry = &domain.Transaction{
			UserID:      w.UserID,
			Type:        domain.TxnDebit,
			Amount:      w.Amount,
			Source:      domain.SourceWithdrawalRequest,
			Status:      domain.TxnSuccess,
			WalletType:  domain.WalletEwallet,
			Description: "Withdrawal approved",
			Note:        remarks,
		}
		if err := s.txnRepo.CreateWithTx(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	if entry != nil {
		s.notify(entry)
	}
	return w, nil
}
