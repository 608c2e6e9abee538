package service

import (
	"context"
	"fmt"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PurchaseService executes a plan purchase as one consistency boundary:
// the topup debit, the purchase record and the ledger entry all land in a
// single database transaction, so a failure at any step leaves no partial
// state behind.
type PurchaseService struct {
	db           *pgxpool.Pool
	userRepo     *repository.UserRepository
	planRepo     *repository.PlanRepository
	purchaseRepo *repository.PurchaseRepository
	txnRepo      *repository.TransactionRepository

	// OnLedgerAppend, when set, receives every entry written by this
	// service after commit.
	OnLedgerAppend func(domain.Transaction)
}

func NewPurchaseService(db *pgxpool.Pool) *PurchaseService {
	return &PurchaseService{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		planRepo:     repository.NewPlanRepository(db),
		purchaseRepo: repository.NewPurchaseRepository(db),
		txnRepo:      repository.NewTransactionRepository(db),
	}
}

// Purchase buys plan planID for user userID, paying from the topup wallet.
// The price and commission schedule are captured into the purchase record
// as of now; later plan edits do not touch it. Exactly one debit and one
// matching ledger entry exist after success; none after failure.
func (s *PurchaseService) Purchase(ctx context.Context, userID string, planID int64) (*domain.PlanPurchase, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, repository.ErrPlanNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// check-and-debit is one conditional update; two racing purchases on
	// the same wallet can never both pass
	if _, err := s.userRepo.AdjustBalanceTx(ctx, tx, userID, domain.WalletTopup, plan.Amount.Neg()); err != nil {
		return nil, err
	}

	purchase := &domain.PlanPurchase{
		UserID:            user.UserID,
		SponsorID:         user.SponsorID,
		PlanID:            plan.ID,
		Amount:            plan.Amount,
		DailyCommission:   plan.DailyCommission,
		MonthlyCommission: plan.MonthlyCommission,
		Levels:            plan.Levels,
		Status:            domain.PurchaseApproved,
	}
	if err := s.purchaseRepo.CreateWithTx(ctx, tx, purchase); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		UserID:      user.UserID,
		SponsorID:   user.SponsorID,
		Type:        domain.TxnDebit,
		Amount:      plan.Amount,
		Source:      domain.SourcePlanDeposit,
		Status:      domain.TxnSuccess,
		WalletType:  domain.WalletTopup,
		PlanID:      &plan.ID,
		PurchaseID:  &purchase.ID,
		Description: fmt.Sprintf("Plan Purchased (%s)", plan.Name),
	}
	if err := s.txnRepo.CreateWithTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.OnLedgerAppend != nil {
		s.OnLedgerAppend(*entry)
	}
	return purchase, nil
}
