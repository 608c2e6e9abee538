package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"
	"mlm_platform/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	u := &domain.User{
		FullName:     "Test User",
		Email:        fmt.Sprintf("user%d@test.local", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         domain.RoleUser,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createTestPlan(t *testing.T, db *pgxpool.Pool, amount int64) *domain.Plan {
	t.Helper()
	p := &domain.Plan{
		Name:     fmt.Sprintf("Plan %d", time.Now().UnixNano()),
		PlanType: domain.PlanDeposit,
		Amount:   decimal.NewFromInt(amount),
		IsActive: true,
	}
	if err := repository.NewPlanRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return p
}

func fundTopup(t *testing.T, db *pgxpool.Pool, userID string, amount int64) {
	t.Helper()
	ws := service.NewWalletService(db)
	_, err := ws.FundTransfer(context.Background(), userID,
		decimal.NewFromInt(amount), domain.TxnCredit, domain.WalletTopup, "test funding")
	if err != nil {
		t.Fatalf("fund topup: %v", err)
	}
}

func TestPurchaseSuccess(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	plan := createTestPlan(t, db, 500)
	fundTopup(t, db, user.UserID, 1000)

	ps := service.NewPurchaseService(db)
	purchase, err := ps.Purchase(ctx, user.UserID, plan.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if purchase.Status != domain.PurchaseApproved {
		t.Errorf("status = %q, want approved", purchase.Status)
	}
	if !purchase.Amount.Equal(plan.Amount) {
		t.Errorf("amount = %s, want %s", purchase.Amount, plan.Amount)
	}

	// balance dropped by exactly the plan price
	after, err := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !after.TopupBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("topup balance = %s, want 500", after.TopupBalance)
	}

	// exactly one debit ledger entry for the purchase
	txns, err := repository.NewTransactionRepository(db).ListByUser(ctx, user.UserID,
		domain.TransactionFilter{Source: domain.SourcePlanDeposit})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("plan_deposit entries = %d, want 1", len(txns))
	}
	if txns[0].Type != domain.TxnDebit || txns[0].Status != domain.TxnSuccess {
		t.Errorf("entry = %s/%s, want debit/success", txns[0].Type, txns[0].Status)
	}
	if txns[0].PurchaseID == nil || *txns[0].PurchaseID != purchase.ID {
		t.Error("entry does not reference the purchase")
	}
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	plan := createTestPlan(t, db, 500)
	fundTopup(t, db, user.UserID, 100)

	ps := service.NewPurchaseService(db)
	if _, err := ps.Purchase(ctx, user.UserID, plan.ID); err != repository.ErrInsufficientFunds {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	// the failed attempt left nothing behind
	after, _ := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !after.TopupBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("topup balance = %s, want 100 unchanged", after.TopupBalance)
	}
	txns, _ := repository.NewTransactionRepository(db).ListByUser(ctx, user.UserID,
		domain.TransactionFilter{Source: domain.SourcePlanDeposit})
	if len(txns) != 0 {
		t.Errorf("plan_deposit entries = %d, want 0", len(txns))
	}
	purchases, _ := repository.NewPurchaseRepository(db).ListByUser(ctx, user.UserID)
	if len(purchases) != 0 {
		t.Errorf("purchases = %d, want 0", len(purchases))
	}
}

// Two racing purchases with funds for only one: exactly one must win.
func TestPurchaseConcurrentDoubleSpend(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	plan := createTestPlan(t, db, 500)
	fundTopup(t, db, user.UserID, 600)

	ps := service.NewPurchaseService(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ps.Purchase(ctx, user.UserID, plan.ID)
		}(i)
	}
	wg.Wait()

	var okCount, insufficient int
	for _, err := range errs {
		switch err {
		case nil:
			okCount++
		case repository.ErrInsufficientFunds:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || insufficient != 1 {
		t.Fatalf("ok = %d, insufficient = %d, want 1/1", okCount, insufficient)
	}

	after, _ := repository.NewUserRepository(db).GetByUserID(ctx, user.UserID)
	if !after.TopupBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("topup balance = %s, want 100", after.TopupBalance)
	}
}

func TestPurchaseInactivePlan(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	plan := createTestPlan(t, db, 500)
	fundTopup(t, db, user.UserID, 1000)

	inactive := false
	if _, err := repository.NewPlanRepository(db).Update(ctx, plan.ID,
		repository.PlanUpdate{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate plan: %v", err)
	}

	ps := service.NewPurchaseService(db)
	if _, err := ps.Purchase(ctx, user.UserID, plan.ID); err != repository.ErrPlanNotFound {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}
