package http

import (
	"time"

	"mlm_platform/internal/config"
	"mlm_platform/internal/http/handlers"
	"mlm_platform/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the whole HTTP surface onto r.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateLimit := 60
	apiRateWindow := time.Minute
	authRateLimit := 10
	authRateWindow := time.Minute
	if cfg != nil {
		apiRateLimit = cfg.APIRateLimit
		apiRateWindow = cfg.APIRateWindow
		authRateLimit = cfg.AuthRateLimit
		authRateWindow = cfg.AuthRateWindow
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth, tighter limit against credential stuffing
	authRL := middleware.RedisRateLimit(authRateLimit, authRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)
	v1.POST("/auth/verify-sponsor", h.VerifySponsor)

	// User routes
	user := v1.Group("")
	user.Use(middleware.RequireAuth())
	user.GET("/me", h.Me)
	user.PUT("/me", h.UpdateProfile)
	user.GET("/dashboard", h.Dashboard)
	user.GET("/referrals", h.Referrals)
	user.GET("/plans", h.ListPlans)
	user.POST("/purchase-plan", h.Purchase)
	user.GET("/purchases", h.MyPurchases)
	user.GET("/transactions", h.MyTransactions)
	user.GET("/wallet/balance", h.Balance)
	user.POST("/wallet/fund-request", h.SubmitFundRequest)
	user.GET("/wallet/fund-requests", h.MyFundRequests)
	user.POST("/wallet/withdraw-request", h.SubmitWithdrawal)
	user.GET("/wallet/withdrawals", h.MyWithdrawals)
	user.POST("/kyc", h.SubmitKyc)
	user.GET("/kyc/status", h.KycStatus)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	admin.GET("/dashboard", h.AdminDashboard)
	admin.GET("/users", h.AdminListUsers) // ?export=excel streams xlsx
	admin.PATCH("/users", h.AdminUpdateUser)
	admin.POST("/login-as-user", h.AdminLoginAsUser)
	admin.GET("/users/:id/transactions", h.AdminUserTransactions)
	admin.GET("/plans", h.AdminListPlans)
	admin.POST("/plans", h.AdminCreatePlan)
	admin.PATCH("/plans", h.AdminUpdatePlan)
	admin.GET("/kyc-list", h.AdminListKyc) // ?export=excel streams xlsx
	admin.PATCH("/kyc-update", h.AdminDecideKyc)
	admin.DELETE("/kyc/:id", h.AdminDeleteKyc)
	admin.POST("/wallet-management/fund-transfer", h.AdminFundTransfer)
	admin.GET("/wallet-management/topup-fund-requests", h.AdminListFundRequests)
	admin.PATCH("/wallet-management/update-topup-fund-request-status", h.AdminSettleFundRequest)
	admin.GET("/withdrawals", h.AdminListWithdrawals)
	admin.PATCH("/withdrawals", h.AdminDecideWithdrawal)

	// Live ledger feed for admin dashboards (token via query param)
	r.GET("/ws/admin/transactions", h.AdminFeed)
}
