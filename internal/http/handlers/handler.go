package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mlm_platform/internal/logger"
	"mlm_platform/internal/repository"
	"mlm_platform/internal/service"
	"mlm_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB              *pgxpool.Pool
	UserRepo        *repository.UserRepository
	TransactionRepo *repository.TransactionRepository
	PlanRepo        *repository.PlanRepository
	PurchaseRepo    *repository.PurchaseRepository
	KycRepo         *repository.KycRepository
	WithdrawalRepo  *repository.WithdrawalRepository
	PurchaseService *service.PurchaseService
	WalletService   *service.WalletService
	AdminService    *service.AdminService
	Feed            *ws.Feed
}

func NewHandler(db *pgxpool.Pool) *Handler {
	h := &Handler{
		DB:              db,
		UserRepo:        repository.NewUserRepository(db),
		TransactionRepo: repository.NewTransactionRepository(db),
		PlanRepo:        repository.NewPlanRepository(db),
		PurchaseRepo:    repository.NewPurchaseRepository(db),
		KycRepo:         repository.NewKycRepository(db),
		WithdrawalRepo:  repository.NewWithdrawalRepository(db),
		PurchaseService: service.NewPurchaseService(db),
		WalletService:   service.NewWalletService(db),
		AdminService:    service.NewAdminService(db),
		Feed:            ws.NewFeed(),
	}
	h.PurchaseService.OnLedgerAppend = h.Feed.Publish
	h.WalletService.OnLedgerAppend = h.Feed.Publish
	return h
}

// paramID parses the :id path segment; on failure it writes the 400 itself.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func ok(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondErr maps repository and service sentinels onto HTTP statuses.
// Unknown errors are logged and hidden behind a generic 500.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPlanNotFound),
		errors.Is(err, repository.ErrKycNotFound),
		errors.Is(err, repository.ErrRequestNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInsufficientFunds):
		fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrEmailRegistered),
		errors.Is(err, repository.ErrMobileRegistered),
		errors.Is(err, repository.ErrDuplicatePlanName),
		errors.Is(err, repository.ErrKycAlreadySubmitted),
		errors.Is(err, repository.ErrKycAlreadyDecided),
		errors.Is(err, repository.ErrRequestNotPending):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrRemarksRequired):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}
