package handlers

import (
	"errors"
	"net/http"

	"mlm_platform/internal/http/middleware"
	"mlm_platform/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPlans returns the active plans a user can buy.
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.PlanRepo.List(c.Request.Context(), true)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"plans": plans})
}

// Purchase buys a plan from the caller's topup wallet.
func (h *Handler) Purchase(c *gin.Context) {
	var req struct {
		PlanID int64 `json:"plan_id"`
	}
	if err := c.BindJSON(&req); err != nil || req.PlanID <= 0 {
		fail(c, http.StatusBadRequest, "plan_id is required")
		return
	}

	purchase, err := h.PurchaseService.Purchase(c.Request.Context(), middleware.UserID(c), req.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			middleware.Purchases.WithLabelValues("insufficient_funds").Inc()
		} else {
			middleware.Purchases.WithLabelValues("error").Inc()
		}
		respondErr(c, err)
		return
	}

	middleware.Purchases.WithLabelValues("success").Inc()
	middleware.LedgerEntries.Inc()
	ok(c, gin.H{"purchase": purchase})
}

// MyPurchases lists the caller's plan purchases, newest first.
func (h *Handler) MyPurchases(c *gin.Context) {
	purchases, err := h.PurchaseRepo.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"purchases": purchases})
}
