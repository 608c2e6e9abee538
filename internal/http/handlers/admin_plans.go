package handlers

import (
	"net/http"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminListPlans returns every plan, active or not.
func (h *Handler) AdminListPlans(c *gin.Context) {
	plans, err := h.PlanRepo.List(c.Request.Context(), false)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"plans": plans})
}

// AdminCreatePlan adds a plan. Edits to a plan never touch purchases made
// before the edit; each purchase captures its own copy of the terms.
func (h *Handler) AdminCreatePlan(c *gin.Context) {
	var req struct {
		Name              string                   `json:"name"`
		PlanType          domain.PlanType          `json:"plan_type"`
		Amount            decimal.Decimal          `json:"amount"`
		DailyCommission   decimal.Decimal          `json:"daily_commission"`
		MonthlyCommission decimal.Decimal          `json:"monthly_commission"`
		Description       string                   `json:"description"`
		Levels            []domain.CommissionLevel `json:"levels"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}
	if req.Name == "" || req.Amount.Sign() <= 0 {
		fail(c, http.StatusBadRequest, "name and a positive amount are required")
		return
	}
	if req.PlanType == "" {
		req.PlanType = domain.PlanDeposit
	}

	plan := &domain.Plan{
		Name:              req.Name,
		PlanType:          req.PlanType,
		Amount:            req.Amount,
		DailyCommission:   req.DailyCommission,
		MonthlyCommission: req.MonthlyCommission,
		Description:       req.Description,
		Levels:            req.Levels,
		IsActive:          true,
	}
	if err := h.PlanRepo.Create(c.Request.Context(), plan); err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"plan": plan})
}

// AdminUpdatePlan applies partial edits to one plan.
func (h *Handler) AdminUpdatePlan(c *gin.Context) {
	var req struct {
		ID                int64                    `json:"id"`
		Name              *string                  `json:"name"`
		Amount            *decimal.Decimal         `json:"amount"`
		DailyCommission   *decimal.Decimal         `json:"daily_commission"`
		MonthlyCommission *decimal.Decimal         `json:"monthly_commission"`
		Description       *string                  `json:"description"`
		Levels            []domain.CommissionLevel `json:"levels"`
		IsActive          *bool                    `json:"is_active"`
	}
	if err := c.BindJSON(&req); err != nil || req.ID <= 0 {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}
	if req.Amount != nil && req.Amount.Sign() <= 0 {
		fail(c, http.StatusBadRequest, "amount must be positive")
		return
	}

	plan, err := h.PlanRepo.Update(c.Request.Context(), req.ID, repository.PlanUpdate{
		Name:              req.Name,
		Amount:            req.Amount,
		DailyCommission:   req.DailyCommission,
		MonthlyCommission: req.MonthlyCommission,
		Description:       req.Description,
		Levels:            req.Levels,
		IsActive:          req.IsActive,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"plan": plan})
}
