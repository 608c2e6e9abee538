package handlers

import (
	"net/http"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/http/middleware"
	"mlm_platform/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Me returns the authenticated user's profile and balances.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.UserRepo.GetByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"user": user})
}

// UpdateProfile lets a user change their own name, mobile, image or
// password. Email, role and balances are not editable here.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req struct {
		FullName     *string `json:"full_name"`
		Mobile       *string `json:"mobile"`
		ProfileImage *string `json:"profile_image"`
		Password     *string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	update := repository.UserUpdate{
		FullName:     req.FullName,
		Mobile:       req.Mobile,
		ProfileImage: req.ProfileImage,
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			fail(c, http.StatusBadRequest, "password must be at least 6 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondErr(c, err)
			return
		}
		s := string(hash)
		update.PasswordHash = &s
	}

	user, err := h.UserRepo.Update(c.Request.Context(), middleware.UserID(c), update)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"user": user})
}

// Dashboard is the user home payload: balances, direct referrals and
// activity counts.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	user, err := h.UserRepo.GetByUserID(ctx, userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	referrals, err := h.UserRepo.Referrals(ctx, userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	activePlans, err := h.PurchaseRepo.CountByUser(ctx, userID, domain.PurchaseApproved)
	if err != nil {
		respondErr(c, err)
		return
	}

	recent, err := h.TransactionRepo.ListByUser(ctx, userID, domain.TransactionFilter{Limit: 10})
	if err != nil {
		respondErr(c, err)
		return
	}

	kycStatus := "not_submitted"
	if record, err := h.KycRepo.GetByUserID(ctx, userID); err == nil {
		kycStatus = string(record.Status)
	}

	ok(c, gin.H{
		"user":                user,
		"referrals":           referrals,
		"referral_count":      len(referrals),
		"active_plans":        activePlans,
		"kyc_status":          kycStatus,
		"recent_transactions": recent,
	})
}

// Referrals lists the user ids sponsored by the caller.
func (h *Handler) Referrals(c *gin.Context) {
	referrals, err := h.UserRepo.Referrals(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"referrals": referrals})
}
