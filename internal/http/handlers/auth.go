package handlers

import (
	"net/http"
	"strings"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/logger"
	"mlm_platform/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account under a sponsor's referral code, issues the
// 6-digit user id and returns a signed token so the client is logged in
// straight away.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		FullName  string `json:"full_name"`
		Email     string `json:"email"`
		Mobile    string `json:"mobile"`
		Password  string `json:"password"`
		SponsorID string `json:"sponsor_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.SponsorID = strings.TrimSpace(req.SponsorID)
	if req.FullName == "" || req.Email == "" || len(req.Password) < 6 {
		fail(c, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
		return
	}

	ctx := c.Request.Context()

	if req.SponsorID != "" {
		sponsor, err := h.UserRepo.GetByUserID(ctx, req.SponsorID)
		if err != nil {
			fail(c, http.StatusBadRequest, "sponsor not found")
			return
		}
		if !sponsor.IsActive {
			fail(c, http.StatusBadRequest, "sponsor account is blocked")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondErr(c, err)
		return
	}

	user := &domain.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		SponsorID:    req.SponsorID,
	}
	if err := h.UserRepo.Create(ctx, user); err != nil {
		respondErr(c, err)
		return
	}

	token, err := service.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		respondErr(c, err)
		return
	}

	logger.Info("user registered", "user_id", user.UserID, "sponsor_id", user.SponsorID)
	ok(c, gin.H{"token": token, "user": user})
}

// Login authenticates by user id or email plus password.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	user, err := h.UserRepo.GetByUserIDOrEmail(c.Request.Context(), strings.TrimSpace(req.Identifier))
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !user.IsActive {
		fail(c, http.StatusForbidden, "account is blocked")
		return
	}

	token, err := service.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"token": token, "user": user})
}

// VerifySponsor resolves a referral code to the sponsor's name, so the
// registration form can confirm it before submission.
func (h *Handler) VerifySponsor(c *gin.Context) {
	var req struct {
		SponsorID string `json:"sponsor_id"`
	}
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.SponsorID) == "" {
		fail(c, http.StatusBadRequest, "sponsor_id is required")
		return
	}

	sponsor, err := h.UserRepo.GetByUserID(c.Request.Context(), strings.TrimSpace(req.SponsorID))
	if err != nil || !sponsor.IsActive {
		fail(c, http.StatusNotFound, "sponsor not found")
		return
	}
	ok(c, gin.H{"sponsor_id": sponsor.UserID, "full_name": sponsor.FullName})
}
