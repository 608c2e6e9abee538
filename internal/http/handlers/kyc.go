package handlers

import (
	"errors"
	"net/http"
	"strings"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/http/middleware"
	"mlm_platform/internal/repository"

	"github.com/gin-gonic/gin"
)

// SubmitKyc files the caller's identity and bank details. One submission
// per account; a rejected record stays rejected.
func (h *Handler) SubmitKyc(c *gin.Context) {
	var req struct {
		PanNumber         string `json:"pan_number"`
		AadharNumber      string `json:"aadhar_number"`
		AccountHolderName string `json:"account_holder_name"`
		BankName          string `json:"bank_name"`
		AccountNumber     string `json:"account_number"`
		IFSCCode          string `json:"ifsc_code"`
		DocumentImage     string `json:"document_image"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}
	if strings.TrimSpace(req.PanNumber) == "" || strings.TrimSpace(req.AadharNumber) == "" {
		fail(c, http.StatusBadRequest, "pan_number and aadhar_number are required")
		return
	}

	user, err := h.UserRepo.GetByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	record := &domain.KycRecord{
		UserID:            user.UserID,
		UserName:          user.FullName,
		PanNumber:         strings.ToUpper(strings.TrimSpace(req.PanNumber)),
		AadharNumber:      strings.TrimSpace(req.AadharNumber),
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		AccountNumber:     req.AccountNumber,
		IFSCCode:          strings.ToUpper(strings.TrimSpace(req.IFSCCode)),
		DocumentImage:     req.DocumentImage,
		Status:            domain.KycPending,
	}
	if err := h.KycRepo.Create(c.Request.Context(), record); err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"kyc": record})
}

// KycStatus returns the caller's KYC record, or status "not_submitted".
func (h *Handler) KycStatus(c *gin.Context) {
	record, err := h.KycRepo.GetByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrKycNotFound) {
			ok(c, gin.H{"status": "not_submitted"})
			return
		}
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"status": record.Status, "kyc": record})
}
