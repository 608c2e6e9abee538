package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/export"
	"mlm_platform/internal/logger"

	"github.com/gin-gonic/gin"
)

func kycFilter(c *gin.Context) domain.KycFilter {
	f := domain.KycFilter{
		Status: domain.KycStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = v
	}
	return f
}

// AdminListKyc returns one page of KYC records with status and search
// filters. With ?export=excel the filtered set streams back as an xlsx
// attachment instead.
func (h *Handler) AdminListKyc(c *gin.Context) {
	if c.Query("export") == "excel" {
		h.adminExportKyc(c)
		return
	}
	records, total, err := h.KycRepo.List(c.Request.Context(), kycFilter(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"records": records, "total": total})
}

func (h *Handler) adminExportKyc(c *gin.Context) {
	f := kycFilter(c)
	f.Page = 1
	f.Limit = 100000

	records, _, err := h.KycRepo.List(c.Request.Context(), f)
	if err != nil {
		respondErr(c, err)
		return
	}

	wb, err := export.KycWorkbook(records)
	if err != nil {
		respondErr(c, err)
		return
	}

	name := export.Filename("kyc", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := wb.Write(c.Writer); err != nil {
		logger.Error("kyc export write", "error", err)
	}
}

// AdminDecideKyc approves or rejects a pending record. Rejection requires
// remarks; approval clears them. Decided records cannot be re-decided.
func (h *Handler) AdminDecideKyc(c *gin.Context) {
	var req struct {
		ID      int64            `json:"id"`
		Status  domain.KycStatus `json:"status"`
		Remarks string           `json:"remarks"`
	}
	if err := c.BindJSON(&req); err != nil || req.ID <= 0 {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}
	if !req.Status.Terminal() {
		fail(c, http.StatusBadRequest, "status must be approved or rejected")
		return
	}
	if req.Status == domain.KycRejected && strings.TrimSpace(req.Remarks) == "" {
		fail(c, http.StatusBadRequest, "remarks are required when rejecting")
		return
	}

	record, err := h.KycRepo.SetStatus(c.Request.Context(), req.ID, req.Status, req.Remarks)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"kyc": record})
}

// AdminDeleteKyc removes a record so the user can submit afresh.
func (h *Handler) AdminDeleteKyc(c *gin.Context) {
	id, ok2 := paramID(c)
	if !ok2 {
		return
	}
	if err := h.KycRepo.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}
