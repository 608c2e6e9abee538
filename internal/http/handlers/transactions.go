package handlers

import (
	"strconv"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// MyTransactions lists the caller's ledger entries with optional
// source/status/wallet filters and limit/offset paging.
func (h *Handler) MyTransactions(c *gin.Context) {
	f := domain.TransactionFilter{
		Source:     domain.TxnSource(c.Query("source")),
		Status:     domain.TxnStatus(c.Query("status")),
		WalletType: domain.WalletKind(c.Query("wallet")),
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		f.Offset = v
	}

	txns, err := h.TransactionRepo.ListByUser(c.Request.Context(), middleware.UserID(c), f)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"transactions": txns})
}
