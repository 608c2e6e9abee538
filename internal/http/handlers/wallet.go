package handlers

import (
	"net/http"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Balance returns both wallet balances plus lifetime totals.
func (h *Handler) Balance(c *gin.Context) {
	user, err := h.UserRepo.GetByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{
		"ewallet_balance": user.EwalletBalance,
		"topup_balance":   user.TopupBalance,
		"total_earnings":  user.TotalEarnings,
		"total_withdrawn": user.TotalWithdrawn,
	})
}

// SubmitFundRequest records a pending topup request with the user's
// payment reference. Nothing is credited until an admin approves it.
func (h *Handler) SubmitFundRequest(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
		TxnNo  string          `json:"txn_no"`
		Note   string          `json:"note"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	entry, err := h.WalletService.SubmitFundRequest(c.Request.Context(), middleware.UserID(c), req.Amount, req.TxnNo, req.Note)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"request": entry})
}

// MyFundRequests lists the caller's topup requests in every state.
func (h *Handler) MyFundRequests(c *gin.Context) {
	txns, err := h.TransactionRepo.ListByUser(c.Request.Context(), middleware.UserID(c), domain.TransactionFilter{
		Source: domain.SourceTopupFundRequest,
		Status: domain.TxnStatus(c.Query("status")),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"requests": txns})
}

// SubmitWithdrawal records a pending ewallet withdrawal request.
func (h *Handler) SubmitWithdrawal(c *gin.Context) {
	var req struct {
		Amount      decimal.Decimal         `json:"amount"`
		Method      domain.WithdrawalMethod `json:"method"`
		AccountInfo map[string]string       `json:"account_info"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}
	if !req.Method.Valid() {
		fail(c, http.StatusBadRequest, "method must be upi, bank or wallet")
		return
	}

	w, err := h.WalletService.SubmitWithdrawal(c.Request.Context(), middleware.UserID(c), req.Amount, req.Method, req.AccountInfo)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"withdrawal": w})
}

// MyWithdrawals lists the caller's withdrawal requests.
func (h *Handler) MyWithdrawals(c *gin.Context) {
	ws, err := h.WithdrawalRepo.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"withdrawals": ws})
}
