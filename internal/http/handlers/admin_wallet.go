package handlers

import (
	"net/http"
	"strings"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminFundTransfer credits or debits either wallet of one user, writing
// the matching ledger entry in the same transaction.
func (h *Handler) AdminFundTransfer(c *gin.Context) {
	var req struct {
		UserID string            `json:"user_id"`
		Amount decimal.Decimal   `json:"amount"`
		Type   domain.TxnType    `json:"type"`
		Wallet domain.WalletKind `json:"wallet"`
		Note   string            `json:"note"`
	}
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}
	if !req.Type.Valid() || !req.Wallet.Valid() {
		fail(c, http.StatusBadRequest, "type must be credit or debit, wallet must be ewallet or topup")
		return
	}

	entry, err := h.WalletService.FundTransfer(c.Request.Context(), req.UserID, req.Amount, req.Type, req.Wallet, req.Note)
	if err != nil {
		respondErr(c, err)
		return
	}
	middleware.LedgerEntries.Inc()
	ok(c, gin.H{"transaction": entry})
}

// AdminListFundRequests lists topup fund requests, optionally by status.
func (h *Handler) AdminListFundRequests(c *gin.Context) {
	txns, err := h.TransactionRepo.ListBySourceStatus(c.Request.Context(),
		domain.SourceTopupFundRequest, domain.TxnStatus(c.Query("status")))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"requests": txns})
}

// AdminSettleFundRequest approves or rejects one pending fund request.
// Approval credits the topup wallet; either way the decision is final.
func (h *Handler) AdminSettleFundRequest(c *gin.Context) {
	var req struct {
		ID      int64  `json:"id"`
		Approve bool   `json:"approve"`
		Note    string `json:"note"`
	}
	if err := c.BindJSON(&req); err != nil || req.ID <= 0 {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}

	entry, err := h.WalletService.SettleFundRequest(c.Request.Context(), req.ID, req.Approve, req.Note)
	if err != nil {
		respondErr(c, err)
		return
	}
	if req.Approve {
		middleware.LedgerEntries.Inc()
	}
	ok(c, gin.H{"request": entry})
}

// AdminListWithdrawals lists withdrawal requests, optionally by status.
func (h *Handler) AdminListWithdrawals(c *gin.Context) {
	status := domain.WithdrawalStatus(c.Query("status"))
	if status == "" {
		status = domain.WithdrawalPending
	}
	ws, err := h.WithdrawalRepo.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"withdrawals": ws})
}

// AdminDecideWithdrawal approves or rejects one pending withdrawal.
// Approval debits the ewallet inside the decision transaction.
func (h *Handler) AdminDecideWithdrawal(c *gin.Context) {
	var req struct {
		ID      int64  `json:"id"`
		Approve bool   `json:"approve"`
		Remarks string `json:"remarks"`
	}
	if err := c.BindJSON(&req); err != nil || req.ID <= 0 {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}
	if !req.Approve && strings.TrimSpace(req.Remarks) == "" {
		fail(c, http.StatusBadRequest, "remarks are required when rejecting")
		return
	}

	w, err := h.WalletService.DecideWithdrawal(c.Request.Context(), req.ID, req.Approve, middleware.UserID(c), req.Remarks)
	if err != nil {
		respondErr(c, err)
		return
	}
	if req.Approve {
		middleware.LedgerEntries.Inc()
	}
	ok(c, gin.H{"withdrawal": w})
}

// AdminUserTransactions lists one user's ledger for support review.
func (h *Handler) AdminUserTransactions(c *gin.Context) {
	txns, err := h.TransactionRepo.ListByUser(c.Request.Context(), c.Param("id"), domain.TransactionFilter{
		Source: domain.TxnSource(c.Query("source")),
		Status: domain.TxnStatus(c.Query("status")),
		Limit:  200,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"transactions": txns})
}
