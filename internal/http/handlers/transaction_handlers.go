package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/tuitionsvc/domain"
)

// TransactionHandlers handles settlement and ledger HTTP requests
type TransactionHandlers struct {
	settlementSvc domain.SettlementService
}

// NewTransactionHandlers creates new transaction handlers
func NewTransactionHandlers(settlementSvc domain.SettlementService) *TransactionHandlers {
	return &TransactionHandlers{settlementSvc: settlementSvc}
}

// SettleRequest represents a settlement request for a verified payment
type SettleRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

// Settle commits a verified payment: debit, semesters paid, ledger entry
func (h *TransactionHandlers) Settle(c *gin.Context) {
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.settlementSvc.Settle(c.Request.Context(), req.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": txn})
}

// Get returns one ledger entry
func (h *TransactionHandlers) Get(c *gin.Context) {
	txn, err := h.settlementSvc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": txn})
}

// History returns the token user's ledger entries in append order
func (h *TransactionHandlers) History(c *gin.Context) {
	userID, ok := tokenUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	txns, err := h.settlementSvc.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if txns == nil {
		txns = []*domain.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"data": txns})
}
