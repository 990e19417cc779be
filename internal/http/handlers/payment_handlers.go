package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/tuitionsvc/domain"
)

// PaymentHandlers handles payment reservation and OTP HTTP requests
type PaymentHandlers struct {
	tuitionSvc domain.TuitionService
	paymentSvc domain.PaymentService
	otpSvc     domain.OTPService
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(tuitionSvc domain.TuitionService, paymentSvc domain.PaymentService, otpSvc domain.OTPService) *PaymentHandlers {
	return &PaymentHandlers{
		tuitionSvc: tuitionSvc,
		paymentSvc: paymentSvc,
		otpSvc:     otpSvc,
	}
}

// CreatePaymentRequest represents a reservation request. The payer comes
// from the token, so only the student is named here.
type CreatePaymentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// VerifyOTPRequest represents an OTP submission
type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

// Create reserves the student's full outstanding balance for the payer
func (h *PaymentHandlers) Create(c *gin.Context) {
	userID, ok := tokenUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	statement, err := h.tuitionSvc.GetTuition(c.Request.Context(), req.StudentID)
	if err != nil {
		respondError(c, err)
		return
	}

	payment, err := h.paymentSvc.Reserve(c.Request.Context(), userID, req.StudentID, statement.Student.StudentName, statement.DebtSemesters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": payment})
}

// Get returns a payment reservation
func (h *PaymentHandlers) Get(c *gin.Context) {
	payment, err := h.paymentSvc.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}

// Cancel abandons a payment reservation
func (h *PaymentHandlers) Cancel(c *gin.Context) {
	if err := h.paymentSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Payment cancelled"}})
}

// RequestOTP issues (or reissues) the challenge bound to a payment. The
// code itself travels by SMS, never in the response.
func (h *PaymentHandlers) RequestOTP(c *gin.Context) {
	challenge, err := h.otpSvc.Issue(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"payment_id": challenge.PaymentID,
			"expires_at": challenge.ExpiresAt,
		},
	})
}

// VerifyOTP checks a submitted code. Settlement is a separate call so a
// failed verification can never leave a half-settled transaction.
func (h *PaymentHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpSvc.Verify(c.Request.Context(), c.Param("id"), req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"verified": true}})
}
