package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/tuitionsvc/domain"
)

// TuitionHandlers handles tuition lookup HTTP requests
type TuitionHandlers struct {
	tuitionSvc domain.TuitionService
}

// NewTuitionHandlers creates new tuition handlers
func NewTuitionHandlers(tuitionSvc domain.TuitionService) *TuitionHandlers {
	return &TuitionHandlers{tuitionSvc: tuitionSvc}
}

// Get resolves a student's outstanding tuition
func (h *TuitionHandlers) Get(c *gin.Context) {
	statement, err := h.tuitionSvc.GetTuition(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"student":        statement.Student,
			"outstanding":    statement.Outstanding,
			"debt_semesters": statement.DebtSemesters,
		},
	})
}
