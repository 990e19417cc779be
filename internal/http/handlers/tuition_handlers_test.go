package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

func newTuitionRouter(t *testing.T, tuitionSvc *mocks.MockTuitionService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewTuitionHandlers(tuitionSvc)
	r := gin.New()
	r.GET("/tuition/:student_id", h.Get)
	return r
}

func TestTuitionHandlers_Get(t *testing.T) {
	t.Run("resolves a statement", func(t *testing.T) {
		tuitionSvc := mocks.NewMockTuitionService()
		tuitionSvc.GetTuitionFunc = func(ctx context.Context, studentID string) (*domain.TuitionStatement, error) {
			if studentID != "SV005" {
				t.Errorf("studentID = %s, want SV005", studentID)
			}
			return testStatement(), nil
		}
		r := newTuitionRouter(t, tuitionSvc)

		w := performJSON(t, r, http.MethodGet, "/tuition/SV005", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
		}

		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["outstanding"] != float64(4000000) {
			t.Errorf("outstanding = %v, want 4000000", data["outstanding"])
		}
		debt := data["debt_semesters"].([]interface{})
		if len(debt) != 1 {
			t.Errorf("got %d debt semesters, want 1", len(debt))
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		r := newTuitionRouter(t, mocks.NewMockTuitionService())

		w := performJSON(t, r, http.MethodGet, "/tuition/SV999", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
