package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/tuitionsvc/internal/http/handlers"
	"github.com/you/tuitionsvc/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	th *handlers.TuitionHandlers,
	ph *handlers.PaymentHandlers,
	xh *handlers.TransactionHandlers,
	polh *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)

	v.GET("/tuition/:student_id", th.Get)

	v.POST("/payments", ph.Create)
	v.GET("/payments/:id", ph.Get)
	v.POST("/payments/:id/cancel", ph.Cancel)
	v.POST("/payments/:id/otp", ph.RequestOTP)
	v.POST("/payments/:id/verify-otp", ph.VerifyOTP)

	v.POST("/transactions", xh.Settle)
	v.GET("/transactions", xh.History)
	v.GET("/transactions/:id", xh.Get)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", polh.List)
	adm.POST("/policies", polh.Add)
	adm.DELETE("/policies", polh.Remove)

	return r
}
