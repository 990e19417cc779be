package app

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/tuitionsvc/internal/config"
	httpx "github.com/you/tuitionsvc/internal/http"
	"github.com/you/tuitionsvc/internal/infrastructure/database"
)

func Run(cfg *config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Seed demo accounts and tuition tables on an empty database
	if err := database.Seed(context.Background(), container.UserRepo, container.StudentRepo, container.PasswordSvc); err != nil {
		return err
	}

	seedPolicies(container)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := httpx.BuildRouter(
		container.AuthHandlers,
		container.TuitionHandlers,
		container.PaymentHandlers,
		container.TransactionHandlers,
		container.PolicyHandlers,
		container.JWTMiddleware,
		container.CasbinMiddleware,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return r.Run(addr)
}

func seedPolicies(c *Container) {
	policies, _ := c.Enforcer.GetPolicy()
	if len(policies) > 0 {
		return
	}
	c.Enforcer.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	c.Enforcer.AddPolicy("role_user", "/auth/me", "GET")
	c.Enforcer.AddPolicy("role_user", "/auth/logout", "POST")
	c.Enforcer.AddPolicy("role_user", "/tuition/*", "GET")
	c.Enforcer.AddPolicy("role_user", "/payments", "POST")
	c.Enforcer.AddPolicy("role_user", "/payments/*", "(GET|POST)")
	c.Enforcer.AddPolicy("role_user", "/transactions", "(GET|POST)")
	c.Enforcer.AddPolicy("role_user", "/transactions/*", "GET")
	c.Enforcer.AddGroupingPolicy("role_admin", "role_user")
	_ = c.Enforcer.SavePolicy()
	log.Println("casbin: seeded default policies")
}
