package app

import (
	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/config"
	"github.com/you/tuitionsvc/internal/http/handlers"
	"github.com/you/tuitionsvc/internal/http/middleware"
	"github.com/you/tuitionsvc/internal/infrastructure/audit"
	"github.com/you/tuitionsvc/internal/infrastructure/auth"
	"github.com/you/tuitionsvc/internal/infrastructure/database"
	"github.com/you/tuitionsvc/internal/infrastructure/notifications"
	"github.com/you/tuitionsvc/internal/infrastructure/repositories"
	"github.com/you/tuitionsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	// Repositories
	UserRepo        domain.UserRepository
	StudentRepo     domain.StudentRepository
	PaymentRepo     domain.PaymentRepository
	OTPRepo         domain.OTPRepository
	TransactionRepo domain.TransactionRepository
	SessionRepo     domain.SessionRepository
	SettlementStore domain.SettlementStore

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	TuitionSvc      domain.TuitionService
	PaymentSvc      domain.PaymentService
	OTPSvc          domain.OTPService
	SettlementSvc   domain.SettlementService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService

	// HTTP
	AuthHandlers        *handlers.AuthHandlers
	TuitionHandlers     *handlers.TuitionHandlers
	PaymentHandlers     *handlers.PaymentHandlers
	TransactionHandlers *handlers.TransactionHandlers
	PolicyHandlers      *handlers.PolicyHandlers
	JWTMiddleware       *middleware.AuthMW
	CasbinMiddleware    *middleware.CasbinMW
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHTTP()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Enforcer = cas.E

	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.StudentRepo = repositories.NewStudentRepository(c.DB)
	c.PaymentRepo = repositories.NewPaymentRepository(c.RedisClient, c.Config.PaymentTTL)
	c.OTPRepo = repositories.NewOTPRepository(c.RedisClient, c.Config.OTP_TTL)
	c.TransactionRepo = repositories.NewTransactionRepository(c.RedisClient)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.SettlementStore = repositories.NewSettlementStore(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.AuditLogger = audit.NewZapAuditLogger(c.Logger)

	if c.Config.NotificationProvider == "twilio" {
		c.NotificationSvc = notifications.NewTwilioService(
			c.Config.TwilioSID,
			c.Config.TwilioToken,
			c.Config.TwilioFrom,
		)
	} else {
		c.NotificationSvc = notifications.NewConsoleService(c.Logger)
	}

	c.TuitionSvc = services.NewTuitionService(c.StudentRepo)
	c.PaymentSvc = services.NewPaymentService(
		c.PaymentRepo,
		c.OTPRepo,
		c.UserRepo,
		c.AuditLogger,
		c.Config.PaymentTTL,
	)
	c.OTPSvc = services.NewOTPService(
		c.OTPRepo,
		c.PaymentRepo,
		c.PaymentSvc,
		c.UserRepo,
		c.NotificationSvc,
		c.AuditLogger,
		services.OTPConfig{
			Length:      c.Config.OTP_Length,
			TTL:         c.Config.OTP_TTL,
			MaxAttempts: c.Config.OTP_MaxAttempts,
		},
	)
	c.SettlementSvc = services.NewSettlementService(
		c.PaymentRepo,
		c.SettlementStore,
		c.StudentRepo,
		c.TransactionRepo,
		c.AuditLogger,
		c.Logger,
	)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.AuditLogger,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.PolicySvc = services.NewPolicyService(c.Enforcer)
}

func (c *Container) initHTTP() {
	c.AuthHandlers = handlers.NewAuthHandlers(c.AuthSvc)
	c.TuitionHandlers = handlers.NewTuitionHandlers(c.TuitionSvc)
	c.PaymentHandlers = handlers.NewPaymentHandlers(c.TuitionSvc, c.PaymentSvc, c.OTPSvc)
	c.TransactionHandlers = handlers.NewTransactionHandlers(c.SettlementSvc)
	c.PolicyHandlers = handlers.NewPolicyHandlers(c.PolicySvc)
	c.JWTMiddleware = middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	c.CasbinMiddleware = middleware.NewCasbinMW(c.Enforcer)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
