package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/motorshield/insurance-portal/docs"
	"github.com/motorshield/insurance-portal/internal/api/handler"
	"github.com/motorshield/insurance-portal/internal/api/middleware"
	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/service"
	mongostore "github.com/motorshield/insurance-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/motorshield/insurance-portal/internal/infrastructure/db/redis"
	"github.com/motorshield/insurance-portal/internal/infrastructure/queue"
)

// RouterConfig carries everything NewRouter needs beyond live connections.
type RouterConfig struct {
	JWTSecret       string
	IssuanceWorkers int
}

// NewRouter builds the Echo instance with all routes registered, plus the
// policy-issuance dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	roleRepo := mongostore.NewRoleRepository(db)
	itemRepo := mongostore.NewItemRepository(db)
	cartRepo := mongostore.NewCartRepository(db)
	orderRepo := mongostore.NewOrderRepository(db)
	policyRepo := mongostore.NewPolicyRepository(db)
	policyTypeRepo := mongostore.NewPolicyTypeRepository(db)
	claimRepo := mongostore.NewClaimRepository(db)
	paymentRepo := mongostore.NewPaymentRepository(db)

	// --- Services ---
	resolver := service.NewCachedRoleResolver(roleRepo, log)
	authService := service.NewAuthService(userRepo, resolver, cfg.JWTSecret, 24*time.Hour)
	catalogService := service.NewCatalogService(itemRepo, log)
	cartService := service.NewCartService(cartRepo, itemRepo, redisstore.NewCartCache(rdb), log)
	orderService := service.NewOrderService(orderRepo, cartService, policyRepo, redisstore.NewIdempotencyGuard(rdb), log)
	policyService := service.NewPolicyService(policyRepo, policyTypeRepo, log)
	policyTypeService := service.NewPolicyTypeService(policyTypeRepo, log)
	claimService := service.NewClaimService(claimRepo, policyRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, policyRepo, log)

	dispatcher := queue.NewDispatcher(cfg.IssuanceWorkers, orderService, log)
	orderService.SetIssuanceQueue(dispatcher)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, resolver)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	policyHandler := handler.NewPolicyHandler(policyService)
	policyTypeHandler := handler.NewPolicyTypeHandler(policyTypeService)
	claimHandler := handler.NewClaimHandler(claimService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	adminUserHandler := handler.NewAdminUserHandler(userRepo, roleRepo, resolver)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(resolver, domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/v1/items", catalogHandler.List)
	e.GET("/v1/items/:id", catalogHandler.Get)
	e.GET("/v1/policy-types", policyTypeHandler.List)

	// --- Authenticated routes ---
	auth := e.Group("", authRequired)
	auth.POST("/auth/logout", authHandler.Logout)
	auth.GET("/auth/me", authHandler.Me)

	auth.GET("/v1/cart", cartHandler.Get)
	auth.DELETE("/v1/cart", cartHandler.Clear)
	auth.POST("/v1/cart/items", cartHandler.AddItem)
	auth.PATCH("/v1/cart/items/:item_id", cartHandler.UpdateQuantity)
	auth.DELETE("/v1/cart/items/:item_id", cartHandler.RemoveItem)

	auth.POST("/v1/checkout", orderHandler.Checkout)
	auth.GET("/v1/orders", orderHandler.List)
	auth.GET("/v1/orders/:id", orderHandler.Get)

	auth.GET("/v1/policies", policyHandler.List)
	auth.GET("/v1/policies/:id", policyHandler.Get)
	auth.POST("/v1/policies", policyHandler.Request)

	auth.GET("/v1/claims", claimHandler.List)
	auth.POST("/v1/claims", claimHandler.File)

	auth.GET("/v1/payments", paymentHandler.List)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authRequired, adminOnly)
	admin.POST("/items", catalogHandler.Create)
	admin.PUT("/items/:id", catalogHandler.Update)
	admin.DELETE("/items/:id", catalogHandler.Delete)

	admin.GET("/orders", orderHandler.AdminList)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	admin.GET("/policies", policyHandler.AdminList)
	admin.PATCH("/policies/:id/status", policyHandler.UpdateStatus)
	admin.POST("/policies", policyHandler.Assign)

	admin.GET("/policy-types", policyTypeHandler.AdminList)
	admin.POST("/policy-types", policyTypeHandler.Create)
	admin.PUT("/policy-types/:id", policyTypeHandler.Update)
	admin.DELETE("/policy-types/:id", policyTypeHandler.Delete)

	admin.GET("/claims", claimHandler.AdminList)
	admin.PATCH("/claims/:id/review", claimHandler.Review)

	admin.GET("/payments", paymentHandler.AdminList)
	admin.POST("/payments", paymentHandler.Record)

	admin.GET("/users", adminUserHandler.List)
	admin.PUT("/users/:id/role", adminUserHandler.SetRole)
	admin.DELETE("/users/:id/role", adminUserHandler.RevokeRole)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
