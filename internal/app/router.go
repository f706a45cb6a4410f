package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"snap/internal/handler"
	"snap/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	IdentityHandler *handler.IdentityHandler
	DriverHandler   *handler.DriverHandler
	WalletHandler   *handler.WalletHandler
	OrderHandler    *handler.OrderHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Identity routes: OTP issuance/verification, registration,
		// login and password reset.
		identity := v1.Group("/identity")
		{
			identity.POST("/otp/send", deps.IdentityHandler.SendOtp)
			identity.POST("/otp/verify", deps.IdentityHandler.VerifyOtp)
			identity.POST("/register", deps.IdentityHandler.Register)
			identity.POST("/login", deps.IdentityHandler.Login)
			identity.DELETE("/:userId", deps.IdentityHandler.DeleteUser)
			identity.POST("/password/otp", deps.IdentityHandler.RequestResetPasswordOtp)
			identity.POST("/password/otp/verify", deps.IdentityHandler.VerifyResetPasswordOtp)
			identity.POST("/password/reset", deps.IdentityHandler.ResetPassword)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.List)
			drivers.GET("/by-user/:userId", deps.DriverHandler.GetByUserID)
			drivers.GET("/:id", deps.DriverHandler.Get)
			drivers.POST("/:id/status", deps.DriverHandler.ChangeStatus)
			drivers.POST("/:id/reviews", deps.DriverHandler.AddReview)
			drivers.GET("/:id/wallet", deps.WalletHandler.GetBalance)
			drivers.POST("/:id/wallet/deduct", deps.WalletHandler.Deduct)
			drivers.GET("/:id/charges", deps.WalletHandler.ListCharges)
		}

		// Charge routes.
		charges := v1.Group("/charges")
		{
			charges.POST("", deps.WalletHandler.RequestCharge)
			charges.POST("/:id/resolve", deps.WalletHandler.ResolveCharge)
		}

		// Order routes.
		orders := v1.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.Create)
			orders.GET("", deps.OrderHandler.GetAll)
			orders.GET("/:id", deps.OrderHandler.Get)
			orders.PUT("/driver", deps.OrderHandler.AssignDriver)
			orders.DELETE("/:id", deps.OrderHandler.Delete)
		}
	}

	return router
}
