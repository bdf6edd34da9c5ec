package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/server/handlers"
	"github.com/dilshanuk/salespoint/internal/server/middleware"
	"github.com/dilshanuk/salespoint/internal/service/auth"
)

// Handlers bundles the resource handlers the router wires up.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Profile  *handlers.ProfileHandler
	Stock    *handlers.StockHandler
	Orders   *handlers.OrderHandler
	Customer *handlers.CustomerHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, tokens *auth.TokenService, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	users := authGroup.Group("/users", middleware.Auth(tokens, logger), middleware.RequireAdmin())
	users.GET("", h.Auth.ListUsers)
	users.POST("", h.Auth.CreateUser)
	users.PUT("/:id", h.Auth.UpdateUser)
	users.DELETE("/:id", h.Auth.DeleteUser)

	profile := api.Group("/profile", middleware.Auth(tokens, logger))
	profile.GET("", h.Profile.Get)
	profile.PUT("/username", h.Profile.UpdateUsername)
	profile.PUT("/password", h.Profile.UpdatePassword)

	stock := api.Group("/stock", middleware.Auth(tokens, logger))
	stock.GET("", h.Stock.List)
	stock.GET("/:id", h.Stock.Get)
	stock.POST("", middleware.RequireAdmin(), h.Stock.Create)
	stock.PUT("/:id", middleware.RequireAdmin(), h.Stock.Update)
	stock.DELETE("/:id", middleware.RequireAdmin(), h.Stock.Delete)

	orders := api.Group("/orders", middleware.Auth(tokens, logger))
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Create)
	orders.GET("/summary/stats", middleware.RequireAdmin(), h.Orders.SummaryStats)
	orders.GET("/:id", h.Orders.Get)
	orders.PUT("/:id/status", h.Orders.UpdateStatus)

	customers := api.Group("/customers", middleware.Auth(tokens, logger))
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", middleware.RequireAdmin(), h.Customer.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
