// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finwise/backend/internal/integration/entrypoint/controller"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	dashboardController    *controller.DashboardController
	transactionController  *controller.TransactionController
	subscriptionController *controller.SubscriptionController
	investmentController   *controller.InvestmentController
	reportController       *controller.ReportController
	billingController      *controller.BillingController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	dashboardController *controller.DashboardController,
	transactionController *controller.TransactionController,
	subscriptionController *controller.SubscriptionController,
	investmentController *controller.InvestmentController,
	reportController *controller.ReportController,
	billingController *controller.BillingController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		dashboardController:    dashboardController,
		transactionController:  transactionController,
		subscriptionController: subscriptionController,
		investmentController:   investmentController,
		reportController:       reportController,
		billingController:      billingController,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		if r.billingController != nil {
			// Unauthenticated; trusted via the body signature.
			v1.POST("/billing/webhook", r.billingController.Webhook)
		}

		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("", r.dashboardController.Get)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.GET("/can-add", r.transactionController.CanAdd)
				transactions.POST("", r.transactionController.Create)
				transactions.PUT("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.subscriptionController != nil && r.authMiddleware != nil {
			subscriptions := v1.Group("/subscriptions")
			subscriptions.Use(r.authMiddleware.Authenticate())
			{
				subscriptions.GET("", r.subscriptionController.List)
				subscriptions.POST("", r.subscriptionController.Create)
				subscriptions.PATCH("/:id", r.subscriptionController.Update)
				subscriptions.POST("/:id/toggle", r.subscriptionController.Toggle)
				subscriptions.DELETE("/:id", r.subscriptionController.Delete)
			}
		}

		if r.investmentController != nil && r.authMiddleware != nil {
			investments := v1.Group("/investments")
			investments.Use(r.authMiddleware.Authenticate())
			{
				investments.GET("/categories", r.investmentController.ListCategories)
				investments.POST("/categories", r.investmentController.CreateCategory)
				investments.POST("/categories/defaults", r.investmentController.CreateDefaultCategories)
				investments.PATCH("/categories/:id", r.investmentController.UpdateCategory)
				investments.DELETE("/categories/:id", r.investmentController.DeleteCategory)
				investments.PUT("/categories/:id/allocation", r.investmentController.SetAllocation)
				investments.DELETE("/categories/:id/allocation", r.investmentController.DeleteAllocation)
				investments.GET("/limits", r.investmentController.GetLimits)
			}
		}

		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/monthly", r.reportController.Generate)
			}
		}
	}
}
