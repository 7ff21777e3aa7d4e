// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finwise/backend/config"
	"github.com/finwise/backend/internal/application/usecase/auth"
	"github.com/finwise/backend/internal/application/usecase/billing"
	"github.com/finwise/backend/internal/application/usecase/dashboard"
	"github.com/finwise/backend/internal/application/usecase/investment"
	"github.com/finwise/backend/internal/application/usecase/report"
	"github.com/finwise/backend/internal/application/usecase/subscription"
	"github.com/finwise/backend/internal/application/usecase/transaction"
	"github.com/finwise/backend/internal/infra/server/router"
	"github.com/finwise/backend/internal/integration/adapters"
	"github.com/finwise/backend/internal/integration/entrypoint/controller"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
	"github.com/finwise/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; the plan tier cache then degrades to store reads.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	subscriptionRepo := persistence.NewSubscriptionRepository(db)
	categoryRepo := persistence.NewInvestmentCategoryRepository(db)
	allocationRepo := persistence.NewAllocationRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	planService := adapters.NewPlanService(userRepo, redisClient)
	aiService := adapters.NewGeminiService(cfg.Gemini.APIKey)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create dashboard and report use cases
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(dashboardRepo)
	generateReportUseCase := report.NewGenerateReportUseCase(getDashboardUseCase, planService, aiService)

	// Create transaction use cases
	upsertTransactionUseCase := transaction.NewUpsertTransactionUseCase(transactionRepo, planService)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	canAddTransactionUseCase := transaction.NewCanAddTransactionUseCase(transactionRepo, planService)

	// Create subscription use cases
	createSubscriptionUseCase := subscription.NewCreateSubscriptionUseCase(subscriptionRepo, planService)
	updateSubscriptionUseCase := subscription.NewUpdateSubscriptionUseCase(subscriptionRepo)
	toggleSubscriptionUseCase := subscription.NewToggleSubscriptionUseCase(subscriptionRepo)
	deleteSubscriptionUseCase := subscription.NewDeleteSubscriptionUseCase(subscriptionRepo)
	listSubscriptionsUseCase := subscription.NewListSubscriptionsUseCase(subscriptionRepo)

	// Create investment use cases
	createCategoryUseCase := investment.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := investment.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := investment.NewDeleteCategoryUseCase(categoryRepo, allocationRepo)
	listCategoriesUseCase := investment.NewListCategoriesUseCase(categoryRepo, allocationRepo)
	createDefaultsUseCase := investment.NewCreateDefaultCategoriesUseCase(categoryRepo)
	setAllocationUseCase := investment.NewSetAllocationUseCase(categoryRepo, allocationRepo)
	deleteAllocationUseCase := investment.NewDeleteAllocationUseCase(allocationRepo)
	getLimitsUseCase := investment.NewGetLimitsUseCase(allocationRepo, transactionRepo)

	// Create billing use case
	applyPlanChangeUseCase := billing.NewApplyPlanChangeUseCase(userRepo, planService)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	dashboardController := controller.NewDashboardController(getDashboardUseCase)
	transactionController := controller.NewTransactionController(
		upsertTransactionUseCase,
		listTransactionsUseCase,
		deleteTransactionUseCase,
		canAddTransactionUseCase,
	)
	subscriptionController := controller.NewSubscriptionController(
		createSubscriptionUseCase,
		updateSubscriptionUseCase,
		toggleSubscriptionUseCase,
		deleteSubscriptionUseCase,
		listSubscriptionsUseCase,
	)
	investmentController := controller.NewInvestmentController(
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		listCategoriesUseCase,
		createDefaultsUseCase,
		setAllocationUseCase,
		deleteAllocationUseCase,
		getLimitsUseCase,
	)
	reportController := controller.NewReportController(generateReportUseCase)
	billingController := controller.NewBillingController(applyPlanChangeUseCase, cfg.Billing.WebhookSecret)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		dashboardController,
		transactionController,
		subscriptionController,
		investmentController,
		reportController,
		billingController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
