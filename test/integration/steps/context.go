// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http/httptest"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finwise/backend/config"
	"github.com/finwise/backend/internal/infra/dependency"
	"github.com/finwise/backend/test/integration/mock"
)

const (
	testJWTSecret     = "test-jwt-secret-key-for-testing-purposes"
	testWebhookSecret = "test-webhook-secret"
	testUserEmail     = "ana@example.com"
	testUserPassword  = "password123"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	server      *httptest.Server
	db          *mock.Db
	response    *httpResponse
	accessToken string
	userID      uuid.UUID
	categoryIDs map[string]string
}

type httpResponse struct {
	status int
	body   []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		db := mock.NewDb()
		if err := db.Reset(); err != nil {
			return ctx, err
		}
		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Billing.WebhookSecret = testWebhookSecret

		injector := dependency.NewInjector(cfg, db.Conn, redisClient, func() bool { return true })
		engine := injector.Router.Setup(cfg.Server.Environment)

		tc := &TestContext{
			server:      httptest.NewServer(engine),
			db:          db,
			categoryIDs: make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAccountSteps(ctx)
	registerDataSteps(ctx)
	registerRequestSteps(ctx)
	registerResponseSteps(ctx)
}
