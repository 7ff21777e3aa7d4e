// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finwise/backend/internal/application/usecase/billing"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/entrypoint/dto"
)

// signatureHeader carries the hex HMAC-SHA256 of the raw request body,
// computed by the payment provider with the shared webhook secret.
const signatureHeader = "X-Webhook-Signature"

// BillingController handles the payment provider webhook. The endpoint is
// unauthenticated; requests are trusted only through their body signature.
type BillingController struct {
	applyPlanChangeUseCase *billing.ApplyPlanChangeUseCase
	webhookSecret          string
}

// NewBillingController creates a new billing controller instance.
func NewBillingController(
	applyPlanChangeUseCase *billing.ApplyPlanChangeUseCase,
	webhookSecret string,
) *BillingController {
	return &BillingController{
		applyPlanChangeUseCase: applyPlanChangeUseCase,
		webhookSecret:          webhookSecret,
	}
}

// Webhook handles POST /billing/webhook requests.
func (c *BillingController) Webhook(ctx *gin.Context) {
	if c.webhookSecret == "" {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Billing webhook is not configured",
		})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read request body",
		})
		return
	}

	if !c.verifySignature(body, ctx.GetHeader(signatureHeader)) {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Invalid webhook signature",
		})
		return
	}

	var event dto.PlanChangeEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Email == "" || event.Plan == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid event payload",
		})
		return
	}

	plan := entity.PlanTier(event.Plan)
	if plan != entity.PlanTierBasic && plan != entity.PlanTierPremium {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Unknown plan tier",
		})
		return
	}

	err = c.applyPlanChangeUseCase.Execute(ctx.Request.Context(), billing.ApplyPlanChangeInput{
		Email: event.Email,
		Plan:  plan,
	})
	if err != nil {
		c.handleBillingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}

// verifySignature checks the hex HMAC-SHA256 of the body in constant time.
func (c *BillingController) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}

// handleBillingError maps plan change errors to HTTP responses. An unknown
// email is a 200: the provider should not retry events for users that never
// registered here.
func (c *BillingController) handleBillingError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) && authErr.Code == domainerror.ErrCodeUserNotFound {
		ctx.JSON(http.StatusOK, gin.H{"received": true, "ignored": "unknown email"})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
