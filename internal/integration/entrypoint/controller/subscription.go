// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/usecase/subscription"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/entrypoint/dto"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
)

// SubscriptionController handles recurring subscription endpoints.
type SubscriptionController struct {
	createUseCase *subscription.CreateSubscriptionUseCase
	updateUseCase *subscription.UpdateSubscriptionUseCase
	toggleUseCase *subscription.ToggleSubscriptionUseCase
	deleteUseCase *subscription.DeleteSubscriptionUseCase
	listUseCase   *subscription.ListSubscriptionsUseCase
}

// NewSubscriptionController creates a new subscription controller instance.
func NewSubscriptionController(
	createUseCase *subscription.CreateSubscriptionUseCase,
	updateUseCase *subscription.UpdateSubscriptionUseCase,
	toggleUseCase *subscription.ToggleSubscriptionUseCase,
	deleteUseCase *subscription.DeleteSubscriptionUseCase,
	listUseCase *subscription.ListSubscriptionsUseCase,
) *SubscriptionController {
	return &SubscriptionController{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		toggleUseCase: toggleUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
	}
}

// List handles GET /subscriptions requests.
func (c *SubscriptionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleSubscriptionError(ctx, err)
		return
	}

	subscriptions := make([]dto.SubscriptionResponse, len(output.Subscriptions))
	for i, item := range output.Subscriptions {
		subscriptions[i] = dto.ToSubscriptionResponse(item)
	}
	activeTotal, _ := output.ActiveMonthlyTotal.Float64()

	ctx.JSON(http.StatusOK, dto.SubscriptionListResponse{
		Subscriptions:      subscriptions,
		ActiveMonthlyTotal: activeTotal,
	})
}

// Create handles POST /subscriptions requests.
func (c *SubscriptionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	startDate := time.Now().UTC()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "start_date must be in YYYY-MM-DD format",
			})
			return
		}
		startDate = parsed
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), subscription.CreateSubscriptionInput{
		UserID:        userID,
		Name:          req.Name,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentMethod: entity.TransactionPaymentMethod(req.PaymentMethod),
		StartDate:     startDate,
	})
	if err != nil {
		handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubscriptionResponse(created))
}

// Update handles PATCH /subscriptions/:id requests.
func (c *SubscriptionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription id",
		})
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := subscription.UpdateSubscriptionInput{
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Name:           req.Name,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.PaymentMethod != nil {
		method := entity.TransactionPaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionResponse(updated))
}

// Toggle handles POST /subscriptions/:id/toggle requests, flipping the
// active flag.
func (c *SubscriptionController) Toggle(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription id",
		})
		return
	}

	toggled, err := c.toggleUseCase.Execute(ctx.Request.Context(), userID, subscriptionID)
	if err != nil {
		handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionResponse(toggled))
}

// Delete handles DELETE /subscriptions/:id requests.
func (c *SubscriptionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription id",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), userID, subscriptionID); err != nil {
		handleSubscriptionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleSubscriptionError maps subscription errors to HTTP responses.
func handleSubscriptionError(ctx *gin.Context, err error) {
	var subscriptionErr *domainerror.SubscriptionError
	if errors.As(err, &subscriptionErr) {
		status := http.StatusBadRequest
		switch subscriptionErr.Code {
		case domainerror.ErrCodeSubscriptionNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeSubscriptionNameTaken:
			status = http.StatusConflict
		case domainerror.ErrCodeSubscriptionLimitReached:
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: subscriptionErr.Message,
			Code:  string(subscriptionErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
