// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/usecase/transaction"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/entrypoint/dto"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction ledger endpoints.
type TransactionController struct {
	upsertUseCase *transaction.UpsertTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	canAddUseCase *transaction.CanAddTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	upsertUseCase *transaction.UpsertTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	canAddUseCase *transaction.CanAddTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		upsertUseCase: upsertUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
		canAddUseCase: canAddUseCase,
	}
}

// List handles GET /transactions requests. Month and year are numeric query
// parameters selecting one calendar month.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil || month < 1 || month > 12 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be a number between 1 and 12",
		})
		return
	}
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year < 1000 || year > 9999 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "year must be a four-digit number",
		})
		return
	}

	transactions, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Month:  time.Month(month),
		Year:   year,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(transactions))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	c.upsert(ctx, nil)
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction id",
		})
		return
	}
	c.upsert(ctx, &transactionID)
}

func (c *TransactionController) upsert(ctx *gin.Context, transactionID *uuid.UUID) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "date must be in YYYY-MM-DD format",
		})
		return
	}

	result, err := c.upsertUseCase.Execute(ctx.Request.Context(), transaction.UpsertTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Name:          req.Name,
		Amount:        decimal.NewFromFloat(req.Amount),
		Type:          entity.TransactionType(req.Type),
		Category:      entity.TransactionCategory(req.Category),
		PaymentMethod: entity.TransactionPaymentMethod(req.PaymentMethod),
		Date:          date,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	status := http.StatusOK
	if transactionID == nil {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToTransactionResponse(result))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction id",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), userID, transactionID); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CanAdd handles GET /transactions/can-add requests.
func (c *TransactionController) CanAdd(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.canAddUseCase.Execute(ctx.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CanAddTransactionResponse{
		Allowed:   output.Allowed,
		Remaining: output.Remaining,
	})
}

// handleTransactionError maps transaction errors to HTTP responses.
func handleTransactionError(ctx *gin.Context, err error) {
	var transactionErr *domainerror.TransactionError
	if errors.As(err, &transactionErr) {
		status := http.StatusBadRequest
		switch transactionErr.Code {
		case domainerror.ErrCodeTransactionNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedTransaction:
			status = http.StatusForbidden
		case domainerror.ErrCodeTransactionLimitReached:
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: transactionErr.Message,
			Code:  string(transactionErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// respondUnauthorized writes the standard missing-identity response.
func respondUnauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Unauthorized",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
