// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/usecase/investment"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/entrypoint/dto"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
)

// InvestmentController handles investment category and allocation endpoints.
type InvestmentController struct {
	createCategoryUseCase   *investment.CreateCategoryUseCase
	updateCategoryUseCase   *investment.UpdateCategoryUseCase
	deleteCategoryUseCase   *investment.DeleteCategoryUseCase
	listCategoriesUseCase   *investment.ListCategoriesUseCase
	createDefaultsUseCase   *investment.CreateDefaultCategoriesUseCase
	setAllocationUseCase    *investment.SetAllocationUseCase
	deleteAllocationUseCase *investment.DeleteAllocationUseCase
	getLimitsUseCase        *investment.GetLimitsUseCase
}

// NewInvestmentController creates a new investment controller instance.
func NewInvestmentController(
	createCategoryUseCase *investment.CreateCategoryUseCase,
	updateCategoryUseCase *investment.UpdateCategoryUseCase,
	deleteCategoryUseCase *investment.DeleteCategoryUseCase,
	listCategoriesUseCase *investment.ListCategoriesUseCase,
	createDefaultsUseCase *investment.CreateDefaultCategoriesUseCase,
	setAllocationUseCase *investment.SetAllocationUseCase,
	deleteAllocationUseCase *investment.DeleteAllocationUseCase,
	getLimitsUseCase *investment.GetLimitsUseCase,
) *InvestmentController {
	return &InvestmentController{
		createCategoryUseCase:   createCategoryUseCase,
		updateCategoryUseCase:   updateCategoryUseCase,
		deleteCategoryUseCase:   deleteCategoryUseCase,
		listCategoriesUseCase:   listCategoriesUseCase,
		createDefaultsUseCase:   createDefaultsUseCase,
		setAllocationUseCase:    setAllocationUseCase,
		deleteAllocationUseCase: deleteAllocationUseCase,
		getLimitsUseCase:        getLimitsUseCase,
	}
}

// ListCategories handles GET /investments/categories requests.
func (c *InvestmentController) ListCategories(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.listCategoriesUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvestmentCategoryListResponse(output))
}

// CreateCategory handles POST /investments/categories requests.
func (c *InvestmentController) CreateCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateInvestmentCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	created, err := c.createCategoryUseCase.Execute(ctx.Request.Context(), investment.CreateCategoryInput{
		UserID:      userID,
		Name:        req.Name,
		Type:        entity.InvestmentCategoryType(req.Type),
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvestmentCategoryResponse(created, nil))
}

// CreateDefaultCategories handles POST /investments/categories/defaults
// requests, seeding the starter set for a new account.
func (c *InvestmentController) CreateDefaultCategories(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	created, err := c.createDefaultsUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	categories := make([]dto.InvestmentCategoryResponse, len(created))
	for i, category := range created {
		categories[i] = dto.ToInvestmentCategoryResponse(category, nil)
	}
	ctx.JSON(http.StatusCreated, gin.H{"categories": categories})
}

// UpdateCategory handles PATCH /investments/categories/:id requests.
func (c *InvestmentController) UpdateCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category id",
		})
		return
	}

	var req dto.UpdateInvestmentCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := investment.UpdateCategoryInput{
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    req.IsActive,
	}
	if req.Type != nil {
		categoryType := entity.InvestmentCategoryType(*req.Type)
		input.Type = &categoryType
	}

	updated, err := c.updateCategoryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvestmentCategoryResponse(updated, nil))
}

// DeleteCategory handles DELETE /investments/categories/:id requests.
func (c *InvestmentController) DeleteCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category id",
		})
		return
	}

	if err := c.deleteCategoryUseCase.Execute(ctx.Request.Context(), userID, categoryID); err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SetAllocation handles PUT /investments/categories/:id/allocation requests.
func (c *InvestmentController) SetAllocation(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category id",
		})
		return
	}

	var req dto.SetAllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := investment.SetAllocationInput{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.NewFromFloat(req.Amount),
	}
	if req.TargetPercentage != nil {
		target := decimal.NewFromFloat(*req.TargetPercentage)
		input.TargetPercentage = &target
	}

	if err := c.setAllocationUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeleteAllocation handles DELETE /investments/categories/:id/allocation
// requests.
func (c *InvestmentController) DeleteAllocation(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category id",
		})
		return
	}

	if err := c.deleteAllocationUseCase.Execute(ctx.Request.Context(), userID, categoryID); err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetLimits handles GET /investments/limits requests. An optional
// exclude_category_id query parameter leaves that category's current amount
// out of the allocated total, for edit flows.
func (c *InvestmentController) GetLimits(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	input := investment.GetLimitsInput{UserID: userID}
	if raw := ctx.Query("exclude_category_id"); raw != "" {
		excludeID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid exclude_category_id",
			})
			return
		}
		input.ExcludeCategoryID = &excludeID
	}

	output, err := c.getLimitsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleInvestmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAllocationLimitsResponse(output))
}

// handleInvestmentError maps investment errors to HTTP responses. Allocation
// limit violations surface the formatted currency amounts in the message.
func handleInvestmentError(ctx *gin.Context, err error) {
	var limitErr *domainerror.AllocationLimitError
	if errors.As(err, &limitErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: limitErr.Message,
			Code:  string(domainerror.ErrCodeAllocationExceedsAvailable),
		})
		return
	}

	var investmentErr *domainerror.InvestmentError
	if errors.As(err, &investmentErr) {
		status := http.StatusBadRequest
		switch investmentErr.Code {
		case domainerror.ErrCodeInvestmentCategoryNotFound,
			domainerror.ErrCodeAllocationNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeInvestmentCategoryNameTaken:
			status = http.StatusConflict
		case domainerror.ErrCodeAllocationExceedsAvailable,
			domainerror.ErrCodeNoInvestmentsToAllocate:
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: investmentErr.Message,
			Code:  string(investmentErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
