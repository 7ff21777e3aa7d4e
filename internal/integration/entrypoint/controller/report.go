// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finwise/backend/internal/application/usecase/dashboard"
	"github.com/finwise/backend/internal/application/usecase/report"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/entrypoint/dto"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles the AI monthly report endpoint.
type ReportController struct {
	generateUseCase *report.GenerateReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(generateUseCase *report.GenerateReportUseCase) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
	}
}

// Generate handles GET /reports/monthly requests. The feature is premium-only.
func (c *ReportController) Generate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	text, err := c.generateUseCase.Execute(ctx.Request.Context(), report.GenerateReportInput{
		Dashboard: dashboard.GetDashboardInput{
			UserID: userID,
			Month:  ctx.Query("month"),
			Year:   ctx.Query("year"),
		},
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReportResponse{Report: text})
}

// handleReportError maps report errors to HTTP responses.
func handleReportError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) && authErr.Code == domainerror.ErrCodePremiumRequired {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	handleDashboardError(ctx, err)
}
