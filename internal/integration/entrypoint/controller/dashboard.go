// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finwise/backend/internal/application/usecase/dashboard"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/entrypoint/dto"
	"github.com/finwise/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles the monthly dashboard endpoint.
type DashboardController struct {
	dashboardUseCase *dashboard.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(dashboardUseCase *dashboard.GetDashboardUseCase) *DashboardController {
	return &DashboardController{
		dashboardUseCase: dashboardUseCase,
	}
}

// Get handles GET /dashboard requests. Month and year come as two-digit and
// four-digit query parameters.
func (c *DashboardController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeDashboardUnauthorized),
		})
		return
	}

	// A loader memoizes within this request only; the report endpoint shares
	// the same pattern when it reuses the snapshot.
	loader := c.dashboardUseCase.NewLoader()

	snapshot, err := loader.Get(ctx.Request.Context(), dashboard.GetDashboardInput{
		UserID: userID,
		Month:  ctx.Query("month"),
		Year:   ctx.Query("year"),
	})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(snapshot))
}

// handleDashboardError maps dashboard errors to HTTP responses.
func handleDashboardError(ctx *gin.Context, err error) {
	var dashboardErr *domainerror.DashboardError
	if errors.As(err, &dashboardErr) {
		status := http.StatusInternalServerError
		switch dashboardErr.Code {
		case domainerror.ErrCodeDashboardUnauthorized:
			status = http.StatusUnauthorized
		case domainerror.ErrCodeInvalidMonth, domainerror.ErrCodeInvalidYear:
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: dashboardErr.Message,
			Code:  string(dashboardErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
