package handler

import (
	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ProjectionHandler handles installment projection API endpoints
type ProjectionHandler struct {
	BaseHandler
	projectionService *ledgerapp.ProjectionService
}

// NewProjectionHandler creates a new ProjectionHandler
func NewProjectionHandler(projectionService *ledgerapp.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		projectionService: projectionService,
	}
}

// Get godoc
// @Summary      Get installment projection
// @Description  Project gross and net income and expense from installment entries into future month buckets
// @Tags         projection
// @Accept       json
// @Produce      json
// @Param        reference query string false "Reference date (RFC3339), defaults to now"
// @Param        months query int false "Number of months to project" default(12)
// @Success      200 {object} dto.Response{data=ledgerapp.ProjectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/projection [get]
func (h *ProjectionHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req ledgerapp.ProjectionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	projection, err := h.projectionService.GetProjection(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, projection)
}
