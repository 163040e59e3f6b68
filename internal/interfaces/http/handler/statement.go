package handler

import (
	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// StatementHandler handles statement API endpoints
type StatementHandler struct {
	BaseHandler
	statementService *ledgerapp.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *ledgerapp.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// Get godoc
// @Summary      Get statement
// @Description  Build a chronological statement with per-line running balance and fee breakdown for a date range
// @Tags         statement
// @Accept       json
// @Produce      json
// @Param        from query string true "Start of range (RFC3339)"
// @Param        to query string true "End of range (RFC3339)"
// @Param        opening_balance query number false "Opening balance carried into the range" default(0)
// @Success      200 {object} dto.Response{data=ledgerapp.StatementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/statement [get]
func (h *StatementHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req ledgerapp.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}
