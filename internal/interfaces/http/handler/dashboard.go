package handler

import (
	reportapp "github.com/caixa/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard aggregation API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) bindFilter(c *gin.Context) (filter reportapp.DashboardFilter, ok bool) {
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return filter, false
	}
	return filter, true
}

// GetSummary godoc
// @Summary      Dashboard summary
// @Description  Gross income, gross expenses, balance and entry count for a period
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Success      200 {object} dto.Response{data=reportapp.SummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetMonthlyFlow godoc
// @Summary      Monthly cash flow
// @Description  Income and expense totals bucketed by calendar month
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Success      200 {object} dto.Response{data=[]reportapp.MonthlyFlowResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/monthly-flow [get]
func (h *DashboardHandler) GetMonthlyFlow(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	flow, err := h.dashboardService.GetMonthlyFlow(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, flow)
}

// GetTotalsByLabel godoc
// @Summary      Totals by label
// @Description  Entry totals grouped by label and kind, largest first
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Param        top_n query int false "Limit to top N groups"
// @Success      200 {object} dto.Response{data=[]reportapp.LabelTotalResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/totals-by-label [get]
func (h *DashboardHandler) GetTotalsByLabel(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	totals, err := h.dashboardService.GetTotalsByLabel(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}

// GetTotalsBySource godoc
// @Summary      Income totals by source
// @Description  Income totals grouped by source counterpart, largest first
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Param        top_n query int false "Limit to top N groups"
// @Success      200 {object} dto.Response{data=[]reportapp.CounterpartTotalResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/totals-by-source [get]
func (h *DashboardHandler) GetTotalsBySource(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	totals, err := h.dashboardService.GetTotalsBySource(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}

// GetTotalsByDestination godoc
// @Summary      Expense totals by destination
// @Description  Expense totals grouped by destination counterpart, largest first
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Param        top_n query int false "Limit to top N groups"
// @Success      200 {object} dto.Response{data=[]reportapp.CounterpartTotalResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/totals-by-destination [get]
func (h *DashboardHandler) GetTotalsByDestination(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	totals, err := h.dashboardService.GetTotalsByDestination(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}

// GetTotalsByPaymentMethod godoc
// @Summary      Totals by payment method
// @Description  Entry totals and fee totals grouped by payment method
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Param        top_n query int false "Limit to top N groups"
// @Success      200 {object} dto.Response{data=[]reportapp.MethodTotalResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/totals-by-payment-method [get]
func (h *DashboardHandler) GetTotalsByPaymentMethod(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	totals, err := h.dashboardService.GetTotalsByPaymentMethod(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}

// GetDailyBalance godoc
// @Summary      Daily balance series
// @Description  Day-by-day net movement and cumulative balance for a period
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        start_date query string true "Period start (RFC3339)"
// @Param        end_date query string true "Period end (RFC3339)"
// @Success      200 {object} dto.Response{data=[]reportapp.DailyBalanceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/daily-balance [get]
func (h *DashboardHandler) GetDailyBalance(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	balances, err := h.dashboardService.GetDailyBalance(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balances)
}
