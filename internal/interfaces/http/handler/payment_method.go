package handler

import (
	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentMethodHandler handles payment method API endpoints
type PaymentMethodHandler struct {
	BaseHandler
	methodService *ledgerapp.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(methodService *ledgerapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		methodService: methodService,
	}
}

// Create godoc
// @Summary      Create a payment method
// @Description  Create a payment method with its modality, installment count and fee rate
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreatePaymentMethodRequest true "Payment method creation request"
// @Success      201 {object} dto.Response{data=ledgerapp.PaymentMethodResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req ledgerapp.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, _ := getUserID(c)
	if userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	method, err := h.methodService.CreatePaymentMethod(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, method)
}

// GetByID godoc
// @Summary      Get payment method by ID
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.PaymentMethodResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	method, err := h.methodService.GetPaymentMethodByID(c.Request.Context(), storeID, methodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, method)
}

// List godoc
// @Summary      List payment methods
// @Description  Retrieve a paginated list of payment methods with optional filtering
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        search query string false "Search term (name)"
// @Param        modality query string false "Payment modality" Enums(avista, parcelado)
// @Param        include_inactive query boolean false "Include deactivated methods"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]ledgerapp.PaymentMethodResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var filter ledgerapp.PaymentMethodListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	methods, total, err := h.methodService.ListPaymentMethods(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, methods, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a payment method
// @Description  Update a payment method. Fee rate changes only affect entries recorded afterwards.
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Param        request body ledgerapp.UpdatePaymentMethodRequest true "Payment method update request"
// @Success      200 {object} dto.Response{data=ledgerapp.PaymentMethodResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/payment-methods/{id} [put]
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	var req ledgerapp.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	method, err := h.methodService.UpdatePaymentMethod(c.Request.Context(), storeID, methodID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, method)
}

// SetDefault godoc
// @Summary      Set default payment method
// @Description  Mark a payment method as the default for a given entry kind
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Param        request body ledgerapp.SetDefaultPaymentMethodRequest true "Default kind request"
// @Success      200 {object} dto.Response{data=ledgerapp.PaymentMethodResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/payment-methods/{id}/default [put]
func (h *PaymentMethodHandler) SetDefault(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	var req ledgerapp.SetDefaultPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	method, err := h.methodService.SetDefaultPaymentMethod(c.Request.Context(), storeID, methodID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, method)
}

// Deactivate godoc
// @Summary      Deactivate a payment method
// @Description  Soft-delete a payment method. Existing entries keep their fee snapshots.
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/payment-methods/{id} [delete]
func (h *PaymentMethodHandler) Deactivate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	if err := h.methodService.DeactivatePaymentMethod(c.Request.Context(), storeID, methodID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
