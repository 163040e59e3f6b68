package handler

import (
	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LabelHandler handles label API endpoints
type LabelHandler struct {
	BaseHandler
	catalogService *ledgerapp.CatalogService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(catalogService *ledgerapp.CatalogService) *LabelHandler {
	return &LabelHandler{
		catalogService: catalogService,
	}
}

// Create godoc
// @Summary      Create a label
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateLabelRequest true "Label creation request"
// @Success      201 {object} dto.Response{data=ledgerapp.LabelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/labels [post]
func (h *LabelHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req ledgerapp.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, _ := getUserID(c)
	if userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	label, err := h.catalogService.CreateLabel(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, label)
}

// GetByID godoc
// @Summary      Get label by ID
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        id path string true "Label ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.LabelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/labels/{id} [get]
func (h *LabelHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	labelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	label, err := h.catalogService.GetLabelByID(c.Request.Context(), storeID, labelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, label)
}

// List godoc
// @Summary      List labels
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        search query string false "Search term (name)"
// @Param        include_inactive query boolean false "Include deactivated labels"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]ledgerapp.LabelResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/labels [get]
func (h *LabelHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var filter ledgerapp.LabelListFilter
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

	labels, total, err := h.catalogService.ListLabels(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, labels, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a label
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        id path string true "Label ID" format(uuid)
// @Param        request body ledgerapp.UpdateLabelRequest true "Label update request"
// @Success      200 {object} dto.Response{data=ledgerapp.LabelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/labels/{id} [put]
func (h *LabelHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	labelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	var req ledgerapp.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	label, err := h.catalogService.UpdateLabel(c.Request.Context(), storeID, labelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, label)
}

// SetDefault godoc
// @Summary      Set default label
// @Description  Mark a label as the store default. Clears the flag on any previous default.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        id path string true "Label ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.LabelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/labels/{id}/default [put]
func (h *LabelHandler) SetDefault(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	labelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	label, err := h.catalogService.SetDefaultLabel(c.Request.Context(), storeID, labelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, label)
}

// Deactivate godoc
// @Summary      Deactivate a label
// @Description  Soft-delete a label. Entries keep their label reference for history.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        id path string true "Label ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/labels/{id} [delete]
func (h *LabelHandler) Deactivate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	labelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	if err := h.catalogService.DeactivateLabel(c.Request.Context(), storeID, labelID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CounterpartHandler handles counterpart API endpoints
type CounterpartHandler struct {
	BaseHandler
	catalogService *ledgerapp.CatalogService
}

// NewCounterpartHandler creates a new CounterpartHandler
func NewCounterpartHandler(catalogService *ledgerapp.CatalogService) *CounterpartHandler {
	return &CounterpartHandler{
		catalogService: catalogService,
	}
}

// Create godoc
// @Summary      Create a counterpart
// @Description  Create a source (for income) or destination (for expenses)
// @Tags         counterparts
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateCounterpartRequest true "Counterpart creation request"
// @Success      201 {object} dto.Response{data=ledgerapp.CounterpartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/counterparts [post]
func (h *CounterpartHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req ledgerapp.CreateCounterpartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, _ := getUserID(c)
	if userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	counterpart, err := h.catalogService.CreateCounterpart(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, counterpart)
}

// GetByID godoc
// @Summary      Get counterpart by ID
// @Tags         counterparts
// @Accept       json
// @Produce      json
// @Param        id path string true "Counterpart ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.CounterpartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/counterparts/{id} [get]
func (h *CounterpartHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	counterpartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid counterpart ID format")
		return
	}

	counterpart, err := h.catalogService.GetCounterpartByID(c.Request.Context(), storeID, counterpartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counterpart)
}

// List godoc
// @Summary      List counterparts
// @Tags         counterparts
// @Accept       json
// @Produce      json
// @Param        search query string false "Search term (name)"
// @Param        role query string false "Counterpart role" Enums(origem, destino)
// @Param        include_inactive query boolean false "Include deactivated counterparts"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]ledgerapp.CounterpartResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/counterparts [get]
func (h *CounterpartHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var filter ledgerapp.CounterpartListFilter
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

	counterparts, total, err := h.catalogService.ListCounterparts(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, counterparts, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a counterpart
// @Tags         counterparts
// @Accept       json
// @Produce      json
// @Param        id path string true "Counterpart ID" format(uuid)
// @Param        request body ledgerapp.UpdateCounterpartRequest true "Counterpart update request"
// @Success      200 {object} dto.Response{data=ledgerapp.CounterpartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/counterparts/{id} [put]
func (h *CounterpartHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	counterpartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid counterpart ID format")
		return
	}

	var req ledgerapp.UpdateCounterpartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counterpart, err := h.catalogService.UpdateCounterpart(c.Request.Context(), storeID, counterpartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counterpart)
}

// SetDefault godoc
// @Summary      Set default counterpart
// @Description  Mark a counterpart as the default for its role
// @Tags         counterparts
// @Accept       json
// @Produce      json
// @Param        id path string true "Counterpart ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.CounterpartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/counterparts/{id}/default [put]
func (h *CounterpartHandler) SetDefault(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	counterpartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid counterpart ID format")
		return
	}

	counterpart, err := h.catalogService.SetDefaultCounterpart(c.Request.Context(), storeID, counterpartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counterpart)
}

// Deactivate godoc
// @Summary      Deactivate a counterpart
// @Description  Soft-delete a counterpart. Entries keep their counterpart reference for history.
// @Tags         counterparts
// @Accept       json
// @Produce      json
// @Param        id path string true "Counterpart ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/counterparts/{id} [delete]
func (h *CounterpartHandler) Deactivate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	counterpartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid counterpart ID format")
		return
	}

	if err := h.catalogService.DeactivateCounterpart(c.Request.Context(), storeID, counterpartID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
