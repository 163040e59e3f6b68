package handler

import (
	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntryHandler handles cash-book entry API endpoints
type EntryHandler struct {
	BaseHandler
	entryService *ledgerapp.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *ledgerapp.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// Create godoc
// @Summary      Record a cash movement
// @Description  Record an income or expense entry. The payment method's current fee rate is snapshotted onto the entry.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateEntryRequest true "Entry creation request"
// @Success      201 {object} dto.Response{data=ledgerapp.EntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req ledgerapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Record who created the entry when a user is authenticated
	userID, _ := getUserID(c)
	if userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetByID godoc
// @Summary      Get entry by ID
// @Description  Retrieve a single entry by its ID
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.EntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/entries/{id} [get]
func (h *EntryHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), storeID, entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// List godoc
// @Summary      List entries
// @Description  Retrieve a paginated list of entries with optional filtering
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        search query string false "Search term (description)"
// @Param        kind query string false "Entry kind" Enums(receita, despesa)
// @Param        label_id query string false "Label ID" format(uuid)
// @Param        payment_method_id query string false "Payment method ID" format(uuid)
// @Param        counterpart_id query string false "Counterpart ID" format(uuid)
// @Param        from_date query string false "Start of event date range (RFC3339)"
// @Param        to_date query string false "End of event date range (RFC3339)"
// @Param        include_inactive query boolean false "Include voided entries"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]ledgerapp.EntryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var filter ledgerapp.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, total, err := h.entryService.ListEntries(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update an entry
// @Description  Update an entry's details. Changing the payment method re-snapshots the fee rate.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Param        request body ledgerapp.UpdateEntryRequest true "Entry update request"
// @Success      200 {object} dto.Response{data=ledgerapp.EntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/entries/{id} [put]
func (h *EntryHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	var req ledgerapp.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), storeID, entryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Deactivate godoc
// @Summary      Void an entry
// @Description  Soft-delete an entry so it no longer counts toward balances
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/entries/{id} [delete]
func (h *EntryHandler) Deactivate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	if err := h.entryService.DeactivateEntry(c.Request.Context(), storeID, entryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
