package handler

import (
	"time"

	"github.com/caixa/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoreHandler handles store management HTTP requests
type StoreHandler struct {
	BaseHandler
	storeService *identity.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *identity.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// CreateStoreRequest represents the request body for creating a store
type CreateStoreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// UpdateStoreRequest represents the request body for updating a store
type UpdateStoreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// StoreListQuery represents query parameters for listing stores
type StoreListQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// StoreResponse represents store data in responses
type StoreResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse represents a paginated list of stores
type StoreListResponse struct {
	Stores     []StoreResponse `json:"stores"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// Create godoc
// @ID           createStore
// @Summary      Create a new store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request body CreateStoreRequest true "Store creation request"
// @Success      201 {object} APIResponse[StoreResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), identity.CreateStoreInput{
		Name: req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toStoreResponse(store))
}

// GetByID godoc
// @ID           getStoreById
// @Summary      Get a store by ID
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} APIResponse[StoreResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/stores/{id} [get]
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// List godoc
// @ID           listStores
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Param        keyword query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        sort_by query string false "Sort by field" Enums(name, created_at, updated_at)
// @Param        sort_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[StoreListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	var query StoreListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.storeService.List(c.Request.Context(), identity.StoreFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		SortBy:   query.SortBy,
		SortDir:  query.SortDir,
		Keyword:  query.Keyword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	stores := make([]StoreResponse, len(result.Stores))
	for i := range result.Stores {
		stores[i] = *toStoreResponse(&result.Stores[i])
	}

	h.Success(c, StoreListResponse{
		Stores:     stores,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// Update godoc
// @ID           updateStore
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        request body UpdateStoreRequest true "Store update request"
// @Success      200 {object} APIResponse[StoreResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/stores/{id} [put]
func (h *StoreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), identity.UpdateStoreInput{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// Activate godoc
// @ID           activateStore
// @Summary      Activate a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} APIResponse[StoreResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/stores/{id}/activate [post]
func (h *StoreHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// Deactivate godoc
// @ID           deactivateStore
// @Summary      Deactivate a store
// @Description  Deactivate a store. Its users can no longer log in.
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} APIResponse[StoreResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/stores/{id}/deactivate [post]
func (h *StoreHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

func toStoreResponse(store *identity.StoreDTO) *StoreResponse {
	return &StoreResponse{
		ID:        store.ID,
		Name:      store.Name,
		Status:    store.Status,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}
