package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
	"oilbook/internal/domain"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// CatalogHandler provides generic HTTP handlers for catalog entities.
// Every read checks that the row belongs to the caller's office; a row
// from another office answers 404, never 403, so existence leaks nothing.
type CatalogHandler[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.CatalogService[T]
	entityName string

	// Mapper functions
	mapCreateDTO func(officeID id.ID, dto CreateDTO) T
	mapUpdateDTO func(dto UpdateDTO, existing T) T
	officeOf     func(entity T) id.ID
}

// CatalogHandlerConfig configures the catalog handler.
type CatalogHandlerConfig[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.CatalogService[T]
	EntityName   string
	MapCreateDTO func(officeID id.ID, dto CreateDTO) T
	MapUpdateDTO func(dto UpdateDTO, existing T) T
	OfficeOf     func(entity T) id.ID
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T entity.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg CatalogHandlerConfig[T, CreateDTO, UpdateDTO],
) *CatalogHandler[T, CreateDTO, UpdateDTO] {
	return &CatalogHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		officeOf:     cfg.OfficeOf,
	}
}

// getScoped loads the entity and hides rows of other offices.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) getScoped(c *gin.Context, entityID id.ID) (T, error) {
	ent, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		return ent, err
	}
	if officeID, ok := h.OfficeID(c); !ok || h.officeOf(ent) != officeID {
		return ent, apperror.NewNotFound(h.entityName, entityID.String())
	}
	return ent, nil
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	filter := domain.DefaultListFilter(officeID)
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "name")
	filter.IncludeInactive = c.Query("includeInactive") == "true"

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	ent, err := h.getScoped(c, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ent)
}

// Create handles POST /{entity} - create new entity in the caller's office.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	ent := h.mapCreateDTO(officeID, req)

	if err := h.service.Create(ctx, ent); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ent)
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.getScoped(c, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := h.mapUpdateDTO(req, existing)

	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SetActive handles POST /{entity}/:id/active - activate or deactivate.
// Rows are never removed; history keeps referencing them.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) SetActive(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.getScoped(c, entityID); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.SetActive(ctx, entityID, *req.Active); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
