package handler

import (
	"net/http"

	"fashionhub/internal/middleware"
	"fashionhub/internal/model"
	"fashionhub/internal/service"
	"fashionhub/pkg/pagination"
	"fashionhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftService service.DraftService
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/api/drafts", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson))
	{
		drafts.POST("", h.CreateDraft)
		drafts.GET("", h.ListDrafts)
		drafts.GET("/:id", h.GetDraft)
		drafts.PUT("/:id", h.UpdateDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
	}
}

// CreateDraft saves a named cart for later checkout
// @Summary      Create draft
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.DraftRequest  true  "Create Draft Payload"
// @Success      201      {object}  response.Response{data=model.Draft}
// @Failure      400      {object}  response.Response
// @Router       /api/drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req service.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	draft, err := h.draftService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, draft))
}

// ListDrafts returns a paginated list of saved carts
// @Summary      List drafts
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	params := pagination.Parse(c)

	drafts, total, err := h.draftService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, drafts, total, params.Page, params.Limit))
}

// GetDraft returns a single draft by ID
// @Summary      Get draft
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response{data=model.Draft}
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.draftService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// UpdateDraft replaces the contents of a saved cart
// @Summary      Update draft
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Draft ID"
// @Param        payload  body      service.DraftRequest  true  "Update Draft Payload"
// @Success      200      {object}  response.Response{data=model.Draft}
// @Failure      404      {object}  response.Response
// @Router       /api/drafts/{id} [put]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	var req service.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	draft, err := h.draftService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// DeleteDraft removes a saved cart
// @Summary      Delete draft
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	if err := h.draftService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
