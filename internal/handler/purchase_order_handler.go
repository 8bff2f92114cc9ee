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

type PurchaseOrderHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseOrderHandler(purchaseService service.PurchaseService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseService: purchaseService}
}

func (h *PurchaseOrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/purchase-orders", middleware.RequireRole(model.RoleAdmin))
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.PATCH("/:id/receive", h.ReceiveOrder)
		orders.PATCH("/:id/cancel", h.CancelOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

// CreateOrder creates a pending purchase order against a supplier
// @Summary      Create purchase order
// @Description  Creates a pending purchase order with an auto-assigned PO number
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePurchaseOrderRequest  true  "Create Purchase Order Payload"
// @Success      201      {object}  response.Response{data=model.PurchaseOrder}
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.purchaseService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders returns a paginated purchase order list, optionally filtered by status
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (pending, received, cancelled)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.purchaseService.List(c.Request.Context(), params.Page, params.Limit, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, orders, total, params.Page, params.Limit))
}

// GetOrder returns a purchase order with its line items
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase Order ID"
// @Success      200  {object}  response.Response{data=model.PurchaseOrder}
// @Failure      404  {object}  response.Response
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetOrder(c *gin.Context) {
	order, err := h.purchaseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateOrder updates payment and delivery details of a pending order
// @Summary      Update purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Purchase Order ID"
// @Param        payload  body      service.UpdatePurchaseOrderRequest  true  "Update Purchase Order Payload"
// @Success      200      {object}  response.Response{data=model.PurchaseOrder}
// @Failure      404      {object}  response.Response
// @Router       /api/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) UpdateOrder(c *gin.Context) {
	var req service.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.purchaseService.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ReceiveOrder marks a pending order received and restocks every line item
// @Summary      Receive purchase order
// @Description  Marks a pending order as received and increments stock for all line items atomically. Orders already received or cancelled are rejected.
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase Order ID"
// @Success      200  {object}  response.Response{data=model.PurchaseOrder}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchase-orders/{id}/receive [patch]
func (h *PurchaseOrderHandler) ReceiveOrder(c *gin.Context) {
	order, err := h.purchaseService.Receive(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// CancelOrder cancels a pending purchase order
// @Summary      Cancel purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase Order ID"
// @Success      200  {object}  response.Response{data=model.PurchaseOrder}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchase-orders/{id}/cancel [patch]
func (h *PurchaseOrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.purchaseService.Cancel(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteOrder removes a purchase order
// @Summary      Delete purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase Order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.purchaseService.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
