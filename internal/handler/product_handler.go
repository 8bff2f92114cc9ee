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

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	{
		products.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson), h.ListProducts)
		products.GET("/low-stock", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson), h.ListLowStock)
		products.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson), h.GetProduct)
		products.GET("/:id/movements", middleware.RequireRole(model.RoleAdmin), h.ListMovements)
		products.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateProduct)
		products.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateProduct)
		products.PATCH("/:id/stock", middleware.RequireRole(model.RoleAdmin), h.AdjustStock)
		products.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteProduct)
	}
}

// CreateProduct adds a product to the catalog
// @Summary      Create product
// @Description  Adds a new product with a unique barcode to the catalog
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "Create Product Payload"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// ListProducts returns a paginated product list with optional search and category filters
// @Summary      List products
// @Description  Retrieves a paginated list of products, searchable by name, barcode or brand
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        search    query     string  false  "Search by name, barcode or brand"
// @Param        category  query     string  false  "Filter by category"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Success      200       {object}  response.Response{data=object}
// @Failure      500       {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)

	products, total, err := h.productService.List(c.Request.Context(), params.Page, params.Limit, c.Query("search"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, products, total, params.Page, params.Limit))
}

// ListLowStock returns products at or below their minimum stock level
// @Summary      List low stock products
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Product}
// @Failure      500  {object}  response.Response
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, products))
}

// GetProduct returns a single product by ID
// @Summary      Get product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=model.Product}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// UpdateProduct updates product fields except stock
// @Summary      Update product
// @Description  Updates product details. Stock is excluded; use the stock adjustment endpoint.
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Product ID"
// @Param        payload  body      service.UpdateProductRequest  true  "Update Product Payload"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// AdjustStock applies a signed manual stock correction
// @Summary      Adjust stock
// @Description  Applies a manual stock delta. Rejects adjustments that would drive stock negative.
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Product ID"
// @Param        payload  body      service.AdjustStockRequest  true  "Stock Adjustment Payload"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req service.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// ListMovements returns the stock movement history for a product
// @Summary      List stock movements
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Product ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      404    {object}  response.Response
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) ListMovements(c *gin.Context) {
	params := pagination.Parse(c)

	movements, total, err := h.productService.Movements(c.Request.Context(), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, movements, total, params.Page, params.Limit))
}

// DeleteProduct soft-deletes a product
// @Summary      Delete product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
