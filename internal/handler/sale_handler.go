package handler

import (
	"net/http"
	"time"

	"fashionhub/internal/middleware"
	"fashionhub/internal/model"
	"fashionhub/internal/service"
	"fashionhub/pkg/pagination"
	"fashionhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/sales")
	{
		sales.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson), h.CreateSale)
		sales.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson), h.ListSales)
		sales.GET("/stats", middleware.RequireRole(model.RoleAdmin), h.GetStats)
		sales.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleSalesPerson), h.GetSale)
	}
}

// parseDateRange reads optional start_date/end_date query params (RFC3339 or YYYY-MM-DD)
func parseDateRange(c *gin.Context) (*time.Time, *time.Time) {
	parse := func(value string) *time.Time {
		if value == "" {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return &t
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return &t
		}
		return nil
	}
	return parse(c.Query("start_date")), parse(c.Query("end_date"))
}

// CreateSale completes a POS checkout
// @Summary      Create sale
// @Description  Completes a checkout: assigns an invoice number, records line items and decrements stock. An oversold line rejects the whole sale.
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSaleRequest  true  "Create Sale Payload"
// @Success      201      {object}  response.Response{data=model.Sale}
// @Failure      400      {object}  response.Response
// @Router       /api/sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), c.GetString("userID"), c.GetString("userName"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// ListSales returns a paginated sale list. Sales persons only see their own sales.
// @Summary      List sales
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (RFC3339 or YYYY-MM-DD)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	params := pagination.Parse(c)
	startDate, endDate := parseDateRange(c)

	query := service.SaleListQuery{
		Page:      params.Page,
		Limit:     params.Limit,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if c.GetString("userRole") != model.RoleAdmin {
		if userID, err := uuid.Parse(c.GetString("userID")); err == nil {
			query.SalesPersonID = &userID
		}
	}

	sales, total, err := h.saleService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, sales, total, params.Page, params.Limit))
}

// GetStats returns aggregate sales statistics for an optional date range
// @Summary      Get sales statistics
// @Description  Returns revenue totals, sale counts, average sale value and a payment method breakdown
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (RFC3339 or YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=model.SalesStats}
// @Failure      500         {object}  response.Response
// @Router       /api/sales/stats [get]
func (h *SaleHandler) GetStats(c *gin.Context) {
	startDate, endDate := parseDateRange(c)

	stats, err := h.saleService.Stats(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetSale returns a single sale with its line items
// @Summary      Get sale
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Sale ID"
// @Success      200  {object}  response.Response{data=model.Sale}
// @Failure      404  {object}  response.Response
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	sale, err := h.saleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}
