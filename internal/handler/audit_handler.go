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

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit-logs", middleware.RequireRole(model.RoleAdmin))
	{
		audit.GET("", h.ListAuditLogs)
	}
}

// ListAuditLogs returns a paginated audit trail, optionally filtered by action
// @Summary      List audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action  query     string  false  "Filter by action"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.List(c.Request.Context(), params.Page, params.Limit, c.Query("action"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, total, params.Page, params.Limit))
}
