package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpfurr/adopt-api/internal/models"
	"github.com/helpfurr/adopt-api/internal/service"
	"github.com/helpfurr/adopt-api/pkg/response"
)

// CatalogHandler exposes the adoptable dogs view.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

func criteriaFromQuery(c *gin.Context) models.FilterCriteria {
	return models.FilterCriteria{
		Search: c.Query("search"),
		Color:  c.Query("color"),
		Gender: c.Query("gender"),
		Sort:   models.ParseSortKey(c.Query("sort")),
	}
}

// List godoc
// @Summary List adoptable dogs
// @Description Derived view of the approved catalog: search, filters, sort
// @Tags Catalog
// @Produce json
// @Param search query string false "Case-insensitive substring over name/color/gender"
// @Param color query string false "Exact color filter"
// @Param gender query string false "Exact gender filter"
// @Param sort query string false "One of age-asc, age-desc, name-asc, name-desc"
// @Success 200 {object} response.Envelope
// @Router /dogs [get]
func (h *CatalogHandler) List(c *gin.Context) {
	criteria := criteriaFromQuery(c)

	view, total, err := h.service.View(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, map[string]interface{}{
		"count": len(view),
		"total": total,
	})
}
