package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpfurr/adopt-api/internal/service"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
	"github.com/helpfurr/adopt-api/pkg/response"
)

// ExportHandler streams catalog exports for shelter administrators.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Export the catalog view
// @Description Renders the same derived view as /dogs into CSV or PDF
// @Tags Catalog
// @Produce json
// @Param format query string true "csv or pdf"
// @Param search query string false "Search term"
// @Param color query string false "Color filter"
// @Param gender query string false "Gender filter"
// @Param sort query string false "Sort key"
// @Success 200 {file} binary
// @Router /dogs/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	criteria := criteriaFromQuery(c)
	file, err := h.service.Render(c.Request.Context(), criteria, service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
