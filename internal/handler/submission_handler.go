package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpfurr/adopt-api/internal/models"
	"github.com/helpfurr/adopt-api/internal/service"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
	"github.com/helpfurr/adopt-api/pkg/response"
)

// imageFields are the multipart file parts an application may carry.
var imageFields = [2]string{"image1", "image2"}

// SubmissionHandler exposes the adoption application intake endpoint.
type SubmissionHandler struct {
	service       *service.SubmissionService
	maxImageBytes int64
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(svc *service.SubmissionService, maxImageBytes int64) *SubmissionHandler {
	return &SubmissionHandler{service: svc, maxImageBytes: maxImageBytes}
}

// Submit godoc
// @Summary Submit an adoption application
// @Description Validates the intake form and forwards it to the upstream as multipart. The response data always carries the lifecycle state and user notice.
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Param dogId formData string true "Target listing id"
// @Param email formData string true "Applicant email"
// @Param image1 formData file false "ID front"
// @Param image2 formData file false "ID back"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /applications [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBind(&req.Fields); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid application payload"))
		return
	}
	req.ListingID = c.PostForm("dogId")
	if req.ListingID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dogId is required"))
		return
	}

	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	for _, field := range imageFields {
		fileHeader, err := c.FormFile(field)
		if err != nil {
			continue
		}
		if h.maxImageBytes > 0 && fileHeader.Size > h.maxImageBytes {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "uploaded ID image is too large"))
			return
		}
		src, err := fileHeader.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded image"))
			return
		}
		closers = append(closers, src)
		req.Images = append(req.Images, models.ImageAttachment{
			FieldName: field,
			Filename:  fileHeader.Filename,
			MimeType:  fileHeader.Header.Get("Content-Type"),
			Content:   src,
		})
	}

	actor := claimsFromContext(c).AsUser()
	result, err := h.service.Submit(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, statusForSubmission(result), result)
}

// statusForSubmission maps the lifecycle outcome onto an HTTP status
// while the body always carries the full result, notice included.
func statusForSubmission(result *service.SubmissionResult) int {
	switch result.State {
	case models.SubmitStateSucceeded:
		return http.StatusCreated
	case models.SubmitStateInvalid:
		return http.StatusBadRequest
	case models.SubmitStateFailed:
		if result.Code == appErrors.ErrSelfAdoption.Code {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
