package postimage

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peoplematching/internal/pkg/response"
)

// clientErrors maps validation failures to the messages clients have always received.
var clientErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{ErrMissingFile, http.StatusBadRequest, "MISSING_FILE", "File is null"},
	{ErrEmptyFile, http.StatusBadRequest, "EMPTY_FILE", "File is empty"},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size cannot exceed 10M"},
	{ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "File type not valid, only jpg and png are acceptable."},
}

// Handler serves the post image endpoints. Uploads are anonymous.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

// Upload godoc
// @Summary Upload a post image
// @Tags PostImages
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "jpg or png, at most 10 MiB"
// @Success 200 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
// @Router /postimages [post]
func (h *Handler) Upload(c *gin.Context) {
	var payload *Payload

	fileHeader, err := c.FormFile("file")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.log.Error("failed to open multipart file", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "STORAGE_WRITE_FAILED", "upload failed")
			return
		}
		defer file.Close()

		payload = &Payload{Name: fileHeader.Filename, Size: fileHeader.Size, Body: file}
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.log.Debug("no usable multipart file", zap.Error(err))
	}

	img, err := h.service.Ingest(c.Request.Context(), payload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, img)
}

// GetByID godoc
// @Summary Get post image metadata
// @Tags PostImages
// @Produce json
// @Param id path int true "Post image ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /postimages/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return
	}

	img, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "post image not found")
			return
		}
		h.log.Error("failed to load post image", zap.Int64("id", id), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load post image")
		return
	}

	response.Success(c, http.StatusOK, img)
}

// List godoc
// @Summary List post images, newest first
// @Tags PostImages
// @Produce json
// @Param limit query int false "page size (max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} map[string]interface{}
// @Router /postimages [get]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultListLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	imgs, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list post images", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list post images")
		return
	}

	response.Success(c, http.StatusOK, imgs)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			response.Error(c, ce.status, ce.code, ce.message)
			return
		}
	}

	switch {
	case errors.Is(err, ErrStorageWrite):
		response.Error(c, http.StatusInternalServerError, "STORAGE_WRITE_FAILED", "failed to store file")
	case errors.Is(err, ErrPersistenceCommit):
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_FAILED", "failed to save post image")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "upload failed")
	}
}
