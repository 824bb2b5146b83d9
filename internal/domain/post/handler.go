package post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peoplematching/internal/pkg/response"
	"peoplematching/internal/pkg/validator"
)

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

// Create godoc
// @Summary Create a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} map[string]interface{}
// @Failure 400,422,500 {object} map[string]interface{}
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid post", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid post")
			return
		}
		h.log.Error("failed to create post", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create post")
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// GetByID godoc
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "post not found")
			return
		}
		h.log.Error("failed to load post", zap.Int64("id", id), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load post")
		return
	}

	response.Success(c, http.StatusOK, p)
}

// List godoc
// @Summary List posts, most recent first
// @Tags Posts
// @Produce json
// @Param limit query int false "page size (max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	posts, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list posts", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list posts")
		return
	}
	response.Success(c, http.StatusOK, posts)
}
