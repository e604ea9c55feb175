package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/domain"
	"collection-search-service/internal/transport/httpserver/dto"
)

// DocumentHandler handles document lookup HTTP requests.
type DocumentHandler struct {
	service *service.DocumentService
	logger  *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(svc *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: svc,
		logger:  logger,
	}
}

// GetByID handles GET /api/v1/documents/:index/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	index := c.Params("index")
	id := c.Params("id")

	if !domain.IsValidIndex(index) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "unknown index",
			Code:  "INVALID_INDEX",
		})
	}

	result, err := h.service.GetWithSimilar(c.Context(), index, id)
	if err != nil {
		return h.lookupError(c, id, err)
	}

	return c.JSON(result)
}

// Similar handles GET /api/v1/documents/:index/:id/similar
//
// Only artworks carry the attributes similarity is computed from, so the
// index segment must be the art index.
func (h *DocumentHandler) Similar(c *fiber.Ctx) error {
	index := c.Params("index")
	id := c.Params("id")

	if index != domain.IndexArt {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "similar lookups are only supported for artworks",
			Code:  "INVALID_INDEX",
		})
	}

	hasPhoto := c.QueryBool("hasPhoto", true)

	similar, err := h.service.SimilarByID(c.Context(), id, hasPhoto)
	if err != nil {
		return h.lookupError(c, id, err)
	}

	return c.JSON(fiber.Map{"data": similar})
}

func (h *DocumentHandler) lookupError(c *fiber.Ctx, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "document not found",
			Code:  "NOT_FOUND",
		})
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "search backend unavailable",
			Code:  "STORE_UNAVAILABLE",
		})
	}

	h.logger.Error("document lookup failed", zap.String("id", id), zap.Error(err))

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "document lookup failed",
		Code:  "INTERNAL_ERROR",
	})
}
