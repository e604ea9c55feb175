// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/domain"
	"collection-search-service/internal/transport/httpserver/dto"
)

// SearchHandler handles search HTTP requests.
type SearchHandler struct {
	service *service.SearchService
	logger  *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /api/v1/search/:index
//
// Raw query parameters go through sanitization rather than validation:
// out-of-range or malformed values fall back to defaults instead of
// rejecting the request, so a shared search URL always renders results.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	index := c.Params("index")

	raw := domain.RawParams{}
	for key, value := range c.Queries() {
		raw[key] = value
	}

	params := h.service.Sanitize(index, raw)
	result, err := h.service.Search(c.Context(), params)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "search backend unavailable",
				Code:  "STORE_UNAVAILABLE",
			})
		}

		h.logger.Error("search failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "search failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(result)
}
