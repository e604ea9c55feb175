package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/domain"
	"collection-search-service/internal/transport/httpserver/dto"
)

// AdminHandler handles operational HTTP requests: collection statistics
// and bulk export.
type AdminHandler struct {
	exportService *service.ExportService
	cache         domain.Cache
	logger        *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. cache may be nil; stats are
// then computed on every request.
func NewAdminHandler(exportSvc *service.ExportService, cache domain.Cache, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		exportService: exportSvc,
		cache:         cache,
		logger:        logger,
	}
}

// Stats handles GET /api/v1/admin/stats
//
// Serves the snapshot published by the background refresher when one
// exists, otherwise computes counts on demand.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	if h.cache != nil {
		if data, err := h.cache.Get(c.Context(), service.StatsCacheKey); err == nil && data != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(data)
		}
	}

	stats, err := h.exportService.Stats(c.Context())
	if err != nil {
		h.logger.Error("computing stats failed", zap.Error(err))

		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "stats unavailable",
			Code:  "STORE_UNAVAILABLE",
		})
	}

	return c.JSON(dto.FromStats(stats, time.Now()))
}

// Export handles GET /api/v1/admin/export/:index
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	index := c.Params("index")

	h.logger.Info("export triggered", zap.String("index", index))

	docs, err := h.exportService.ExportAll(c.Context(), index)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "search backend unavailable",
				Code:  "STORE_UNAVAILABLE",
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "EXPORT_FAILED",
		})
	}

	return c.JSON(dto.ExportResponse{
		Index: index,
		Count: len(docs),
		Data:  docs,
	})
}
