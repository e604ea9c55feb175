package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/transport/httpserver/dto"
	"collection-search-service/internal/validator"
)

// SuggestHandler handles term suggestion HTTP requests.
type SuggestHandler struct {
	service   *service.TermService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(svc *service.TermService, v *validator.Validator, logger *zap.Logger) *SuggestHandler {
	return &SuggestHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Suggest handles GET /api/v1/suggest?q=
func (h *SuggestHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	terms := h.service.Suggest(c.Context(), req.Query)

	return c.JSON(dto.FromTerms(terms))
}
