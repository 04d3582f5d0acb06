package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/tips"
	"github.com/kofiannan/biztrack-api/internal/domain"
)

// TipHandler serves prioritized market tips.
type TipHandler struct {
	uc *tips.Prioritizer
}

func NewTipHandler(uc *tips.Prioritizer) *TipHandler {
	return &TipHandler{uc: uc}
}

func (h *TipHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.uc.Tips(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPartialData) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PARTIAL_DATA", Message: "tips are temporarily unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
