package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kofiannan/biztrack-api/internal/application/auth"
	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/trust"
)

// TrustHandler serves the business trust score. The score itself is
// computed inside the database; this side only resolves the caller's
// business and invokes the evaluator.
type TrustHandler struct {
	auth *auth.UseCase
	eval *trust.Evaluator
}

func NewTrustHandler(authUC *auth.UseCase, eval *trust.Evaluator) *TrustHandler {
	return &TrustHandler{auth: authUC, eval: eval}
}

func (h *TrustHandler) Score(c *fiber.Ctx) error {
	userID := GetUserID(c)
	business, err := h.auth.GetBusiness(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_BUSINESS", Message: "create a business profile first"})
	}
	score, err := h.eval.Score(c.Context(), business.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"business_id": business.ID, "score": score})
}
