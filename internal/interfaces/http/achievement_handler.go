package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kofiannan/biztrack-api/internal/application/achievements"
	"github.com/kofiannan/biztrack-api/internal/application/dto"
)

// AchievementHandler lists achievements and triggers on-demand evaluation.
type AchievementHandler struct {
	uc *achievements.Evaluator
}

func NewAchievementHandler(uc *achievements.Evaluator) *AchievementHandler {
	return &AchievementHandler{uc: uc}
}

func (h *AchievementHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Evaluate runs the evaluator for the caller and returns freshly
// unlocked codes. Safe to call repeatedly.
func (h *AchievementHandler) Evaluate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	unlocked, err := h.uc.EvaluateUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if unlocked == nil {
		unlocked = []string{}
	}
	return c.JSON(fiber.Map{"unlocked": unlocked})
}
