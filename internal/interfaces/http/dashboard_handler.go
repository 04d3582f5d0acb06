package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kofiannan/biztrack-api/internal/application/achievements"
	"github.com/kofiannan/biztrack-api/internal/application/auth"
	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/summary"
	"github.com/kofiannan/biztrack-api/internal/application/tips"
	"github.com/kofiannan/biztrack-api/internal/application/trust"
	"github.com/kofiannan/biztrack-api/internal/domain"
)

// DashboardHandler serves the period summary and the combined home view.
type DashboardHandler struct {
	calc         *summary.Calculator
	tips         *tips.Prioritizer
	trust        *trust.Evaluator
	auth         *auth.UseCase
	achievements *achievements.Evaluator
}

func NewDashboardHandler(
	calc *summary.Calculator,
	tipsUC *tips.Prioritizer,
	trustEval *trust.Evaluator,
	authUC *auth.UseCase,
	achievementsUC *achievements.Evaluator,
) *DashboardHandler {
	return &DashboardHandler{calc: calc, tips: tipsUC, trust: trustEval, auth: authUC, achievements: achievementsUC}
}

// Summary accepts either period=today|week|month or an explicit
// start_date/end_date pair. Defaults to the current month.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	start, end, err := resolvePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.calc.Summarize(c.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrPartialData) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PARTIAL_DATA", Message: "summary is temporarily unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Home combines the month-to-date summary, tips, trust score and unlocked
// achievement count into the single payload the app's home screen renders.
// Trust is skipped (null) while the user has no business profile.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	userID := GetUserID(c)
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	sum, err := h.calc.Summarize(c.Context(), userID, monthStart, now)
	if err != nil {
		if errors.Is(err, domain.ErrPartialData) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PARTIAL_DATA", Message: "dashboard is temporarily unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	tipList, err := h.tips.Tips(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPartialData) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PARTIAL_DATA", Message: "dashboard is temporarily unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	var trustScore *int
	business, err := h.auth.GetBusiness(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if business != nil {
		score, err := h.trust.Score(c.Context(), business.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		trustScore = &score
	}

	achList, err := h.achievements.ListForUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	unlocked := 0
	for _, a := range achList {
		if a.Unlocked {
			unlocked++
		}
	}

	return c.JSON(fiber.Map{
		"summary":               sum,
		"tips":                  tipList,
		"trust_score":           trustScore,
		"achievements_unlocked": unlocked,
		"achievements_total":    len(achList),
	})
}

func resolvePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	if v := c.Query("start_date"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("start_date must be YYYY-MM-DD")
		}
		endStr := c.Query("end_date")
		if endStr == "" {
			return time.Time{}, time.Time{}, errors.New("end_date is required with start_date")
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, errors.New("end_date must not precede start_date")
		}
		return start, end.Add(24*time.Hour - time.Nanosecond), nil
	}

	switch c.Query("period", "month") {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return start, now, nil
	case "week":
		return now.AddDate(0, 0, -7), now, nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, now, nil
	default:
		return time.Time{}, time.Time{}, errors.New("period must be today, week, or month")
	}
}
