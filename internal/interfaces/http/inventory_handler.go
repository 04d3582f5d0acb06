package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kofiannan/biztrack-api/internal/application/costing"
	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/inventory"
	"github.com/kofiannan/biztrack-api/internal/domain"
)

// InventoryHandler handles stock receipts, movements, the costed stock
// report, and counter reconciliation.
type InventoryHandler struct {
	receive   *inventory.ReceiveStockUseCase
	movement  *inventory.RecordMovementUseCase
	reconcile *inventory.Reconciler
	costing   *costing.Engine
}

func NewInventoryHandler(
	receive *inventory.ReceiveStockUseCase,
	movement *inventory.RecordMovementUseCase,
	reconcile *inventory.Reconciler,
	costing *costing.Engine,
) *InventoryHandler {
	return &InventoryHandler{receive: receive, movement: movement, reconcile: reconcile, costing: costing}
}

func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.receive.Receive(c.Context(), userID, in); err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.movement.Record(c.Context(), userID, in); err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.costing.StockReport(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPartialData) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PARTIAL_DATA", Message: "stock report is temporarily unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	userID := GetUserID(c)
	repair := c.QueryBool("repair", false)
	out, err := h.reconcile.Reconcile(c.Context(), userID, repair)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
