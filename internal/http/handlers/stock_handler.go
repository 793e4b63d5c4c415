package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/services"
)

type StockHandler struct {
	Stock *services.StockService
}

// Check answers /api/v1/availability?productId=... with a stock
// status.
func (h *StockHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}

	avail, err := h.Stock.CheckAvailability(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(avail)
}
