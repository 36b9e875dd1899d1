package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/phoneindex/phoneindex-backend/internal/dto"
	"github.com/phoneindex/phoneindex-backend/internal/services"
)

type VerifyHandler struct {
	verifyService *services.VerifyService
}

func NewVerifyHandler(verifyService *services.VerifyService) *VerifyHandler {
	return &VerifyHandler{verifyService: verifyService}
}

// Verify is the public pre-purchase IMEI check.
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.verifyService.Verify(req.IMEI)
	if err != nil {
		if errors.Is(err, services.ErrInvalidIMEI) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Verification failed",
		})
	}

	return c.JSON(result)
}
