package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/phoneindex/phoneindex-backend/internal/dto"
	"github.com/phoneindex/phoneindex-backend/internal/identity"
	"github.com/phoneindex/phoneindex-backend/internal/services"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

type DeviceHandler struct {
	deviceService *services.DeviceService
}

func NewDeviceHandler(deviceService *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	device, err := h.deviceService.Register(userID, &services.DeviceRegistration{
		IMEI:                   req.IMEI,
		Make:                   req.Make,
		ModelName:              req.ModelName,
		Color:                  req.Color,
		StorageCapacity:        req.StorageCapacity,
		DistinguishingFeatures: req.DistinguishingFeatures,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateIMEI) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}

func (h *DeviceHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	devices, err := h.deviceService.ListForOwner(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch devices",
		})
	}

	return c.JSON(fiber.Map{"devices": devices, "total": len(devices)})
}

func (h *DeviceHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	deviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid device ID",
		})
	}

	device, err := h.deviceService.Get(userID, deviceID)
	if err != nil {
		return deviceError(c, err, "Failed to fetch device")
	}

	return c.JSON(device)
}

func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	deviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid device ID",
		})
	}

	if err := h.deviceService.Delete(userID, deviceID); err != nil {
		return deviceError(c, err, "Failed to delete device")
	}

	return c.JSON(fiber.Map{"message": "Device deleted successfully"})
}

func deviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Device not found",
		})
	case errors.Is(err, services.ErrPermission):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: fallback,
		})
	}
}
