package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/phoneindex/phoneindex-backend/internal/dto"
	"github.com/phoneindex/phoneindex-backend/internal/identity"
	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/services"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

type CaseHandler struct {
	caseService *services.CaseService
}

func NewCaseHandler(caseService *services.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// ReportStolen opens a theft case for one of the caller's devices.
func (h *CaseHandler) ReportStolen(c *fiber.Ctx) error {
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

	var req dto.ReportStolenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	tc, err := h.caseService.ReportStolen(userID, deviceID, &services.TheftDetails{
		Region:            req.Region,
		OccurredAt:        req.OccurredAt,
		IsTimeApproximate: req.IsTimeApproximate,
		Location:          req.Location,
		Circumstances:     req.Circumstances,
		AdditionalDetails: req.AdditionalDetails,
	})
	if err != nil {
		return caseError(c, err, "Failed to report device stolen")
	}

	return c.Status(fiber.StatusCreated).JSON(tc)
}

func (h *CaseHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	tc, err := h.caseService.GetForViewer(userID, c.Params("caseID"))
	if err != nil {
		return caseError(c, err, "Failed to fetch case")
	}

	return c.JSON(tc)
}

func (h *CaseHandler) Resolve(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ResolveCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	tc, err := h.caseService.Resolve(userID, c.Params("caseID"), models.CaseStatus(req.Outcome))
	if err != nil {
		return caseError(c, err, "Failed to resolve case")
	}

	return c.JSON(tc)
}

// ListMine returns the caller's own cases, newest report first.
func (h *CaseHandler) ListMine(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	cases, err := h.caseService.ListForOwner(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch cases",
		})
	}

	return c.JSON(fiber.Map{"cases": cases, "total": len(cases)})
}

// ListCases is the staff listing endpoint.
func (h *CaseHandler) ListCases(c *fiber.Ctx) error {
	status := models.CaseStatus(c.Query("status", ""))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	cases, total, err := h.caseService.ListCases(status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch cases",
		})
	}

	return c.JSON(fiber.Map{
		"cases":  cases,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func caseError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	case errors.Is(err, services.ErrPermission):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrDeviceIneligible),
		errors.Is(err, services.ErrCaseAlreadyResolved):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrSequenceExhausted):
		// Terminal for this (date, region): surfaced as non-retriable.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrCaseIDContention):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidRegion),
		errors.Is(err, services.ErrMissingTheftTime),
		errors.Is(err, services.ErrTheftTimeInFuture),
		errors.Is(err, services.ErrMissingCaseDetails),
		errors.Is(err, services.ErrInvalidOutcome):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: fallback,
		})
	}
}
