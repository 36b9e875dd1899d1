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

type FoundHandler struct {
	foundService *services.FoundReportService
}

func NewFoundHandler(foundService *services.FoundReportService) *FoundHandler {
	return &FoundHandler{foundService: foundService}
}

// Submit accepts a finder's report. No authentication required.
func (h *FoundHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFoundReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.foundService.Submit(c.Context(), &services.FoundSubmission{
		CaseIDHint:       req.CaseID,
		IMEIHint:         req.IMEI,
		Description:      req.Description,
		FoundAt:          req.FoundAt,
		LocationFound:    req.LocationFound,
		Condition:        models.DeviceCondition(req.Condition),
		ReturnPreference: models.ReturnPreference(req.ReturnPreference),
		FinderName:       req.FinderName,
		FinderEmail:      req.FinderEmail,
		FinderPhone:      req.FinderPhone,
		MessageToOwner:   req.MessageToOwner,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoIdentifyingHints),
			errors.Is(err, services.ErrContactRequired),
			errors.Is(err, services.ErrMissingFoundLocation),
			errors.Is(err, services.ErrMissingFoundTime),
			errors.Is(err, services.ErrFoundTimeInFuture),
			errors.Is(err, services.ErrInvalidCondition),
			errors.Is(err, services.ErrInvalidReturnPreference):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to submit found report",
			})
		}
	}

	resp := dto.SubmitFoundReportResponse{
		ReportID: result.Report.ID.String(),
		Matched:  result.Matched,
		Message:  "Thank you! Your found report has been recorded.",
	}
	if result.Matched && !result.NotificationSent {
		resp.Warning = "The owner could not be notified right away, but your report is saved and will be reviewed."
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListForCase lets the device owner read the found reports linked to
// their case.
func (h *FoundHandler) ListForCase(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reports, err := h.foundService.ListForCase(userID, c.Params("caseID"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Case not found",
			})
		case errors.Is(err, services.ErrPermission):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to fetch found reports",
			})
		}
	}

	return c.JSON(fiber.Map{"found_reports": reports, "total": len(reports)})
}

// List is the staff listing endpoint over finder submissions.
func (h *FoundHandler) List(c *fiber.Ctx) error {
	onlyUnprocessed := c.Query("unprocessed", "") == "true"
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.foundService.ListFoundReports(onlyUnprocessed, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch found reports",
		})
	}

	return c.JSON(fiber.Map{
		"found_reports": reports,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	})
}

// MarkProcessed lets staff toggle the processed flag.
func (h *FoundHandler) MarkProcessed(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req struct {
		Processed bool `json:"processed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.foundService.MarkProcessed(reportID, req.Processed); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Found report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update found report",
		})
	}

	return c.JSON(fiber.Map{"message": "Found report updated successfully"})
}
