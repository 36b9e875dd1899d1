package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/phoneindex/phoneindex-backend/internal/config"
	"github.com/phoneindex/phoneindex-backend/internal/dto"
	"github.com/phoneindex/phoneindex-backend/internal/identity"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

// StaffRequired allows through users that either appear on the
// config-based staff email list or carry a staff role in the database.
func StaffRequired(store storage.Storage, cfg *config.Config) fiber.Handler {
	staffEmails := parseCSV(cfg.StaffEmails)

	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(staffEmails, identity.GetEmail(c)) {
			return c.Next()
		}

		user, err := store.UserByID(userID)
		if err == nil && user.IsStaff() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Staff access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
