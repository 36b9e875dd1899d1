package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phoneindex/phoneindex-backend/internal/mailer"
	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

// FoundReportService resolves finder submissions against open cases and
// registered devices, links what it can and notifies the owner.
type FoundReportService struct {
	store   storage.Storage
	mail    mailer.Mailer
	baseURL string
	now     func() time.Time
}

func NewFoundReportService(store storage.Storage, mail mailer.Mailer, baseURL string) *FoundReportService {
	return &FoundReportService{
		store:   store,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// FoundSubmission is a finder's input. At least one of CaseIDHint,
// IMEIHint and Description must be present.
type FoundSubmission struct {
	CaseIDHint       string
	IMEIHint         string
	Description      string
	FoundAt          time.Time
	LocationFound    string
	Condition        models.DeviceCondition
	ReturnPreference models.ReturnPreference
	FinderName       string
	FinderEmail      string
	FinderPhone      string
	MessageToOwner   string
}

// SubmitResult reports what the matcher established. NotificationSent is
// false either when nothing matched or when delivery failed; delivery
// failure never fails the submission itself.
type SubmitResult struct {
	Report           *models.FoundReport
	Matched          bool
	NotificationSent bool
}

// Submit validates, matches in priority order (case ID first, then
// IMEI), persists the report regardless of match outcome, and sends a
// best-effort owner notification when a device was matched.
func (s *FoundReportService) Submit(ctx context.Context, sub *FoundSubmission) (*SubmitResult, error) {
	caseHint := strings.TrimSpace(sub.CaseIDHint)
	imeiHint := strings.TrimSpace(sub.IMEIHint)
	description := strings.TrimSpace(sub.Description)

	if caseHint == "" && imeiHint == "" && description == "" {
		return nil, ErrNoIdentifyingHints
	}
	if sub.Condition == "" {
		sub.Condition = models.ConditionUnknown
	}
	if !models.ValidCondition(sub.Condition) {
		return nil, ErrInvalidCondition
	}
	if !models.ValidReturnPreference(sub.ReturnPreference) {
		return nil, ErrInvalidReturnPreference
	}
	if sub.ReturnPreference == models.ReturnDirectContact &&
		strings.TrimSpace(sub.FinderEmail) == "" && strings.TrimSpace(sub.FinderPhone) == "" {
		return nil, ErrContactRequired
	}
	if strings.TrimSpace(sub.LocationFound) == "" {
		return nil, ErrMissingFoundLocation
	}
	if sub.FoundAt.IsZero() {
		return nil, ErrMissingFoundTime
	}
	if sub.FoundAt.After(s.now()) {
		return nil, ErrFoundTimeInFuture
	}

	linkedCase, linkedDevice, err := s.match(caseHint, imeiHint)
	if err != nil {
		return nil, err
	}

	report := &models.FoundReport{
		ID:               uuid.New(),
		CaseIDHint:       caseHint,
		IMEIHint:         imeiHint,
		Description:      description,
		FoundAt:          sub.FoundAt,
		LocationFound:    strings.TrimSpace(sub.LocationFound),
		Condition:        sub.Condition,
		ReturnPreference: sub.ReturnPreference,
		FinderName:       strings.TrimSpace(sub.FinderName),
		FinderEmail:      strings.TrimSpace(sub.FinderEmail),
		FinderPhone:      strings.TrimSpace(sub.FinderPhone),
		MessageToOwner:   strings.TrimSpace(sub.MessageToOwner),
		IsProcessed:      linkedDevice != nil,
	}
	if linkedCase != nil {
		report.LinkedCaseID = &linkedCase.ID
	}
	if linkedDevice != nil {
		report.LinkedDeviceID = &linkedDevice.ID
	}

	// Every submission is retained, matched or not.
	if err := s.store.CreateFoundReport(report); err != nil {
		return nil, fmt.Errorf("failed to save found report: %w", err)
	}

	result := &SubmitResult{Report: report, Matched: linkedDevice != nil}

	if linkedDevice != nil {
		result.NotificationSent = s.notifyOwner(ctx, report, linkedCase, linkedDevice)
	}

	slog.Info("found report submitted",
		"report_id", report.ID.String(),
		"matched", result.Matched,
		"notified", result.NotificationSent)
	return result, nil
}

// match resolves hints in strict priority order: an exact case-ID match
// wins and derives the device; otherwise an exact IMEI match links the
// device and, if that device has an open case, the case too.
func (s *FoundReportService) match(caseHint, imeiHint string) (*models.TheftCase, *models.Device, error) {
	var linkedCase *models.TheftCase
	var linkedDevice *models.Device

	if caseHint != "" {
		tc, err := s.store.CaseByCaseID(caseHint)
		switch {
		case err == nil:
			linkedCase = tc
			device, dErr := s.store.DeviceByID(tc.DeviceID)
			if dErr != nil && !errors.Is(dErr, storage.ErrNotFound) {
				return nil, nil, dErr
			}
			linkedDevice = device
		case !errors.Is(err, storage.ErrNotFound):
			return nil, nil, err
		}
	}

	if linkedDevice == nil && imeiHint != "" {
		device, err := s.store.DeviceByIMEI(imeiHint)
		switch {
		case err == nil:
			linkedDevice = device
			if linkedCase == nil {
				tc, cErr := s.store.CaseByDeviceID(device.ID)
				if cErr == nil && tc.Status == models.CaseStatusActive {
					linkedCase = tc
				} else if cErr != nil && !errors.Is(cErr, storage.ErrNotFound) {
					return nil, nil, cErr
				}
			}
		case !errors.Is(err, storage.ErrNotFound):
			return nil, nil, err
		}
	}

	return linkedCase, linkedDevice, nil
}

// notifyOwner dispatches the owner email. Failures are downgraded to a
// warning: the report is already persisted and stays valid.
func (s *FoundReportService) notifyOwner(ctx context.Context, report *models.FoundReport, tc *models.TheftCase, device *models.Device) bool {
	owner, err := s.store.UserByID(device.OwnerID)
	if err != nil {
		slog.Warn("found report owner lookup failed",
			"report_id", report.ID.String(), "error", err.Error())
		return false
	}

	subject := "Someone reported finding your device"
	if tc != nil {
		subject = fmt.Sprintf("Someone reported finding your device (Case %s)", tc.CaseID)
	}

	textBody := s.notificationText(report, tc, device)
	htmlBody := s.notificationHTML(report, tc, device)

	if err := s.mail.Send(ctx, owner.Email, subject, htmlBody, textBody); err != nil {
		slog.Warn("found report notification failed",
			"report_id", report.ID.String(), "to", owner.Email, "error", err.Error())
		return false
	}
	return true
}

func (s *FoundReportService) notificationText(report *models.FoundReport, tc *models.TheftCase, device *models.Device) string {
	var b strings.Builder

	b.WriteString("Good news! A finder submitted a report matching your device.\n\n")
	if tc != nil {
		fmt.Fprintf(&b, "Case ID: %s\n", tc.CaseID)
	}
	fmt.Fprintf(&b, "Device: %s (IMEI %s)\n", device.Description(), device.IMEI)
	fmt.Fprintf(&b, "Found at: %s\n", report.LocationFound)
	fmt.Fprintf(&b, "Condition: %s\n", report.Condition)
	fmt.Fprintf(&b, "Preferred return method: %s\n", report.ReturnPreference)
	if report.MessageToOwner != "" {
		fmt.Fprintf(&b, "\nMessage from the finder:\n%s\n", report.MessageToOwner)
	}
	fmt.Fprintf(&b, "\nSee your devices: %s/devices\n", s.baseURL)

	return b.String()
}

func (s *FoundReportService) notificationHTML(report *models.FoundReport, tc *models.TheftCase, device *models.Device) string {
	var b strings.Builder

	b.WriteString("<h2>Good news!</h2><p>A finder submitted a report matching your device.</p><ul>")
	if tc != nil {
		fmt.Fprintf(&b, "<li><strong>Case ID:</strong> %s</li>", tc.CaseID)
	}
	fmt.Fprintf(&b, "<li><strong>Device:</strong> %s (IMEI %s)</li>", device.Description(), device.IMEI)
	fmt.Fprintf(&b, "<li><strong>Found at:</strong> %s</li>", html.EscapeString(report.LocationFound))
	fmt.Fprintf(&b, "<li><strong>Condition:</strong> %s</li>", report.Condition)
	fmt.Fprintf(&b, "<li><strong>Preferred return method:</strong> %s</li>", report.ReturnPreference)
	b.WriteString("</ul>")
	if report.MessageToOwner != "" {
		fmt.Fprintf(&b, "<p><strong>Message from the finder:</strong><br>%s</p>", html.EscapeString(report.MessageToOwner))
	}
	fmt.Fprintf(&b, `<p><a href="%s/devices">See your devices</a></p>`, s.baseURL)

	return b.String()
}

// ListForCase returns the found reports linked to a case, newest first,
// if the viewer owns the device or is staff.
func (s *FoundReportService) ListForCase(viewerID uuid.UUID, caseID string) ([]models.FoundReport, error) {
	tc, err := s.store.CaseByCaseID(caseID)
	if err != nil {
		return nil, err
	}

	device, err := s.store.DeviceByID(tc.DeviceID)
	if err != nil {
		return nil, err
	}
	if device.OwnerID != viewerID {
		viewer, err := s.store.UserByID(viewerID)
		if err != nil || !viewer.IsStaff() {
			return nil, ErrPermission
		}
	}

	return s.store.FoundReportsByCase(tc.ID)
}

// ListFoundReports is the staff view over finder submissions.
func (s *FoundReportService) ListFoundReports(onlyUnprocessed bool, limit, offset int) ([]models.FoundReport, int64, error) {
	return s.store.ListFoundReports(onlyUnprocessed, limit, offset)
}

// MarkProcessed lets staff toggle the processed flag after manual review.
func (s *FoundReportService) MarkProcessed(id uuid.UUID, processed bool) error {
	return s.store.MarkFoundReportProcessed(id, processed)
}
