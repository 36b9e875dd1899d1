package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

const (
	// maxSequence reflects the fixed-width 4-digit field in the case ID.
	// Exceeding it is terminal for that (date, region) pair.
	maxSequence = 9999
	// maxIDAttempts bounds the retry loop when concurrent reporters race
	// for the same case ID. The unique constraint on case_id is the
	// actual correctness guarantee; the loop just converges on it.
	maxIDAttempts = 5
)

// CaseService owns theft cases: case-ID generation, the report-stolen
// transition and case resolution.
type CaseService struct {
	store storage.Storage
	now   func() time.Time
}

func NewCaseService(store storage.Storage) *CaseService {
	return &CaseService{store: store, now: time.Now}
}

// TheftDetails carries the reporter-supplied fields of a theft case.
type TheftDetails struct {
	Region            string
	OccurredAt        time.Time
	IsTimeApproximate bool
	Location          string
	Circumstances     string
	AdditionalDetails string
}

// ReportStolen opens a theft case for the device and flips the device to
// STOLEN. Both writes commit together or not at all: the preconditions
// are re-checked inside the storage transaction, so a concurrent double
// report yields exactly one case.
func (s *CaseService) ReportStolen(requesterID, deviceID uuid.UUID, det *TheftDetails) (*models.TheftCase, error) {
	device, err := s.store.DeviceByID(deviceID)
	if err != nil {
		return nil, err
	}
	if device.OwnerID != requesterID {
		return nil, ErrPermission
	}

	if !models.ValidRegion(det.Region) {
		return nil, ErrInvalidRegion
	}
	if strings.TrimSpace(det.Location) == "" || strings.TrimSpace(det.Circumstances) == "" {
		return nil, ErrMissingCaseDetails
	}

	if det.OccurredAt.IsZero() {
		return nil, ErrMissingTheftTime
	}
	now := s.now()
	if det.OccurredAt.After(now) {
		return nil, ErrTheftTimeInFuture
	}

	// Friendly pre-checks; the transaction re-checks both under lock.
	if device.Status != models.DeviceStatusNormal {
		return nil, ErrDeviceIneligible
	}
	if _, err := s.store.CaseByDeviceID(device.ID); err == nil {
		return nil, ErrDeviceIneligible
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		caseID, err := s.nextCaseID(det.Region, now)
		if err != nil {
			return nil, err
		}

		exists, err := s.store.CaseIDExists(caseID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		tc := &models.TheftCase{
			ID:                uuid.New(),
			CaseID:            caseID,
			DeviceID:          device.ID,
			Region:            det.Region,
			OccurredAt:        det.OccurredAt,
			IsTimeApproximate: det.IsTimeApproximate,
			Location:          strings.TrimSpace(det.Location),
			Circumstances:     strings.TrimSpace(det.Circumstances),
			AdditionalDetails: strings.TrimSpace(det.AdditionalDetails),
			Status:            models.CaseStatusActive,
		}

		err = s.store.CreateCaseForDevice(tc)
		switch {
		case err == nil:
			slog.Info("theft case created",
				"case_id", tc.CaseID, "imei", device.IMEI, "region", tc.Region)
			return tc, nil
		case errors.Is(err, storage.ErrDuplicate):
			// Lost the case-ID race against a concurrent insert;
			// recompute from current state and try again.
			continue
		case errors.Is(err, storage.ErrDeviceIneligible):
			return nil, ErrDeviceIneligible
		default:
			return nil, fmt.Errorf("failed to create theft case: %w", err)
		}
	}

	return nil, ErrCaseIDContention
}

// nextCaseID computes CR-<YYYYMMDD>-<region>-<NNNN> where the sequence is
// the highest existing one for that exact (date, region) prefix plus one.
func (s *CaseService) nextCaseID(region string, now time.Time) (string, error) {
	prefix := fmt.Sprintf("CR-%s-%s-", now.Format("20060102"), region)

	last, err := s.store.LastCaseIDWithPrefix(prefix)
	if err != nil {
		return "", err
	}

	next := 1
	if last != "" {
		parts := strings.Split(last, "-")
		seq, convErr := strconv.Atoi(parts[len(parts)-1])
		if convErr != nil {
			// Malformed row; fall back to counting today's cases for
			// the region.
			n, cntErr := s.store.CountCasesForRegionOnDate(region, now)
			if cntErr != nil {
				return "", cntErr
			}
			next = int(n) + 1
		} else {
			next = seq + 1
		}
	}

	if next > maxSequence {
		return "", ErrSequenceExhausted
	}

	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// ListForOwner returns the viewer's own cases, most recent report first.
func (s *CaseService) ListForOwner(ownerID uuid.UUID) ([]models.TheftCase, error) {
	return s.store.CasesByOwner(ownerID)
}

// GetForViewer returns a case if the viewer owns the device or is staff.
func (s *CaseService) GetForViewer(viewerID uuid.UUID, caseID string) (*models.TheftCase, error) {
	tc, err := s.store.CaseByCaseID(caseID)
	if err != nil {
		return nil, err
	}

	device, err := s.store.DeviceByID(tc.DeviceID)
	if err != nil {
		return nil, err
	}
	if device.OwnerID == viewerID {
		return tc, nil
	}

	viewer, err := s.store.UserByID(viewerID)
	if err != nil {
		return nil, ErrPermission
	}
	if !viewer.IsStaff() {
		return nil, ErrPermission
	}
	return tc, nil
}

// Resolve moves an ACTIVE case to a terminal status and updates the
// device status to match. Resolution is one-way.
func (s *CaseService) Resolve(viewerID uuid.UUID, caseID string, outcome models.CaseStatus) (*models.TheftCase, error) {
	if !outcome.IsResolution() {
		return nil, ErrInvalidOutcome
	}

	tc, err := s.GetForViewer(viewerID, caseID)
	if err != nil {
		return nil, err
	}
	if tc.Status != models.CaseStatusActive {
		return nil, ErrCaseAlreadyResolved
	}

	if err := s.store.ResolveCase(tc.ID, outcome); err != nil {
		if errors.Is(err, storage.ErrCaseNotActive) {
			return nil, ErrCaseAlreadyResolved
		}
		return nil, fmt.Errorf("failed to resolve case: %w", err)
	}

	slog.Info("theft case resolved", "case_id", tc.CaseID, "outcome", string(outcome))
	tc.Status = outcome
	return tc, nil
}

// ListCases is the staff view over all cases.
func (s *CaseService) ListCases(status models.CaseStatus, limit, offset int) ([]models.TheftCase, int64, error) {
	return s.store.ListCases(status, limit, offset)
}
