// Package storage puts all persistence behind a single interface so the
// services can be exercised against mocks. The GORM implementation lives
// in gorm.go.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/phoneindex/phoneindex-backend/internal/models"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means an insert hit a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrDeviceIneligible means a device failed the in-transaction
	// precondition check for opening a theft case.
	ErrDeviceIneligible = errors.New("device is not eligible")
	// ErrCaseNotActive means a resolution was attempted on a case that
	// already left the ACTIVE state.
	ErrCaseNotActive = errors.New("case is not active")
)

type Storage interface {
	// Users
	CreateUser(u *models.User) error
	UserByID(id uuid.UUID) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	DeleteUserCascade(userID uuid.UUID) error

	// Refresh tokens
	CreateRefreshToken(t *models.RefreshToken) error
	RefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(hash string) error

	// Devices
	CreateDevice(d *models.Device) error
	DeviceByID(id uuid.UUID) (*models.Device, error)
	DeviceByIMEI(imei string) (*models.Device, error)
	DevicesByOwner(ownerID uuid.UUID) ([]models.Device, error)
	// DeleteDeviceCascade removes the device, its theft case and the
	// found reports linked to that case, and nulls the device link on
	// any remaining found reports. All in one transaction.
	DeleteDeviceCascade(deviceID uuid.UUID) error

	// Theft cases
	// CreateCaseForDevice re-checks the device preconditions under a
	// row lock, inserts the case and flips the device to STOLEN in a
	// single transaction. Returns ErrDeviceIneligible if the device is
	// no longer NORMAL or already has a case, ErrDuplicate if the case
	// ID lost a race against a concurrent insert.
	CreateCaseForDevice(tc *models.TheftCase) error
	CaseByID(id uuid.UUID) (*models.TheftCase, error)
	CaseByCaseID(caseID string) (*models.TheftCase, error)
	CaseByDeviceID(deviceID uuid.UUID) (*models.TheftCase, error)
	// CasesByOwner returns every case on a device the user owns, newest
	// report first.
	CasesByOwner(ownerID uuid.UUID) ([]models.TheftCase, error)
	// LastCaseIDWithPrefix returns the lexicographically highest case
	// ID starting with prefix, or "" if none exists.
	LastCaseIDWithPrefix(prefix string) (string, error)
	CaseIDExists(caseID string) (bool, error)
	CountCasesForRegionOnDate(region string, day time.Time) (int64, error)
	// ResolveCase moves an ACTIVE case to the given terminal status and
	// updates the device status accordingly, atomically.
	ResolveCase(id uuid.UUID, outcome models.CaseStatus) error
	ListCases(status models.CaseStatus, limit, offset int) ([]models.TheftCase, int64, error)

	// Found reports
	CreateFoundReport(fr *models.FoundReport) error
	FoundReportsByCase(caseID uuid.UUID) ([]models.FoundReport, error)
	ListFoundReports(onlyUnprocessed bool, limit, offset int) ([]models.FoundReport, int64, error)
	MarkFoundReportProcessed(id uuid.UUID, processed bool) error
}
