package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phoneindex/phoneindex-backend/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(u *models.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockStorage) UserByID(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) DeleteUserCascade(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) CreateRefreshToken(t *models.RefreshToken) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockStorage) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockStorage) RevokeRefreshToken(hash string) error {
	args := m.Called(hash)
	return args.Error(0)
}

func (m *MockStorage) CreateDevice(d *models.Device) error {
	args := m.Called(d)
	return args.Error(0)
}

func (m *MockStorage) DeviceByID(id uuid.UUID) (*models.Device, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockStorage) DeviceByIMEI(imei string) (*models.Device, error) {
	args := m.Called(imei)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockStorage) DevicesByOwner(ownerID uuid.UUID) ([]models.Device, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Device), args.Error(1)
}

func (m *MockStorage) DeleteDeviceCascade(deviceID uuid.UUID) error {
	args := m.Called(deviceID)
	return args.Error(0)
}

func (m *MockStorage) CreateCaseForDevice(tc *models.TheftCase) error {
	args := m.Called(tc)
	return args.Error(0)
}

func (m *MockStorage) CaseByID(id uuid.UUID) (*models.TheftCase, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TheftCase), args.Error(1)
}

func (m *MockStorage) CaseByCaseID(caseID string) (*models.TheftCase, error) {
	args := m.Called(caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TheftCase), args.Error(1)
}

func (m *MockStorage) CaseByDeviceID(deviceID uuid.UUID) (*models.TheftCase, error) {
	args := m.Called(deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TheftCase), args.Error(1)
}

func (m *MockStorage) CasesByOwner(ownerID uuid.UUID) ([]models.TheftCase, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TheftCase), args.Error(1)
}

func (m *MockStorage) LastCaseIDWithPrefix(prefix string) (string, error) {
	args := m.Called(prefix)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) CaseIDExists(caseID string) (bool, error) {
	args := m.Called(caseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CountCasesForRegionOnDate(region string, day time.Time) (int64, error) {
	args := m.Called(region, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) ResolveCase(id uuid.UUID, outcome models.CaseStatus) error {
	args := m.Called(id, outcome)
	return args.Error(0)
}

func (m *MockStorage) ListCases(status models.CaseStatus, limit, offset int) ([]models.TheftCase, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.TheftCase), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) CreateFoundReport(fr *models.FoundReport) error {
	args := m.Called(fr)
	return args.Error(0)
}

func (m *MockStorage) FoundReportsByCase(caseID uuid.UUID) ([]models.FoundReport, error) {
	args := m.Called(caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FoundReport), args.Error(1)
}

func (m *MockStorage) ListFoundReports(onlyUnprocessed bool, limit, offset int) ([]models.FoundReport, int64, error) {
	args := m.Called(onlyUnprocessed, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.FoundReport), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) MarkFoundReportProcessed(id uuid.UUID, processed bool) error {
	args := m.Called(id, processed)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	args := m.Called(ctx, to, subject, htmlBody, textBody)
	return args.Error(0)
}
