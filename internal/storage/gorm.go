package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phoneindex/phoneindex-backend/internal/models"
)

// Service is the GORM-backed Storage implementation.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// translate maps GORM errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// --- Users ---

func (s *Service) CreateUser(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *Service) UserByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Service) UserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Service) DeleteUserCascade(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		var devices []models.Device
		if err := tx.Where("owner_id = ?", userID).Find(&devices).Error; err != nil {
			return err
		}
		for _, d := range devices {
			if err := deleteDeviceTx(tx, d.ID); err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}

// --- Refresh tokens ---

func (s *Service) CreateRefreshToken(t *models.RefreshToken) error {
	return translate(s.db.Create(t).Error)
}

func (s *Service) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", hash).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *Service) RevokeRefreshToken(hash string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

// --- Devices ---

func (s *Service) CreateDevice(d *models.Device) error {
	return translate(s.db.Create(d).Error)
}

func (s *Service) DeviceByID(id uuid.UUID) (*models.Device, error) {
	var d models.Device
	if err := s.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *Service) DeviceByIMEI(imei string) (*models.Device, error) {
	var d models.Device
	if err := s.db.First(&d, "imei = ?", imei).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *Service) DevicesByOwner(ownerID uuid.UUID) ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("registered_at DESC").
		Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *Service) DeleteDeviceCascade(deviceID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteDeviceTx(tx, deviceID)
	})
}

// deleteDeviceTx implements the explicit cascade: the theft case and the
// found reports linked to that case go with the device; found reports
// that only reference the device keep their row but lose the link.
func deleteDeviceTx(tx *gorm.DB, deviceID uuid.UUID) error {
	var tc models.TheftCase
	err := tx.Where("device_id = ?", deviceID).First(&tc).Error
	switch {
	case err == nil:
		if err := tx.Where("linked_case_id = ?", tc.ID).Delete(&models.FoundReport{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.TheftCase{}, "id = ?", tc.ID).Error; err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err := tx.Model(&models.FoundReport{}).
		Where("linked_device_id = ?", deviceID).
		Update("linked_device_id", nil).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Device{}, "id = ?", deviceID).Error
}

// --- Theft cases ---

func (s *Service) CreateCaseForDevice(tc *models.TheftCase) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&device, "id = ?", tc.DeviceID).Error; err != nil {
			return translate(err)
		}

		if device.Status != models.DeviceStatusNormal {
			return ErrDeviceIneligible
		}

		var existing int64
		if err := tx.Model(&models.TheftCase{}).
			Where("device_id = ?", device.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDeviceIneligible
		}

		if err := tx.Create(tc).Error; err != nil {
			return translate(err)
		}

		if err := tx.Model(&models.Device{}).
			Where("id = ?", device.ID).
			Update("status", models.DeviceStatusStolen).Error; err != nil {
			return fmt.Errorf("failed to mark device stolen: %w", err)
		}
		return nil
	})
}

func (s *Service) CaseByID(id uuid.UUID) (*models.TheftCase, error) {
	var tc models.TheftCase
	if err := s.db.First(&tc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tc, nil
}

func (s *Service) CaseByCaseID(caseID string) (*models.TheftCase, error) {
	var tc models.TheftCase
	if err := s.db.First(&tc, "case_id = ?", caseID).Error; err != nil {
		return nil, translate(err)
	}
	return &tc, nil
}

func (s *Service) CaseByDeviceID(deviceID uuid.UUID) (*models.TheftCase, error) {
	var tc models.TheftCase
	if err := s.db.First(&tc, "device_id = ?", deviceID).Error; err != nil {
		return nil, translate(err)
	}
	return &tc, nil
}

func (s *Service) CasesByOwner(ownerID uuid.UUID) ([]models.TheftCase, error) {
	var cases []models.TheftCase
	err := s.db.
		Joins("JOIN devices ON devices.id = theft_cases.device_id").
		Where("devices.owner_id = ?", ownerID).
		Order("theft_cases.reported_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (s *Service) LastCaseIDWithPrefix(prefix string) (string, error) {
	var ids []string
	err := s.db.Model(&models.TheftCase{}).
		Where("case_id LIKE ?", prefix+"%").
		Order("case_id DESC").
		Limit(1).
		Pluck("case_id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (s *Service) CaseIDExists(caseID string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.TheftCase{}).
		Where("case_id = ?", caseID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Service) CountCasesForRegionOnDate(region string, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var n int64
	err := s.db.Model(&models.TheftCase{}).
		Where("region = ? AND reported_at >= ? AND reported_at < ?", region, start, end).
		Count(&n).Error
	return n, err
}

func (s *Service) ResolveCase(id uuid.UUID, outcome models.CaseStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tc models.TheftCase
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tc, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		if tc.Status != models.CaseStatusActive {
			return ErrCaseNotActive
		}

		if err := tx.Model(&models.TheftCase{}).
			Where("id = ?", tc.ID).
			Update("status", outcome).Error; err != nil {
			return err
		}

		return tx.Model(&models.Device{}).
			Where("id = ?", tc.DeviceID).
			Update("status", outcome.DeviceStatus()).Error
	})
}

func (s *Service) ListCases(status models.CaseStatus, limit, offset int) ([]models.TheftCase, int64, error) {
	var cases []models.TheftCase
	var total int64

	query := s.db.Model(&models.TheftCase{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("reported_at DESC").Limit(limit).Offset(offset).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// --- Found reports ---

func (s *Service) CreateFoundReport(fr *models.FoundReport) error {
	return translate(s.db.Create(fr).Error)
}

func (s *Service) FoundReportsByCase(caseID uuid.UUID) ([]models.FoundReport, error) {
	var reports []models.FoundReport
	err := s.db.Where("linked_case_id = ?", caseID).
		Order("submitted_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) ListFoundReports(onlyUnprocessed bool, limit, offset int) ([]models.FoundReport, int64, error) {
	var reports []models.FoundReport
	var total int64

	query := s.db.Model(&models.FoundReport{})
	if onlyUnprocessed {
		query = query.Where("is_processed = false")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *Service) MarkFoundReportProcessed(id uuid.UUID, processed bool) error {
	result := s.db.Model(&models.FoundReport{}).
		Where("id = ?", id).
		Update("is_processed", processed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
